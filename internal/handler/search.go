package handler

import "net/http"

// handleSearch runs a cross-resource search over everything visible to the
// requester. The q parameter must be at least two characters after trimming.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	results, err := s.search.Search(r.Context(), userID, r.URL.Query().Get("q"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, results)
}
