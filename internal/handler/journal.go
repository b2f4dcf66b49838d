package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

type journalRequest struct {
	TripID    *uuid.UUID `json:"trip_id"`
	Title     string     `json:"title" validate:"required"`
	Content   string     `json:"content" validate:"required"`
	Mood      string     `json:"mood"`
	EntryDate time.Time  `json:"entry_date" validate:"required"`
}

func (req journalRequest) toDomain() domain.JournalEntry {
	return domain.JournalEntry{
		TripID:    req.TripID,
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		EntryDate: req.EntryDate,
	}
}

func (s *Server) handleCreateJournal(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	var req journalRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	entry, err := s.journals.Create(r.Context(), userID, req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, entry)
}

func (s *Server) handleListJournals(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	entries, err := s.journals.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entries)
}

func (s *Server) handleGetJournal(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	entryID, err := pathUUID(r, "entryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid journal entry id")
		return
	}

	entry, err := s.journals.GetByID(r.Context(), userID, entryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entry)
}

func (s *Server) handleUpdateJournal(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	entryID, err := pathUUID(r, "entryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid journal entry id")
		return
	}

	var req journalRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	entry := req.toDomain()
	entry.ID = entryID
	updated, err := s.journals.Update(r.Context(), userID, entry)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteJournal(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	entryID, err := pathUUID(r, "entryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid journal entry id")
		return
	}

	if err := s.journals.Delete(r.Context(), userID, entryID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShareJournal(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	entryID, err := pathUUID(r, "entryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid journal entry id")
		return
	}

	var req shareRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	entry, err := s.journals.Share(r.Context(), userID, entryID, req.UserID, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entry)
}

func (s *Server) handleUnshareJournal(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	entryID, err := pathUUID(r, "entryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid journal entry id")
		return
	}
	target, err := pathUUID(r, "userID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid user id")
		return
	}

	entry, err := s.journals.Unshare(r.Context(), userID, entryID, target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entry)
}

func (s *Server) handleJournalVisibility(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	entryID, err := pathUUID(r, "entryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid journal entry id")
		return
	}

	var req visibilityRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	entry, err := s.journals.SetVisibility(r.Context(), userID, entryID, *req.IsPublic)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, entry)
}
