package handler

import (
	"net/http"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

type registerRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Name     string `json:"name"`
	Password string `json:"password" validate:"required,min=8"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse returns the account alongside its freshly issued token.
type authResponse struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

// handleRegister creates an account and returns it with an access token.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	user, token, err := s.auth.Register(r.Context(), req.Email, req.Name, req.Password)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, authResponse{User: user, Token: token})
}

// handleLogin verifies credentials and returns the account with an access
// token. Bad credentials are reported as 401 rather than the usual 403
// mapping for ErrAccessDenied, since the caller is unauthenticated here.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	user, token, err := s.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if isAccessDenied(err) {
			s.writeJSON(w, r, http.StatusUnauthorized, errorBody{Error: errorDetail{
				Code:    "invalid_credentials",
				Message: "invalid email or password",
			}})
			return
		}
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, authResponse{User: user, Token: token})
}

// handleMe returns the authenticated user's account.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.requester(r)
	if !ok {
		s.writeJSON(w, r, http.StatusUnauthorized, errorBody{Error: errorDetail{Code: "unauthorized", Message: "not authenticated"}})
		return
	}

	user, err := s.auth.GetUser(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, user)
}
