package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

type tripRequest struct {
	Name        string    `json:"name" validate:"required"`
	Destination string    `json:"destination"`
	Description string    `json:"description"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
}

// shareRequest is the body for every resource's share endpoint.
type shareRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
	Role   string    `json:"role" validate:"required"`
}

// visibilityRequest is the body for every resource's visibility endpoint.
// IsPublic is a pointer so an absent field fails validation instead of
// silently reading as false.
type visibilityRequest struct {
	IsPublic *bool `json:"is_public" validate:"required"`
}

func (s *Server) handleCreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	var req tripRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	trip, err := s.trips.Create(r.Context(), domain.Trip{
		Name:        req.Name,
		Destination: req.Destination,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Sharing:     domain.Sharing{OwnerID: userID},
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, trip)
}

func (s *Server) handleListTrips(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	trips, err := s.trips.List(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trips)
}

func (s *Server) handleGetTrip(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trip)
}

func (s *Server) handleUpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	var req tripRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	trip, err := s.trips.Update(r.Context(), userID, domain.Trip{
		ID:          tripID,
		Name:        req.Name,
		Destination: req.Destination,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trip)
}

func (s *Server) handleDeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	if err := s.trips.Delete(r.Context(), userID, tripID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShareTrip(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	var req shareRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	trip, err := s.trips.Share(r.Context(), userID, tripID, req.UserID, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trip)
}

func (s *Server) handleUnshareTrip(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}
	target, err := pathUUID(r, "userID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid user id")
		return
	}

	trip, err := s.trips.Unshare(r.Context(), userID, tripID, target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trip)
}

func (s *Server) handleTripVisibility(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	var req visibilityRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	trip, err := s.trips.SetVisibility(r.Context(), userID, tripID, *req.IsPublic)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, trip)
}
