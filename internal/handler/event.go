package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

type eventRequest struct {
	TripID      *uuid.UUID `json:"trip_id"`
	Title       string     `json:"title" validate:"required"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     time.Time  `json:"end_time" validate:"required"`
	AllDay      bool       `json:"all_day"`
	Color       string     `json:"color"`
}

func (req eventRequest) toDomain() domain.CalendarEvent {
	return domain.CalendarEvent{
		TripID:      req.TripID,
		Title:       req.Title,
		Description: req.Description,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		AllDay:      req.AllDay,
		Color:       req.Color,
	}
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	var req eventRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	ev, err := s.events.Create(r.Context(), userID, req.toDomain())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, ev)
}

// handleListEvents returns the requester's events, optionally windowed by
// from/to query parameters in RFC 3339 format. from and to must be supplied
// together; the window is half-open.
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	var from, to *time.Time
	if v := r.URL.Query().Get("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeBadRequest(w, r, "invalid from: must be RFC 3339")
			return
		}
		from = &t
	}
	if v := r.URL.Query().Get("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			s.writeBadRequest(w, r, "invalid to: must be RFC 3339")
			return
		}
		to = &t
	}

	events, err := s.events.List(r.Context(), userID, from, to)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, events)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid event id")
		return
	}

	ev, err := s.events.GetByID(r.Context(), userID, eventID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, ev)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid event id")
		return
	}

	var req eventRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	ev := req.toDomain()
	ev.ID = eventID
	updated, err := s.events.Update(r.Context(), userID, ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid event id")
		return
	}

	if err := s.events.Delete(r.Context(), userID, eventID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShareEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid event id")
		return
	}

	var req shareRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	ev, err := s.events.Share(r.Context(), userID, eventID, req.UserID, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, ev)
}

func (s *Server) handleUnshareEvent(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid event id")
		return
	}
	target, err := pathUUID(r, "userID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid user id")
		return
	}

	ev, err := s.events.Unshare(r.Context(), userID, eventID, target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, ev)
}

func (s *Server) handleEventVisibility(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	eventID, err := pathUUID(r, "eventID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid event id")
		return
	}

	var req visibilityRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	ev, err := s.events.SetVisibility(r.Context(), userID, eventID, *req.IsPublic)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, ev)
}
