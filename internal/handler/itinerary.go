package handler

import (
	"net/http"
	"time"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

type itineraryRequest struct {
	Title string `json:"title" validate:"required"`
	Notes string `json:"notes"`
}

type itineraryItemRequest struct {
	Day      time.Time `json:"day" validate:"required"`
	Location string    `json:"location"`
	Activity string    `json:"activity" validate:"required"`
	Notes    string    `json:"notes"`
	Position int       `json:"position"`
}

func (s *Server) handleCreateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	var req itineraryRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	it, err := s.itineraries.Create(r.Context(), userID, domain.Itinerary{
		TripID: tripID,
		Title:  req.Title,
		Notes:  req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, it)
}

func (s *Server) handleListItineraries(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	itineraries, err := s.itineraries.ListByTrip(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, itineraries)
}

func (s *Server) handleGetItinerary(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}

	it, err := s.itineraries.GetByID(r.Context(), userID, itineraryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, it)
}

func (s *Server) handleUpdateItinerary(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}

	var req itineraryRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	it, err := s.itineraries.Update(r.Context(), userID, domain.Itinerary{
		ID:    itineraryID,
		Title: req.Title,
		Notes: req.Notes,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, it)
}

func (s *Server) handleDeleteItinerary(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}

	if err := s.itineraries.Delete(r.Context(), userID, itineraryID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleShareItinerary(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}

	var req shareRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	it, err := s.itineraries.Share(r.Context(), userID, itineraryID, req.UserID, domain.Role(req.Role))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, it)
}

func (s *Server) handleUnshareItinerary(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}
	target, err := pathUUID(r, "userID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid user id")
		return
	}

	it, err := s.itineraries.Unshare(r.Context(), userID, itineraryID, target)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, it)
}

func (s *Server) handleItineraryVisibility(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}

	var req visibilityRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	it, err := s.itineraries.SetVisibility(r.Context(), userID, itineraryID, *req.IsPublic)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, it)
}

func (s *Server) handleCreateItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}

	var req itineraryItemRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	item, err := s.itineraries.CreateItem(r.Context(), userID, domain.ItineraryItem{
		ItineraryID: itineraryID,
		Day:         req.Day,
		Location:    req.Location,
		Activity:    req.Activity,
		Notes:       req.Notes,
		Position:    req.Position,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, item)
}

func (s *Server) handleListItineraryItems(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}

	items, err := s.itineraries.ListItems(r.Context(), userID, itineraryID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleUpdateItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid item id")
		return
	}

	var req itineraryItemRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	item, err := s.itineraries.UpdateItem(r.Context(), userID, domain.ItineraryItem{
		ID:          itemID,
		ItineraryID: itineraryID,
		Day:         req.Day,
		Location:    req.Location,
		Activity:    req.Activity,
		Notes:       req.Notes,
		Position:    req.Position,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, item)
}

func (s *Server) handleDeleteItineraryItem(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	itineraryID, err := pathUUID(r, "itineraryID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid itinerary id")
		return
	}
	itemID, err := pathUUID(r, "itemID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid item id")
		return
	}

	if err := s.itineraries.DeleteItem(r.Context(), userID, itineraryID, itemID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
