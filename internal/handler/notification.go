package handler

import (
	"net/http"
	"strconv"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

// notificationPage is the pagedListByUser response.
type notificationPage struct {
	Items []domain.Notification `json:"items"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	var page, limit *int
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeBadRequest(w, r, "invalid page")
			return
		}
		page = &n
	}
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			s.writeBadRequest(w, r, "invalid limit")
			return
		}
		limit = &n
	}
	p := domain.NewPaginationParams(page, limit)

	items, total, err := s.notifications.List(r.Context(), userID, p)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, notificationPage{Items: items, Total: total, Page: p.Page, Limit: p.Limit})
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	count, err := s.notifications.UnreadCount(r.Context(), userID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, map[string]int64{"unread": count})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	notificationID, err := pathUUID(r, "notificationID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid notification id")
		return
	}

	if err := s.notifications.MarkRead(r.Context(), userID, notificationID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)

	if err := s.notifications.MarkAllRead(r.Context(), userID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteNotification(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	notificationID, err := pathUUID(r, "notificationID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid notification id")
		return
	}

	if err := s.notifications.Delete(r.Context(), userID, notificationID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
