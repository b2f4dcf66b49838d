package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

type expenseRequest struct {
	Category    string          `json:"category" validate:"required"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Currency    string          `json:"currency"`
	SpentAt     time.Time       `json:"spent_at" validate:"required"`
}

func (req expenseRequest) toDomain(userID, tripID uuid.UUID) domain.Expense {
	return domain.Expense{
		UserID:      userID,
		TripID:      tripID,
		Category:    req.Category,
		Description: req.Description,
		Amount:      req.Amount,
		Currency:    req.Currency,
		SpentAt:     req.SpentAt,
	}
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	var req expenseRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	expense, err := s.expenses.Create(r.Context(), req.toDomain(userID, tripID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, expense)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	expenses, err := s.expenses.ListByTrip(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, expenses)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	expenseID, err := pathUUID(r, "expenseID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid expense id")
		return
	}

	expense, err := s.expenses.GetByID(r.Context(), userID, expenseID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, expense)
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}
	expenseID, err := pathUUID(r, "expenseID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid expense id")
		return
	}

	var req expenseRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	expense := req.toDomain(userID, tripID)
	expense.ID = expenseID
	updated, err := s.expenses.Update(r.Context(), expense)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	expenseID, err := pathUUID(r, "expenseID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid expense id")
		return
	}

	if err := s.expenses.Delete(r.Context(), userID, expenseID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
