package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mittalpriyanshi/globaltrotter/internal/domain"
)

type budgetRequest struct {
	Category       string          `json:"category" validate:"required"`
	Amount         decimal.Decimal `json:"amount" validate:"required"`
	Currency       string          `json:"currency"`
	AlertThreshold *int            `json:"alert_threshold"`
	AlertsEnabled  *bool           `json:"alerts_enabled"`
}

// toDomain applies the request onto a budget, filling in the defaults for
// absent optional fields.
func (req budgetRequest) toDomain(userID, tripID uuid.UUID) domain.Budget {
	b := domain.Budget{
		UserID:         userID,
		TripID:         tripID,
		Category:       req.Category,
		Amount:         req.Amount,
		Currency:       req.Currency,
		AlertThreshold: domain.DefaultAlertThreshold,
		AlertsEnabled:  true,
	}
	if req.AlertThreshold != nil {
		b.AlertThreshold = *req.AlertThreshold
	}
	if req.AlertsEnabled != nil {
		b.AlertsEnabled = *req.AlertsEnabled
	}
	return b
}

type cloneBudgetsRequest struct {
	TargetTripID uuid.UUID `json:"target_trip_id" validate:"required"`
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	var req budgetRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	budget, err := s.budgets.Create(r.Context(), req.toDomain(userID, tripID))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, budget)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	budgets, err := s.budgets.List(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, budgets)
}

func (s *Server) handleUpdateBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}
	budgetID, err := pathUUID(r, "budgetID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid budget id")
		return
	}

	var req budgetRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	budget := req.toDomain(userID, tripID)
	budget.ID = budgetID
	updated, err := s.budgets.Update(r.Context(), budget)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, updated)
}

// handleDeactivateBudget retires a budget without deleting its history.
// The category becomes available for a fresh budget immediately.
func (s *Server) handleDeactivateBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	budgetID, err := pathUUID(r, "budgetID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid budget id")
		return
	}

	if err := s.budgets.Deactivate(r.Context(), userID, budgetID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	budgetID, err := pathUUID(r, "budgetID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid budget id")
		return
	}

	if err := s.budgets.Delete(r.Context(), userID, budgetID); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleBudgetStatus returns the derived spend analysis for one budget.
func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	budgetID, err := pathUUID(r, "budgetID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid budget id")
		return
	}

	status, err := s.budgets.Evaluate(r.Context(), userID, budgetID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, status)
}

// handleBudgetSummary returns the whole-trip budget rollup.
func (s *Server) handleBudgetSummary(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	tripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	summary, err := s.budgets.SummarizeTrip(r.Context(), userID, tripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusOK, summary)
}

// handleCloneBudgets copies this trip's active budgets onto another trip,
// skipping categories the target already budgets. Returns the created
// budgets only.
func (s *Server) handleCloneBudgets(w http.ResponseWriter, r *http.Request) {
	userID, _ := s.requester(r)
	sourceTripID, err := pathUUID(r, "tripID")
	if err != nil {
		s.writeBadRequest(w, r, "invalid trip id")
		return
	}

	var req cloneBudgetsRequest
	if err := s.decode(r, &req); err != nil {
		s.writeDecodeError(w, r, err)
		return
	}

	created, err := s.budgets.CloneBudgets(r.Context(), userID, sourceTripID, req.TargetTripID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, http.StatusCreated, created)
}
