package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/models"
)

type AdminOrderService interface {
	// ListAllOrders returns every order, newest first
	ListAllOrders(ctx context.Context) ([]models.Order, error)
	// MarkPaid confirms the buyer's payment
	MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// RejectPayment refuses the submitted payment proof
	RejectPayment(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// Dispatch ships the order
	Dispatch(ctx context.Context, id uuid.UUID, trackingNumber string) (*models.Order, error)
	// MarkDelivered completes the order
	MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// Cancel aborts the order with a reason
	Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Order, error)
}

type AccountService interface {
	// SetAccountStatus approves or rejects a buyer account
	SetAccountStatus(ctx context.Context, id uuid.UUID, status string) error
}

// AdminHandler represents HTTP handler for the back-office requests
type AdminHandler struct {
	orders   AdminOrderService
	accounts AccountService
}

// NewAdminHandler creates new AdminHandler instance
func NewAdminHandler(orders AdminOrderService, accounts AccountService) *AdminHandler {
	return &AdminHandler{orders: orders, accounts: accounts}
}

// ListAllOrders returns every order in the system
// 200 — success;
// 401 — user is not authenticated;
// 403 — user is not an admin;
// 500 — internal server error.
func (ah *AdminHandler) ListAllOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := ah.orders.ListAllOrders(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		resp := make([]orderResponse, 0, len(orders))
		for i := range orders {
			resp = append(resp, toOrderResponse(&orders[i], false))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(resp)
	}
}

// transition runs one admin order transition and writes the updated
// order back, mapping the shared error set to status codes
func (ah *AdminHandler) transition(w http.ResponseWriter, r *http.Request,
	apply func(ctx context.Context, id uuid.UUID) (*models.Order, error)) {
	id, err := uuid.Parse(chi.URLParam(r, "orderID"))
	if err != nil {
		http.Error(w, "bad order id", http.StatusBadRequest)
		return
	}

	order, err := apply(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, models.ErrDataNotFound):
			http.Error(w, "order not found", http.StatusNotFound)
		case errors.Is(err, models.ErrCancelReasonMissing):
			http.Error(w, "cancel reason required", http.StatusBadRequest)
		case errors.Is(err, models.ErrInvalidTransition),
			errors.Is(err, models.ErrOrderTerminal),
			errors.Is(err, models.ErrPaymentNotVerified):
			http.Error(w, "transition not allowed", http.StatusConflict)
		default:
			http.Error(w, "internal error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(toOrderResponse(order, true))
}

// MarkPaid confirms the buyer's payment
// 200 — success;
// 400 — malformed order id;
// 404 — order not found;
// 409 — transition not allowed;
// 500 — internal server error.
func (ah *AdminHandler) MarkPaid() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ah.transition(w, r, ah.orders.MarkPaid)
	}
}

// RejectPayment refuses the submitted payment proof
// 200 — success;
// 400 — malformed order id;
// 404 — order not found;
// 409 — transition not allowed;
// 500 — internal server error.
func (ah *AdminHandler) RejectPayment() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ah.transition(w, r, ah.orders.RejectPayment)
	}
}

type dispatchRequest struct {
	TrackingNumber string `json:"trackingNumber"`
}

// Dispatch ships the order. A prepaid order must be paid first; a
// cash on delivery order ships regardless of payment.
// 200 — success;
// 400 — malformed request;
// 404 — order not found;
// 409 — transition not allowed;
// 500 — internal server error.
func (ah *AdminHandler) Dispatch() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req dispatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		ah.transition(w, r, func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return ah.orders.Dispatch(ctx, id, req.TrackingNumber)
		})
	}
}

// MarkDelivered completes the order
// 200 — success;
// 400 — malformed order id;
// 404 — order not found;
// 409 — transition not allowed;
// 500 — internal server error.
func (ah *AdminHandler) MarkDelivered() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ah.transition(w, r, ah.orders.MarkDelivered)
	}
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel aborts the order. The reason is required and is shown to the
// buyer.
// 200 — success;
// 400 — malformed request or missing reason;
// 404 — order not found;
// 409 — transition not allowed;
// 500 — internal server error.
func (ah *AdminHandler) Cancel() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req cancelRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		ah.transition(w, r, func(ctx context.Context, id uuid.UUID) (*models.Order, error) {
			return ah.orders.Cancel(ctx, id, req.Reason)
		})
	}
}

type accountStatusRequest struct {
	Status string `json:"status"`
}

// SetAccountStatus approves or rejects a buyer account
// 204 — success;
// 400 — malformed request or unknown status;
// 404 — user not found;
// 500 — internal server error.
func (ah *AdminHandler) SetAccountStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			http.Error(w, "bad user id", http.StatusBadRequest)
			return
		}

		var req accountStatusRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		if req.Status != models.AccountStatusApproved && req.Status != models.AccountStatusRejected {
			http.Error(w, "unknown account status", http.StatusBadRequest)
			return
		}

		if err := ah.accounts.SetAccountStatus(r.Context(), id, req.Status); err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "user not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
