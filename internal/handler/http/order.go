package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/lifecycle"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/shopspring/decimal"
)

type OrderService interface {
	// Place creates an order for the buyer
	Place(ctx context.Context, userID uuid.UUID, method string, items []models.OrderItem) (*models.Order, error)
	// GetOrder returns an order, restricted to its owner unless admin
	GetOrder(ctx context.Context, id uuid.UUID, requester *models.TokenPayload) (*models.Order, error)
	// ListUserOrders returns list of user orders
	ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// UploadPaymentProof records the buyer's payment evidence
	UploadPaymentProof(ctx context.Context, id uuid.UUID, requester *models.TokenPayload, proofURL string) (*models.Order, error)
}

// OrderHandler represents HTTP handler for order-related requests
type OrderHandler struct {
	svc OrderService
}

// NewOrderHandler creates new OrderHandler instance
func NewOrderHandler(svc OrderService) *OrderHandler {
	return &OrderHandler{svc: svc}
}

type orderItemRequest struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

type placeOrderRequest struct {
	PaymentMethod string             `json:"paymentMethod"`
	Items         []orderItemRequest `json:"items"`
}

type orderItemResponse struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unitPrice"`
}

// orderResponse is the UI-ready rendering of an order: the raw
// snapshot plus everything the lifecycle engine derives from it
type orderResponse struct {
	ID                string               `json:"id"`
	OrderNumber       string               `json:"orderNumber"`
	Status            string               `json:"status"`
	PaymentMethod     string               `json:"paymentMethod"`
	PaymentMethodName string               `json:"paymentMethodName"`
	PaymentStatus     string               `json:"paymentStatus"`
	PaymentProofURL   *string              `json:"paymentProofUrl,omitempty"`
	TrackingNumber    *string              `json:"trackingNumber,omitempty"`
	CancelReason      *string              `json:"cancelReason,omitempty"`
	Items             []orderItemResponse  `json:"items,omitempty"`
	Total             string               `json:"total"`
	TotalDisplay      string               `json:"totalDisplay"`
	CreatedAt         string               `json:"createdAt"`
	StatusInfo        lifecycle.StatusInfo `json:"statusInfo"`
	PaymentInfo       lifecycle.StatusInfo `json:"paymentInfo"`
	Timeline          []lifecycle.Step     `json:"timeline"`
	Progress          int                  `json:"progress"`
	NextAction        lifecycle.NextAction `json:"nextAction"`
	EstimatedDelivery string               `json:"estimatedDelivery"`
}

func toOrderResponse(order *models.Order, withItems bool) orderResponse {
	resp := orderResponse{
		ID:                order.ID.String(),
		OrderNumber:       order.OrderNumber,
		Status:            order.Status,
		PaymentMethod:     order.PaymentMethod,
		PaymentMethodName: lifecycle.MethodName(order.PaymentMethod),
		PaymentStatus:     order.PaymentStatus,
		PaymentProofURL:   order.PaymentProofURL,
		TrackingNumber:    order.TrackingNumber,
		CancelReason:      order.CancelReason,
		Total:             order.Total.StringFixed(2),
		TotalDisplay:      lifecycle.FormatAmount(order.Total),
		CreatedAt:         order.CreatedAt.Format(time.RFC3339),
		StatusInfo:        lifecycle.DescribeStatus(order.Status, order.PaymentMethod),
		PaymentInfo:       lifecycle.DescribePaymentStatus(order.PaymentStatus, order.PaymentMethod),
		Timeline:          lifecycle.BuildTimeline(order),
		Progress:          lifecycle.ProgressPercent(order),
		NextAction:        lifecycle.NextCustomerAction(order),
		EstimatedDelivery: lifecycle.EstimatedDelivery(order),
	}
	if withItems {
		for _, item := range order.Items {
			resp.Items = append(resp.Items, orderItemResponse{
				ProductID: item.ProductID.String(),
				Name:      item.Name,
				Quantity:  item.Quantity,
				UnitPrice: item.UnitPrice.StringFixed(2),
			})
		}
	}
	return resp
}

// PlaceOrder creates an order for the authenticated buyer
// 201 — order created;
// 400 — malformed request;
// 401 — user is not authenticated;
// 500 — internal server error.
func (oh *OrderHandler) PlaceOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		var req placeOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		items := make([]models.OrderItem, 0, len(req.Items))
		for _, it := range req.Items {
			productID, err := uuid.Parse(it.ProductID)
			if err != nil {
				http.Error(w, "bad product id", http.StatusBadRequest)
				return
			}
			price, err := decimal.NewFromString(it.UnitPrice)
			if err != nil || it.Quantity <= 0 {
				http.Error(w, "bad order item", http.StatusBadRequest)
				return
			}
			items = append(items, models.OrderItem{
				ProductID: productID,
				Name:      it.Name,
				Quantity:  it.Quantity,
				UnitPrice: price,
			})
		}

		order, err := oh.svc.Place(r.Context(), payload.UserID, req.PaymentMethod, items)
		if err != nil {
			if errors.Is(err, models.ErrEmptyOrder) {
				http.Error(w, "order has no items", http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(toOrderResponse(order, true))
	}
}

// ListUserOrders returns the buyer's orders, newest first
// 200 — success;
// 401 — user is not authenticated;
// 500 — internal server error.
func (oh *OrderHandler) ListUserOrders() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		orders, err := oh.svc.ListUserOrders(r.Context(), payload.UserID)
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

// GetOrder returns one order with its full lifecycle rendering
// 200 — success;
// 400 — malformed order id;
// 404 — order not found;
// 500 — internal server error.
func (oh *OrderHandler) GetOrder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			http.Error(w, "bad order id", http.StatusBadRequest)
			return
		}

		order, err := oh.svc.GetOrder(r.Context(), id, payload)
		if err != nil {
			if errors.Is(err, models.ErrDataNotFound) {
				http.Error(w, "order not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toOrderResponse(order, true))
	}
}

type uploadProofRequest struct {
	ProofURL string `json:"proofUrl"`
}

// UploadPaymentProof attaches payment evidence to a prepaid order
// 200 — success;
// 400 — malformed request;
// 404 — order not found;
// 409 — order does not accept payment proof;
// 500 — internal server error.
func (oh *OrderHandler) UploadPaymentProof() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, ok := getAuthPayload(r.Context(), authPayloadKey)
		if !ok {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		id, err := uuid.Parse(chi.URLParam(r, "orderID"))
		if err != nil {
			http.Error(w, "bad order id", http.StatusBadRequest)
			return
		}

		var req uploadProofRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProofURL == "" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		order, err := oh.svc.UploadPaymentProof(r.Context(), id, payload, req.ProofURL)
		if err != nil {
			switch {
			case errors.Is(err, models.ErrDataNotFound):
				http.Error(w, "order not found", http.StatusNotFound)
			case errors.Is(err, models.ErrProofNotApplicable), errors.Is(err, models.ErrOrderTerminal):
				http.Error(w, "proof not accepted", http.StatusConflict)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(toOrderResponse(order, true))
	}
}
