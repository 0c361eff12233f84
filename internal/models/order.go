package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// order status
const (
	OrderStatusPendingPayment = "PENDING_PAYMENT"
	OrderStatusPaid           = "PAID"
	OrderStatusDispatched     = "DISPATCHED"
	OrderStatusDelivered      = "DELIVERED"
	OrderStatusCancelled      = "CANCELLED"
)

// payment method, fixed at order creation
const (
	PaymentMethodCashOnDelivery = "CASH_ON_DELIVERY"
	PaymentMethodBankTransfer   = "BANK_TRANSFER"
	PaymentMethodCheque         = "CHEQUE"
)

// payment status, independent axis from order status
const (
	PaymentStatusPending = "PENDING"
	PaymentStatusPaid    = "PAID"
	PaymentStatusFailed  = "FAILED"
)

// OrderItem is order line item, immutable after order placement
type OrderItem struct {
	ProductID uuid.UUID
	Name      string
	Quantity  int
	UnitPrice decimal.Decimal
}

// Order is order entity. The client holds a read-only snapshot,
// status transitions are applied server-side only.
type Order struct {
	ID                uuid.UUID
	OrderNumber       string
	UserID            uuid.UUID
	Status            string
	PaymentMethod     string
	PaymentStatus     string
	PaymentProofURL   *string
	TrackingNumber    *string
	CancelReason      *string
	Items             []OrderItem
	Total             decimal.Decimal
	CreatedAt         time.Time
	PaymentReceivedAt *time.Time
	DispatchedAt      *time.Time
	DeliveredAt       *time.Time
	CancelledAt       *time.Time
	ReminderSentAt    *time.Time
}

// IsTerminal reports whether the order reached a terminal state.
// At most one of DeliveredAt/CancelledAt is ever set.
func (o *Order) IsTerminal() bool {
	return o.DeliveredAt != nil || o.CancelledAt != nil
}

// statusRank orders the canonical progression. CANCELLED is absorbing
// and has no rank.
var statusRank = map[string]int{
	OrderStatusPendingPayment: 0,
	OrderStatusPaid:           1,
	OrderStatusDispatched:     2,
	OrderStatusDelivered:      3,
}

// CanTransition reports whether moving from the current status to next
// respects monotonicity. CANCELLED is reachable from any non-terminal
// status and has no way out.
func (o *Order) CanTransition(next string) bool {
	if o.IsTerminal() {
		return false
	}
	if next == OrderStatusCancelled {
		return true
	}
	cur, ok := statusRank[o.Status]
	if !ok {
		return false
	}
	nxt, ok := statusRank[next]
	if !ok {
		return false
	}
	return nxt > cur
}
