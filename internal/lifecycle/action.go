package lifecycle

import (
	"github.com/mkraj/wholemart/internal/models"
	"github.com/shopspring/decimal"
)

// customer actions
const (
	ActionNone           = ""
	ActionReorder        = "reorder"
	ActionPreparePayment = "prepare_payment"
	ActionTrack          = "track"
	ActionWait           = "wait"
	ActionUploadProof    = "upload_proof"
)

// NextAction tells the buyer what to do next for an order.
type NextAction struct {
	Action  string           `json:"action"`
	Message string           `json:"message"`
	Urgent  bool             `json:"urgent,omitempty"`
	Amount  *decimal.Decimal `json:"amount,omitempty"`
}

// NextCustomerAction derives the buyer's next step. Total over the
// status enum: an unmatched combination yields an empty action, never
// a failure. Precedence: terminal states, then DISPATCHED, PAID and
// finally the method-dependent PENDING_PAYMENT split.
func NextCustomerAction(order *models.Order) NextAction {
	cod := IsCashOnDelivery(order.PaymentMethod)

	switch order.Status {
	case models.OrderStatusCancelled:
		return NextAction{Action: ActionNone, Message: "Order has been cancelled"}

	case models.OrderStatusDelivered:
		return NextAction{Action: ActionReorder, Message: "Order completed. Want to order again?"}

	case models.OrderStatusDispatched:
		if cod {
			amount := order.Total
			return NextAction{
				Action:  ActionPreparePayment,
				Message: "Keep exact amount ready for delivery",
				Amount:  &amount,
			}
		}
		return NextAction{Action: ActionTrack, Message: "Track your order delivery"}

	case models.OrderStatusPaid:
		return NextAction{Action: ActionWait, Message: "Order is being prepared for shipment"}

	case models.OrderStatusPendingPayment:
		if cod {
			return NextAction{Action: ActionWait, Message: "Order confirmed. We will dispatch soon"}
		}
		if order.PaymentProofURL == nil || *order.PaymentProofURL == "" {
			return NextAction{
				Action:  ActionUploadProof,
				Message: "Upload payment proof to proceed",
				Urgent:  true,
			}
		}
		return NextAction{Action: ActionWait, Message: "Payment proof uploaded. Awaiting verification"}
	}

	return NextAction{Action: ActionNone}
}

// progress weights per method class. Presentation values, but they
// must stay monotonic along each method's canonical progression.
var (
	codProgress = map[string]int{
		models.OrderStatusPendingPayment: 40,
		models.OrderStatusPaid:           40,
		models.OrderStatusDispatched:     70,
		models.OrderStatusDelivered:      100,
	}
	prepaidProgress = map[string]int{
		models.OrderStatusPendingPayment: 20, // 30 once proof is uploaded
		models.OrderStatusPaid:           50,
		models.OrderStatusDispatched:     75,
		models.OrderStatusDelivered:      100,
	}
)

// ProgressPercent maps an order to a completion percentage in
// [0,100]. CANCELLED is 0, DELIVERED is 100, unknown statuses fall
// back to the just-placed weight.
func ProgressPercent(order *models.Order) int {
	switch order.Status {
	case models.OrderStatusCancelled:
		return 0
	case models.OrderStatusDelivered:
		return 100
	}

	if IsCashOnDelivery(order.PaymentMethod) {
		if p, ok := codProgress[order.Status]; ok {
			return p
		}
		return 20
	}

	p, ok := prepaidProgress[order.Status]
	if !ok {
		return 20
	}
	if order.Status == models.OrderStatusPendingPayment &&
		order.PaymentProofURL != nil && *order.PaymentProofURL != "" {
		return 30
	}
	return p
}
