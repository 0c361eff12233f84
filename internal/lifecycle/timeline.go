package lifecycle

import (
	"time"

	"github.com/mkraj/wholemart/internal/models"
)

// TrackingInfo is attached to the dispatched step once a tracking
// number is known.
type TrackingInfo struct {
	TrackingNumber string `json:"trackingNumber"`
}

// Step is one entry of the order timeline.
type Step struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	Icon        string        `json:"icon"`
	Description string        `json:"description"`
	Completed   bool          `json:"completed"`
	Current     bool          `json:"current"`
	Timestamp   *time.Time    `json:"timestamp,omitempty"`
	Highlight   bool          `json:"highlight,omitempty"`
	Warning     bool          `json:"warning,omitempty"`
	Tracking    *TrackingInfo `json:"tracking,omitempty"`
}

// completion sets: a step is completed iff the order status is at or
// after it in the canonical progression
var (
	fromPlaced     = []string{models.OrderStatusPendingPayment, models.OrderStatusPaid, models.OrderStatusDispatched, models.OrderStatusDelivered}
	fromPaid       = []string{models.OrderStatusPaid, models.OrderStatusDispatched, models.OrderStatusDelivered}
	fromDispatched = []string{models.OrderStatusDispatched, models.OrderStatusDelivered}
	delivered      = []string{models.OrderStatusDelivered}
)

type stepSpec struct {
	id            string
	label         string
	icon          string
	description   string
	completedWhen []string
}

var codSteps = []stepSpec{
	{"placed", "Order Placed", "📝", "Your order has been received", fromPlaced},
	{"confirmed", "Order Confirmed", "✓", "Order verified and ready for processing", fromPaid},
	{"processing", "Processing", "📦", "Preparing your order for shipment", fromDispatched},
	{"dispatched", "Dispatched", "🚚", "Order is on its way", fromDispatched},
	{"payment_delivery", "Payment on Delivery", "💵", "Pay when you receive your order", delivered},
	{"delivered", "Delivered", "🎉", "Order successfully delivered", delivered},
}

var prepaidSteps = []stepSpec{
	{"placed", "Order Placed", "📝", "Your order has been received", fromPlaced},
	{"payment_pending", "Payment Pending", "⏳", "Awaiting payment proof upload", fromPaid},
	{"payment_confirmed", "Payment Confirmed", "💳", "Payment verified successfully", fromPaid},
	{"processing", "Processing", "📦", "Preparing your order for shipment", fromDispatched},
	{"dispatched", "Dispatched", "🚚", "Order is on its way", fromDispatched},
	{"delivered", "Delivered", "🎉", "Order successfully delivered", delivered},
}

func statusIn(status string, set []string) bool {
	for _, s := range set {
		if s == status {
			return true
		}
	}
	return false
}

// stepTimestamp picks the order field carrying the time a step
// happened, nil when the step has no own timestamp.
func stepTimestamp(id string, order *models.Order) *time.Time {
	switch id {
	case "placed":
		t := order.CreatedAt
		return &t
	case "confirmed":
		if order.PaymentStatus == models.PaymentStatusPaid {
			return order.PaymentReceivedAt
		}
		return nil
	case "payment_confirmed":
		return order.PaymentReceivedAt
	case "dispatched":
		return order.DispatchedAt
	case "payment_delivery", "delivered":
		return order.DeliveredAt
	}
	return nil
}

// BuildTimeline produces the method-dependent step sequence for an
// order. A CANCELLED order is a terminal banner outside the steps, so
// no step of a cancelled order is completed or current. Exactly one
// step is current for a non-terminal order: the last completed one.
func BuildTimeline(order *models.Order) []Step {
	specs := prepaidSteps
	if IsCashOnDelivery(order.PaymentMethod) {
		specs = codSteps
	}

	steps := make([]Step, 0, len(specs))
	for _, spec := range specs {
		step := Step{
			ID:          spec.id,
			Label:       spec.label,
			Icon:        spec.icon,
			Description: spec.description,
			Completed:   statusIn(order.Status, spec.completedWhen),
			Timestamp:   stepTimestamp(spec.id, order),
		}
		switch spec.id {
		case "payment_delivery":
			step.Highlight = true
		case "payment_pending":
			step.Warning = order.Status == models.OrderStatusPendingPayment
		case "dispatched":
			if order.TrackingNumber != nil && *order.TrackingNumber != "" {
				step.Tracking = &TrackingInfo{TrackingNumber: *order.TrackingNumber}
			}
		}
		steps = append(steps, step)
	}

	// current = last completed step, only while a later step is still
	// pending; a fully delivered timeline has no current step
	for i := range steps {
		if steps[i].Completed && i+1 < len(steps) && !steps[i+1].Completed {
			steps[i].Current = true
		}
	}

	return steps
}
