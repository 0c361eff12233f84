package lifecycle

import (
	"fmt"
	"strings"
	"time"

	"github.com/mkraj/wholemart/internal/models"
	"github.com/shopspring/decimal"
)

// FormatAmount renders a money amount with Indian digit grouping,
// e.g. 1234567.50 -> "₹12,34,567.50". Fractional part is kept only
// when non-zero.
func FormatAmount(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	// round to paise first so a carry past the integer boundary is
	// reflected in the digit grouping below
	abs := amount.Abs().Round(2)

	whole := abs.Truncate(0)
	frac := abs.Sub(whole)

	digits := whole.String()

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	b.WriteString("₹")

	// last three digits, then groups of two
	if len(digits) <= 3 {
		b.WriteString(digits)
	} else {
		head := digits[:len(digits)-3]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		groups = append([]string{head}, groups...)
		b.WriteString(strings.Join(groups, ","))
		b.WriteByte(',')
		b.WriteString(digits[len(digits)-3:])
	}

	if !frac.IsZero() {
		b.WriteString(abs.StringFixed(2)[len(digits):])
	}

	return b.String()
}

// FormatDate renders a timestamp for display, "N/A" when absent.
func FormatDate(t *time.Time) string {
	if t == nil {
		return "N/A"
	}
	return t.Format("2 Jan 2006, 3:04 PM")
}

// EstimatedDelivery returns the delivery window shown to the buyer:
// the actual date once delivered, a 3-5 day window from dispatch
// while in transit, a placeholder before that.
func EstimatedDelivery(order *models.Order) string {
	if order.Status == models.OrderStatusDelivered {
		return FormatDate(order.DeliveredAt)
	}

	if order.Status == models.OrderStatusDispatched && order.DispatchedAt != nil {
		min := order.DispatchedAt.AddDate(0, 0, 3)
		max := order.DispatchedAt.AddDate(0, 0, 5)
		return fmt.Sprintf("%s - %s", min.Format("2 Jan"), max.Format("2 Jan 2006"))
	}

	return "Will be updated after dispatch"
}
