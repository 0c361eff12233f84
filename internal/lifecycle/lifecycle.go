// Package lifecycle derives UI-ready facts from an order snapshot:
// payment-method-aware status descriptions, timeline steps, the next
// customer action and a progress percentage. Everything here is pure
// and total over the declared enums; unknown values coming from an
// evolving server contract fall back to the earliest in-progress
// rendering instead of failing.
package lifecycle

import (
	"github.com/mkraj/wholemart/internal/models"
)

// IsCashOnDelivery reports whether payment is collected at delivery.
func IsCashOnDelivery(method string) bool {
	return method == models.PaymentMethodCashOnDelivery
}

// IsPrepaid reports whether the buyer pays up front (bank transfer or
// cheque, verified manually by staff).
func IsPrepaid(method string) bool {
	return method == models.PaymentMethodBankTransfer ||
		method == models.PaymentMethodCheque
}

// MethodName returns payment method display name
func MethodName(method string) string {
	switch method {
	case models.PaymentMethodCashOnDelivery:
		return "Cash on Delivery"
	case models.PaymentMethodBankTransfer:
		return "Bank Transfer"
	case models.PaymentMethodCheque:
		return "Cheque Payment"
	}
	return method
}

// MethodIcon returns payment method icon
func MethodIcon(method string) string {
	switch method {
	case models.PaymentMethodCashOnDelivery:
		return "💵"
	case models.PaymentMethodBankTransfer:
		return "🏦"
	case models.PaymentMethodCheque:
		return "📝"
	}
	return "💳"
}

// StatusInfo is the rendering of an order status for one payment
// method class.
type StatusInfo struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	ColorClass  string `json:"colorClass"`
	Icon        string `json:"icon"`
}

// statusEntry holds both renderings of a status. The same raw status
// reads differently depending on the method class: PENDING_PAYMENT is
// "Order Confirmed" for cash on delivery (nothing for the buyer to do)
// but "Pending Payment" for prepaid (proof upload required).
type statusEntry struct {
	cod     StatusInfo
	prepaid StatusInfo
}

var statusTable = map[string]statusEntry{
	models.OrderStatusPendingPayment: {
		cod: StatusInfo{
			Label:       "Order Confirmed",
			Description: "Order confirmed and ready for processing",
			ColorClass:  "bg-blue-100 text-blue-800 border-blue-300",
			Icon:        "✓",
		},
		prepaid: StatusInfo{
			Label:       "Pending Payment",
			Description: "Awaiting payment confirmation",
			ColorClass:  "bg-yellow-100 text-yellow-800 border-yellow-300",
			Icon:        "⏳",
		},
	},
	models.OrderStatusPaid: {
		cod: StatusInfo{
			Label:       "Processing",
			Description: "Order being prepared for shipment",
			ColorClass:  "bg-green-100 text-green-800 border-green-300",
			Icon:        "📦",
		},
		prepaid: StatusInfo{
			Label:       "Payment Confirmed",
			Description: "Payment verified, preparing for shipment",
			ColorClass:  "bg-green-100 text-green-800 border-green-300",
			Icon:        "💳",
		},
	},
	models.OrderStatusDispatched: {
		cod: StatusInfo{
			Label:       "Dispatched",
			Description: "On the way - Payment due on delivery",
			ColorClass:  "bg-purple-100 text-purple-800 border-purple-300",
			Icon:        "🚚",
		},
		prepaid: StatusInfo{
			Label:       "Dispatched",
			Description: "Order shipped and on its way",
			ColorClass:  "bg-purple-100 text-purple-800 border-purple-300",
			Icon:        "🚚",
		},
	},
	models.OrderStatusDelivered: {
		cod: StatusInfo{
			Label:       "Delivered",
			Description: "Order delivered successfully",
			ColorClass:  "bg-green-100 text-green-800 border-green-300",
			Icon:        "✓",
		},
		prepaid: StatusInfo{
			Label:       "Delivered",
			Description: "Order delivered successfully",
			ColorClass:  "bg-green-100 text-green-800 border-green-300",
			Icon:        "✓",
		},
	},
	models.OrderStatusCancelled: {
		cod: StatusInfo{
			Label:       "Cancelled",
			Description: "Order has been cancelled",
			ColorClass:  "bg-red-100 text-red-800 border-red-300",
			Icon:        "✕",
		},
		prepaid: StatusInfo{
			Label:       "Cancelled",
			Description: "Order has been cancelled",
			ColorClass:  "bg-red-100 text-red-800 border-red-300",
			Icon:        "✕",
		},
	},
}

// DescribeStatus maps a raw order status to its method-aware
// rendering. Unknown statuses render as PENDING_PAYMENT.
func DescribeStatus(status, method string) StatusInfo {
	entry, ok := statusTable[status]
	if !ok {
		entry = statusTable[models.OrderStatusPendingPayment]
	}
	if IsCashOnDelivery(method) {
		return entry.cod
	}
	return entry.prepaid
}

var codPaymentTable = map[string]StatusInfo{
	models.PaymentStatusPending: {
		Label:       "Pay on Delivery",
		Description: "Payment will be collected upon delivery",
		ColorClass:  "bg-orange-100 text-orange-800 border-orange-300",
		Icon:        "💵",
	},
	models.PaymentStatusPaid: {
		Label:       "Payment Collected",
		Description: "Payment received on delivery",
		ColorClass:  "bg-green-100 text-green-800 border-green-300",
		Icon:        "✓",
	},
	models.PaymentStatusFailed: {
		Label:       "Payment Failed",
		Description: "Payment not collected",
		ColorClass:  "bg-red-100 text-red-800 border-red-300",
		Icon:        "✕",
	},
}

var prepaidPaymentTable = map[string]StatusInfo{
	models.PaymentStatusPending: {
		Label:       "Payment Pending",
		Description: "Awaiting payment proof upload",
		ColorClass:  "bg-yellow-100 text-yellow-800 border-yellow-300",
		Icon:        "⏳",
	},
	models.PaymentStatusPaid: {
		Label:       "Payment Verified",
		Description: "Payment confirmed by admin",
		ColorClass:  "bg-green-100 text-green-800 border-green-300",
		Icon:        "✓",
	},
	models.PaymentStatusFailed: {
		Label:       "Payment Verification Failed",
		Description: "Payment proof rejected",
		ColorClass:  "bg-red-100 text-red-800 border-red-300",
		Icon:        "✕",
	},
}

// DescribePaymentStatus maps the payment status axis to its badge.
// The same PENDING means "pay at the door" for cash on delivery but
// "upload proof" for prepaid. Unknown values render as PENDING.
func DescribePaymentStatus(paymentStatus, method string) StatusInfo {
	table := prepaidPaymentTable
	if IsCashOnDelivery(method) {
		table = codPaymentTable
	}
	info, ok := table[paymentStatus]
	if !ok {
		return table[models.PaymentStatusPending]
	}
	return info
}
