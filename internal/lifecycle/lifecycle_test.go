package lifecycle

import (
	"strings"
	"testing"

	"github.com/mkraj/wholemart/internal/models"
	"github.com/stretchr/testify/assert"
)

var allMethods = []string{
	models.PaymentMethodCashOnDelivery,
	models.PaymentMethodBankTransfer,
	models.PaymentMethodCheque,
}

var allStatuses = []string{
	models.OrderStatusPendingPayment,
	models.OrderStatusPaid,
	models.OrderStatusDispatched,
	models.OrderStatusDelivered,
	models.OrderStatusCancelled,
}

func TestClassification_ExclusiveAndExhaustive(t *testing.T) {
	for _, method := range allMethods {
		cod := IsCashOnDelivery(method)
		prepaid := IsPrepaid(method)
		assert.NotEqual(t, cod, prepaid, "method %s must be exactly one class", method)
	}
}

func TestDescribeStatus_PendingPaymentLabels(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		wantPayment bool
	}{
		{
			name:        "cod_reads_as_confirmed",
			method:      models.PaymentMethodCashOnDelivery,
			wantPayment: false,
		},
		{
			name:        "bank_transfer_reads_as_pending_payment",
			method:      models.PaymentMethodBankTransfer,
			wantPayment: true,
		},
		{
			name:        "cheque_reads_as_pending_payment",
			method:      models.PaymentMethodCheque,
			wantPayment: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := DescribeStatus(models.OrderStatusPendingPayment, tt.method)
			mentionsPayment := strings.Contains(strings.ToLower(info.Label), "payment") ||
				strings.Contains(strings.ToLower(info.Label), "pending")
			assert.Equal(t, tt.wantPayment, mentionsPayment, "label %q", info.Label)
		})
	}
}

func TestDescribeStatus_MethodDependentLabels(t *testing.T) {
	paidCOD := DescribeStatus(models.OrderStatusPaid, models.PaymentMethodCashOnDelivery)
	paidPre := DescribeStatus(models.OrderStatusPaid, models.PaymentMethodBankTransfer)
	assert.Equal(t, "Processing", paidCOD.Label)
	assert.Equal(t, "Payment Confirmed", paidPre.Label)

	// dispatched label is method-invariant, description is not
	dCOD := DescribeStatus(models.OrderStatusDispatched, models.PaymentMethodCashOnDelivery)
	dPre := DescribeStatus(models.OrderStatusDispatched, models.PaymentMethodCheque)
	assert.Equal(t, dCOD.Label, dPre.Label)
	assert.NotEqual(t, dCOD.Description, dPre.Description)
	assert.Contains(t, dCOD.Description, "delivery")
}

func TestDescribeStatus_UnknownStatusFallsBack(t *testing.T) {
	got := DescribeStatus("SOMETHING_NEW", models.PaymentMethodBankTransfer)
	want := DescribeStatus(models.OrderStatusPendingPayment, models.PaymentMethodBankTransfer)
	assert.Equal(t, want, got)
}

func TestDescribePaymentStatus(t *testing.T) {
	tests := []struct {
		name          string
		paymentStatus string
		method        string
		wantLabel     string
	}{
		{"cod_pending", models.PaymentStatusPending, models.PaymentMethodCashOnDelivery, "Pay on Delivery"},
		{"cod_paid", models.PaymentStatusPaid, models.PaymentMethodCashOnDelivery, "Payment Collected"},
		{"prepaid_pending", models.PaymentStatusPending, models.PaymentMethodBankTransfer, "Payment Pending"},
		{"prepaid_failed", models.PaymentStatusFailed, models.PaymentMethodCheque, "Payment Verification Failed"},
		{"unknown_falls_back_to_pending", "???", models.PaymentMethodBankTransfer, "Payment Pending"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DescribePaymentStatus(tt.paymentStatus, tt.method)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestMethodName(t *testing.T) {
	assert.Equal(t, "Cash on Delivery", MethodName(models.PaymentMethodCashOnDelivery))
	assert.Equal(t, "Cheque Payment", MethodName(models.PaymentMethodCheque))
	// unknown methods pass through verbatim
	assert.Equal(t, "UPI", MethodName("UPI"))
}
