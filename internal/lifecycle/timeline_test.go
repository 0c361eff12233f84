package lifecycle

import (
	"testing"
	"time"

	"github.com/mkraj/wholemart/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func orderWith(status, method string) *models.Order {
	return &models.Order{
		Status:        status,
		PaymentMethod: method,
		PaymentStatus: models.PaymentStatusPending,
		CreatedAt:     time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestBuildTimeline_StepSequences(t *testing.T) {
	cod := BuildTimeline(orderWith(models.OrderStatusPendingPayment, models.PaymentMethodCashOnDelivery))
	prepaid := BuildTimeline(orderWith(models.OrderStatusPendingPayment, models.PaymentMethodBankTransfer))

	codIDs := make([]string, 0, len(cod))
	for _, s := range cod {
		codIDs = append(codIDs, s.ID)
	}
	prepaidIDs := make([]string, 0, len(prepaid))
	for _, s := range prepaid {
		prepaidIDs = append(prepaidIDs, s.ID)
	}

	assert.Equal(t, []string{"placed", "confirmed", "processing", "dispatched", "payment_delivery", "delivered"}, codIDs)
	assert.Equal(t, []string{"placed", "payment_pending", "payment_confirmed", "processing", "dispatched", "delivered"}, prepaidIDs)
}

func TestBuildTimeline_ExactlyOneCurrentWhileInProgress(t *testing.T) {
	inProgress := []string{
		models.OrderStatusPendingPayment,
		models.OrderStatusPaid,
		models.OrderStatusDispatched,
	}

	for _, status := range inProgress {
		for _, method := range allMethods {
			steps := BuildTimeline(orderWith(status, method))
			current := 0
			for _, s := range steps {
				if s.Current {
					current++
					assert.True(t, s.Completed, "current step must be completed")
				}
			}
			assert.Equal(t, 1, current, "status=%s method=%s", status, method)
		}
	}
}

func TestBuildTimeline_TerminalStates(t *testing.T) {
	for _, method := range allMethods {
		t.Run(method, func(t *testing.T) {
			done := BuildTimeline(orderWith(models.OrderStatusDelivered, method))
			for _, s := range done {
				assert.True(t, s.Completed, "step %s", s.ID)
				assert.False(t, s.Current, "delivered timeline has no pending current step")
			}

			cancelled := BuildTimeline(orderWith(models.OrderStatusCancelled, method))
			for _, s := range cancelled {
				assert.False(t, s.Completed, "cancelled renders outside the steps")
				assert.False(t, s.Current)
			}
		})
	}
}

func TestBuildTimeline_Timestamps(t *testing.T) {
	dispatched := time.Date(2026, 3, 12, 9, 30, 0, 0, time.UTC)
	paidAt := time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC)
	tracking := "AWB123456"

	order := orderWith(models.OrderStatusDispatched, models.PaymentMethodBankTransfer)
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentReceivedAt = &paidAt
	order.DispatchedAt = &dispatched
	order.TrackingNumber = &tracking

	steps := BuildTimeline(order)
	byID := map[string]Step{}
	for _, s := range steps {
		byID[s.ID] = s
	}

	require.NotNil(t, byID["placed"].Timestamp)
	assert.Equal(t, order.CreatedAt, *byID["placed"].Timestamp)

	require.NotNil(t, byID["payment_confirmed"].Timestamp)
	assert.Equal(t, paidAt, *byID["payment_confirmed"].Timestamp)

	require.NotNil(t, byID["dispatched"].Timestamp)
	assert.Equal(t, dispatched, *byID["dispatched"].Timestamp)
	require.NotNil(t, byID["dispatched"].Tracking)
	assert.Equal(t, tracking, byID["dispatched"].Tracking.TrackingNumber)

	assert.Nil(t, byID["delivered"].Timestamp)
}

func TestBuildTimeline_PaymentPendingWarning(t *testing.T) {
	pending := BuildTimeline(orderWith(models.OrderStatusPendingPayment, models.PaymentMethodCheque))
	paid := BuildTimeline(orderWith(models.OrderStatusPaid, models.PaymentMethodCheque))

	for _, s := range pending {
		if s.ID == "payment_pending" {
			assert.True(t, s.Warning)
		}
	}
	for _, s := range paid {
		if s.ID == "payment_pending" {
			assert.False(t, s.Warning)
		}
	}
}
