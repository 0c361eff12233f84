package worker

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	RemindForOrder(ctx context.Context, orderCh <-chan uuid.UUID)
	GetOrdersForReminder(ctx context.Context, maxAge time.Duration, orderCh chan<- uuid.UUID) error
}

// ReminderProcessor periodically sweeps prepaid orders stuck without
// payment proof and sends each buyer one reminder
type ReminderProcessor struct {
	svc      OrderService
	interval time.Duration
	maxAge   time.Duration
	logger   *zap.Logger
}

// NewReminderProcessor creates new reminder processor
func NewReminderProcessor(svc OrderService, interval, maxAge time.Duration, logger *zap.Logger) *ReminderProcessor {
	return &ReminderProcessor{
		svc:      svc,
		interval: interval,
		maxAge:   maxAge,
		logger:   logger,
	}
}

// ProcessReminders runs until the context is cancelled
func (rp *ReminderProcessor) ProcessReminders(ctx context.Context) {
	orders := make(chan uuid.UUID, 10)

	go rp.svc.RemindForOrder(ctx, orders)

	ticker := time.NewTicker(rp.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			rp.logger.Debug("reminder processor is done")
			return
		case <-ticker.C:
			if err := rp.svc.GetOrdersForReminder(ctx, rp.maxAge, orders); err != nil {
				rp.logger.Error("error getting orders for reminder", zap.Error(err))
			}
		}
	}
}
