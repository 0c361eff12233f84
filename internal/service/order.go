package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/mkraj/wholemart/internal/lifecycle"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// OrderRepository is interface for interacting with order-related data
type OrderRepository interface {
	// CreateOrder inserts new order with its items
	CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error)
	// GetOrderByID returns order with items
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	// GetOrdersByUserID gets user orders
	GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	// GetAllOrders returns every order for the admin console
	GetAllOrders(ctx context.Context) ([]models.Order, error)
	// UpdateOrder persists mutable order fields
	UpdateOrder(ctx context.Context, order *models.Order) error
	// GetStaleUnpaidOrders returns prepaid orders awaiting proof past the cutoff
	GetStaleUnpaidOrders(ctx context.Context, cutoff time.Time) ([]models.Order, error)
}

// Notifier delivers a notification to a user
type Notifier interface {
	Notify(ctx context.Context, n *models.Notification) error
}

// OrderService owns the server-authoritative order transitions. Every
// state change emits a notification for the buyer.
type OrderService struct {
	repo     OrderRepository
	notifier Notifier
	logger   *zap.Logger
}

// NewOrderService creates new OrderService instance
func NewOrderService(repo OrderRepository, notifier Notifier, logger *zap.Logger) *OrderService {
	return &OrderService{
		repo:     repo,
		notifier: notifier,
		logger:   logger,
	}
}

// orderNumberAttempts bounds redraws when a generated order number
// collides with an existing one
const orderNumberAttempts = 5

// newOrderNumber builds the human-facing order number, immutable once
// assigned. The daily sequence is a random draw, so a collision is
// handled by drawing again at placement.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("WM-%s-%04d", now.Format("20060102"), rand.Intn(10000))
}

// Place creates an order in PENDING_PAYMENT with the payment method
// fixed for its lifetime
func (os *OrderService) Place(ctx context.Context, userID uuid.UUID, method string, items []models.OrderItem) (*models.Order, error) {
	if len(items) == 0 {
		return nil, models.ErrEmptyOrder
	}

	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	now := time.Now()
	order := &models.Order{
		ID:            uuid.New(),
		OrderNumber:   newOrderNumber(now),
		UserID:        userID,
		Status:        models.OrderStatusPendingPayment,
		PaymentMethod: method,
		PaymentStatus: models.PaymentStatusPending,
		Items:         items,
		Total:         total,
		CreatedAt:     now,
	}

	created, err := os.repo.CreateOrder(ctx, order)
	for attempt := 1; errors.Is(err, models.ErrConflictData) && attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = newOrderNumber(now)
		created, err = os.repo.CreateOrder(ctx, order)
	}
	if err != nil {
		return nil, err
	}
	order = created

	os.logger.Info("order placed",
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", method))
	return order, nil
}

// GetOrder returns an order, restricted to its owner unless admin
func (os *OrderService) GetOrder(ctx context.Context, id uuid.UUID, requester *models.TokenPayload) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if requester.Role != models.RoleAdmin && order.UserID != requester.UserID {
		return nil, models.ErrDataNotFound
	}
	return order, nil
}

// ListUserOrders returns list of user orders
func (os *OrderService) ListUserOrders(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return os.repo.GetOrdersByUserID(ctx, userID)
}

// ListAllOrders returns every order for the admin console
func (os *OrderService) ListAllOrders(ctx context.Context) ([]models.Order, error) {
	return os.repo.GetAllOrders(ctx)
}

// UploadPaymentProof records the buyer's payment evidence. Only
// prepaid orders carry proof, and only while non-terminal.
func (os *OrderService) UploadPaymentProof(ctx context.Context, id uuid.UUID, requester *models.TokenPayload, proofURL string) (*models.Order, error) {
	order, err := os.GetOrder(ctx, id, requester)
	if err != nil {
		return nil, err
	}
	if !lifecycle.IsPrepaid(order.PaymentMethod) {
		return nil, models.ErrProofNotApplicable
	}
	if order.IsTerminal() {
		return nil, models.ErrOrderTerminal
	}

	order.PaymentProofURL = &proofURL
	if err := os.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// MarkPaid confirms payment after manual verification by staff
func (os *OrderService) MarkPaid(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransition(models.OrderStatusPaid) {
		return nil, models.ErrInvalidTransition
	}

	now := time.Now()
	order.Status = models.OrderStatusPaid
	order.PaymentStatus = models.PaymentStatusPaid
	order.PaymentReceivedAt = &now

	if err := os.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	os.notify(ctx, order, models.NotificationTypePaymentConfirmation,
		models.NotificationPriorityHigh, "Payment confirmed",
		fmt.Sprintf("Payment for order %s has been verified", order.OrderNumber))
	return order, nil
}

// RejectPayment marks the submitted proof as not accepted. The order
// stays in PENDING_PAYMENT and the buyer must upload again.
func (os *OrderService) RejectPayment(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order.IsTerminal() {
		return nil, models.ErrOrderTerminal
	}
	if !lifecycle.IsPrepaid(order.PaymentMethod) {
		return nil, models.ErrProofNotApplicable
	}

	order.PaymentStatus = models.PaymentStatusFailed
	order.PaymentProofURL = nil

	if err := os.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	os.notify(ctx, order, models.NotificationTypePaymentRejected,
		models.NotificationPriorityUrgent, "Payment proof rejected",
		fmt.Sprintf("The payment proof for order %s was rejected, please upload again", order.OrderNumber))
	return order, nil
}

// Dispatch ships the order. Cash on delivery may dispatch while
// payment is still pending (collected at the door); prepaid must have
// verified payment first.
func (os *OrderService) Dispatch(ctx context.Context, id uuid.UUID, trackingNumber string) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransition(models.OrderStatusDispatched) {
		return nil, models.ErrInvalidTransition
	}
	if lifecycle.IsPrepaid(order.PaymentMethod) && order.PaymentStatus != models.PaymentStatusPaid {
		return nil, models.ErrPaymentNotVerified
	}

	now := time.Now()
	order.Status = models.OrderStatusDispatched
	order.DispatchedAt = &now
	if trackingNumber != "" {
		order.TrackingNumber = &trackingNumber
	}

	if err := os.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	message := fmt.Sprintf("Order %s is on its way", order.OrderNumber)
	if lifecycle.IsCashOnDelivery(order.PaymentMethod) {
		message = fmt.Sprintf("Order %s is on its way, payment is due on delivery", order.OrderNumber)
	}
	os.notify(ctx, order, models.NotificationTypeOrderStatusChange,
		models.NotificationPriorityHigh, "Order dispatched", message)
	return order, nil
}

// MarkDelivered completes the order. Cash on delivery payment is
// collected at the door, so delivery also settles the payment axis.
func (os *OrderService) MarkDelivered(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransition(models.OrderStatusDelivered) {
		return nil, models.ErrInvalidTransition
	}

	now := time.Now()
	order.Status = models.OrderStatusDelivered
	order.DeliveredAt = &now
	if lifecycle.IsCashOnDelivery(order.PaymentMethod) && order.PaymentStatus == models.PaymentStatusPending {
		order.PaymentStatus = models.PaymentStatusPaid
		order.PaymentReceivedAt = &now
	}

	if err := os.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	os.notify(ctx, order, models.NotificationTypeOrderStatusChange,
		models.NotificationPriorityNormal, "Order delivered",
		fmt.Sprintf("Order %s has been delivered", order.OrderNumber))
	return order, nil
}

// Cancel aborts a non-terminal order. A reason is required. Paid
// prepaid orders may be cancelled too, the refund is handled out of
// band by staff.
func (os *OrderService) Cancel(ctx context.Context, id uuid.UUID, reason string) (*models.Order, error) {
	if reason == "" {
		return nil, models.ErrCancelReasonMissing
	}

	order, err := os.repo.GetOrderByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !order.CanTransition(models.OrderStatusCancelled) {
		return nil, models.ErrOrderTerminal
	}

	now := time.Now()
	order.Status = models.OrderStatusCancelled
	order.CancelledAt = &now
	order.CancelReason = &reason

	if err := os.repo.UpdateOrder(ctx, order); err != nil {
		return nil, err
	}

	os.notify(ctx, order, models.NotificationTypeOrderStatusChange,
		models.NotificationPriorityHigh, "Order cancelled",
		fmt.Sprintf("Order %s has been cancelled: %s", order.OrderNumber, reason))
	return order, nil
}

// notify sends an order notification; failures are logged, a state
// change must not be rolled back because the side channel hiccuped
func (os *OrderService) notify(ctx context.Context, order *models.Order, ntype, priority, title, message string) {
	err := os.notifier.Notify(ctx, &models.Notification{
		UserID:   order.UserID,
		Type:     ntype,
		Priority: priority,
		Title:    title,
		Message:  message,
		Data:     map[string]string{"orderId": order.ID.String()},
	})
	if err != nil {
		os.logger.Error("send order notification",
			zap.String("order_number", order.OrderNumber), zap.Error(err))
	}
}

// GetOrdersForReminder writes ids of prepaid orders stuck without
// payment proof to the channel
func (os *OrderService) GetOrdersForReminder(ctx context.Context, maxAge time.Duration, orderCh chan<- uuid.UUID) error {
	orders, err := os.repo.GetStaleUnpaidOrders(ctx, time.Now().Add(-maxAge))
	if err != nil {
		return err
	}

	for _, order := range orders {
		select {
		case orderCh <- order.ID:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// RemindForOrder consumes order ids and sends a payment proof
// reminder, at most once per order
func (os *OrderService) RemindForOrder(ctx context.Context, orderCh <-chan uuid.UUID) {
	for {
		select {
		case <-ctx.Done():
			os.logger.Debug("payment reminder consumer is done")
			return
		case id, ok := <-orderCh:
			if !ok {
				return
			}

			order, err := os.repo.GetOrderByID(ctx, id)
			if err != nil {
				os.logger.Error("get order for reminder", zap.String("id", id.String()), zap.Error(err))
				continue
			}
			if order.ReminderSentAt != nil || order.IsTerminal() {
				continue
			}

			now := time.Now()
			order.ReminderSentAt = &now
			if err := os.repo.UpdateOrder(ctx, order); err != nil {
				os.logger.Error("update order reminder state", zap.Error(err))
				continue
			}

			os.notify(ctx, order, models.NotificationTypeGeneric,
				models.NotificationPriorityHigh, "Payment proof pending",
				fmt.Sprintf("Order %s is waiting for your payment proof", order.OrderNumber))
		}
	}
}
