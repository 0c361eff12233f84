package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/mkraj/wholemart/internal/models"
	"github.com/mkraj/wholemart/internal/repository/postgres"
)

const pgErrUniqueViolationCode = "23505"

const (
	insertOrderQuery = `
						INSERT INTO orders (id, order_number, user_id, status, payment_method, payment_status, total, created_at)
						VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`
	insertOrderItemQuery = `
						INSERT INTO order_items (order_id, product_id, name, quantity, unit_price)
						VALUES ($1, $2, $3, $4, $5)
`
	selectOrderColumns = `
						id, order_number, user_id, status, payment_method, payment_status,
						payment_proof_url, tracking_number, cancel_reason, total, created_at,
						payment_received_at, dispatched_at, delivered_at, cancelled_at, reminder_sent_at
`
	selectOrderByIDQuery = `
						SELECT ` + selectOrderColumns + ` FROM orders
						WHERE id = $1
`
	selectOrdersByUserIDQuery = `
						SELECT ` + selectOrderColumns + ` FROM orders
						WHERE user_id = $1
						ORDER BY created_at DESC
`
	selectAllOrdersQuery = `
						SELECT ` + selectOrderColumns + ` FROM orders
						ORDER BY created_at DESC
`
	selectOrderItemsQuery = `
						SELECT product_id, name, quantity, unit_price FROM order_items
						WHERE order_id = $1
						ORDER BY id
`
	updateOrderQuery = `
						UPDATE orders
						SET status = $1, payment_status = $2, payment_proof_url = $3, tracking_number = $4,
							cancel_reason = $5, payment_received_at = $6, dispatched_at = $7,
							delivered_at = $8, cancelled_at = $9, reminder_sent_at = $10
						WHERE id = $11
`
	selectStaleUnpaidQuery = `
						SELECT ` + selectOrderColumns + ` FROM orders
						WHERE status = 'PENDING_PAYMENT'
						  AND payment_method IN ('BANK_TRANSFER', 'CHEQUE')
						  AND payment_proof_url IS NULL
						  AND reminder_sent_at IS NULL
						  AND created_at < $1
`
)

// OrderRepository implements order persistence
type OrderRepository struct {
	db *postgres.DB
}

// NewOrderRepository creates new OrderRepository instance
func NewOrderRepository(db *postgres.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (or *OrderRepository) scanOrder(row pgx.Row) (*models.Order, error) {
	order := models.Order{}
	err := row.Scan(&order.ID, &order.OrderNumber, &order.UserID, &order.Status,
		&order.PaymentMethod, &order.PaymentStatus, &order.PaymentProofURL,
		&order.TrackingNumber, &order.CancelReason, &order.Total, &order.CreatedAt,
		&order.PaymentReceivedAt, &order.DispatchedAt, &order.DeliveredAt,
		&order.CancelledAt, &order.ReminderSentAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrDataNotFound
		}
		return nil, err
	}
	return &order, nil
}

// CreateOrder inserts new order and its items in one transaction
func (or *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	tx, err := or.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, insertOrderQuery, order.ID, order.OrderNumber, order.UserID,
		order.Status, order.PaymentMethod, order.PaymentStatus, order.Total, order.CreatedAt)
	if err != nil {
		if errCode := or.db.ErrorCode(err); errCode == pgErrUniqueViolationCode {
			return nil, models.ErrConflictData
		}
		return nil, err
	}

	for _, item := range order.Items {
		_, err = tx.Exec(ctx, insertOrderItemQuery, order.ID, item.ProductID, item.Name, item.Quantity, item.UnitPrice)
		if err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrderByID returns order with its items
func (or *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, err := or.scanOrder(or.db.QueryRow(ctx, selectOrderByIDQuery, id))
	if err != nil {
		return nil, err
	}

	rows, err := or.db.Query(ctx, selectOrderItemsQuery, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		item := models.OrderItem{}
		if err := rows.Scan(&item.ProductID, &item.Name, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, err
		}
		order.Items = append(order.Items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return order, nil
}

func (or *OrderRepository) queryOrders(ctx context.Context, query string, args ...any) ([]models.Order, error) {
	rows, err := or.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		order, err := or.scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrdersByUserID gets user orders, newest first
func (or *OrderRepository) GetOrdersByUserID(ctx context.Context, userID uuid.UUID) ([]models.Order, error) {
	return or.queryOrders(ctx, selectOrdersByUserIDQuery, userID)
}

// GetAllOrders returns every order, newest first
func (or *OrderRepository) GetAllOrders(ctx context.Context) ([]models.Order, error) {
	return or.queryOrders(ctx, selectAllOrdersQuery)
}

// UpdateOrder persists the mutable order fields
func (or *OrderRepository) UpdateOrder(ctx context.Context, order *models.Order) error {
	cmd, err := or.db.Exec(ctx, updateOrderQuery, order.Status, order.PaymentStatus,
		order.PaymentProofURL, order.TrackingNumber, order.CancelReason,
		order.PaymentReceivedAt, order.DispatchedAt, order.DeliveredAt,
		order.CancelledAt, order.ReminderSentAt, order.ID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return models.ErrDataNotFound
	}
	return nil
}

// GetStaleUnpaidOrders returns prepaid orders still awaiting payment
// proof that were created before the cutoff and not yet reminded
func (or *OrderRepository) GetStaleUnpaidOrders(ctx context.Context, cutoff time.Time) ([]models.Order, error) {
	return or.queryOrders(ctx, selectStaleUnpaidQuery, cutoff)
}
