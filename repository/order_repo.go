package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/db/postgres/providers"
	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

// ErrOrderNotFound is returned when a lookup by id matches no row.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository persists orders downstream of the matching engine.
// The engine's in-memory book is the source of truth for open
// interest; these rows record history and order status for queries.
type OrderRepository struct {
	DBHelper *providers.DBHelper
}

func NewOrderRepository(db *providers.DBHelper) *OrderRepository {
	return &OrderRepository{DBHelper: db}
}

// CreateOrder inserts a newly accepted order.
func (r *OrderRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (id, user_id, symbol, side, type, price, stop_price,
		                    quantity, filled_quantity, status, time_in_force,
		                    expires_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	expiresAt := sql.NullTime{Time: order.ExpiresAt, Valid: !order.ExpiresAt.IsZero()}
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query,
		order.ID, order.UserID, order.Symbol, order.Side, order.Type,
		order.Price, order.StopPrice, order.Quantity, order.FilledQty,
		order.Status, order.TimeInForce, expiresAt, order.CreatedAt, order.UpdatedAt,
	)
	return err
}

// UpdateOrderFill records the taker side of a matching pass: the
// order's absolute filled quantity and final status.
func (r *OrderRepository) UpdateOrderFill(ctx context.Context, id uuid.UUID, filled decimal.Decimal, status models.OrderStatus) error {
	query := `
		UPDATE orders
		SET filled_quantity = $1, status = $2, updated_at = NOW()
		WHERE id = $3`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query, filled, status, id)
	return err
}

// RecordMakerFill applies one trade's quantity to the maker order's
// row. The fill delta comes from the trade, so the row tracks the
// in-memory maker state without the service holding a reference to it.
func (r *OrderRepository) RecordMakerFill(ctx context.Context, makerID uuid.UUID, qty decimal.Decimal) error {
	query := `
		UPDATE orders
		SET filled_quantity = filled_quantity + $1,
		    status = CASE WHEN filled_quantity + $1 >= quantity THEN 'filled'
		                  ELSE 'partially_filled' END,
		    updated_at = NOW()
		WHERE id = $2`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query, qty, makerID)
	return err
}

// UpdateOrderStatus sets a terminal status (canceled, expired).
func (r *OrderRepository) UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = NOW()
		WHERE id = $2`
	_, err := r.DBHelper.PostgresClient.ExecContext(ctx, query, status, id)
	return err
}

// GetOrderByID fetches one order by id.
func (r *OrderRepository) GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	query := `
		SELECT id, user_id, symbol, side, type, price, stop_price,
		       quantity, filled_quantity, status, time_in_force,
		       expires_at, created_at, updated_at
		FROM orders WHERE id = $1`

	var o models.Order
	var expiresAt sql.NullTime
	err := r.DBHelper.PostgresClient.QueryRowContext(ctx, query, id).Scan(
		&o.ID, &o.UserID, &o.Symbol, &o.Side, &o.Type, &o.Price, &o.StopPrice,
		&o.Quantity, &o.FilledQty, &o.Status, &o.TimeInForce,
		&expiresAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order %s: %w", id, err)
	}
	if expiresAt.Valid {
		o.ExpiresAt = expiresAt.Time
	}
	return &o, nil
}
