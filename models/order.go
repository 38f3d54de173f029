package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a single order in the system. It is created by the intake
// layer and after that mutated only by the matching engine that owns
// the symbol's book, so none of its methods take locks.
type Order struct {
	ID          uuid.UUID       `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Symbol      string          `json:"symbol"`
	Side        Side            `json:"side"`
	Type        OrderType       `json:"type"`
	Price       decimal.Decimal `json:"price"`      // zero for market orders
	StopPrice   decimal.Decimal `json:"stop_price"` // zero unless a stop variant
	Quantity    decimal.Decimal `json:"quantity"`
	FilledQty   decimal.Decimal `json:"filled_quantity"`
	Status      OrderStatus     `json:"status"`
	TimeInForce TimeInForce     `json:"time_in_force"`
	ExpiresAt   time.Time       `json:"expires_at,omitempty"` // GTD only
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewOrder builds an order in status New with a fresh id.
func NewOrder(userID uuid.UUID, symbol string, side Side, typ OrderType, price, quantity decimal.Decimal, tif TimeInForce) *Order {
	now := time.Now().UTC()
	return &Order{
		ID:          uuid.New(),
		UserID:      userID,
		Symbol:      symbol,
		Side:        side,
		Type:        typ,
		Price:       price,
		Quantity:    quantity,
		FilledQty:   decimal.Zero,
		Status:      OrderStatusNew,
		TimeInForce: tif,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// RemainingQuantity is the quantity still open for matching.
func (o *Order) RemainingQuantity() decimal.Decimal {
	return o.Quantity.Sub(o.FilledQty)
}

func (o *Order) IsTerminal() bool {
	return o.Status.Terminal()
}

// ApplyFill records qty as executed against this order and recomputes
// its status. Filling a terminal order or filling past the order's
// quantity is a programming error and panics: the book would be left
// lying about its own state, which must never be silent.
func (o *Order) ApplyFill(qty decimal.Decimal) {
	if o.IsTerminal() {
		panic(fmt.Sprintf("order %s: fill applied to terminal order (status %s)", o.ID, o.Status))
	}
	if qty.LessThanOrEqual(decimal.Zero) || qty.GreaterThan(o.RemainingQuantity()) {
		panic(fmt.Sprintf("order %s: fill %s exceeds remaining %s", o.ID, qty, o.RemainingQuantity()))
	}
	o.FilledQty = o.FilledQty.Add(qty)
	if o.FilledQty.Equal(o.Quantity) {
		o.Status = OrderStatusFilled
	} else {
		o.Status = OrderStatusPartiallyFilled
	}
	o.UpdatedAt = time.Now().UTC()
}
