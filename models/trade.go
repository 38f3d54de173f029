package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade is a single match event. It is immutable once created: the
// price is always the resting (maker) order's price and Side is the
// side of the taker that initiated the match.
type Trade struct {
	ID           uuid.UUID       `json:"id"`
	Symbol       string          `json:"symbol"`
	TakerOrderID uuid.UUID       `json:"taker_order_id"`
	MakerOrderID uuid.UUID       `json:"maker_order_id"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	Side         Side            `json:"side"`
	CreatedAt    time.Time       `json:"created_at"`
}

func NewTrade(symbol string, takerOrderID, makerOrderID uuid.UUID, price, quantity decimal.Decimal, takerSide Side) Trade {
	return Trade{
		ID:           uuid.New(),
		Symbol:       symbol,
		TakerOrderID: takerOrderID,
		MakerOrderID: makerOrderID,
		Price:        price,
		Quantity:     quantity,
		Side:         takerSide,
		CreatedAt:    time.Now().UTC(),
	}
}
