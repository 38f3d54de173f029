package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type PlaceOrderRequest struct {
	UserID      string          `json:"user_id" validate:"required,uuid4"`
	Symbol      string          `json:"symbol" validate:"required"`
	Side        string          `json:"side" validate:"required,oneof=buy sell"`
	Type        string          `json:"type" validate:"required,oneof=limit market stop_limit stop_market"`
	Price       decimal.Decimal `json:"price,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	TimeInForce string          `json:"time_in_force,omitempty" validate:"omitempty,oneof=GTC IOC FOK GTD"`
	ExpiresAt   time.Time       `json:"expires_at,omitempty"`
}

type CancelOrderRequest struct {
	Symbol  string `json:"symbol" validate:"required"`
	OrderID string `json:"order_id" validate:"required,uuid4"`
}

type RegisterSymbolRequest struct {
	Symbol string `json:"symbol" validate:"required"`
}
