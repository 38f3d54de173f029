package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

// OrderStore is the persistence collaborator for orders. The matching
// core holds no durability guarantee; these calls record what the
// engine has already committed.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	UpdateOrderFill(ctx context.Context, id uuid.UUID, filled decimal.Decimal, status models.OrderStatus) error
	RecordMakerFill(ctx context.Context, makerID uuid.UUID, qty decimal.Decimal) error
	UpdateOrderStatus(ctx context.Context, id uuid.UUID, status models.OrderStatus) error
	GetOrderByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
}

// TradeStore is the persistence collaborator for trades.
type TradeStore interface {
	CreateTrade(ctx context.Context, trade *models.Trade) error
	ListTradesBySymbol(ctx context.Context, symbol string, limit int) ([]models.Trade, error)
}

// RiskChecker validates an order before it reaches the matching
// engine. The engine assumes every order it receives has already
// passed balance, position and price-band checks.
type RiskChecker interface {
	ValidateOrder(ctx context.Context, order *models.Order) error
}

// Settler consumes the trades returned from a matching pass to debit
// and credit user balances. It is only ever called with trades the
// engine has already committed.
type Settler interface {
	SettleTrades(ctx context.Context, trades []models.Trade) error
}

// Broadcaster streams trades and depth updates to market-data
// subscribers.
type Broadcaster interface {
	PublishTrades(symbol string, trades []models.Trade)
	PublishDepth(symbol string, bids, asks []models.OrderBookEntry)
}

// NoopRiskChecker accepts every order. Stands in until the real risk
// service is wired.
type NoopRiskChecker struct{}

func (NoopRiskChecker) ValidateOrder(context.Context, *models.Order) error { return nil }

// NoopSettler acknowledges every settlement.
type NoopSettler struct{}

func (NoopSettler) SettleTrades(context.Context, []models.Trade) error { return nil }
