package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func limitOrder(symbol string, side models.Side, price, qty string, tif models.TimeInForce) *models.Order {
	return models.NewOrder(uuid.New(), symbol, side, models.OrderTypeLimit, dec(price), dec(qty), tif)
}

func marketOrder(symbol string, side models.Side, qty string) *models.Order {
	return models.NewOrder(uuid.New(), symbol, side, models.OrderTypeMarket, decimal.Zero, dec(qty), models.TimeInForceIOC)
}

func assertTrade(t *testing.T, trade models.Trade, price, qty string) {
	t.Helper()
	assert.True(t, trade.Price.Equal(dec(price)), "trade price = %s, want %s", trade.Price, price)
	assert.True(t, trade.Quantity.Equal(dec(qty)), "trade qty = %s, want %s", trade.Quantity, qty)
}

func assertEntry(t *testing.T, entry models.OrderBookEntry, price, qty string) {
	t.Helper()
	assert.True(t, entry.Price.Equal(dec(price)), "level price = %s, want %s", entry.Price, price)
	assert.True(t, entry.Quantity.Equal(dec(qty)), "level qty = %s, want %s", entry.Quantity, qty)
}
