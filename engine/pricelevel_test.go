package engine

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

func TestPriceLevelAggregateTracksQueue(t *testing.T) {
	lvl := newPriceLevel(dec("100"))
	assert.True(t, lvl.empty())

	a := limitOrder("BTC-USDT", models.SideSell, "100", "1", models.TimeInForceGTC)
	b := limitOrder("BTC-USDT", models.SideSell, "100", "2.5", models.TimeInForceGTC)
	lvl.push(a)
	lvl.push(b)

	assert.True(t, lvl.total.Equal(dec("3.5")))
	assert.Len(t, lvl.orders, 2)

	removed, ok := lvl.remove(a.ID)
	require.True(t, ok)
	assert.Equal(t, a.ID, removed.ID)
	assert.True(t, lvl.total.Equal(dec("2.5")))

	_, ok = lvl.remove(uuid.New())
	assert.False(t, ok)
	assert.True(t, lvl.total.Equal(dec("2.5")))
}

func TestPriceLevelRemoveKeepsFIFO(t *testing.T) {
	lvl := newPriceLevel(dec("100"))

	a := limitOrder("BTC-USDT", models.SideSell, "100", "1", models.TimeInForceGTC)
	b := limitOrder("BTC-USDT", models.SideSell, "100", "1", models.TimeInForceGTC)
	c := limitOrder("BTC-USDT", models.SideSell, "100", "1", models.TimeInForceGTC)
	lvl.push(a)
	lvl.push(b)
	lvl.push(c)

	_, ok := lvl.remove(b.ID)
	require.True(t, ok)

	require.Len(t, lvl.orders, 2)
	assert.Equal(t, a.ID, lvl.orders[0].ID)
	assert.Equal(t, c.ID, lvl.orders[1].ID)
}

func TestPriceLevelNegativeAggregatePanics(t *testing.T) {
	lvl := newPriceLevel(dec("100"))
	lvl.push(limitOrder("BTC-USDT", models.SideSell, "100", "1", models.TimeInForceGTC))

	assert.Panics(t, func() {
		lvl.reduce(dec("2"))
	})
}
