package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestOrder(qty string) *Order {
	return NewOrder(uuid.New(), "BTC-USDT", SideBuy, OrderTypeLimit, dec("50000"), dec(qty), TimeInForceGTC)
}

func TestNewOrderDefaults(t *testing.T) {
	o := newTestOrder("2")

	assert.Equal(t, OrderStatusNew, o.Status)
	assert.True(t, o.FilledQty.IsZero())
	assert.True(t, o.RemainingQuantity().Equal(dec("2")))
	assert.False(t, o.IsTerminal())
	assert.NotEqual(t, uuid.Nil, o.ID)
}

func TestApplyFillStatusTransitions(t *testing.T) {
	o := newTestOrder("2")

	o.ApplyFill(dec("0.5"))
	assert.Equal(t, OrderStatusPartiallyFilled, o.Status)
	assert.True(t, o.RemainingQuantity().Equal(dec("1.5")))
	assert.False(t, o.IsTerminal())

	o.ApplyFill(dec("1.5"))
	assert.Equal(t, OrderStatusFilled, o.Status)
	assert.True(t, o.RemainingQuantity().IsZero())
	assert.True(t, o.IsTerminal())
}

func TestApplyFillGuards(t *testing.T) {
	t.Run("overfill panics", func(t *testing.T) {
		o := newTestOrder("1")
		assert.Panics(t, func() { o.ApplyFill(dec("1.5")) })
	})

	t.Run("zero fill panics", func(t *testing.T) {
		o := newTestOrder("1")
		assert.Panics(t, func() { o.ApplyFill(decimal.Zero) })
	})

	t.Run("fill on terminal order panics", func(t *testing.T) {
		o := newTestOrder("1")
		o.ApplyFill(dec("1"))
		require.True(t, o.IsTerminal())
		assert.Panics(t, func() { o.ApplyFill(dec("1")) })
	})
}

func TestTerminalStatuses(t *testing.T) {
	tests := []struct {
		status   OrderStatus
		terminal bool
	}{
		{OrderStatusNew, false},
		{OrderStatusPartiallyFilled, false},
		{OrderStatusFilled, true},
		{OrderStatusCanceled, true},
		{OrderStatusRejected, true},
		{OrderStatusExpired, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.terminal, tt.status.Terminal(), "status %s", tt.status)
	}
}

func TestSideOpposite(t *testing.T) {
	assert.Equal(t, SideSell, SideBuy.Opposite())
	assert.Equal(t, SideBuy, SideSell.Opposite())
	assert.True(t, SideBuy.Valid())
	assert.False(t, Side("hold").Valid())
}

func TestTimeInForceValid(t *testing.T) {
	for _, tif := range []TimeInForce{TimeInForceGTC, TimeInForceIOC, TimeInForceFOK, TimeInForceGTD} {
		assert.True(t, tif.Valid(), "tif %s", tif)
	}
	assert.False(t, TimeInForce("DAY").Valid())
}
