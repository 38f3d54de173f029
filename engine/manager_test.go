package engine

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

func TestRegisterSymbolRejectsDuplicates(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.RegisterSymbol("BTC-USDT"))
	assert.ErrorIs(t, m.RegisterSymbol("BTC-USDT"), ErrSymbolAlreadyExists)
	assert.ErrorIs(t, m.RegisterSymbol(""), ErrInvalidOrderParameters)
}

func TestManagerRoutesBySymbol(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.RegisterSymbol("BTC-USDT"))
	require.NoError(t, m.RegisterSymbol("ETH-USDT"))

	_, err := m.ProcessOrder(limitOrder("BTC-USDT", models.SideSell, "50000", "1", models.TimeInForceGTC))
	require.NoError(t, err)
	_, err = m.ProcessOrder(limitOrder("ETH-USDT", models.SideSell, "3000", "5", models.TimeInForceGTC))
	require.NoError(t, err)

	_, btcAsks, err := m.Depth("BTC-USDT", 10)
	require.NoError(t, err)
	require.Len(t, btcAsks, 1)
	assertEntry(t, btcAsks[0], "50000", "1")

	_, ethAsks, err := m.Depth("ETH-USDT", 10)
	require.NoError(t, err)
	require.Len(t, ethAsks, 1)
	assertEntry(t, ethAsks[0], "3000", "5")
}

func TestManagerUnknownSymbol(t *testing.T) {
	m := NewManager()

	_, err := m.ProcessOrder(limitOrder("DOGE-USDT", models.SideBuy, "1", "1", models.TimeInForceGTC))
	assert.ErrorIs(t, err, ErrSymbolNotRegistered)

	_, err = m.CancelOrder("DOGE-USDT", uuid.New())
	assert.ErrorIs(t, err, ErrSymbolNotRegistered)

	_, _, err = m.Depth("DOGE-USDT", 10)
	assert.ErrorIs(t, err, ErrSymbolNotRegistered)

	_, err = m.RecentTrades("DOGE-USDT", 10)
	assert.ErrorIs(t, err, ErrSymbolNotRegistered)
}

func TestManagerCancelRoute(t *testing.T) {
	m := NewManager()
	require.NoError(t, m.RegisterSymbol("BTC-USDT"))

	o := limitOrder("BTC-USDT", models.SideSell, "50000", "1", models.TimeInForceGTC)
	_, err := m.ProcessOrder(o)
	require.NoError(t, err)

	canceled, err := m.CancelOrder("BTC-USDT", o.ID)
	require.NoError(t, err)
	require.NotNil(t, canceled)
	assert.Equal(t, o.ID, canceled.ID)
}

func TestSymbolsAreIndependentUnderConcurrency(t *testing.T) {
	m := NewManager()
	symbols := []string{"BTC-USDT", "ETH-USDT", "SOL-USDT", "LINK-USDT"}
	for _, s := range symbols {
		require.NoError(t, m.RegisterSymbol(s))
	}

	var wg sync.WaitGroup
	for _, s := range symbols {
		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				if _, err := m.ProcessOrder(limitOrder(symbol, models.SideSell, "100", "1", models.TimeInForceGTC)); err != nil {
					t.Error(err)
					return
				}
			}
		}(s)
	}
	wg.Wait()

	for _, s := range symbols {
		_, asks, err := m.Depth(s, 1)
		require.NoError(t, err)
		require.Len(t, asks, 1)
		assertEntry(t, asks[0], "100", "50")
	}
}
