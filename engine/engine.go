package engine

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

// MatchingEngine owns one symbol's order book and its trade history.
// A single RWMutex guards both: mutating calls (process, cancel,
// expire) hold the write lock for the whole pass, which is what makes
// a cancel racing an in-flight match impossible by construction.
// Matching is pure in-memory computation, so hold times stay bounded;
// no I/O ever happens under the lock. Read calls copy out under the
// read lock and never expose internal structures.
type MatchingEngine struct {
	symbol string

	mu     sync.RWMutex
	book   *OrderBook
	trades []models.Trade
	expiry *expiryQueue
}

func NewMatchingEngine(symbol string) *MatchingEngine {
	return &MatchingEngine{
		symbol: symbol,
		book:   NewOrderBook(symbol),
		expiry: newExpiryQueue(),
	}
}

func (e *MatchingEngine) Symbol() string { return e.symbol }

// ProcessOrder validates the order, dispatches by kind to the book's
// matching algorithm, records any trades in history and returns them.
// Every trade returned corresponds to a book mutation that has already
// committed by the time this returns.
func (e *MatchingEngine) ProcessOrder(o *models.Order) ([]models.Trade, error) {
	if o.Symbol != e.symbol {
		return nil, ErrSymbolMismatch
	}
	if !o.Quantity.IsPositive() || o.IsTerminal() {
		return nil, ErrInvalidOrderParameters
	}
	if o.TimeInForce == models.TimeInForceGTD && o.ExpiresAt.IsZero() {
		return nil, ErrInvalidOrderParameters
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		trades []models.Trade
		err    error
	)
	switch o.Type {
	case models.OrderTypeLimit:
		trades, err = e.book.MatchLimit(o)
	case models.OrderTypeMarket:
		trades, err = e.book.MatchMarket(o)
	default:
		return nil, ErrUnsupportedOrderType
	}
	if err != nil {
		return nil, err
	}

	if len(trades) > 0 {
		e.trades = append(e.trades, trades...)
	}
	if o.TimeInForce == models.TimeInForceGTD && !o.IsTerminal() && o.RemainingQuantity().IsPositive() {
		e.expiry.push(o.ID, o.ExpiresAt)
	}
	return trades, nil
}

// CancelOrder removes the order from the book. An unknown or already
// inactive id returns (nil, nil); cancellation is idempotent.
func (e *MatchingEngine) CancelOrder(id uuid.UUID) (*models.Order, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	o := e.book.Remove(id)
	if o == nil {
		return nil, nil
	}
	o.Status = models.OrderStatusCanceled
	o.UpdatedAt = time.Now().UTC()
	return o, nil
}

// ExpireDue cancels every resting GTD order whose expiry is at or
// before now, through the ordinary removal path. Entries whose order
// already left the book are skipped.
func (e *MatchingEngine) ExpireDue(now time.Time) []*models.Order {
	e.mu.Lock()
	defer e.mu.Unlock()

	var expired []*models.Order
	for {
		id, ok := e.expiry.popDue(now)
		if !ok {
			break
		}
		o := e.book.Remove(id)
		if o == nil {
			continue
		}
		o.Status = models.OrderStatusExpired
		o.UpdatedAt = now
		expired = append(expired, o)
	}
	return expired
}

// Snapshot returns up to depth aggregated levels per side, bids and
// asks both best-first.
func (e *MatchingEngine) Snapshot(depth int) (bids, asks []models.OrderBookEntry) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.Depth(depth)
}

func (e *MatchingEngine) BestBid() (decimal.Decimal, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.BestBid()
}

func (e *MatchingEngine) BestAsk() (decimal.Decimal, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.book.BestAsk()
}

// RecentTrades returns up to limit trades, most recent first.
func (e *MatchingEngine) RecentTrades(limit int) []models.Trade {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if limit <= 0 || limit > len(e.trades) {
		limit = len(e.trades)
	}
	out := make([]models.Trade, 0, limit)
	for i := len(e.trades) - 1; i >= len(e.trades)-limit; i-- {
		out = append(out, e.trades[i])
	}
	return out
}
