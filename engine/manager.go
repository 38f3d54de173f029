package engine

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/models"
)

// Manager routes orders and cancellations to the engine owning their
// symbol. Its lock only covers the symbol lookup, never the matching
// work behind it, so order flow on one symbol is never serialized
// behind another's.
type Manager struct {
	mu      sync.RWMutex
	engines map[string]*MatchingEngine
}

func NewManager() *Manager {
	return &Manager{
		engines: make(map[string]*MatchingEngine),
	}
}

// RegisterSymbol creates an engine for the symbol. Registering a
// symbol twice fails.
func (m *Manager) RegisterSymbol(symbol string) error {
	if symbol == "" {
		return ErrInvalidOrderParameters
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.engines[symbol]; ok {
		return ErrSymbolAlreadyExists
	}
	m.engines[symbol] = NewMatchingEngine(symbol)
	return nil
}

// Engine returns the engine for the symbol.
func (m *Manager) Engine(symbol string) (*MatchingEngine, error) {
	m.mu.RLock()
	eng, ok := m.engines[symbol]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSymbolNotRegistered
	}
	return eng, nil
}

func (m *Manager) ProcessOrder(o *models.Order) ([]models.Trade, error) {
	eng, err := m.Engine(o.Symbol)
	if err != nil {
		return nil, err
	}
	return eng.ProcessOrder(o)
}

func (m *Manager) CancelOrder(symbol string, id uuid.UUID) (*models.Order, error) {
	eng, err := m.Engine(symbol)
	if err != nil {
		return nil, err
	}
	return eng.CancelOrder(id)
}

func (m *Manager) Depth(symbol string, levels int) (bids, asks []models.OrderBookEntry, err error) {
	eng, err := m.Engine(symbol)
	if err != nil {
		return nil, nil, err
	}
	bids, asks = eng.Snapshot(levels)
	return bids, asks, nil
}

func (m *Manager) RecentTrades(symbol string, limit int) ([]models.Trade, error) {
	eng, err := m.Engine(symbol)
	if err != nil {
		return nil, err
	}
	return eng.RecentTrades(limit), nil
}

// Symbols lists the registered symbols.
func (m *Manager) Symbols() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]string, 0, len(m.engines))
	for s := range m.engines {
		out = append(out, s)
	}
	return out
}

// Engines returns the registered engines; the expiry sweeper iterates
// these without holding the registry lock during the sweep.
func (m *Manager) Engines() []*MatchingEngine {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*MatchingEngine, 0, len(m.engines))
	for _, e := range m.engines {
		out = append(out, e)
	}
	return out
}
