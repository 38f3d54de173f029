package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/shyamanurag/WorldClassCryptoExchange-sub000/engine"
)

// ExpirySweeper periodically cancels resting good-till-date orders
// whose expiry has passed. Each engine keeps its own expiry index so a
// sweep never scans a book; the sweeper just drains due entries
// through the ordinary cancellation path.
type ExpirySweeper struct {
	Engines  *engine.Manager
	Orders   OrderStore
	Cache    *MarketCache
	Hub      Broadcaster
	Logger   *slog.Logger
	Interval time.Duration
}

func NewExpirySweeper(engines *engine.Manager, orders OrderStore, cache *MarketCache, hub Broadcaster, logger *slog.Logger, interval time.Duration) *ExpirySweeper {
	if interval <= 0 {
		interval = time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &ExpirySweeper{
		Engines:  engines,
		Orders:   orders,
		Cache:    cache,
		Hub:      hub,
		Logger:   logger,
		Interval: interval,
	}
}

// Run blocks until ctx is done, sweeping once per interval.
func (s *ExpirySweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.SweepOnce(ctx, now)
		}
	}
}

// SweepOnce expires due orders across all symbols and records the
// results.
func (s *ExpirySweeper) SweepOnce(ctx context.Context, now time.Time) {
	for _, eng := range s.Engines.Engines() {
		expired := eng.ExpireDue(now)
		if len(expired) == 0 {
			continue
		}
		for _, o := range expired {
			if s.Orders != nil {
				if err := s.Orders.UpdateOrderStatus(ctx, o.ID, o.Status); err != nil {
					s.Logger.Error("failed to persist expiry", "order_id", o.ID, "error", err)
				}
			}
		}
		if s.Cache != nil {
			s.Cache.Invalidate(ctx, eng.Symbol())
		}
		if s.Hub != nil {
			bids, asks := eng.Snapshot(defaultDepthLevels)
			s.Hub.PublishDepth(eng.Symbol(), bids, asks)
		}
		s.Logger.Info("expired resting orders", "symbol", eng.Symbol(), "count", len(expired))
	}
}
