package catalog

import (
	"context"

	"go.uber.org/zap"

	"tableflip.dev/cardfuse/pkg/card"
)

// Load fetches the catalog from src. Any failure is logged and replaced by
// the built-in sample data, so Load always returns a usable Store.
func Load(ctx context.Context, src Source, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if src == nil {
		logger.Warn("no catalog source configured, using sample data")
		return fallbackStore("")
	}
	cards, err := src.Fetch(ctx)
	if err != nil {
		logger.Warn("catalog load failed, using sample data",
			zap.String("source", src.String()),
			zap.Error(err))
		return fallbackStore(src.String())
	}
	logger.Debug("catalog loaded",
		zap.String("source", src.String()),
		zap.Int("cards", len(cards)))
	s := New(cards)
	s.source = src.String()
	return s
}

func fallbackStore(source string) *Store {
	s := New(card.Sample())
	s.source = source
	s.fallback = true
	return s
}
