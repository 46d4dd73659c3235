package store

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"tableflip.dev/cardfuse/pkg/selection"
)

// SelectionKey is the fixed key the selection is stored under.
const SelectionKey = "cardSelections"

// Persistence loads and saves the selection.
type Persistence interface {
	Load() *selection.Set
	Save(sel *selection.Set) error
}

// Selections persists a selection.Set as a JSON array of ids under
// SelectionKey.
type Selections struct {
	KV     KV
	Logger *zap.Logger
}

// Load opens the disk store described by cfg, loading the config from the
// environment when cfg is nil.
func Load(cfg Config, logger *zap.Logger) (*Selections, error) {
	if cfg == nil {
		fc, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = fc
	}
	kv, err := OpenDiskKV(cfg.BasePath())
	if err != nil {
		return nil, err
	}
	return &Selections{KV: kv, Logger: logger}, nil
}

func (s *Selections) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// Load returns the stored selection. Missing, unreadable or corrupt data
// yields an empty set; Load never fails.
func (s *Selections) Load() *selection.Set {
	if s == nil || s.KV == nil {
		return selection.New()
	}
	raw, ok, err := s.KV.Get(SelectionKey)
	if err != nil {
		s.logger().Warn("selection unreadable, starting empty", zap.Error(err))
		return selection.New()
	}
	if !ok || raw == "" {
		return selection.New()
	}
	var sel selection.Set
	if err := json.Unmarshal([]byte(raw), &sel); err != nil {
		s.logger().Warn("selection corrupt, starting empty", zap.Error(err))
		return selection.New()
	}
	return &sel
}

// Save writes sel synchronously.
func (s *Selections) Save(sel *selection.Set) error {
	if s == nil || s.KV == nil {
		return errors.New("store: no key/value store configured")
	}
	data, err := json.Marshal(sel)
	if err != nil {
		return err
	}
	if err := s.KV.Set(SelectionKey, string(data)); err != nil {
		s.logger().Error("selection save failed", zap.Error(err))
		return err
	}
	return nil
}
