// Package app owns the session state of the viewer and exposes the actions
// the presentation layers call. Every front end (terminal UI, CLI, MCP) goes
// through a Session so the selection is always persisted the same way.
package app

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/catalog"
	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/selection"
	"tableflip.dev/cardfuse/pkg/store"
	"tableflip.dev/cardfuse/pkg/view"
)

// ErrUnknownPanel is returned by Dismiss for panel ids that do not exist.
var ErrUnknownPanel = errors.New("app: unknown panel")

// Panel identifies an overlay panel.
type Panel string

const (
	PanelNone    Panel = ""
	PanelHelp    Panel = "help"
	PanelDetails Panel = "details"
)

// ParsePanel resolves a panel id.
func ParsePanel(raw string) (Panel, error) {
	switch p := Panel(strings.ToLower(strings.TrimSpace(raw))); p {
	case PanelHelp, PanelDetails:
		return p, nil
	default:
		return PanelNone, fmt.Errorf("%w %q", ErrUnknownPanel, raw)
	}
}

// Options configures a Session.
type Options struct {
	Catalog     *catalog.Store
	Persistence store.Persistence
	Bundle      *i18n.Bundle
	Locale      i18n.Locale
	Logger      *zap.Logger
}

// Session is the single owner of the selection, the query and the active
// locale. All methods are safe to call from multiple goroutines; each action
// runs to completion under the session lock, persistence included.
type Session struct {
	mu sync.Mutex

	cards   *catalog.Store
	persist store.Persistence
	bundle  *i18n.Bundle
	logger  *zap.Logger

	sel    *selection.Set
	query  view.Query
	locale i18n.Locale
	panel  Panel
}

// NewSession hydrates the selection from persistence.
func NewSession(opts Options) *Session {
	s := &Session{
		cards:   opts.Catalog,
		persist: opts.Persistence,
		bundle:  opts.Bundle,
		logger:  opts.Logger,
		query:   view.Default(),
		locale:  opts.Locale,
	}
	if s.cards == nil {
		s.cards = catalog.New(card.Sample())
	}
	if s.bundle == nil {
		s.bundle = i18n.Default()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if _, ok := s.bundle.Lookup(s.locale); !ok {
		s.locale = i18n.DefaultLocale
	}
	if s.persist != nil {
		s.sel = s.persist.Load()
	}
	if s.sel == nil {
		s.sel = selection.New()
	}
	return s
}

// save must be called with mu held.
func (s *Session) save() error {
	if s.persist == nil {
		return nil
	}
	if err := s.persist.Save(s.sel); err != nil {
		return fmt.Errorf("app: save selection: %w", err)
	}
	return nil
}

// SetLanguage switches the active locale.
func (s *Session) SetLanguage(l i18n.Locale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.bundle.Lookup(l); !ok {
		return fmt.Errorf("%w %q", i18n.ErrUnknownLocale, l)
	}
	s.locale = l
	return nil
}

// CycleLanguage switches to the next locale and returns it.
func (s *Session) CycleLanguage() i18n.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locale = s.bundle.Next(s.locale)
	return s.locale
}

// SortBy applies a header click to the query.
func (s *Session) SortBy(c view.Column) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = s.query.SortBy(c)
}

// SetSearch sets the name search text.
func (s *Session) SetSearch(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Search = text
}

// SetRegionFilter restricts rows to region r; the empty region clears it.
func (s *Session) SetRegionFilter(r card.Region) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Region = r
}

// SetGroupFilter restricts rows to group g; the empty group clears it.
func (s *Session) SetGroupFilter(g card.Group) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query.Group = g
}

// SetQuery replaces the whole query.
func (s *Session) SetQuery(q view.Query) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.query = q
}

// Toggle flips the selection of id, persists, and reports the new state.
func (s *Session) Toggle(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	selected := s.sel.Toggle(id)
	return selected, s.save()
}

// SelectAll selects every card in the catalog, not only the filtered rows.
func (s *Session) SelectAll() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.SelectAll(s.cards.IDs())
	return s.save()
}

// Reverse inverts the selection over the whole catalog, not only the
// filtered rows.
func (s *Session) Reverse() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Reverse(s.cards.IDs())
	return s.save()
}

// Reset clears the selection and restores the default query.
func (s *Session) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Clear()
	s.query = view.Default()
	return s.save()
}

// Reload replaces the selection with the persisted one and reports whether
// it changed. Used when another process wrote the store.
func (s *Session) Reload() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.persist == nil {
		return false
	}
	loaded := s.persist.Load()
	if loaded.Equal(s.sel) {
		return false
	}
	s.logger.Debug("selection changed on disk, reloaded",
		zap.Int("before", s.sel.Len()),
		zap.Int("after", loaded.Len()))
	s.sel = loaded
	return true
}

// ShowHelp opens the help panel.
func (s *Session) ShowHelp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = PanelHelp
}

// ShowDetails opens the details panel.
func (s *Session) ShowDetails() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.panel = PanelDetails
}

// Dismiss closes p if it is open.
func (s *Session) Dismiss(p Panel) error {
	if p != PanelHelp && p != PanelDetails {
		return fmt.Errorf("%w %q", ErrUnknownPanel, p)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.panel == p {
		s.panel = PanelNone
	}
	return nil
}
