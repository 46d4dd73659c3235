package app

import (
	"go.uber.org/zap"

	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/catalog"
	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/summary"
	"tableflip.dev/cardfuse/pkg/view"
)

// State is everything a front end needs to render one frame.
type State struct {
	Rows        []view.Row      `json:"rows"`
	Summary     summary.Summary `json:"summary"`
	SummaryText string          `json:"summaryText"`
	Query       view.Query      `json:"query"`
	Locale      i18n.Locale     `json:"locale"`
	Labels      i18n.Labels     `json:"-"`
	Panel       Panel           `json:"panel,omitempty"`
	Selected    int             `json:"selected"`
	Total       int             `json:"total"`
	Fallback    bool            `json:"fallback,omitempty"`
}

// Detail is one line of the details panel.
type Detail struct {
	Card card.Card `json:"card"`
	Line string    `json:"line"`
}

// DetailsView is the content of the details panel.
type DetailsView struct {
	Items []Detail `json:"items"`
	// Message is set when nothing is selected.
	Message string `json:"message,omitempty"`
}

// State recomputes the view and the summary from the current session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.bundle.Catalog(s.locale)
	sum := summary.Compute(s.cards, s.sel)
	return State{
		Rows:        view.Pipeline{Lang: c.Tag}.Compute(s.cards.Cards(), s.sel, s.query),
		Summary:     sum,
		SummaryText: sum.Text(c.Labels),
		Query:       s.query,
		Locale:      s.locale,
		Labels:      c.Labels,
		Panel:       s.panel,
		Selected:    s.sel.Len(),
		Total:       s.cards.Len(),
		Fallback:    s.cards.Fallback(),
	}
}

// Rows is the current view.
func (s *Session) Rows() []view.Row {
	return s.State().Rows
}

// Summary is the aggregate over the current selection.
func (s *Session) Summary() summary.Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return summary.Compute(s.cards, s.sel)
}

// SummaryText is the summary line in the active locale.
func (s *Session) SummaryText() string {
	return s.State().SummaryText
}

// Details lists the selected cards the catalog knows, in the active locale.
func (s *Session) Details() DetailsView {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.bundle.Catalog(s.locale)
	cards := summary.Details(s.cards, s.sel)
	if len(cards) == 0 {
		return DetailsView{Items: []Detail{}, Message: c.Messages.NoSelection}
	}
	items := make([]Detail, 0, len(cards))
	for _, cd := range cards {
		items = append(items, Detail{
			Card: cd,
			Line: c.DetailLine(cd.Group.String(), cd.Region.String(), card.FormatPoint(cd.Point)),
		})
	}
	return DetailsView{Items: items}
}

// Help renders the markdown help document of the active locale.
func (s *Session) Help() (string, error) {
	s.mu.Lock()
	c := s.bundle.Catalog(s.locale)
	s.mu.Unlock()
	help, err := c.Help()
	if err != nil {
		s.logger.Error("help unavailable", zap.String("locale", string(c.Locale)), zap.Error(err))
	}
	return help, err
}

// Query returns the current query.
func (s *Session) Query() view.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Locale returns the active locale.
func (s *Session) Locale() i18n.Locale {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locale
}

// Labels returns the active locale's labels.
func (s *Session) Labels() i18n.Labels {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.Catalog(s.locale).Labels
}

// Messages returns the active locale's messages.
func (s *Session) Messages() i18n.Messages {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bundle.Catalog(s.locale).Messages
}

// Panel returns the open panel, if any.
func (s *Session) Panel() Panel {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.panel
}

// Selected returns the selected ids, including ids the catalog no longer
// knows.
func (s *Session) Selected() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.IDs()
}

// Catalog returns the session's catalog.
func (s *Session) Catalog() *catalog.Store {
	return s.cards
}

// Bundle returns the locale bundle.
func (s *Session) Bundle() *i18n.Bundle {
	return s.bundle
}
