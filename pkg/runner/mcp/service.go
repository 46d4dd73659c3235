// Package mcp provides the Model Context Protocol server integration for cardfuse.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/summary"
	"tableflip.dev/cardfuse/pkg/view"
)

// Service adapts a session to the shapes returned by the MCP tools.
type Service struct {
	Session *app.Session
}

// ErrCardNotFound is returned when a card id is not in the catalog.
var ErrCardNotFound = errors.New("card not found")

// RowDTO is a transport-friendly projection of a view row.
type RowDTO struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Point    float64 `json:"point"`
	Group    string  `json:"group"`
	Region   string  `json:"region"`
	DropRate string  `json:"dropRate,omitempty"`
	Selected bool    `json:"selected"`
}

// SummaryDTO pairs the aggregate with its localized rendering.
type SummaryDTO struct {
	summary.Summary
	Text string `json:"text"`
}

// ViewDTO is one rendered frame of the table.
type ViewDTO struct {
	Locale   string     `json:"locale"`
	Query    view.Query `json:"query"`
	Rows     []RowDTO   `json:"rows"`
	Summary  SummaryDTO `json:"summary"`
	Selected []int      `json:"selected"`
	Total    int        `json:"total"`
	Fallback bool       `json:"fallback,omitempty"`
}

// CatalogDTO describes the loaded catalog.
type CatalogDTO struct {
	Source   string        `json:"source"`
	Fallback bool          `json:"fallback"`
	Count    int           `json:"count"`
	Regions  []card.Region `json:"regions"`
	Groups   []card.Group  `json:"groups"`
	Cards    []card.Card   `json:"cards"`
}

// FilterOptions updates the query. Nil fields are left unchanged.
type FilterOptions struct {
	Search *string
	Region *string
	Group  *string
}

// NewService builds a service around the session.
func NewService(s *app.Session) *Service {
	return &Service{Session: s}
}

func (s *Service) session() (*app.Session, error) {
	if s == nil || s.Session == nil {
		return nil, errors.New("session is not configured")
	}
	return s.Session, nil
}

// View returns the current table, summary and selection.
func (s *Service) View(ctx context.Context) (ViewDTO, error) {
	sess, err := s.session()
	if err != nil {
		return ViewDTO{}, err
	}
	st := sess.State()
	rows := make([]RowDTO, 0, len(st.Rows))
	for _, r := range st.Rows {
		rows = append(rows, toRowDTO(r))
	}
	return ViewDTO{
		Locale:   string(st.Locale),
		Query:    st.Query,
		Rows:     rows,
		Summary:  SummaryDTO{Summary: st.Summary, Text: st.SummaryText},
		Selected: sess.Selected(),
		Total:    st.Total,
		Fallback: st.Fallback,
	}, nil
}

func toRowDTO(r view.Row) RowDTO {
	return RowDTO{
		ID:       r.ID,
		Name:     r.Name,
		Point:    r.Point,
		Group:    r.Group.String(),
		Region:   r.Region.String(),
		DropRate: r.DropRate,
		Selected: r.Selected,
	}
}

// Summary returns the aggregate over the selection in the active locale.
func (s *Service) Summary(ctx context.Context) (SummaryDTO, error) {
	sess, err := s.session()
	if err != nil {
		return SummaryDTO{}, err
	}
	st := sess.State()
	return SummaryDTO{Summary: st.Summary, Text: st.SummaryText}, nil
}

// SetLanguage switches the active locale. Codes are matched case-insensitively
// and BCP 47 tags such as "pt-BR" are accepted.
func (s *Service) SetLanguage(ctx context.Context, raw string) (ViewDTO, error) {
	sess, err := s.session()
	if err != nil {
		return ViewDTO{}, err
	}
	l, err := sess.Bundle().Parse(raw)
	if err != nil {
		return ViewDTO{}, err
	}
	if err := sess.SetLanguage(l); err != nil {
		return ViewDTO{}, err
	}
	return s.View(ctx)
}

// SortBy applies a header click on the named column.
func (s *Service) SortBy(ctx context.Context, column string) (ViewDTO, error) {
	sess, err := s.session()
	if err != nil {
		return ViewDTO{}, err
	}
	c, err := view.ParseColumn(column)
	if err != nil {
		return ViewDTO{}, err
	}
	sess.SortBy(c)
	return s.View(ctx)
}

// Filter updates search text and the region and group filters.
func (s *Service) Filter(ctx context.Context, opts FilterOptions) (ViewDTO, error) {
	sess, err := s.session()
	if err != nil {
		return ViewDTO{}, err
	}
	if opts.Search != nil {
		sess.SetSearch(*opts.Search)
	}
	if opts.Region != nil {
		sess.SetRegionFilter(card.Region(strings.TrimSpace(*opts.Region)))
	}
	if opts.Group != nil {
		sess.SetGroupFilter(card.Group(strings.TrimSpace(*opts.Group)))
	}
	return s.View(ctx)
}

// Toggle flips the selection of id. Unknown ids are rejected here even though
// the session itself tolerates them.
func (s *Service) Toggle(ctx context.Context, id int) (ViewDTO, error) {
	sess, err := s.session()
	if err != nil {
		return ViewDTO{}, err
	}
	if _, ok := sess.Catalog().Lookup(id); !ok {
		return ViewDTO{}, fmt.Errorf("%w: %d", ErrCardNotFound, id)
	}
	if _, err := sess.Toggle(id); err != nil {
		return ViewDTO{}, err
	}
	return s.View(ctx)
}

// SelectAll selects the whole catalog.
func (s *Service) SelectAll(ctx context.Context) (ViewDTO, error) {
	return s.mutate(ctx, (*app.Session).SelectAll)
}

// Reverse inverts the selection over the whole catalog.
func (s *Service) Reverse(ctx context.Context) (ViewDTO, error) {
	return s.mutate(ctx, (*app.Session).Reverse)
}

// Reset clears the selection and the query.
func (s *Service) Reset(ctx context.Context) (ViewDTO, error) {
	return s.mutate(ctx, (*app.Session).Reset)
}

func (s *Service) mutate(ctx context.Context, fn func(*app.Session) error) (ViewDTO, error) {
	sess, err := s.session()
	if err != nil {
		return ViewDTO{}, err
	}
	if err := fn(sess); err != nil {
		return ViewDTO{}, err
	}
	return s.View(ctx)
}

// Details opens the details panel and returns its content.
func (s *Service) Details(ctx context.Context) (app.DetailsView, error) {
	sess, err := s.session()
	if err != nil {
		return app.DetailsView{}, err
	}
	sess.ShowDetails()
	return sess.Details(), nil
}

// Help opens the help panel and returns its markdown.
func (s *Service) Help(ctx context.Context) (string, error) {
	sess, err := s.session()
	if err != nil {
		return "", err
	}
	sess.ShowHelp()
	return sess.Help()
}

// Dismiss closes the named panel if it is open.
func (s *Service) Dismiss(ctx context.Context, panel string) (app.Panel, error) {
	sess, err := s.session()
	if err != nil {
		return app.PanelNone, err
	}
	p, err := app.ParsePanel(panel)
	if err != nil {
		return app.PanelNone, err
	}
	if err := sess.Dismiss(p); err != nil {
		return app.PanelNone, err
	}
	return sess.Panel(), nil
}

// Catalog describes the loaded catalog.
func (s *Service) Catalog(ctx context.Context) (CatalogDTO, error) {
	sess, err := s.session()
	if err != nil {
		return CatalogDTO{}, err
	}
	c := sess.Catalog()
	return CatalogDTO{
		Source:   c.Source(),
		Fallback: c.Fallback(),
		Count:    c.Len(),
		Regions:  c.Regions(),
		Groups:   c.Groups(),
		Cards:    c.Cards(),
	}, nil
}

// CardByID returns one card with its selection flag.
func (s *Service) CardByID(ctx context.Context, id int) (RowDTO, error) {
	sess, err := s.session()
	if err != nil {
		return RowDTO{}, err
	}
	c, ok := sess.Catalog().Lookup(id)
	if !ok {
		return RowDTO{}, fmt.Errorf("%w: %d", ErrCardNotFound, id)
	}
	selected := false
	for _, sid := range sess.Selected() {
		if sid == id {
			selected = true
			break
		}
	}
	return toRowDTO(view.Row{Card: c, Selected: selected}), nil
}

// Locales lists the available locales.
func (s *Service) Locales(ctx context.Context) ([]i18n.Locale, error) {
	sess, err := s.session()
	if err != nil {
		return nil, err
	}
	return sess.Bundle().Locales(), nil
}
