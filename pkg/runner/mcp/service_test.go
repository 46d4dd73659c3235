package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/catalog"
	"tableflip.dev/cardfuse/pkg/i18n"
	"tableflip.dev/cardfuse/pkg/store"
	"tableflip.dev/cardfuse/pkg/view"
)

func newTestService(t *testing.T) (*Service, *store.Selections) {
	t.Helper()
	sels := &store.Selections{KV: store.NewMemoryKV()}
	cards := catalog.New([]card.Card{
		{ID: 1, Name: "Mushmon Card", Point: 1, Group: "1", Region: "A"},
		{ID: 10, Name: "Orc Card", Point: 1, Group: "1", Region: "A"},
		{ID: 22, Name: "Jr. Boogie Card", Point: 3, Group: "2", Region: "B"},
	})
	return NewService(app.NewSession(app.Options{Catalog: cards, Persistence: sels})), sels
}

func ids(rows []RowDTO) []int {
	out := []int{}
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}

func TestServiceToggleRejectsUnknownCard(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Toggle(context.Background(), 99); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestServiceTogglePersists(t *testing.T) {
	ctx := context.Background()
	svc, sels := newTestService(t)

	dto, err := svc.Toggle(ctx, 22)
	if err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if diff := cmp.Diff([]int{22}, dto.Selected); diff != "" {
		t.Fatalf("selected mismatch (-want +got):\n%s", diff)
	}
	if dto.Summary.Text != "Group 1, Points 3, Rate 0.6%" {
		t.Fatalf("unexpected summary %q", dto.Summary.Text)
	}
	if diff := cmp.Diff([]int{22}, sels.Load().IDs()); diff != "" {
		t.Fatalf("persisted mismatch (-want +got):\n%s", diff)
	}
}

func TestServiceFilterAndSort(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	region := "A"
	dto, err := svc.Filter(ctx, FilterOptions{Region: &region})
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if diff := cmp.Diff([]int{1, 10}, ids(dto.Rows)); diff != "" {
		t.Fatalf("region filter (-want +got):\n%s", diff)
	}

	dto, err = svc.SortBy(ctx, "name")
	if err != nil {
		t.Fatalf("SortBy failed: %v", err)
	}
	dto, err = svc.SortBy(ctx, "name")
	if err != nil {
		t.Fatalf("SortBy failed: %v", err)
	}
	if dto.Query.Direction != view.Desc {
		t.Fatalf("expected desc after second sort, got %v", dto.Query.Direction)
	}
	if diff := cmp.Diff([]int{10, 1}, ids(dto.Rows)); diff != "" {
		t.Fatalf("sorted rows (-want +got):\n%s", diff)
	}

	if _, err := svc.SortBy(ctx, "colour"); !errors.Is(err, view.ErrUnknownColumn) {
		t.Fatalf("expected ErrUnknownColumn, got %v", err)
	}

	// Select all still covers the filtered-out card.
	dto, err = svc.SelectAll(ctx)
	if err != nil {
		t.Fatalf("SelectAll failed: %v", err)
	}
	if diff := cmp.Diff([]int{1, 10, 22}, dto.Selected); diff != "" {
		t.Fatalf("select all (-want +got):\n%s", diff)
	}

	dto, err = svc.Reset(ctx)
	if err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(dto.Selected) != 0 || dto.Query != view.Default() || len(dto.Rows) != 3 {
		t.Fatalf("unexpected state after reset: %+v", dto)
	}
}

func TestServiceSetLanguage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.SetLanguage(ctx, "pt-BR")
	if err != nil {
		t.Fatalf("SetLanguage failed: %v", err)
	}
	if dto.Locale != string(i18n.PT) || !strings.HasPrefix(dto.Summary.Text, "Grupo 0") {
		t.Fatalf("unexpected PT view: %s %q", dto.Locale, dto.Summary.Text)
	}
	if _, err := svc.SetLanguage(ctx, "klingon"); !errors.Is(err, i18n.ErrUnknownLocale) {
		t.Fatalf("expected ErrUnknownLocale, got %v", err)
	}
}

func TestServicePanels(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	details, err := svc.Details(ctx)
	if err != nil {
		t.Fatalf("Details failed: %v", err)
	}
	if details.Message == "" || len(details.Items) != 0 {
		t.Fatalf("expected the empty-selection message, got %+v", details)
	}
	if svc.Session.Panel() != app.PanelDetails {
		t.Fatalf("expected details panel open")
	}

	help, err := svc.Help(ctx)
	if err != nil || !strings.Contains(help, "Welcome") {
		t.Fatalf("unexpected help (%v): %q", err, help)
	}
	open, err := svc.Dismiss(ctx, "help")
	if err != nil || open != app.PanelNone {
		t.Fatalf("expected help dismissed, got %q (%v)", open, err)
	}
	if _, err := svc.Dismiss(ctx, "sidebar"); !errors.Is(err, app.ErrUnknownPanel) {
		t.Fatalf("expected ErrUnknownPanel, got %v", err)
	}
}

func TestServiceCatalog(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t)

	dto, err := svc.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if dto.Count != 3 || dto.Fallback {
		t.Fatalf("unexpected catalog %+v", dto)
	}
	if diff := cmp.Diff([]card.Region{"A", "B"}, dto.Regions); diff != "" {
		t.Fatalf("regions (-want +got):\n%s", diff)
	}

	if _, err := svc.Toggle(ctx, 10); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	row, err := svc.CardByID(ctx, 10)
	if err != nil || !row.Selected || row.Name != "Orc Card" {
		t.Fatalf("unexpected card %+v (%v)", row, err)
	}
	if _, err := svc.CardByID(ctx, 5); !errors.Is(err, ErrCardNotFound) {
		t.Fatalf("expected ErrCardNotFound, got %v", err)
	}
}

func TestRunnerRequiresSession(t *testing.T) {
	if _, err := (Runner{}).NewServer(); err == nil {
		t.Fatalf("expected error without a session")
	}
	svc, _ := newTestService(t)
	if _, err := (Runner{Session: svc.Session}).NewServer(); err != nil {
		t.Fatalf("NewServer failed: %v", err)
	}
}
