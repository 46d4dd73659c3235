package selection

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"

	"tableflip.dev/cardfuse/pkg/app"
	"tableflip.dev/cardfuse/pkg/card"
	"tableflip.dev/cardfuse/pkg/catalog"
	"tableflip.dev/cardfuse/pkg/store"
)

func init() {
	color.NoColor = true
}

func session(kv store.KV) *app.Session {
	return app.NewSession(app.Options{
		Catalog: catalog.New([]card.Card{
			{ID: 1, Name: "Mushmon Card", Point: 1, Group: "1", Region: "A"},
			{ID: 6, Name: "Stone Goblin Card", Point: 2, Group: "1", Region: "A"},
			{ID: 22, Name: "Jr. Boogie Card", Point: 3, Group: "2", Region: "B"},
		}),
		Persistence: &store.Selections{KV: kv},
	})
}

func run(t *testing.T, kv store.KV, action Action, ids ...int) result {
	t.Helper()
	var buf bytes.Buffer
	s := Selection{Session: session(kv), Action: action, IDs: ids, JSON: true, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("%s: %v", action, err)
	}
	var res result
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	return res
}

func TestActionsPersistAcrossSessions(t *testing.T) {
	kv := store.NewMemoryKV()

	res := run(t, kv, Toggle, 1, 22)
	if diff := cmp.Diff([]int{1, 22}, res.Selected); diff != "" {
		t.Fatalf("toggle (-want +got):\n%s", diff)
	}
	if res.Summary != "Group 2, Points 4, Rate 0.8%" {
		t.Fatalf("unexpected summary %q", res.Summary)
	}

	res = run(t, kv, Reverse)
	if diff := cmp.Diff([]int{6}, res.Selected); diff != "" {
		t.Fatalf("reverse (-want +got):\n%s", diff)
	}

	res = run(t, kv, All)
	if diff := cmp.Diff([]int{1, 6, 22}, res.Selected); diff != "" {
		t.Fatalf("all (-want +got):\n%s", diff)
	}

	res = run(t, kv, Reset)
	if len(res.Selected) != 0 {
		t.Fatalf("reset left %v", res.Selected)
	}
}

func TestToggleRejectsUnknownIDs(t *testing.T) {
	kv := store.NewMemoryKV()
	s := Selection{Session: session(kv), Action: Toggle, IDs: []int{1, 99}, Out: &bytes.Buffer{}}
	err := s.Do(context.Background())
	if err == nil || !strings.Contains(err.Error(), "99") {
		t.Fatalf("expected unknown id error, got %v", err)
	}
	if _, ok, _ := kv.Get(store.SelectionKey); ok {
		t.Fatalf("nothing should be saved when an id is unknown")
	}
}

func TestPrettyOutput(t *testing.T) {
	var buf bytes.Buffer
	s := Selection{Session: session(store.NewMemoryKV()), Action: All, Out: &buf}
	if err := s.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !strings.Contains(buf.String(), "Selected 3") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestUnknownAction(t *testing.T) {
	s := Selection{Session: session(store.NewMemoryKV()), Action: "shuffle"}
	if err := s.Do(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
}
