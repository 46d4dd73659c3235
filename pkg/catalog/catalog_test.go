package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/cardfuse/pkg/card"
)

const jsonCatalog = `{"cards":[
 {"id":1,"name":"Mushmon Card","point":1,"group":1,"region":"A","dropRate":"2.78%"},
 {"id":22,"name":"Jr. Boogie Card","point":3,"group":2,"region":"B","dropRate":"1.10%"},
 {"id":10,"name":"Orc Card","point":1,"group":"1","region":"A","dropRate":"2.78%"}
]}`

const yamlCatalog = `cards:
  - id: 7
    name: Slime Card
    point: 1
    group: 3
    region: C
    dropRate: 4%
`

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

type failingSource struct{}

func (failingSource) Fetch(context.Context) ([]card.Card, error) {
	return nil, errors.New("boom")
}
func (failingSource) String() string { return "failing" }

func TestLoadJSONFile(t *testing.T) {
	path := writeFile(t, "cards-data.json", jsonCatalog)
	s := Load(context.Background(), SourceFor(path), nil)
	if s.Fallback() {
		t.Fatalf("expected real catalog, got fallback")
	}
	if diff := cmp.Diff([]int{1, 22, 10}, s.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
	c, ok := s.Lookup(22)
	if !ok || c.Name != "Jr. Boogie Card" || c.Point != 3 {
		t.Fatalf("unexpected lookup result %+v (found=%v)", c, ok)
	}
	if s.Source() != path {
		t.Fatalf("expected source %q, got %q", path, s.Source())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := writeFile(t, "cards.yaml", yamlCatalog)
	s := Load(context.Background(), SourceFor(path), nil)
	if s.Fallback() {
		t.Fatalf("expected yaml catalog to load")
	}
	c, ok := s.Lookup(7)
	if !ok {
		t.Fatalf("expected card 7")
	}
	if c.Group != "3" || c.Region != "C" || c.DropRate != "4%" {
		t.Fatalf("unexpected card %+v", c)
	}
}

func TestLoadFallsBackAndLogs(t *testing.T) {
	tests := map[string]Source{
		"missing file": FileSource{Path: filepath.Join(t.TempDir(), "nope.json")},
		"corrupt file": FileSource{Path: writeFile(t, "bad.json", "{not json")},
		"no cards key": FileSource{Path: writeFile(t, "empty.json", `{"items":[]}`)},
		"fetch error":  failingSource{},
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			core, logs := observer.New(zapcore.WarnLevel)
			s := Load(context.Background(), src, zap.New(core))
			if !s.Fallback() {
				t.Fatalf("expected fallback store")
			}
			if diff := cmp.Diff(card.Sample(), s.Cards()); diff != "" {
				t.Fatalf("fallback mismatch (-want +got):\n%s", diff)
			}
			if logs.Len() != 1 {
				t.Fatalf("expected one warning, got %d", logs.Len())
			}
		})
	}
}

func TestLoadNilSource(t *testing.T) {
	s := Load(context.Background(), nil, nil)
	if !s.Fallback() || s.Len() != 3 {
		t.Fatalf("expected sample fallback, got %d cards fallback=%v", s.Len(), s.Fallback())
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/cards-data.json":
			_, _ = w.Write([]byte(jsonCatalog))
		case "/cards.yml":
			_, _ = w.Write([]byte(yamlCatalog))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	s := Load(context.Background(), SourceFor(srv.URL+"/cards-data.json"), nil)
	if s.Fallback() || s.Len() != 3 {
		t.Fatalf("expected 3 cards over http, got %d (fallback=%v)", s.Len(), s.Fallback())
	}

	s = Load(context.Background(), SourceFor(srv.URL+"/cards.yml?v=2"), nil)
	if s.Fallback() || s.Len() != 1 {
		t.Fatalf("expected yaml over http, got %d (fallback=%v)", s.Len(), s.Fallback())
	}

	_, err := HTTPSource{URL: srv.URL + "/missing.json"}.Fetch(context.Background())
	if err == nil || !strings.Contains(err.Error(), "unexpected status") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestSourceFor(t *testing.T) {
	if _, ok := SourceFor("https://example.com/cards.json").(HTTPSource); !ok {
		t.Fatalf("expected https location to use HTTPSource")
	}
	if _, ok := SourceFor("HTTP://example.com/cards.json").(HTTPSource); !ok {
		t.Fatalf("expected scheme match to be case-insensitive")
	}
	if _, ok := SourceFor("./cards-data.json").(FileSource); !ok {
		t.Fatalf("expected relative path to use FileSource")
	}
}

func TestRegionsAndGroups(t *testing.T) {
	s := New([]card.Card{
		{ID: 1, Region: "B", Group: "10"},
		{ID: 2, Region: "A", Group: "2"},
		{ID: 3, Region: "B", Group: "boss"},
		{ID: 4, Region: "", Group: "2.0"},
		{ID: 5, Region: "C", Group: ""},
	})
	if diff := cmp.Diff([]card.Region{"A", "B", "C"}, s.Regions()); diff != "" {
		t.Fatalf("regions mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]card.Group{"2", "10", "boss"}, s.Groups()); diff != "" {
		t.Fatalf("groups mismatch (-want +got):\n%s", diff)
	}
}

func TestStoreIsolatedFromInput(t *testing.T) {
	in := card.Sample()
	s := New(in)
	in[0].Name = "mutated"
	if c, _ := s.Lookup(1); c.Name != "Mushmon Card" {
		t.Fatalf("store should copy its input, got %q", c.Name)
	}
	out := s.Cards()
	out[0].Name = "mutated"
	if c, _ := s.Lookup(1); c.Name != "Mushmon Card" {
		t.Fatalf("Cards should return a copy, got %q", c.Name)
	}
}

func TestNilStore(t *testing.T) {
	var s *Store
	if s.Len() != 0 || s.Cards() != nil || s.IDs() != nil || s.Fallback() {
		t.Fatalf("nil store should behave as empty")
	}
	if _, ok := s.Lookup(1); ok {
		t.Fatalf("nil store lookup should miss")
	}
}
