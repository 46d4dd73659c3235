package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"tableflip.dev/cardfuse/pkg/selection"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string      { return t.path }
func (t testConfig) CatalogSource() string { return "" }
func (t testConfig) Locale() string        { return "EN" }

type brokenKV struct{}

func (brokenKV) Get(string) (string, bool, error) { return "", false, errors.New("disk on fire") }
func (brokenKV) Set(string, string) error         { return errors.New("disk on fire") }

func TestSelectionsRoundTripOnDisk(t *testing.T) {
	base := t.TempDir()
	s, err := Load(testConfig{path: base}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := s.Load(); got.Len() != 0 {
		t.Fatalf("expected empty selection on fresh store, got %v", got)
	}
	if err := s.Save(selection.New(6, 1)); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(base, SelectionKey))
	if err != nil {
		t.Fatalf("read backing file: %v", err)
	}
	if string(raw) != "[1,6]" {
		t.Fatalf("expected serialized ids [1,6], got %s", raw)
	}

	reopened, err := Load(testConfig{path: base}, nil)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if diff := cmp.Diff([]int{1, 6}, reopened.Load().IDs()); diff != "" {
		t.Fatalf("reloaded mismatch (-want +got):\n%s", diff)
	}
}

func TestSelectionsLoadFailsSoft(t *testing.T) {
	tests := map[string]string{
		"garbage":     "{not json",
		"wrong shape": `{"ids":[1]}`,
		"strings":     `["a","b"]`,
		"empty":       "",
		"null":        "null",
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			kv := NewMemoryKV()
			if err := kv.Set(SelectionKey, raw); err != nil {
				t.Fatalf("seed: %v", err)
			}
			core, logs := observer.New(zapcore.WarnLevel)
			s := &Selections{KV: kv, Logger: zap.New(core)}
			got := s.Load()
			if got == nil || got.Len() != 0 {
				t.Fatalf("expected empty selection, got %v", got)
			}
			corrupt := name == "garbage" || name == "wrong shape" || name == "strings"
			if corrupt && logs.Len() != 1 {
				t.Fatalf("expected a warning for corrupt data, got %d", logs.Len())
			}
		})
	}
}

func TestSelectionsLoadUnreadableStore(t *testing.T) {
	s := &Selections{KV: brokenKV{}}
	if got := s.Load(); got.Len() != 0 {
		t.Fatalf("expected empty selection, got %v", got)
	}
	if err := s.Save(selection.New(1)); err == nil {
		t.Fatalf("expected save error to surface")
	}
}

func TestSelectionsWithoutKV(t *testing.T) {
	var s *Selections
	if s.Load().Len() != 0 {
		t.Fatalf("nil selections should load empty")
	}
	if err := (&Selections{}).Save(selection.New()); err == nil {
		t.Fatalf("expected error saving without a store")
	}
	if _, err := (&Selections{KV: NewMemoryKV()}).Watch(context.Background()); !errors.Is(err, ErrWatchUnsupported) {
		t.Fatalf("expected ErrWatchUnsupported, got %v", err)
	}
}

func TestDiskKVRejectsBadKeys(t *testing.T) {
	kv, err := OpenDiskKV(t.TempDir())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	for _, key := range []string{"", "a/b", `a\b`, tempDirName} {
		if err := kv.Set(key, "x"); err == nil {
			t.Fatalf("expected error for key %q", key)
		}
	}
	if _, ok, err := kv.Get("missing"); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}
	if _, err := OpenDiskKV(" "); err == nil {
		t.Fatalf("expected error for blank base path")
	}
}

func TestWatchSeesWritesFromAnotherStore(t *testing.T) {
	base := t.TempDir()
	watcherSide, err := Load(testConfig{path: base}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	writerSide, err := Load(testConfig{path: base}, nil)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := watcherSide.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := writerSide.Save(selection.New(10)); err != nil {
		t.Fatalf("save: %v", err)
	}

	select {
	case evt := <-ch:
		if evt.Key != SelectionKey {
			t.Fatalf("expected key %q, got %q", SelectionKey, evt.Key)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for selection change event")
	}
	if diff := cmp.Diff([]int{10}, watcherSide.Load().IDs()); diff != "" {
		t.Fatalf("watcher side did not see write (-want +got):\n%s", diff)
	}

	cancel()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("expected channel to close after cancel")
		}
	}
}

func TestLoadConfigDefaultsAndFile(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CARDFUSE_CONFIG_PATH", dir)
	t.Setenv("CARDFUSE_PATH", "")
	t.Setenv("CARDFUSE_CATALOG", "")
	t.Setenv("CARDFUSE_LOCALE", "")
	os.Unsetenv("CARDFUSE_PATH")
	os.Unsetenv("CARDFUSE_CATALOG")
	os.Unsetenv("CARDFUSE_LOCALE")

	cwd, _ := os.Getwd()
	if err := os.Chdir(t.TempDir()); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load defaults: %v", err)
	}
	if cfg.CatalogSource() != defaultCatalog || cfg.Locale() != defaultLocale || cfg.Path != defaultPath {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.BasePath() == defaultPath {
		t.Fatalf("expected ~ to be expanded, got %q", cfg.BasePath())
	}

	body := "path: /tmp/cards-db\ncatalog: https://example.com/cards.json\nlocale: KR\n"
	if err := os.WriteFile(filepath.Join(dir, ".cardfuse.yaml"), []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	want := &FileConfig{Path: "/tmp/cards-db", Catalog: "https://example.com/cards.json", Lang: "KR"}
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}

	t.Setenv("CARDFUSE_LOCALE", "PT")
	cfg, err = LoadConfig()
	if err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.Locale() != "PT" {
		t.Fatalf("expected env override PT, got %q", cfg.Locale())
	}
}
