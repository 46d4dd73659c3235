package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tableflip.dev/cardfuse/pkg/card"
)

const requestTimeout = 30 * time.Second

// Source fetches raw card records.
type Source interface {
	Fetch(ctx context.Context) ([]card.Card, error)
	String() string
}

// document is the on-disk and over-the-wire shape of a catalog resource.
type document struct {
	Cards []card.Card `json:"cards" yaml:"cards"`
}

// Format selects the decoder for a catalog document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

// FormatFor guesses the format from a file name or URL path.
func FormatFor(name string) Format {
	if i := strings.IndexAny(name, "?#"); i >= 0 {
		name = name[:i]
	}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses a catalog document.
func Decode(r io.Reader, f Format) ([]card.Card, error) {
	var doc document
	switch f {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("catalog: decode yaml: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("catalog: decode json: %w", err)
		}
	}
	if doc.Cards == nil {
		return nil, errors.New("catalog: document has no cards list")
	}
	return doc.Cards, nil
}

// FileSource reads a catalog document from the local filesystem.
type FileSource struct {
	Path string
}

func (f FileSource) String() string {
	return f.Path
}

// Fetch implements Source.
func (f FileSource) Fetch(ctx context.Context) ([]card.Card, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("catalog: open %s: %w", f.Path, err)
	}
	defer fh.Close()
	return Decode(fh, FormatFor(f.Path))
}

// HTTPSource fetches a catalog document from a URL.
type HTTPSource struct {
	URL    string
	Client *http.Client
}

func (h HTTPSource) String() string {
	return h.URL
}

// Fetch implements Source.
func (h HTTPSource) Fetch(ctx context.Context) ([]card.Card, error) {
	client := h.Client
	if client == nil {
		client = &http.Client{Timeout: requestTimeout}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog: fetch %s: %w", h.URL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog: fetch %s: unexpected status %s", h.URL, resp.Status)
	}
	return Decode(resp.Body, FormatFor(h.URL))
}

// SourceFor picks a Source for a configured location: http(s) URLs are
// fetched, anything else is read as a file.
func SourceFor(location string) Source {
	location = strings.TrimSpace(location)
	lower := strings.ToLower(location)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return HTTPSource{URL: location}
	}
	return FileSource{Path: location}
}
