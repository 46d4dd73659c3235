// Package i18n holds the locale catalogs: the short labels used by the table
// and summary line, and the help document of each locale.
package i18n

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrUnknownLocale is returned for locales no catalog defines.
var ErrUnknownLocale = errors.New("i18n: unknown locale")

// Locale identifies a catalog, e.g. "EN".
type Locale string

const (
	EN Locale = "EN"
	KR Locale = "KR"
	PT Locale = "PT"

	// DefaultLocale is used when no locale is configured and as the fallback
	// for unknown ones.
	DefaultLocale = EN
)

// Labels are the short strings shown in headers and the summary line.
type Labels struct {
	Group    string `yaml:"group"`
	Points   string `yaml:"points"`
	Rate     string `yaml:"rate"`
	DropRate string `yaml:"dropRate"`
	Details  string `yaml:"details"`
	Name     string `yaml:"name"`
	Region   string `yaml:"region"`
	ID       string `yaml:"id"`
	Search   string `yaml:"search"`
	Help     string `yaml:"help"`
	Selected string `yaml:"selected"`
	All      string `yaml:"all"`
}

// Messages are longer sentences used by the details panel and status line.
type Messages struct {
	NoSelection string `yaml:"noSelection"`
	DetailLine  string `yaml:"detailLine"`
	Fallback    string `yaml:"fallback"`
}

type catalogFile struct {
	Locale   string   `yaml:"locale"`
	Tag      string   `yaml:"tag"`
	Name     string   `yaml:"name"`
	Labels   Labels   `yaml:"labels"`
	Messages Messages `yaml:"messages"`
}

// Catalog is everything one locale provides.
type Catalog struct {
	Locale   Locale
	Tag      language.Tag
	Name     string
	Labels   Labels
	Messages Messages

	help   *template.Template
	detail *template.Template
}

// Help renders the locale's markdown help document.
func (c *Catalog) Help() (string, error) {
	var buf bytes.Buffer
	if err := c.help.Execute(&buf, struct{ Labels Labels }{c.Labels}); err != nil {
		return "", fmt.Errorf("i18n: render help for %s: %w", c.Locale, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// DetailLine formats the per-card line of the details panel.
func (c *Catalog) DetailLine(group, region, points string) string {
	var buf bytes.Buffer
	data := struct{ Group, Region, Points string }{group, region, points}
	if err := c.detail.Execute(&buf, data); err != nil {
		return fmt.Sprintf("%s: %s | %s: %s | %s: %s", c.Labels.Group, group, c.Labels.Region, region, c.Labels.Points, points)
	}
	return buf.String()
}

// Bundle holds all loaded catalogs.
type Bundle struct {
	catalogs map[Locale]*Catalog
	order    []Locale
	matcher  language.Matcher
}

//go:embed locales/*.yaml locales/*.md
var embeddedFS embed.FS

var defaultBundle = mustLoadEmbedded()

// Default returns the bundle of embedded catalogs.
func Default() *Bundle {
	return defaultBundle
}

func mustLoadEmbedded() *Bundle {
	b, err := LoadFromFS(embeddedFS)
	if err != nil {
		panic(err)
	}
	return b
}

// LoadFromFS loads every locales/<code>.yaml with its locales/<code>.md help
// document. Adding a locale needs only these two files.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, "locales/*.yaml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("i18n: no catalog files found")
	}
	sort.Strings(paths)

	b := &Bundle{catalogs: map[Locale]*Catalog{}}
	for _, p := range paths {
		c, err := loadCatalog(fsys, p)
		if err != nil {
			return nil, err
		}
		if _, dup := b.catalogs[c.Locale]; dup {
			return nil, fmt.Errorf("i18n: catalog %s: locale %s defined twice", p, c.Locale)
		}
		b.catalogs[c.Locale] = c
	}
	if _, ok := b.catalogs[DefaultLocale]; !ok {
		return nil, fmt.Errorf("i18n: default locale %s is not defined", DefaultLocale)
	}

	b.order = append(b.order, DefaultLocale)
	for l := range b.catalogs {
		if l != DefaultLocale {
			b.order = append(b.order, l)
		}
	}
	sort.Slice(b.order[1:], func(i, j int) bool { return b.order[1+i] < b.order[1+j] })

	tags := make([]language.Tag, 0, len(b.order))
	for _, l := range b.order {
		tags = append(tags, b.catalogs[l].Tag)
	}
	b.matcher = language.NewMatcher(tags)
	return b, nil
}

func loadCatalog(fsys fs.FS, p string) (*Catalog, error) {
	data, err := fs.ReadFile(fsys, p)
	if err != nil {
		return nil, fmt.Errorf("i18n: read %s: %w", p, err)
	}
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("i18n: parse %s: %w", p, err)
	}

	code := strings.TrimSuffix(path.Base(p), path.Ext(p))
	locale := Locale(strings.ToUpper(strings.TrimSpace(file.Locale)))
	if locale == "" {
		return nil, fmt.Errorf("i18n: catalog %s: locale is required", p)
	}
	if string(locale) != strings.ToUpper(code) {
		return nil, fmt.Errorf("i18n: catalog %s: locale %q must match file name %q", p, file.Locale, code)
	}
	tag, err := language.Parse(file.Tag)
	if err != nil {
		return nil, fmt.Errorf("i18n: catalog %s: tag %q: %w", p, file.Tag, err)
	}
	if file.Labels.Group == "" || file.Labels.Points == "" || file.Labels.Rate == "" || file.Labels.Details == "" {
		return nil, fmt.Errorf("i18n: catalog %s: group, points, rate and details labels are required", p)
	}

	helpPath := strings.TrimSuffix(p, path.Ext(p)) + ".md"
	helpSrc, err := fs.ReadFile(fsys, helpPath)
	if err != nil {
		return nil, fmt.Errorf("i18n: catalog %s: help document: %w", p, err)
	}
	help, err := template.New(helpPath).Option("missingkey=error").Parse(string(helpSrc))
	if err != nil {
		return nil, fmt.Errorf("i18n: parse %s: %w", helpPath, err)
	}

	line := file.Messages.DetailLine
	if line == "" {
		line = file.Labels.Group + ": {{.Group}} | " + file.Labels.Region + ": {{.Region}} | " + file.Labels.Points + ": {{.Points}}"
	}
	detail, err := template.New(p + "#detailLine").Parse(line)
	if err != nil {
		return nil, fmt.Errorf("i18n: catalog %s: detailLine: %w", p, err)
	}

	return &Catalog{
		Locale:   locale,
		Tag:      tag,
		Name:     file.Name,
		Labels:   file.Labels,
		Messages: file.Messages,
		help:     help,
		detail:   detail,
	}, nil
}

// Locales lists the loaded locales, default first.
func (b *Bundle) Locales() []Locale {
	return append([]Locale(nil), b.order...)
}

// Lookup returns the catalog for l.
func (b *Bundle) Lookup(l Locale) (*Catalog, bool) {
	c, ok := b.catalogs[l]
	return c, ok
}

// Catalog returns the catalog for l, or the default locale's catalog.
func (b *Bundle) Catalog(l Locale) *Catalog {
	if c, ok := b.catalogs[l]; ok {
		return c
	}
	return b.catalogs[DefaultLocale]
}

// Parse resolves a locale code ("kr") or a language tag ("pt-BR", "ko").
func (b *Bundle) Parse(raw string) (Locale, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultLocale, nil
	}
	if l := Locale(strings.ToUpper(raw)); b.catalogs[l] != nil {
		return l, nil
	}
	tag, err := language.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w %q", ErrUnknownLocale, raw)
	}
	_, idx, conf := b.matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("%w %q", ErrUnknownLocale, raw)
	}
	return b.order[idx], nil
}

// Next returns the locale after l in Locales order, wrapping around.
func (b *Bundle) Next(l Locale) Locale {
	for i, candidate := range b.order {
		if candidate == l {
			return b.order[(i+1)%len(b.order)]
		}
	}
	return DefaultLocale
}
