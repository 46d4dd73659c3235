package i18n

import (
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
)

func TestEmbeddedLocales(t *testing.T) {
	b := Default()
	if diff := cmp.Diff([]Locale{EN, KR, PT}, b.Locales()); diff != "" {
		t.Fatalf("locales mismatch (-want +got):\n%s", diff)
	}
	want := map[Locale]Labels{
		EN: {Group: "Group", Points: "Points", Rate: "Rate", DropRate: "Drop rate", Details: "See details"},
		KR: {Group: "그룹", Points: "포인트", Rate: "확률", DropRate: "드롭률", Details: "자세히 보기"},
		PT: {Group: "Grupo", Points: "Pontos", Rate: "Taxa", DropRate: "Taxa de drop", Details: "Ver detalhes"},
	}
	for l, labels := range want {
		c, ok := b.Lookup(l)
		if !ok {
			t.Fatalf("missing locale %s", l)
		}
		got := Labels{Group: c.Labels.Group, Points: c.Labels.Points, Rate: c.Labels.Rate, DropRate: c.Labels.DropRate, Details: c.Labels.Details}
		if diff := cmp.Diff(labels, got); diff != "" {
			t.Fatalf("%s labels mismatch (-want +got):\n%s", l, diff)
		}
		if c.Labels.DropRate == c.Labels.Rate {
			t.Fatalf("%s: drop rate column shares the fusion rate label %q", l, c.Labels.Rate)
		}
	}
}

func TestHelpDocuments(t *testing.T) {
	b := Default()
	headings := map[Locale]string{
		EN: "Welcome to the Card Fusion Calculator!",
		KR: "카드 합성 계산기에 오신 것을 환영합니다!",
		PT: "Bem-vindo à Calculadora de Fusão de Cartas!",
	}
	for l, heading := range headings {
		help, err := b.Catalog(l).Help()
		if err != nil {
			t.Fatalf("%s help: %v", l, err)
		}
		if !strings.Contains(help, heading) {
			t.Fatalf("%s help missing heading %q", l, heading)
		}
		if strings.Contains(help, "{{") {
			t.Fatalf("%s help has unrendered template: %q", l, help)
		}
	}
	help, _ := b.Catalog(PT).Help()
	if !strings.Contains(help, "Pontos, Grupo ou Nº") {
		t.Fatalf("expected PT help to use PT labels, got %q", help)
	}
}

func TestDetailLine(t *testing.T) {
	got := Default().Catalog(EN).DetailLine("1", "A", "2")
	if got != "Group: 1 | Region: A | Points: 2" {
		t.Fatalf("unexpected detail line %q", got)
	}
}

func TestParse(t *testing.T) {
	b := Default()
	tests := map[string]Locale{
		"":      EN,
		"en":    EN,
		"KR":    KR,
		"kr":    KR,
		"ko":    KR,
		"ko-KR": KR,
		"pt-BR": PT,
		"PT":    PT,
		"en-GB": EN,
	}
	for in, want := range tests {
		got, err := b.Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("Parse(%q) = %s, want %s", in, got, want)
		}
	}
	for _, in := range []string{"de", "klingon!"} {
		if _, err := b.Parse(in); !errors.Is(err, ErrUnknownLocale) {
			t.Fatalf("Parse(%q): expected ErrUnknownLocale, got %v", in, err)
		}
	}
}

func TestCatalogFallsBackToDefault(t *testing.T) {
	if c := Default().Catalog("XX"); c.Locale != EN {
		t.Fatalf("expected fallback to EN, got %s", c.Locale)
	}
}

func TestNextCycles(t *testing.T) {
	b := Default()
	l := EN
	seen := []Locale{}
	for i := 0; i < 4; i++ {
		l = b.Next(l)
		seen = append(seen, l)
	}
	if diff := cmp.Diff([]Locale{KR, PT, EN, KR}, seen); diff != "" {
		t.Fatalf("cycle mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFromFSAddsLocaleWithoutCode(t *testing.T) {
	fsys := fstest.MapFS{
		"locales/en.yaml": {Data: []byte("locale: EN\ntag: en\nlabels: {group: G, points: P, rate: R, details: D}\n")},
		"locales/en.md":   {Data: []byte("help {{.Labels.Group}}")},
		"locales/fr.yaml": {Data: []byte("locale: FR\ntag: fr\nlabels: {group: Groupe, points: Points, rate: Taux, details: Détails}\n")},
		"locales/fr.md":   {Data: []byte("aide {{.Labels.Group}}")},
	}
	b, err := LoadFromFS(fsys)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	l, err := b.Parse("fr-CA")
	if err != nil || l != "FR" {
		t.Fatalf("expected FR, got %s (%v)", l, err)
	}
	help, err := b.Catalog(l).Help()
	if err != nil || help != "aide Groupe" {
		t.Fatalf("unexpected help %q (%v)", help, err)
	}
	if got := b.Catalog(l).DetailLine("1", "A", "2"); got != "Groupe: 1 | : A | Points: 2" {
		t.Fatalf("unexpected default detail line %q", got)
	}
}

func TestLoadFromFSValidation(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"no files": {},
		"missing default": {
			"locales/fr.yaml": {Data: []byte("locale: FR\ntag: fr\nlabels: {group: G, points: P, rate: R, details: D}\n")},
			"locales/fr.md":   {Data: []byte("x")},
		},
		"mismatched name": {
			"locales/en.yaml": {Data: []byte("locale: PT\ntag: pt\nlabels: {group: G, points: P, rate: R, details: D}\n")},
			"locales/en.md":   {Data: []byte("x")},
		},
		"missing help": {
			"locales/en.yaml": {Data: []byte("locale: EN\ntag: en\nlabels: {group: G, points: P, rate: R, details: D}\n")},
		},
		"missing label": {
			"locales/en.yaml": {Data: []byte("locale: EN\ntag: en\nlabels: {group: G, points: P}\n")},
			"locales/en.md":   {Data: []byte("x")},
		},
	}
	for name, fsys := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadFromFS(fsys); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
