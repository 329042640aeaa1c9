package isnad

import (
	"slices"
	"testing"
)

func TestLabelTablesComplete(t *testing.T) {
	for _, l := range Locales {
		for _, s := range Statuses {
			if statusLabels[l][s] == "" {
				t.Errorf("missing status label %s/%s", l, s)
			}
		}
		for _, g := range Generations {
			if generationLabels[l][g] == "" {
				t.Errorf("missing generation label %s/%s", l, g)
			}
		}
		if pivotMarkers[l] == "" {
			t.Errorf("missing pivot marker for %s", l)
		}
	}
}

func TestLabelFallback(t *testing.T) {
	if got := StatusLabel(Locale("de"), StatusWeak); got != "Weak" {
		t.Errorf("StatusLabel(de) = %q, want English fallback", got)
	}
	if got := GenerationLabel(LocaleArabic, GenerationSuccessors); got != "التابعون" {
		t.Errorf("GenerationLabel(ar) = %q", got)
	}
	if got := PivotMarker(Locale("xx")); got != "(common link)" {
		t.Errorf("PivotMarker(xx) = %q", got)
	}
}

func TestParseLocale(t *testing.T) {
	tests := []struct {
		in   string
		want Locale
		ok   bool
	}{
		{"en", LocaleEnglish, true},
		{"AR", LocaleArabic, true},
		{"fr-FR", LocaleFrench, true},
		{"fr_CA", LocaleFrench, true},
		{"de", DefaultLocale, false},
		{"", DefaultLocale, false},
	}
	for _, tt := range tests {
		got, ok := ParseLocale(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseLocale(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestParseStatusAndGeneration(t *testing.T) {
	if s, ok := ParseStatus(" Companion "); !ok || s != StatusCompanion {
		t.Errorf("ParseStatus = %v, %v", s, ok)
	}
	if s, ok := ParseStatus("saint"); ok || s != StatusUnknown {
		t.Errorf("ParseStatus(saint) = %v, %v", s, ok)
	}
	if g, ok := ParseGeneration("SUCCESSORSOFSUCCESSORS"); !ok || g != GenerationSuccessorsOfSuccessor {
		t.Errorf("ParseGeneration = %v, %v", g, ok)
	}
	if g, ok := ParseGeneration(""); ok || g != GenerationLater {
		t.Errorf("ParseGeneration(\"\") = %v, %v", g, ok)
	}
}

func TestGenerationLayer(t *testing.T) {
	for i, g := range Generations {
		if g.Layer() != i {
			t.Errorf("%s.Layer() = %d, want %d", g, g.Layer(), i)
		}
	}
	if Generation("bogus").Layer() != len(Generations)-1 {
		t.Error("unknown generation should sort last")
	}
}

func TestStatusIsTerminal(t *testing.T) {
	for _, s := range Statuses {
		want := s == StatusProphet || s == StatusCollector
		if s.IsTerminal() != want {
			t.Errorf("%s.IsTerminal() = %v", s, s.IsTerminal())
		}
	}
}

func TestLocalizedTextGet(t *testing.T) {
	text := LocalizedText{LocaleArabic: "سفيان", LocaleEnglish: " Sufyan "}
	if got := text.Get(LocaleFrench); got != "Sufyan" {
		t.Errorf("Get(fr) = %q, want English fallback", got)
	}
	if got := text.Get(LocaleArabic); got != "سفيان" {
		t.Errorf("Get(ar) = %q", got)
	}
	arOnly := LocalizedText{LocaleArabic: "شعبة"}
	if got := arOnly.Get(LocaleFrench); got != "شعبة" {
		t.Errorf("Get(fr) = %q, want Arabic fallback", got)
	}
	n := Narrator{Index: 7}
	if got := n.Name(LocaleEnglish); got != "#7" {
		t.Errorf("Name = %q, want #7", got)
	}
}

func TestDistinctIndices(t *testing.T) {
	h := Hadith{Chains: []Chain{
		{NarratorIndices: []int{1, 2, 3}},
		{NarratorIndices: []int{4, 2, 3, 5}},
	}}
	want := []int{1, 2, 3, 4, 5}
	if got := h.DistinctIndices(); !slices.Equal(got, want) {
		t.Errorf("DistinctIndices = %v, want %v", got, want)
	}
	rc := ResolvedChain{{Index: 9}, {Index: 3}}
	if got := rc.Indices(); !slices.Equal(got, []int{9, 3}) {
		t.Errorf("Indices = %v", got)
	}
}
