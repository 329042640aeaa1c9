package repository

import (
	"strings"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/grade"
)

// NormalizeNarrator fills in what the core relies on. A status or
// generation that is empty or unrecognized is classified from the grade.
func NormalizeNarrator(n isnad.Narrator) isnad.Narrator {
	n.Grade = strings.TrimSpace(n.Grade)

	if st, ok := isnad.ParseStatus(string(n.Status)); ok {
		n.Status = st
	} else {
		n.Status = grade.Status(n.Grade)
	}
	if g, ok := isnad.ParseGeneration(string(n.Generation)); ok {
		n.Generation = g
	} else {
		n.Generation = grade.Generation(n.Grade)
	}

	n.Names = cleanText(n.Names)
	n.Biography = cleanText(n.Biography)
	return n
}

// NormalizeHadith trims text and drops chains without indices.
func NormalizeHadith(h isnad.Hadith) isnad.Hadith {
	h.ID = strings.TrimSpace(h.ID)
	h.Source = strings.TrimSpace(h.Source)
	h.Text = cleanText(h.Text)

	chains := h.Chains[:0:0]
	for _, c := range h.Chains {
		if len(c.NarratorIndices) > 0 {
			chains = append(chains, c)
		}
	}
	h.Chains = chains
	return h
}

func cleanText(t isnad.LocalizedText) isnad.LocalizedText {
	out := make(isnad.LocalizedText, len(t))
	for l, s := range t {
		if s = strings.TrimSpace(s); s != "" {
			out[l] = s
		}
	}
	return out
}
