package isnad

import (
	"slices"
	"strconv"
	"strings"
)

// Status is the closed reliability/role classification of a narrator.
type Status string

const (
	StatusProphet     Status = "prophet"
	StatusCompanion   Status = "companion"
	StatusTrustworthy Status = "trustworthy"
	StatusTruthful    Status = "truthful"
	StatusUnknown     Status = "unknown"
	StatusWeak        Status = "weak"
	StatusCollector   Status = "collector"
)

// Statuses lists every status in declaration order.
var Statuses = []Status{
	StatusProphet,
	StatusCompanion,
	StatusTrustworthy,
	StatusTruthful,
	StatusUnknown,
	StatusWeak,
	StatusCollector,
}

// ParseStatus converts a stored status string. Unrecognized or empty
// values report ok=false.
func ParseStatus(s string) (Status, bool) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Statuses, st) {
		return st, true
	}
	return StatusUnknown, false
}

// IsTerminal reports whether the status marks a structural chain endpoint
// (the Prophet or the collector). Terminal narrators are shared by every
// chain by construction and never count as a common link.
func (s Status) IsTerminal() bool {
	return s == StatusProphet || s == StatusCollector
}

// Generation is the chronological cohort of a narrator. It only drives
// layout grouping and is independent of Status.
type Generation string

const (
	GenerationProphet               Generation = "prophet"
	GenerationCompanions            Generation = "companions"
	GenerationSuccessors            Generation = "successors"
	GenerationSuccessorsOfSuccessor Generation = "successorsOfSuccessors"
	GenerationLater                 Generation = "later"
)

// Generations is the fixed layer order, earliest cohort first.
var Generations = []Generation{
	GenerationProphet,
	GenerationCompanions,
	GenerationSuccessors,
	GenerationSuccessorsOfSuccessor,
	GenerationLater,
}

// ParseGeneration converts a stored generation string. Matching is
// case-insensitive; unrecognized values report ok=false.
func ParseGeneration(s string) (Generation, bool) {
	s = strings.TrimSpace(s)
	for _, g := range Generations {
		if strings.EqualFold(string(g), s) {
			return g, true
		}
	}
	return GenerationLater, false
}

// Layer returns the zero-based position of g in [Generations].
// Unknown generations sort into the last layer.
func (g Generation) Layer() int {
	if i := slices.Index(Generations, g); i >= 0 {
		return i
	}
	return len(Generations) - 1
}

// Narrator is a person in a transmission chain.
type Narrator struct {
	Index      int           `json:"index" bson:"_id"`
	Names      LocalizedText `json:"name" bson:"name"`
	Status     Status        `json:"status" bson:"status"`
	Generation Generation    `json:"generation" bson:"generation"`
	BirthYear  *int          `json:"birthYear,omitempty" bson:"birth_year,omitempty"`
	DeathYear  *int          `json:"deathYear,omitempty" bson:"death_year,omitempty"`
	Grade      string        `json:"grade,omitempty" bson:"grade,omitempty"`
	Biography  LocalizedText `json:"biography,omitempty" bson:"biography,omitempty"`
}

// Name returns the display name in locale l, falling back to English,
// then Arabic, then "#<index>".
func (n Narrator) Name(l Locale) string {
	if s := n.Names.Get(l); s != "" {
		return s
	}
	return "#" + strconv.Itoa(n.Index)
}

// Chain is an ordered list of narrator indices, collector first and the
// originating witness last.
type Chain struct {
	NarratorIndices []int `json:"narratorIndices" bson:"narrator_indices"`
}

// ResolvedChain is a chain whose indices were looked up. Unresolved
// indices are absent; the remaining order matches the source chain.
type ResolvedChain []Narrator

// Indices returns the narrator indices of c in order.
func (c ResolvedChain) Indices() []int {
	out := make([]int, len(c))
	for i, n := range c {
		out[i] = n.Index
	}
	return out
}

// Hadith is a reported statement with its transmission chains.
type Hadith struct {
	ID     string        `json:"id" bson:"_id"`
	Number int           `json:"number,omitempty" bson:"number,omitempty"`
	Source string        `json:"source" bson:"source"`
	Text   LocalizedText `json:"text" bson:"text"`
	Chains []Chain       `json:"chains" bson:"chains"`
}

// DistinctIndices returns every narrator index referenced by h's chains,
// in first-seen order.
func (h Hadith) DistinctIndices() []int {
	seen := make(map[int]bool)
	var out []int
	for _, c := range h.Chains {
		for _, idx := range c.NarratorIndices {
			if !seen[idx] {
				seen[idx] = true
				out = append(out, idx)
			}
		}
	}
	return out
}
