package grade

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/mki/isnad/pkg/isnad"
	"github.com/mki/isnad/pkg/isnad/textnorm"
)

// Result is the outcome of classifying one grade string.
type Result struct {
	Status     isnad.Status
	Generation isnad.Generation
	// Rule names the keyword group that matched, or "" for the default.
	Rule string
}

// Status returns the status for a raw grade string.
func Status(raw string) isnad.Status {
	return Classify(raw).Status
}

// Generation returns the generation for a raw grade string. An embedded
// "[Nth Generation]" marker takes precedence over keyword matching.
func Generation(raw string) isnad.Generation {
	if g, ok := structuredGeneration(raw); ok {
		return g
	}
	return Classify(raw).Generation
}

// Classify runs the keyword table against raw and returns the first match.
// The Generation field reflects keyword matching only; use [Generation]
// to honor the structured marker.
func Classify(raw string) Result {
	folded := textnorm.Fold(raw)
	if folded == "" {
		return defaultResult
	}
	for _, r := range compiled {
		if r.matches(folded) {
			return Result{Status: r.status, Generation: r.generation, Rule: r.name}
		}
	}
	return defaultResult
}

// Both classifies raw into a status and a generation in one call, with the
// structured generation marker applied.
func Both(raw string) (isnad.Status, isnad.Generation) {
	res := Classify(raw)
	if g, ok := structuredGeneration(raw); ok {
		return res.Status, g
	}
	return res.Status, res.Generation
}

var defaultResult = Result{Status: isnad.StatusUnknown, Generation: isnad.GenerationLater}

var generationMarker = regexp.MustCompile(`(?i)\[\s*(\d+)\s*(?:st|nd|rd|th)?\s+generation\s*\]`)

func structuredGeneration(raw string) (isnad.Generation, bool) {
	m := generationMarker.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return isnad.GenerationLater, true
	}
	return bucket(n), true
}

func bucket(n int) isnad.Generation {
	switch {
	case n == 1:
		return isnad.GenerationCompanions
	case n >= 2 && n <= 3:
		return isnad.GenerationSuccessors
	case n >= 4 && n <= 6:
		return isnad.GenerationSuccessorsOfSuccessor
	default:
		return isnad.GenerationLater
	}
}

type compiledRule struct {
	rule
	keywords []string
	excludes []string
}

func (r compiledRule) matches(folded string) bool {
	hit := false
	for _, k := range r.keywords {
		if strings.Contains(folded, k) {
			hit = true
			break
		}
	}
	if !hit {
		return false
	}
	for _, x := range r.excludes {
		if strings.Contains(folded, x) {
			return false
		}
	}
	return true
}

var compiled = compile(rules)

func compile(rs []rule) []compiledRule {
	out := make([]compiledRule, len(rs))
	for i, r := range rs {
		out[i] = compiledRule{rule: r, keywords: foldAll(r.keywords), excludes: foldAll(r.excludes)}
	}
	return out
}

func foldAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if f := textnorm.Fold(s); f != "" {
			out = append(out, f)
		}
	}
	return out
}
