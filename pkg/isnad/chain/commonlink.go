package chain

import "github.com/mki/isnad/pkg/isnad"

// Tally counts how often each eligible narrator occurs across chains.
// Prophet and collector narrators are skipped. Order lists the counted
// indices in first-encounter order, walking each chain from the witness
// end.
type Tally struct {
	Counts map[int]int
	Order  []int
}

// Count builds the tally for chains.
func Count(chains []isnad.ResolvedChain) Tally {
	t := Tally{Counts: make(map[int]int)}
	for _, c := range chains {
		for i := len(c) - 1; i >= 0; i-- {
			n := c[i]
			if n.Status.IsTerminal() {
				continue
			}
			if _, seen := t.Counts[n.Index]; !seen {
				t.Order = append(t.Order, n.Index)
			}
			t.Counts[n.Index]++
		}
	}
	return t
}

// FindCommonLink returns the index of the narrator shared by the most
// chains. It reports false when there are fewer than two chains or when no
// eligible narrator occurs more than once.
func FindCommonLink(chains []isnad.ResolvedChain) (int, bool) {
	if len(chains) < 2 {
		return 0, false
	}
	t := Count(chains)

	best, bestCount := 0, 0
	for _, idx := range t.Order {
		// strict comparison keeps the earliest narrator on ties
		if c := t.Counts[idx]; c > bestCount {
			best, bestCount = idx, c
		}
	}
	if bestCount <= 1 {
		return 0, false
	}
	return best, true
}
