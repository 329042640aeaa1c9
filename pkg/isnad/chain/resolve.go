package chain

import (
	"context"

	"github.com/mki/isnad/pkg/isnad"
)

// Lookup finds a narrator by index. The boolean is false when the index
// does not resolve.
type Lookup func(index int) (isnad.Narrator, bool)

// Fetcher loads narrators in batch. Results may be partial and in any
// order; missing indices are simply absent.
type Fetcher interface {
	GetByIndices(ctx context.Context, indices []int) ([]isnad.Narrator, error)
}

// Gap records a narrator index that did not resolve.
type Gap struct {
	Chain    int `json:"chain"`    // position of the chain within the hadith
	Position int `json:"position"` // position of the index within the raw chain
	Index    int `json:"index"`
}

// LookupOf returns a Lookup backed by a batch of narrators. When the batch
// holds the same index twice the first record wins.
func LookupOf(narrators []isnad.Narrator) Lookup {
	byIndex := make(map[int]isnad.Narrator, len(narrators))
	for _, n := range narrators {
		if _, ok := byIndex[n.Index]; !ok {
			byIndex[n.Index] = n
		}
	}
	return func(index int) (isnad.Narrator, bool) {
		n, ok := byIndex[index]
		return n, ok
	}
}

// Resolve maps each index of c through lookup, keeping the order of c and
// dropping indices that do not resolve. The dropped indices are returned
// as gaps with Chain set to zero.
func Resolve(c isnad.Chain, lookup Lookup) (isnad.ResolvedChain, []Gap) {
	out := make(isnad.ResolvedChain, 0, len(c.NarratorIndices))
	var gaps []Gap
	for pos, idx := range c.NarratorIndices {
		n, ok := lookup(idx)
		if !ok {
			gaps = append(gaps, Gap{Position: pos, Index: idx})
			continue
		}
		out = append(out, n)
	}
	return out, gaps
}

// ResolveAll resolves every chain of h with the same lookup. The result has
// one entry per chain, possibly empty.
func ResolveAll(h isnad.Hadith, lookup Lookup) ([]isnad.ResolvedChain, []Gap) {
	chains := make([]isnad.ResolvedChain, len(h.Chains))
	var gaps []Gap
	for i, c := range h.Chains {
		resolved, missing := Resolve(c, lookup)
		chains[i] = resolved
		for _, g := range missing {
			g.Chain = i
			gaps = append(gaps, g)
		}
	}
	return chains, gaps
}

// ResolveHadith fetches every narrator referenced by h in a single batch
// and resolves all of its chains against it. Only fetch failures are
// returned as errors.
func ResolveHadith(ctx context.Context, f Fetcher, h isnad.Hadith) ([]isnad.ResolvedChain, []Gap, error) {
	indices := h.DistinctIndices()
	var batch []isnad.Narrator
	if len(indices) > 0 {
		var err error
		batch, err = f.GetByIndices(ctx, indices)
		if err != nil {
			return nil, nil, err
		}
	}
	chains, gaps := ResolveAll(h, LookupOf(batch))
	return chains, gaps, nil
}
