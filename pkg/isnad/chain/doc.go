// Package chain resolves raw narrator chains and detects their common link.
//
// Resolution is best effort: an index that the repository cannot resolve is
// dropped from the resolved chain and reported as a [Gap], never as an
// error. The remaining narrators keep their original order, and duplicate
// indices within one chain are kept as-is.
//
// [FindCommonLink] tallies narrators across the chains of one hadith and
// returns the one most chains pass through. Narrators whose status is
// prophet or collector are never candidates. Ties go to the narrator met
// first when walking the chains in order, each one from the witness end
// toward the collector, so the earliest point of convergence wins.
package chain
