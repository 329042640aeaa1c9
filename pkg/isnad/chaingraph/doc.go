// Package chaingraph builds the layered graph of a hadith's narrator chains.
//
// Each resolved chain is walked from the originating witness toward the
// collector and contributes one edge per consecutive pair of narrators.
// Chains that share a sub-path share its edges: a (from, to) pair is
// recorded once however many chains pass through it. Narrators are
// deduplicated by index and grouped into layers by generation, in the
// fixed order given by [isnad.Generations].
//
// Every node carries a shape hint and a style class. The Prophet is drawn
// as a terminal, the collector as a hexagon and everyone else as a plain
// rectangle. The style class is the narrator's status, except for the
// common link of the hadith whose class is [graph.StylePivot] and whose
// label carries a localized marker.
//
// A hadith whose chains all resolve empty yields an empty graph. That is
// a displayable "no chain data" state and not an error.
package chaingraph
