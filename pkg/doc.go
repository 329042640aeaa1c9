// Package pkg provides the core libraries of isnad, which turns the chains of
// narrators (isnad) attached to a hadith into a layered graph.
//
// # Overview
//
// A hadith carries one or more chains of narrator indices, collector first
// and Prophet last. Each index is resolved against a narrator store, the
// resolved chains are merged into one graph where shared narrators appear
// once, and the narrator where two or more chains converge is marked as
// the common link (madār). The graph is laid out in generations and
// rendered for people or tools.
//
// # Architecture
//
//	Narrator / hadith store (memory, CSV, SQL, MongoDB)
//	         ↓
//	    [repository] (batched, cached lookups)
//	         ↓
//	    [isnad/chain] (resolve indices, report gaps)
//	         ↓
//	    [isnad/chaingraph] (merge chains, find the common link)
//	         ↓
//	    [graph] (diagram description)
//	         ↓
//	    [render/nodelink], [render/mermaid] (DOT, SVG, PNG, PDF, Mermaid)
//
// # Quick Start
//
//	store := memstore.New(narrators, hadiths)
//	runner := pipeline.NewRunner(
//	    repository.NewNarrators(store, nil),
//	    repository.NewHadiths(store, nil),
//	    nil, nil, nil)
//
//	res, err := runner.Execute(ctx, "bukhari-1", pipeline.Options{
//	    Locale:  "ar",
//	    Formats: []string{pipeline.FormatSVG},
//	})
//	svg := res.Artifacts[pipeline.FormatSVG]
//
// # Main Packages
//
// ## Domain
//
// [isnad] - Narrator, hadith and chain types, statuses, generations and
// localized labels.
//
// [isnad/grade] - Classifies free-text biographical grades into a
// reliability status and a generation.
//
// [isnad/textnorm] - Arabic-aware folding used for name search.
//
// [isnad/chain] - Resolves chains against the narrator repository in one
// batch per hadith.
//
// [isnad/chaingraph] - Merges resolved chains into a graph and finds the
// common link.
//
// ## Data
//
// [repository] - Narrator and hadith repositories over a [repository.Store]
// with in-process caching and request coalescing. Backends live in
// subpackages: memstore, csvstore, sqlstore (SQLite, PostgreSQL) and
// mongostore.
//
// [backend] - Opens the store and cache selected by [config].
//
// [cache] - File, Redis and null caches plus key derivation.
//
// [httputil] - Cached HTTP client with retry, used to fetch remote CSV
// exports.
//
// ## Presentation
//
// [graph] - The diagram description shared by renderers, the HTTP API and
// the diagram cache.
//
// [dag] - Row-based DAG used to validate diagrams.
//
// [render] - Style palette shared by renderers.
//
// [pipeline] - Chain → diagram → artifacts with caching, used by the CLI
// and the HTTP server.
//
// ## Infrastructure
//
// [config] - TOML configuration with environment overrides.
//
// [errors] - Coded errors and their HTTP status mapping.
//
// [observability] - Hooks for resolution, build and cache events.
//
// [buildinfo] - Version information set at build time.
//
// # Testing
//
//	go test ./...                                # all tests
//	go test ./pkg/repository/sqlstore -run Postgres  # needs Docker
package pkg
