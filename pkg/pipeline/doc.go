// Package pipeline runs the chain pipeline shared by the CLI and the HTTP
// server: fetch a hadith, resolve its chains in one narrator batch, build
// the chain graph, describe it for renderers and optionally render it.
//
// # Stages
//
//  1. Fetch: load the hadith from the hadith repository. A missing hadith
//     is a HADITH_NOT_FOUND error.
//  2. Resolve: collect the distinct narrator indices of every chain, look
//     them up with a single repository call and resolve each chain. Indices
//     the repository does not know are dropped from their chain and logged
//     as data gaps; they are not errors.
//  3. Build: turn the resolved chains into a chain graph, find the common
//     link and produce a [graph.Diagram].
//  4. Render: turn the diagram into the requested formats (json, dot, svg,
//     png, pdf, mermaid).
//
// Diagrams and rendered artifacts are cached through [cache.Cache]. A hadith
// whose chains resolve to nothing yields an empty diagram and
// [Result.Empty] set, never an error.
//
// # Usage
//
//	runner := pipeline.NewRunner(narrators, hadiths, c, nil, logger)
//	res, err := runner.Execute(ctx, "bukhari-1", pipeline.Options{
//	    Locale:  "ar",
//	    Formats: []string{"svg"},
//	})
//	svg := res.Artifacts["svg"]
//
// [graph.Diagram]: github.com/mki/isnad/pkg/graph#Diagram
// [cache.Cache]: github.com/mki/isnad/pkg/cache#Cache
package pipeline
