// Package repository adapts narrator and hadith stores to the chain
// pipeline.
//
// Backends (memstore, csvstore, sqlstore, mongostore) implement
// [NarratorStore] and [HadithStore] and return records as stored. The
// adapters in this package sit on top of them and take care of what every
// caller needs:
//
//   - records are normalized at the boundary: a missing or unrecognized
//     status or generation is classified from the raw grade text, and
//     blank translations are dropped
//   - lookups are cached for the life of the adapter; entries are set
//     once per key and concurrent misses for the same batch share a
//     single store call
//   - store failures are wrapped as REPOSITORY_ERROR; an index that the
//     store does not know is simply omitted from the result
//
// Construct one [Narrators] and one [Hadiths] at startup and pass them to
// the components that need them. [Narrators.ClearCache] and
// [Hadiths.ClearCache] reset the caches.
package repository
