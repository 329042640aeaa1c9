// Package isnad defines the data model shared by the narrator-chain
// (isnad) packages: narrators, hadiths, their chains, and the closed
// status and generation classifications used for layout and styling.
//
// # Model
//
// A [Narrator] is a person in a transmission chain, keyed by a stable
// numeric index. Every narrator carries exactly one [Status] (reliability
// or role) and one [Generation] (chronological cohort). Both default to
// [StatusUnknown] and [GenerationLater] when a record cannot be classified.
//
// A [Hadith] owns one or more [Chain] values. A chain is ordered from the
// collector who recorded the report toward the witness closest to the
// Prophet. Chains of one hadith may share narrators; the narrator shared
// by most chains is the common link (see package chain).
//
// # Localization
//
// Display strings are held in enum-keyed tables ([StatusLabel],
// [GenerationLabel], [PivotMarker]) so that a missing entry is a test
// failure rather than a blank label at render time.
//
// Entities in this package are read-only once loaded. Nothing here
// performs I/O.
package isnad
