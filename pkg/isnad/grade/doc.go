// Package grade classifies free-text scholarly grades and biographical
// notes into the closed [isnad.Status] and [isnad.Generation] enums.
//
// # Matching
//
// Input is folded with [textnorm.Fold] and matched by substring against an
// ordered table of keyword groups in English transliteration and Arabic.
// The first matching group wins. Groups are checked in this order:
//
//  1. prophet
//  2. companion, "(RA)"
//  3. follower (Tabi'), trustworthy by default
//  4. successor to the followers, trustworthy by default
//  5. century scholar, trustworthy
//  6. explicit trustworthy (thiqah, thabt, ...)
//  7. explicit truthful (saduq, ...)
//  8. explicit weak (da'if, matruk, ...)
//  9. collector or imam
//  10. client of the Prophet, counted as companion
//  11. relative of the Prophet, counted as companion
//
// Anything else is [isnad.StatusUnknown] / [isnad.GenerationLater].
//
// A group may carry exclusion keywords. The prophet group excludes
// "client of" and kinship phrases so that "Client of the Prophet" falls
// through to group 10, and the follower group excludes the phrasing of
// group 4.
//
// # Structured generation
//
// [Generation] first looks for an embedded "[Nth Generation]" marker. When
// present it decides the generation on its own: 1 maps to companions, 2-3 to
// successors, 4-6 to successors of the successors, anything else to later.
//
// Classification is pure and never fails.
package grade
