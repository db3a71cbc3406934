// Package fits parses, represents, and manages FITS header cards: the
// 80-byte fixed-width metadata records of the Flexible Image Transport
// System astronomical data format.
//
// The core model is three layers. A Key packs a short keyword into a
// fixed integer for O(1) comparison; long or multi-word keywords escape
// under the reserved HIERARCH key. A Card is an immutable tagged record
// holding one typed value (logical, integer, float, complex, string) or
// a commentary/undefined sentinel, plus the trailing comment. A Header
// is an ordered, indexed collection of cards enforcing keyword
// uniqueness for non-commentary keywords, with name, pattern, and
// positional search, in-place editing, filtering, and merge.
//
// Parsing flows one way: bytes through the card scanner and the
// per-grammar value parsers into Cards, collected into a Header.
// Formatting is the inverse, and re-parsing formatted output recovers
// equal cards.
//
// Cards are immutable and freely shareable across goroutines. A Header
// is not synchronized; callers that mutate one concurrently must
// serialize access themselves.
package fits
