// Package format houses low-level codecs for the FITS header card format.
// The goal is to keep the scanning focused, allocation-free where possible,
// and independent from the public API so higher-level packages can
// orchestrate the data in a more ergonomic form.
package format

const (
	// CardSize is the fixed width of a single header card in bytes.
	CardSize = 80

	// BlockSize is the size of a FITS block. Header cards pack
	// consecutively into blocks of this size.
	BlockSize = 2880

	// CardsPerBlock is the number of cards in one FITS block.
	CardsPerBlock = BlockSize / CardSize

	// KeywordSize is the width of the short keyword field (columns 1-8).
	KeywordSize = 8

	// IndicatorOffset is the column of the '=' value indicator for short
	// keywords (column 9, zero-based 8).
	IndicatorOffset = 8

	// ValueOffset is the first column of the value field for short
	// keywords (column 11, zero-based 10).
	ValueOffset = 10

	// HierarchNameOffset is the column where the free-form name of a
	// HIERARCH card begins, right after the "HIERARCH " prefix.
	HierarchNameOffset = 9
)

const (
	// HierarchKeyword is the reserved keyword escaping long or multi-word
	// names (ESO HIERARCH convention).
	HierarchKeyword = "HIERARCH"

	// EndKeyword terminates a header.
	EndKeyword = "END"

	// CommentKeyword and HistoryKeyword are the repeatable commentary
	// keywords. A fully blank keyword field is commentary as well.
	CommentKeyword = "COMMENT"
	HistoryKeyword = "HISTORY"
)
