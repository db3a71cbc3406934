package fits

import (
	"fmt"

	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/types"
)

// CardIterator scans consecutive 80-byte cards out of a byte buffer,
// stopping at the END sentinel or at the end of the buffer (which acts
// as an implicit END). The buffer may start at any card boundary of a
// larger FITS file; block alignment is not required.
type CardIterator struct {
	buf  []byte
	off  int
	cur  Card
	err  error
	done bool
}

// NewCardIterator returns an iterator over the cards packed in buf.
func NewCardIterator(buf []byte) *CardIterator {
	return &CardIterator{buf: buf}
}

// Next advances to the next card, reporting whether one is available.
// It returns false at the END sentinel and on the first malformed card;
// check Err afterwards.
func (it *CardIterator) Next() bool {
	if it.done {
		return false
	}
	c, err := ParseCard(it.buf, it.off)
	if err != nil {
		it.err = fmt.Errorf("card at offset %d: %w", it.off, err)
		it.done = true
		return false
	}
	if c.Type() == types.TypeEnd {
		it.done = true
		return false
	}
	it.cur = c
	it.off += format.CardSize
	return true
}

// Card returns the current card. Valid only after Next reported true.
func (it *CardIterator) Card() Card { return it.cur }

// Err returns the first scanning error, if any.
func (it *CardIterator) Err() error { return it.err }

// Offset returns the byte offset of the next card to scan.
func (it *CardIterator) Offset() int { return it.off }

// ReadHeader parses one complete header from buf: every card up to the
// END sentinel, collected under the header invariants. A malformed card
// or a duplicated non-commentary keyword aborts the read; callers that
// prefer skipping bad cards can drive a CardIterator directly.
func ReadHeader(buf []byte) (*Header, error) {
	h, _ := NewHeader()
	it := NewCardIterator(buf)
	for it.Next() {
		if err := h.Add(it.Card()); err != nil {
			return nil, fmt.Errorf("card at offset %d: %w", it.Offset()-format.CardSize, err)
		}
	}
	if err := it.Err(); err != nil {
		return nil, err
	}
	return h, nil
}
