package fits

import (
	"fmt"
	"sort"

	"github.com/joshuapare/fitskit/pkg/types"
)

// Header is an ordered collection of Cards with an auxiliary index from
// each distinct name to the ascending positions holding that name.
//
// Invariants: a non-commentary keyword occurs at most once; commentary
// cards (COMMENT, HISTORY, blank, HIERARCH of comment type) repeat
// freely; order is insertion order except where positional edits reorder
// cards. The END sentinel is never stored.
//
// A Header is not safe for concurrent mutation; Cards themselves are
// immutable and freely shareable.
type Header struct {
	cards []Card
	index map[string][]int
}

// NewHeader builds a header from an initial card list, enforcing the
// uniqueness invariant. END cards in the input are dropped (the sentinel
// is not a stored member).
func NewHeader(cards ...Card) (*Header, error) {
	h := &Header{index: make(map[string][]int, len(cards))}
	for _, c := range cards {
		if err := h.Add(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Len returns the number of stored cards.
func (h *Header) Len() int { return len(h.cards) }

// At returns the card at position i (0-based).
func (h *Header) At(i int) (Card, error) {
	if i < 0 || i >= len(h.cards) {
		return Card{}, fmt.Errorf("%w: position %d of %d", types.ErrBounds, i, len(h.cards))
	}
	return h.cards[i], nil
}

// Get returns the unique card for a non-commentary name, or the first
// match for a commentary name.
func (h *Header) Get(name string) (Card, error) {
	_, canonical, err := ParseKey(name)
	if err != nil {
		return Card{}, err
	}
	pos := h.index[canonical]
	if len(pos) == 0 {
		return Card{}, fmt.Errorf("%w: keyword %q", types.ErrNotFound, canonical)
	}
	return h.cards[pos[0]], nil
}

// Has reports whether any card with the given name is present.
func (h *Header) Has(name string) bool {
	_, canonical, err := ParseKey(name)
	if err != nil {
		return false
	}
	return len(h.index[canonical]) > 0
}

// Add appends a card, rejecting a second occurrence of a non-commentary
// keyword. END cards are silently dropped: the sentinel terminates a
// scan but is not a member of the sequence.
func (h *Header) Add(c Card) error {
	if c.typ == types.TypeEnd {
		return nil
	}
	if h.index == nil {
		h.index = make(map[string][]int)
	}
	if !c.IsCommentary() && len(h.index[c.name]) > 0 {
		return fmt.Errorf("%w: %q", types.ErrUniqueness, c.name)
	}
	h.cards = append(h.cards, c)
	h.index[c.name] = append(h.index[c.name], len(h.cards)-1)
	return nil
}

// Set assigns a value and comment under name. A present non-commentary
// name is replaced in place (position unchanged); otherwise a new card
// is appended. Commentary names always append.
func (h *Header) Set(name string, value any, comment string) error {
	c, err := NewCard(name, value, comment)
	if err != nil {
		return err
	}
	if c.typ == types.TypeEnd {
		return fmt.Errorf("%w: END cannot be stored in a header", types.ErrMalformedCard)
	}
	if !c.IsCommentary() {
		if pos := h.index[c.name]; len(pos) > 0 {
			h.cards[pos[0]] = c
			return nil
		}
	}
	return h.Add(c)
}

// SetAt rebuilds the card at position i from a name, value, and comment.
// The edit is rejected when the new name is non-commentary and already
// occupies a different position.
func (h *Header) SetAt(i int, name string, value any, comment string) error {
	if i < 0 || i >= len(h.cards) {
		return fmt.Errorf("%w: position %d of %d", types.ErrBounds, i, len(h.cards))
	}
	c, err := NewCard(name, value, comment)
	if err != nil {
		return err
	}
	if c.typ == types.TypeEnd {
		return fmt.Errorf("%w: END cannot be stored in a header", types.ErrMalformedCard)
	}
	if !c.IsCommentary() {
		for _, p := range h.index[c.name] {
			if p != i {
				return fmt.Errorf("%w: %q already at position %d", types.ErrUniqueness, c.name, p)
			}
		}
	}

	// Validate-then-apply: nothing above mutates, so the card list and
	// index stay consistent on failure.
	old := h.cards[i]
	h.cards[i] = c
	if old.name != c.name {
		h.dropIndex(old.name, i)
		h.pushIndex(c.name, i)
	}
	return nil
}

// Filter builds a new header containing only the cards matching p,
// preserving relative order.
func (h *Header) Filter(p Pattern) *Header {
	out := &Header{index: make(map[string][]int)}
	for _, c := range h.cards {
		if p.Match(c) {
			out.cards = append(out.cards, c)
			out.index[c.name] = append(out.index[c.name], len(out.cards)-1)
		}
	}
	return out
}

// Prune removes every card matching p and returns how many were removed.
func (h *Header) Prune(p Pattern) int {
	kept := h.cards[:0]
	removed := 0
	for _, c := range h.cards {
		if p.Match(c) {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	if removed > 0 {
		h.cards = kept
		h.rebuildIndex()
	}
	return removed
}

// Clone duplicates the header: a new container with the same card
// values. Cards are immutable, so no deeper copy is needed.
func (h *Header) Clone() *Header {
	out := &Header{
		cards: make([]Card, len(h.cards)),
		index: make(map[string][]int, len(h.index)),
	}
	copy(out.cards, h.cards)
	for name, pos := range h.index {
		out.index[name] = append([]int(nil), pos...)
	}
	return out
}

// Reset truncates the header to zero length.
func (h *Header) Reset() {
	h.cards = h.cards[:0]
	h.index = make(map[string][]int)
}

// Cards returns a copy of the card sequence in header order.
func (h *Header) Cards() []Card {
	return append([]Card(nil), h.cards...)
}

// dropIndex removes position pos from name's entry.
func (h *Header) dropIndex(name string, pos int) {
	entry := h.index[name]
	for i, p := range entry {
		if p == pos {
			entry = append(entry[:i], entry[i+1:]...)
			break
		}
	}
	if len(entry) == 0 {
		delete(h.index, name)
		return
	}
	h.index[name] = entry
}

// pushIndex inserts position pos into name's entry, keeping it sorted.
func (h *Header) pushIndex(name string, pos int) {
	entry := append(h.index[name], pos)
	sort.Ints(entry)
	h.index[name] = entry
}

func (h *Header) rebuildIndex() {
	h.index = make(map[string][]int, len(h.cards))
	for i, c := range h.cards {
		h.index[c.name] = append(h.index[c.name], i)
	}
}
