package fits

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/joshuapare/fitskit/pkg/types"
)

// Pattern matches cards during search, filtering, and iteration. The
// constructors below cover the supported lookup shapes: an exact name, a
// regular expression over the full name, an arbitrary predicate, and
// "same keyword as this card".
type Pattern interface {
	Match(Card) bool
}

type namePattern string

func (p namePattern) Match(c Card) bool { return c.name == string(p) }

// ByName matches cards whose canonical name equals name. The name is
// canonicalized the same way card construction canonicalizes it, so
// "simple" matches SIMPLE and long names match their HIERARCH form.
func ByName(name string) Pattern {
	_, canonical, err := ParseKey(name)
	if err != nil {
		// An unencodable name cannot appear on any card; keep the
		// uppercased literal so the pattern simply never matches.
		canonical = strings.ToUpper(strings.Trim(name, " "))
	}
	return namePattern(canonical)
}

type regexpPattern struct{ re *regexp.Regexp }

func (p regexpPattern) Match(c Card) bool { return p.re.MatchString(c.name) }

// ByRegexp matches cards whose full name matches re.
func ByRegexp(re *regexp.Regexp) Pattern { return regexpPattern{re: re} }

type funcPattern func(Card) bool

func (p funcPattern) Match(c Card) bool { return p(c) }

// ByFunc matches cards satisfying the predicate.
func ByFunc(fn func(Card) bool) Pattern { return funcPattern(fn) }

type keyPattern struct {
	key  Key
	name string
}

func (p keyPattern) Match(c Card) bool {
	if c.key != p.key {
		return false
	}
	// All HIERARCH cards share the reserved key; the long name breaks
	// the tie.
	if p.key.IsHierarch() {
		return c.name == p.name
	}
	return true
}

// ByKey matches cards carrying the same keyword as ref: identical packed
// key, and for HIERARCH cards the identical long name. Use it to find
// the next or previous occurrence of a card's keyword.
func ByKey(ref Card) Pattern { return keyPattern{key: ref.key, name: ref.name} }

// FindFirst returns the position of the first card matching p, or -1.
func (h *Header) FindFirst(p Pattern) int {
	pos, _ := h.FindNext(p, 0)
	return pos
}

// FindLast returns the position of the last card matching p, or -1.
func (h *Header) FindLast(p Pattern) int {
	pos, _ := h.FindPrev(p, len(h.cards)-1)
	return pos
}

// FindNext scans forward from start for the first card matching p and
// returns its position, or -1 when no card matches. start may legally be
// one past the end (yielding -1); positions further out are a bounds
// error.
func (h *Header) FindNext(p Pattern, start int) (int, error) {
	if start < 0 || start > len(h.cards) {
		return -1, fmt.Errorf("%w: search start %d of %d", types.ErrBounds, start, len(h.cards))
	}
	for i := start; i < len(h.cards); i++ {
		if p.Match(h.cards[i]) {
			return i, nil
		}
	}
	return -1, nil
}

// FindPrev scans backward from start for the first card matching p and
// returns its position, or -1 when no card matches. start may legally be
// one before the beginning (-1, yielding -1); positions further out are
// a bounds error.
func (h *Header) FindPrev(p Pattern, start int) (int, error) {
	if start < -1 || start >= len(h.cards) {
		return -1, fmt.Errorf("%w: search start %d of %d", types.ErrBounds, start, len(h.cards))
	}
	for i := start; i >= 0; i-- {
		if p.Match(h.cards[i]) {
			return i, nil
		}
	}
	return -1, nil
}

// Matches returns a lazy iterator over the cards matching p in header
// order. The iterator is finite and restartable; Reverse yields the
// matches in reverse header order, and reversing twice is equivalent to
// the original sequence.
func (h *Header) Matches(p Pattern) *Matches {
	m := &Matches{h: h, p: p}
	m.Reset()
	return m
}

// Matches iterates over the cards matching a pattern.
type Matches struct {
	h        *Header
	p        Pattern
	reversed bool
	next     int
	cur      Card
	curPos   int
}

// Reset rewinds the iterator to the start of its direction.
func (m *Matches) Reset() {
	if m.reversed {
		m.next = m.h.Len() - 1
	} else {
		m.next = 0
	}
	m.curPos = -1
}

// Next advances to the next matching card, reporting whether one exists.
func (m *Matches) Next() bool {
	if m.reversed {
		for i := m.next; i >= 0; i-- {
			if m.p.Match(m.h.cards[i]) {
				m.cur, m.curPos, m.next = m.h.cards[i], i, i-1
				return true
			}
		}
		m.next = -1
	} else {
		for i := m.next; i < m.h.Len(); i++ {
			if m.p.Match(m.h.cards[i]) {
				m.cur, m.curPos, m.next = m.h.cards[i], i, i+1
				return true
			}
		}
		m.next = m.h.Len()
	}
	return false
}

// Card returns the current match. Valid only after Next reported true.
func (m *Matches) Card() Card { return m.cur }

// Pos returns the current match's position in the header.
func (m *Matches) Pos() int { return m.curPos }

// Reverse returns a fresh iterator over the same matches in the
// opposite order.
func (m *Matches) Reverse() *Matches {
	out := &Matches{h: m.h, p: m.p, reversed: !m.reversed}
	out.Reset()
	return out
}

// Collect drains the iterator from its current position and returns the
// remaining matches.
func (m *Matches) Collect() []Card {
	var out []Card
	for m.Next() {
		out = append(out, m.cur)
	}
	return out
}
