package fits

// Merge appends the cards of each other header into h, in order. A
// non-commentary card whose keyword already exists anywhere in h is
// skipped, which makes re-merging idempotent. Commentary cards are
// always appended, never deduplicated, including when a header is
// merged into itself.
func (h *Header) Merge(others ...*Header) *Header {
	for _, o := range others {
		if o == nil {
			continue
		}
		// Snapshot, so self-merge does not iterate its own appends.
		cards := o.cards
		if o == h {
			cards = o.Cards()
		}
		for _, c := range cards {
			if !c.IsCommentary() && len(h.index[c.name]) > 0 {
				continue
			}
			// Uniqueness was just checked, Add cannot fail.
			_ = h.Add(c)
		}
	}
	return h
}

// Merge returns a new header holding dest's cards merged with each
// other header in order, leaving dest untouched.
func Merge(dest *Header, others ...*Header) *Header {
	return dest.Clone().Merge(others...)
}
