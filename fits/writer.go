package fits

import (
	"github.com/joshuapare/fitskit/internal/format"
	"github.com/joshuapare/fitskit/pkg/types"
)

// Record and block geometry of the FITS standard, re-exported for
// callers outside this module.
const (
	CardSize  = format.CardSize
	BlockSize = format.BlockSize
)

// WriteHeader serializes the header to whole space-padded FITS blocks:
// every card in order, the END sentinel, then space fill up to the next
// 2880-byte boundary.
func WriteHeader(h *Header) ([]byte, error) {
	out := make([]byte, 0, blockRound((h.Len()+1)*format.CardSize))
	for i := range h.cards {
		rec, err := h.cards[i].Encode()
		if err != nil {
			return nil, err
		}
		out = append(out, rec...)
	}

	end := newCard(KeyEnd, types.TypeEnd, format.EndKeyword, "")
	rec, err := end.Encode()
	if err != nil {
		return nil, err
	}
	out = append(out, rec...)

	for len(out)%format.BlockSize != 0 {
		out = append(out, ' ')
	}
	return out, nil
}

// blockRound rounds n up to a multiple of the FITS block size.
func blockRound(n int) int {
	blocks := (n + format.BlockSize - 1) / format.BlockSize
	return blocks * format.BlockSize
}
