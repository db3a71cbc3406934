package main

import (
	"fmt"
	"os"

	"github.com/joshuapare/fitskit/fits"
	"github.com/joshuapare/fitskit/pkg/types"
)

// readHeader parses the header starting at off from the file at path.
func readHeader(path string, off int) (*fits.Header, error) {
	f, err := fits.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return f.HeaderAt(off)
}

// loadForEdit reads the whole file and splits it into the parsed primary
// header and the raw bytes that follow it (data blocks and further HDUs),
// so edits can rewrite the header without touching the data.
func loadForEdit(path string) (*fits.Header, []byte, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	h, err := fits.ReadHeader(buf)
	if err != nil {
		return nil, nil, err
	}

	// Locate the END card to find where the header's blocks stop.
	it := fits.NewCardIterator(buf)
	for it.Next() {
	}
	if err := it.Err(); err != nil {
		return nil, nil, err
	}
	headerLen := blockRound(it.Offset() + fits.CardSize)
	if headerLen > len(buf) {
		headerLen = len(buf)
	}
	log.Debug("loaded header", "path", path, "cards", h.Len(),
		"headerBytes", headerLen, "dataBytes", len(buf)-headerLen)
	return h, buf[headerLen:], nil
}

// saveWithHeader writes the serialized header followed by the preserved
// trailing bytes back to path.
func saveWithHeader(path string, h *fits.Header, rest []byte) error {
	out, err := fits.WriteHeader(h)
	if err != nil {
		return err
	}
	out = append(out, rest...)
	log.Debug("writing file", "path", path, "bytes", len(out))
	return os.WriteFile(path, out, 0644)
}

func blockRound(n int) int {
	blocks := (n + fits.BlockSize - 1) / fits.BlockSize
	return blocks * fits.BlockSize
}

// cardJSON is the JSON shape of one header card.
type cardJSON struct {
	Name    string      `json:"name"`
	Type    string      `json:"type"`
	Value   interface{} `json:"value,omitempty"`
	Comment string      `json:"comment,omitempty"`
	Units   string      `json:"units,omitempty"`
}

// toCardJSON converts a card to its JSON shape. Complex values become a
// {re, im} pair since JSON has no complex literal.
func toCardJSON(c fits.Card) cardJSON {
	out := cardJSON{
		Name:    c.Name(),
		Type:    c.Type().String(),
		Comment: c.Comment(),
		Units:   c.Units(),
	}
	switch v := c.Value().(type) {
	case complex128:
		out.Value = map[string]float64{"re": real(v), "im": imag(v)}
	case types.Undefined:
		out.Value = nil
	default:
		out.Value = v
	}
	return out
}

func checkOffset(off int) error {
	if off < 0 || off%fits.BlockSize != 0 {
		return fmt.Errorf("offset %d is not a block boundary", off)
	}
	return nil
}
