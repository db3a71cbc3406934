package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/joshuapare/fitskit/pkg/types"
	"github.com/spf13/cobra"
)

var (
	setType    string
	setComment string
)

func init() {
	cmd := newSetCmd()
	cmd.Flags().StringVar(&setType, "type", "auto",
		"Value type (auto, logical, int, float, complex, string, undefined, comment)")
	cmd.Flags().StringVarP(&setComment, "comment", "c", "", "Trailing comment text")
	rootCmd.AddCommand(cmd)
}

func newSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set <file> <keyword> [value]",
		Short: "Set a header card",
		Long: `The set command assigns a value under a keyword, replacing an existing
card in place or appending a new one. By default the value's type is
inferred; --type forces a grammar. Commentary keywords always append.

Example:
  fitsctl set image.fits EXPTIME 130.5 --comment "[s] exposure time"
  fitsctl set image.fits OBJECT "NGC 7078" --type string
  fitsctl set image.fits EXTEND T
  fitsctl set image.fits COMMENT --type comment --comment "reprocessed"`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSet(args)
		},
	}
	return cmd
}

func runSet(args []string) error {
	path, keyword := args[0], args[1]
	var raw string
	if len(args) > 2 {
		raw = args[2]
	}

	value, err := parseValueArg(raw, setType)
	if err != nil {
		return err
	}

	printVerbose("Opening FITS file: %s\n", path)
	h, rest, err := loadForEdit(path)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	if err := h.Set(keyword, value, setComment); err != nil {
		return fmt.Errorf("failed to set %q: %w", keyword, err)
	}
	if err := saveWithHeader(path, h, rest); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if jsonOut {
		c, err := h.Get(keyword)
		if err != nil {
			return err
		}
		return printJSON(toCardJSON(c))
	}
	printInfo("✓ %s updated\n", keyword)
	return nil
}

// parseValueArg converts the command-line token to a typed card value.
func parseValueArg(raw, typ string) (interface{}, error) {
	switch typ {
	case "auto":
		return inferValue(raw), nil
	case "logical":
		switch raw {
		case "T", "true", "1":
			return true, nil
		case "F", "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("not a logical value: %q", raw)
	case "int":
		return strconv.ParseInt(raw, 10, 64)
	case "float":
		return strconv.ParseFloat(raw, 64)
	case "complex":
		return parseComplexArg(raw)
	case "string":
		return raw, nil
	case "undefined":
		return types.Undefined{}, nil
	case "comment":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown value type: %s", typ)
	}
}

// inferValue picks the narrowest grammar the token satisfies, falling
// back to a string.
func inferValue(raw string) interface{} {
	switch raw {
	case "T":
		return true
	case "F":
		return false
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil {
		return f
	}
	if z, err := parseComplexArg(raw); err == nil {
		return z
	}
	return raw
}

// parseComplexArg reads the FITS "(re, im)" form.
func parseComplexArg(raw string) (complex128, error) {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "(") || !strings.HasSuffix(s, ")") {
		return 0, fmt.Errorf("not a complex value: %q", raw)
	}
	parts := strings.SplitN(s[1:len(s)-1], ",", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("not a complex value: %q", raw)
	}
	re, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad real part: %w", err)
	}
	im, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, fmt.Errorf("bad imaginary part: %w", err)
	}
	return complex(re, im), nil
}
