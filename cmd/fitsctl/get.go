package main

import (
	"fmt"

	"github.com/joshuapare/fitskit/fits"
	"github.com/spf13/cobra"
)

var (
	getAll    bool
	getOffset int
)

func init() {
	cmd := newGetCmd()
	cmd.Flags().BoolVarP(&getAll, "all", "a", false, "Print every card carrying the keyword")
	cmd.Flags().IntVar(&getOffset, "offset", 0, "Byte offset of the header-data unit")
	rootCmd.AddCommand(cmd)
}

func newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <file> <keyword>",
		Short: "Get a header card by keyword",
		Long: `The get command retrieves and displays the card stored under a keyword.
For repeatable commentary keywords, --all prints every occurrence.

Example:
  fitsctl get image.fits BITPIX
  fitsctl get image.fits "ESO OBS EXECTIME"
  fitsctl get image.fits COMMENT --all
  fitsctl get image.fits EXPTIME --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(args)
		},
	}
	return cmd
}

func runGet(args []string) error {
	path, keyword := args[0], args[1]
	if err := checkOffset(getOffset); err != nil {
		return err
	}

	printVerbose("Opening FITS file: %s\n", path)
	h, err := readHeader(path, getOffset)
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	var cards []fits.Card
	if getAll {
		cards = h.Matches(fits.ByName(keyword)).Collect()
		if len(cards) == 0 {
			return fmt.Errorf("keyword %q not found", keyword)
		}
	} else {
		c, err := h.Get(keyword)
		if err != nil {
			return fmt.Errorf("failed to get card: %w", err)
		}
		cards = []fits.Card{c}
	}

	if jsonOut {
		out := make([]cardJSON, 0, len(cards))
		for _, c := range cards {
			out = append(out, toCardJSON(c))
		}
		if !getAll {
			return printJSON(out[0])
		}
		return printJSON(out)
	}

	for _, c := range cards {
		printInfo("%s\n", c.String())
	}
	return nil
}
