package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var dumpOffset int

func init() {
	cmd := newDumpCmd()
	cmd.Flags().IntVar(&dumpOffset, "offset", 0, "Byte offset of the header-data unit to dump")
	rootCmd.AddCommand(cmd)
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <file>",
		Short: "Human-readable dump of a FITS header",
		Long: `The dump command prints every card of a FITS header, one per line.

Example:
  fitsctl dump image.fits
  fitsctl dump image.fits --offset 5760
  fitsctl dump image.fits --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}
	return cmd
}

func runDump(args []string) error {
	path := args[0]
	if err := checkOffset(dumpOffset); err != nil {
		return err
	}

	printVerbose("Opening FITS file: %s\n", path)
	h, err := readHeader(path, dumpOffset)
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	if jsonOut {
		cards := make([]cardJSON, 0, h.Len())
		for _, c := range h.Cards() {
			cards = append(cards, toCardJSON(c))
		}
		return printJSON(map[string]interface{}{
			"file":   path,
			"offset": dumpOffset,
			"cards":  cards,
			"count":  h.Len(),
		})
	}

	for _, c := range h.Cards() {
		printInfo("%s\n", c.String())
	}
	printInfo("\nTotal: %d cards\n", h.Len())
	return nil
}
