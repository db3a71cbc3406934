package main

import (
	"fmt"
	"regexp"

	"github.com/joshuapare/fitskit/fits"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(newPruneCmd())
}

func newPruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune <file> <pattern>",
		Short: "Remove cards whose keyword matches a regexp",
		Long: `The prune command deletes every card whose keyword matches the given
regular expression and rewrites the header.

Example:
  fitsctl prune image.fits '^HISTORY$'
  fitsctl prune image.fits '^HIERARCH ESO '`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrune(args)
		},
	}
	return cmd
}

func runPrune(args []string) error {
	path, pattern := args[0], args[1]
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("bad pattern: %w", err)
	}

	printVerbose("Opening FITS file: %s\n", path)
	h, rest, err := loadForEdit(path)
	if err != nil {
		return fmt.Errorf("failed to load file: %w", err)
	}

	removed := h.Prune(fits.ByRegexp(re))
	if removed == 0 {
		printInfo("No cards matched %q\n", pattern)
		return nil
	}
	if err := saveWithHeader(path, h, rest); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":    path,
			"pattern": pattern,
			"removed": removed,
			"cards":   h.Len(),
		})
	}
	printInfo("✓ Removed %d card(s)\n", removed)
	return nil
}
