package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mergeOutput string

func init() {
	cmd := newMergeCmd()
	cmd.Flags().StringVarP(&mergeOutput, "output", "o", "", "Write the merged header to this file instead of overwriting <dest>")
	rootCmd.AddCommand(cmd)
}

func newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge <dest> <source>...",
		Short: "Merge FITS headers into one",
		Long: `The merge command appends the cards of each source header to the
destination header. A non-commentary keyword already present in the
destination keeps its existing card; commentary cards are always
appended.

Example:
  fitsctl merge image.fits calib.fits
  fitsctl merge image.fits a.fits b.fits --output merged.fits`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMerge(args)
		},
	}
	return cmd
}

func runMerge(args []string) error {
	destPath := args[0]
	sources := args[1:]

	printVerbose("Merging into: %s\n", destPath)
	dest, rest, err := loadForEdit(destPath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", destPath, err)
	}

	before := dest.Len()
	for _, src := range sources {
		printVerbose("  Reading %s\n", src)
		h, err := readHeader(src, 0)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", src, err)
		}
		dest.Merge(h)
	}

	outPath := mergeOutput
	if outPath == "" {
		outPath = destPath
	}
	if err := saveWithHeader(outPath, dest, rest); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"dest":    outPath,
			"sources": sources,
			"added":   dest.Len() - before,
			"cards":   dest.Len(),
		})
	}
	printInfo("✓ Merged %d source(s) into %s (%d new cards)\n",
		len(sources), outPath, dest.Len()-before)
	return nil
}
