package main

import (
	"fmt"
	"regexp"

	"github.com/joshuapare/fitskit/fits"
	"github.com/spf13/cobra"
)

var (
	keysPattern    string
	keysStructural bool
	keysOffset     int
)

func init() {
	cmd := newKeysCmd()
	cmd.Flags().StringVarP(&keysPattern, "pattern", "p", "", "Only list keywords matching this regexp")
	cmd.Flags().BoolVar(&keysStructural, "structural", false, "Only list structural keywords")
	cmd.Flags().IntVar(&keysOffset, "offset", 0, "Byte offset of the header-data unit")
	rootCmd.AddCommand(cmd)
}

func newKeysCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keys <file>",
		Short: "List the keywords of a FITS header",
		Long: `The keys command lists the keywords present in a FITS header in card order.

Example:
  fitsctl keys image.fits
  fitsctl keys image.fits --pattern '^NAXIS'
  fitsctl keys image.fits --structural --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runKeys(args)
		},
	}
	return cmd
}

func runKeys(args []string) error {
	path := args[0]
	if err := checkOffset(keysOffset); err != nil {
		return err
	}

	printVerbose("Opening FITS file: %s\n", path)
	h, err := readHeader(path, keysOffset)
	if err != nil {
		return fmt.Errorf("failed to read header: %w", err)
	}

	p := fits.ByFunc(func(fits.Card) bool { return true })
	if keysPattern != "" {
		re, err := regexp.Compile(keysPattern)
		if err != nil {
			return fmt.Errorf("bad pattern: %w", err)
		}
		p = fits.ByRegexp(re)
	}
	if keysStructural {
		inner := p
		p = fits.ByFunc(func(c fits.Card) bool {
			return inner.Match(c) && c.Key().IsStructural()
		})
	}

	var names []string
	m := h.Matches(p)
	for m.Next() {
		names = append(names, m.Card().Name())
	}

	if jsonOut {
		return printJSON(map[string]interface{}{
			"file":  path,
			"keys":  names,
			"count": len(names),
		})
	}

	for _, name := range names {
		printInfo("%s\n", name)
	}
	printInfo("\nTotal: %d keywords\n", len(names))
	return nil
}
