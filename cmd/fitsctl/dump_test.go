package main

import (
	"testing"

	"github.com/joshuapare/fitskit/fits"
)

func testCards(t *testing.T) []fits.Card {
	t.Helper()
	return []fits.Card{
		fits.MustCard("SIMPLE", true, "conforming"),
		fits.MustCard("BITPIX", -32, "bits per pixel"),
		fits.MustCard("NAXIS", 0, ""),
		fits.MustCard("EXPTIME", 130.5, "[s] exposure time"),
		fits.MustCard("COMMENT", nil, "written by a test"),
	}
}

func TestDumpCommand(t *testing.T) {
	path := writeTestFITS(t, "dump.fits", testCards(t)...)

	jsonOut = false
	dumpOffset = 0
	out, err := captureOutput(t, func() error { return runDump([]string{path}) })
	if err != nil {
		t.Fatalf("runDump: %v", err)
	}
	assertContains(t, out, []string{
		"SIMPLE  = T / conforming",
		"EXPTIME = 130.5 / [s] exposure time",
		"COMMENT written by a test",
		"Total: 5 cards",
	})
}

func TestDumpCommandJSON(t *testing.T) {
	path := writeTestFITS(t, "dump.fits", testCards(t)...)

	jsonOut = true
	defer func() { jsonOut = false }()
	dumpOffset = 0
	out, err := captureOutput(t, func() error { return runDump([]string{path}) })
	if err != nil {
		t.Fatalf("runDump: %v", err)
	}
	assertJSON(t, out)
	assertContains(t, out, []string{`"EXPTIME"`, `"FLOAT"`, `"count": 5`})
}

func TestDumpCommandBadOffset(t *testing.T) {
	path := writeTestFITS(t, "dump.fits", testCards(t)...)
	dumpOffset = 7
	defer func() { dumpOffset = 0 }()
	if err := runDump([]string{path}); err == nil {
		t.Fatal("expected error for non-block offset")
	}
}
