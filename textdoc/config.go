package textdoc

import "log/slog"

// Config holds parser calibration parameters. The zero value is not useful;
// start from DefaultConfig.
type Config struct {
	// PageOffset corrects printed page numbers to physical page segments.
	// The printed numbering and the page-delimited segments of the dump are
	// offset by a constant that is an empirical property of the document.
	PageOffset int

	// TOCSearchWindow is how many leading pages are scanned for the
	// "Table of Contents" marker before giving up.
	TOCSearchWindow int

	// MaxTOCPages is how many pages are considered part of the TOC once
	// its start has been found.
	MaxTOCPages int

	// MaxPagesPerTable is the page budget for one definition block after
	// its start marker has been found.
	MaxPagesPerTable int

	// SearchRadius is how many pages before and after the computed page
	// the start marker is searched for, tolerating pagination drift.
	SearchRadius int

	// TOCStopMarker ends TOC scanning when it appears on a line. The
	// dictionary lists views after tables, so the "Views" heading bounds
	// the table listing.
	TOCStopMarker string

	// Boilerplate phrases identify running header/footer lines, matched
	// case-insensitively. Page-number lines are always filtered.
	Boilerplate []string

	// Logger receives parse diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// DefaultConfig returns the calibration used for the reference document.
func DefaultConfig() Config {
	return Config{
		PageOffset:       2,
		TOCSearchWindow:  20,
		MaxTOCPages:      10,
		MaxPagesPerTable: 5,
		SearchRadius:     2,
		TOCStopMarker:    "Views",
		Boilerplate:      []string{"copyright", "data dictionary", "proprietary"},
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
