// Package textdoc extracts table definitions from the plain-text dump of a
// paginated data-dictionary document.
//
// The dump marks page boundaries with a literal delimiter line carrying the
// page ordinal. Extraction proceeds in three stages:
//
//  1. TOC location: the first pages are scanned for a "Table of Contents"
//     marker, then TOC lines ("schema.table ... page") are collected until a
//     section boundary ("Views") is seen. Entries are sorted by page number,
//     which is the addressing order for extraction.
//  2. Definition blocks: for each entry, the printed page number is corrected
//     to a physical page index by a calibration offset, and pages are scanned
//     within a bounded budget for the table's start marker, collecting lines
//     until the next table's marker. Running headers, footers and copyright
//     boilerplate are filtered out. The difference between the expected and
//     actual start page is tracked as page drift.
//  3. Section parsing: each block's four sub-sections (Columns, Indexes,
//     Foreign Keys, Computed Columns) are parsed with a two-tier strategy
//     expressed by the [SectionExtractor] interface: [PositionalExtractor]
//     calibrates field boundaries from whitespace runs in a header line, and
//     [PatternExtractor] falls back to a fixed per-section regular expression
//     when no header can be found.
//
// # Failure Semantics
//
// Nothing in this package is fatal. A missing TOC yields an empty result for
// the whole document; a missing start marker skips only that table; an
// unparseable section is simply empty. Bounded scan windows guarantee
// termination even when an expected marker never appears.
//
// # Configuration
//
// Scan budgets and the page-offset calibration are [Config] fields rather
// than constants, since they are empirical properties of one document's
// pagination and may not generalize.
package textdoc
