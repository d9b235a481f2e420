// Package htmldoc extracts table definitions from the HTML rendering of a
// data-dictionary document.
//
// The HTML source is a corroborating extraction pass, never a required one:
// a missing or unparseable file degrades to an empty result rather than an
// error, and the merger treats the text-dump pass as self-sufficient.
//
// Extraction walks the parsed DOM once, flattening it into a stream of
// headings and tabular grids. A heading whose text matches the
// "schema.table" naming pattern opens that table's region, which extends to
// the next heading of equal-or-higher level. Every grid inside a region is
// classified by its header row (or the text immediately preceding it) into
// one of the closed [GridKind] variants; unrecognized grids are discarded.
// Recognized grid rows are paired with their normalized header labels and
// mapped into the shared record shapes with the same conventions as the
// text parser.
package htmldoc
