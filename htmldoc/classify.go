package htmldoc

import (
	"strings"

	"github.com/tsawler/schemadict/model"
)

// GridKind identifies which schema section a grid belongs to.
type GridKind int

const (
	GridUnrecognized GridKind = iota
	GridColumns
	GridIndexes
	GridForeignKeys
	GridComputedColumns
)

// String returns a human-readable name for the grid kind.
func (k GridKind) String() string {
	switch k {
	case GridColumns:
		return "columns"
	case GridIndexes:
		return "indexes"
	case GridForeignKeys:
		return "foreign keys"
	case GridComputedColumns:
		return "computed columns"
	default:
		return "unrecognized"
	}
}

// Classify decides the kind of a grid from its header row, falling back to
// the text immediately preceding it. Header keywords win over preceding
// text because authors reuse section names loosely but header rows name
// the actual fields.
func Classify(grid *Grid) GridKind {
	header := model.Fold(strings.Join(grid.Header, " | "))

	switch {
	case strings.Contains(header, "formula"):
		return GridComputedColumns
	case strings.Contains(header, "referenced") || strings.Contains(header, "foreign key"):
		return GridForeignKeys
	case strings.Contains(header, "key columns") || strings.Contains(header, "fill factor"):
		return GridIndexes
	case strings.Contains(header, "column name") && strings.Contains(header, "data type"):
		return GridColumns
	}

	preceding := model.Fold(grid.Preceding)
	switch {
	case strings.Contains(preceding, "computed"):
		return GridComputedColumns
	case strings.Contains(preceding, "foreign"):
		return GridForeignKeys
	case strings.Contains(preceding, "index"):
		return GridIndexes
	case strings.Contains(preceding, "column"):
		return GridColumns
	}

	return GridUnrecognized
}
