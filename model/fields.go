package model

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// FieldMap holds one row of loosely-labeled cells, keyed by normalized
// header label (lower case, spaces collapsed to underscores). Both parsers
// build FieldMaps so that record construction follows identical conventions
// regardless of source.
type FieldMap map[string]string

// NormalizeLabel converts a header label into its FieldMap key form:
// "Column Name" becomes "column_name".
func NormalizeLabel(label string) string {
	label = strings.ToLower(strings.TrimSpace(label))
	return strings.Join(strings.Fields(label), "_")
}

// Get returns the first non-empty value among the given label keys.
func (f FieldMap) Get(labels ...string) string {
	for _, l := range labels {
		if v, ok := f[l]; ok && v != "" {
			return v
		}
	}
	return ""
}

// Fold case-folds a name for caseless matching.
func Fold(s string) string {
	return cases.Fold().String(s)
}

var (
	sortSuffixRe = regexp.MustCompile(`\s*\((?i:ASC|DESC)\)`)
	typeShapeRe  = regexp.MustCompile(`^(\w+)(?:\((\d+)(?:\s*,\s*(\d+))?\))?`)
	identityRe   = regexp.MustCompile(`^(\d+)\s*-\s*(\d+)$`)
	referenceRe  = regexp.MustCompile(`^(?:\[?([^\].]+)\]?\.)?\[?([^\].]+)\]?\.\[?([^\].]+)\]?$`)
	defaultRe    = regexp.MustCompile(`\(\(.*?\)\)`)
)

// SplitColumnList splits a comma-joined column cell into individual names,
// stripping "(ASC)"/"(DESC)" sort suffixes. Empty entries are dropped.
func SplitColumnList(cell string) []string {
	cell = sortSuffixRe.ReplaceAllString(cell, "")
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseReference splits a "[schema].[table].[column]" (or unbracketed)
// reference into its parts. The schema part may be absent.
func ParseReference(ref string) (schema, table, column string, ok bool) {
	m := referenceRe.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return "", "", "", false
	}
	return strings.TrimSpace(m[1]), strings.TrimSpace(m[2]), strings.TrimSpace(m[3]), true
}

// decomposeType fills derived type fields on a column: "decimal(18,2)"
// yields base type "decimal", precision 18 and scale 2; a single argument
// becomes the max length when none was given separately.
func (c *ColumnRecord) decomposeType() {
	if c.DataType == "" {
		return
	}
	m := typeShapeRe.FindStringSubmatch(c.DataType)
	if m == nil {
		return
	}
	c.BaseType = strings.ToLower(m[1])
	if m[3] != "" {
		c.Precision = m[2]
		c.Scale = m[3]
	} else if m[2] != "" && c.MaxLength == "" {
		c.MaxLength = m[2]
	}
}

// ColumnFromFields builds a ColumnRecord from a labeled row. It reports
// false when the row carries no column name.
func ColumnFromFields(f FieldMap) (ColumnRecord, bool) {
	name := f.Get("column_name", "name")
	if name == "" {
		return ColumnRecord{}, false
	}
	col := ColumnRecord{
		Name:      name,
		DataType:  f.Get("data_type", "type"),
		MaxLength: f.Get("max_length", "max_length_(bytes)", "length"),
		Nullable:  ParseTriBool(f.Get("allow_nulls", "nullable", "null")),
		Key:       f.Get("key"),
		Default:   f.Get("default"),
	}
	ident := f.Get("identity", "ident")
	if m := identityRe.FindStringSubmatch(strings.TrimSpace(ident)); m != nil {
		// Seed and increment imply the column is an identity.
		col.Identity = True
		col.IdentitySeed = m[1]
		col.IdentityIncrement = m[2]
	} else {
		col.Identity = ParseTriBool(ident)
	}
	if col.Default == "" {
		// A ((...)) run anywhere in the row is a default expression.
		for _, v := range f {
			if d := defaultRe.FindString(v); d != "" {
				col.Default = d
				break
			}
		}
	}
	col.decomposeType()
	return col, true
}

// IndexFromFields builds an IndexRecord from a labeled row. Primary and
// unique flags fall back to PK_/UQ_/UK_ name prefixes when the row has no
// explicit uniqueness cell.
func IndexFromFields(f FieldMap) (IndexRecord, bool) {
	name := f.Get("name", "key_name", "index_name")
	if name == "" {
		return IndexRecord{}, false
	}
	idx := IndexRecord{
		Name:       name,
		KeyColumns: SplitColumnList(f.Get("key_columns", "columns")),
		Primary:    strings.HasPrefix(name, "PK_"),
		Unique:     ParseTriBool(f.Get("is_unique", "unique")),
		Type:       f.Get("type", "index_type"),
	}
	if included := f.Get("included_columns", "include"); included != "" {
		idx.IncludedColumns = SplitColumnList(included)
	}
	if !idx.Unique.Known() {
		if idx.Primary || strings.HasPrefix(name, "UQ_") || strings.HasPrefix(name, "UK_") {
			idx.Unique = True
		}
	}
	if idx.Primary {
		idx.Unique = True
	}
	if ff := f.Get("fill_factor"); ff != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(ff)); err == nil {
			idx.FillFactor = n
		}
	}
	return idx, true
}

// ForeignKeyFromFields builds a ForeignKeyRecord from a labeled row.
func ForeignKeyFromFields(f FieldMap) (ForeignKeyRecord, bool) {
	name := f.Get("name", "foreign_key_name", "key_name")
	if name == "" {
		return ForeignKeyRecord{}, false
	}
	fk := ForeignKeyRecord{
		Name:              name,
		Columns:           SplitColumnList(f.Get("columns", "column")),
		ReferencedSchema:  f.Get("referenced_schema"),
		ReferencedTable:   f.Get("referenced_table"),
		ReferencedColumns: SplitColumnList(f.Get("referenced_columns", "referenced_column")),
		UpdateRule:        f.Get("update_rule"),
		DeleteRule:        f.Get("delete_rule"),
	}
	if fk.ReferencedTable == "" {
		// Some layouts pack the whole reference into one cell.
		if schema, table, column, ok := ParseReference(f.Get("referenced", "references")); ok {
			fk.ReferencedSchema = schema
			fk.ReferencedTable = table
			fk.ReferencedColumns = SplitColumnList(column)
		}
	}
	return fk, true
}

// ComputedColumnFromFields builds a ComputedColumnRecord from a labeled row.
func ComputedColumnFromFields(f FieldMap) (ComputedColumnRecord, bool) {
	name := f.Get("column_name", "name")
	if name == "" {
		return ComputedColumnRecord{}, false
	}
	return ComputedColumnRecord{
		Name:      name,
		Formula:   f.Get("formula", "definition"),
		DataType:  f.Get("data_type", "type"),
		Persisted: ParseTriBool(f.Get("is_persisted", "persisted")),
	}, true
}
