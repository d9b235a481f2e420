package model

import (
	"sort"
	"strings"
)

// Provenance records which extraction pass produced a schema.
type Provenance string

const (
	ProvenancePDF    Provenance = "pdf"
	ProvenanceHTML   Provenance = "html"
	ProvenanceMerged Provenance = "merged"
)

// TableKey is a normalized "schema.table" identifier. Brackets are stripped
// and case is preserved. A key is unique per ExtractionResult.
type TableKey string

// NewTableKey normalizes a raw table name into a TableKey. Square brackets
// are removed and a missing schema defaults to "dbo".
func NewTableKey(raw string) TableKey {
	name := strings.TrimSpace(raw)
	name = strings.NewReplacer("[", "", "]", "").Replace(name)
	if name == "" {
		return ""
	}
	if !strings.Contains(name, ".") {
		name = "dbo." + name
	}
	return TableKey(name)
}

// Schema returns the schema part of the key.
func (k TableKey) Schema() string {
	if i := strings.Index(string(k), "."); i >= 0 {
		return string(k)[:i]
	}
	return "dbo"
}

// Table returns the table part of the key.
func (k TableKey) Table() string {
	if i := strings.Index(string(k), "."); i >= 0 {
		return string(k)[i+1:]
	}
	return string(k)
}

// Bracketed returns the key in "[schema].[table]" form, the way table
// headings are typically typeset in the source document.
func (k TableKey) Bracketed() string {
	return "[" + k.Schema() + "].[" + k.Table() + "]"
}

// ColumnRecord describes one table column in document order.
type ColumnRecord struct {
	Name              string  `json:"name"`
	DataType          string  `json:"data_type,omitempty"`
	BaseType          string  `json:"base_data_type,omitempty"`
	MaxLength         string  `json:"max_length,omitempty"`
	Precision         string  `json:"numeric_precision,omitempty"`
	Scale             string  `json:"numeric_scale,omitempty"`
	Nullable          TriBool `json:"allow_nulls"`
	Identity          TriBool `json:"identity"`
	IdentitySeed      string  `json:"identity_seed,omitempty"`
	IdentityIncrement string  `json:"identity_increment,omitempty"`
	Key               string  `json:"key,omitempty"` // PK, FK or UK role marker
	Default           string  `json:"default,omitempty"`
}

// IndexRecord describes one index. FillFactor is zero when the document does
// not specify one.
type IndexRecord struct {
	Name            string   `json:"name"`
	KeyColumns      []string `json:"key_columns,omitempty"`
	IncludedColumns []string `json:"included_columns,omitempty"`
	Unique          TriBool  `json:"is_unique"`
	Primary         bool     `json:"is_primary"`
	Type            string   `json:"type,omitempty"`
	FillFactor      int      `json:"fill_factor,omitempty"`
}

// ForeignKeyRecord describes one foreign key constraint.
type ForeignKeyRecord struct {
	Name              string   `json:"name"`
	Columns           []string `json:"columns,omitempty"`
	ReferencedSchema  string   `json:"referenced_schema,omitempty"`
	ReferencedTable   string   `json:"referenced_table,omitempty"`
	ReferencedColumns []string `json:"referenced_columns,omitempty"`
	UpdateRule        string   `json:"update_rule,omitempty"`
	DeleteRule        string   `json:"delete_rule,omitempty"`
}

// ComputedColumnRecord describes one computed column and its formula.
type ComputedColumnRecord struct {
	Name      string  `json:"name"`
	Formula   string  `json:"formula,omitempty"`
	DataType  string  `json:"data_type,omitempty"`
	Persisted TriBool `json:"is_persisted"`
}

// TableSchema holds the four ordered record lists for one table plus the
// provenance of the extraction pass that produced them.
type TableSchema struct {
	Key             TableKey               `json:"-"`
	Schema          string                 `json:"schema"`
	Table           string                 `json:"table_name"`
	Columns         []ColumnRecord         `json:"columns"`
	Indexes         []IndexRecord          `json:"indexes"`
	ForeignKeys     []ForeignKeyRecord     `json:"foreign_keys"`
	ComputedColumns []ComputedColumnRecord `json:"computed_columns"`
	Provenance      Provenance             `json:"extraction_source"`
}

// NewTableSchema creates an empty TableSchema for the given key.
func NewTableSchema(key TableKey, provenance Provenance) *TableSchema {
	return &TableSchema{
		Key:        key,
		Schema:     key.Schema(),
		Table:      key.Table(),
		Provenance: provenance,
	}
}

// Empty reports whether all four record lists are empty.
func (s *TableSchema) Empty() bool {
	return len(s.Columns) == 0 && len(s.Indexes) == 0 &&
		len(s.ForeignKeys) == 0 && len(s.ComputedColumns) == 0
}

// Clone returns a deep copy. Record structs contain only value fields and
// string slices, so copying the slices is sufficient.
func (s *TableSchema) Clone() *TableSchema {
	out := &TableSchema{
		Key:        s.Key,
		Schema:     s.Schema,
		Table:      s.Table,
		Provenance: s.Provenance,
	}
	out.Columns = append([]ColumnRecord(nil), s.Columns...)
	out.Indexes = make([]IndexRecord, len(s.Indexes))
	for i, idx := range s.Indexes {
		out.Indexes[i] = idx
		out.Indexes[i].KeyColumns = append([]string(nil), idx.KeyColumns...)
		out.Indexes[i].IncludedColumns = append([]string(nil), idx.IncludedColumns...)
	}
	out.ForeignKeys = make([]ForeignKeyRecord, len(s.ForeignKeys))
	for i, fk := range s.ForeignKeys {
		out.ForeignKeys[i] = fk
		out.ForeignKeys[i].Columns = append([]string(nil), fk.Columns...)
		out.ForeignKeys[i].ReferencedColumns = append([]string(nil), fk.ReferencedColumns...)
	}
	out.ComputedColumns = append([]ComputedColumnRecord(nil), s.ComputedColumns...)
	return out
}

// ExtractionResult maps table keys to their extracted schemas. One instance
// is built per parser pass and one final merged instance per document.
type ExtractionResult map[TableKey]*TableSchema

// Keys returns all table keys in sorted order for deterministic iteration.
func (r ExtractionResult) Keys() []TableKey {
	keys := make([]TableKey, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Clone returns a deep copy of the result.
func (r ExtractionResult) Clone() ExtractionResult {
	out := make(ExtractionResult, len(r))
	for k, v := range r {
		out[k] = v.Clone()
	}
	return out
}
