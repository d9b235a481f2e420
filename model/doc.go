// Package model provides the shared data model for extracted schema metadata.
//
// This package defines the user-facing data structures produced by the text
// and HTML parsers and consumed by the merger. All extraction operations
// ultimately produce these types, making them the primary API for consuming
// extracted schema information.
//
// # Results
//
// An [ExtractionResult] maps a [TableKey] (normalized "schema.table") to a
// [TableSchema]. Each TableSchema holds four ordered lists:
//
//   - [ColumnRecord] - columns with type, nullability, identity and key role
//   - [IndexRecord] - indexes with key columns, uniqueness and fill factor
//   - [ForeignKeyRecord] - foreign keys with referenced table and rules
//   - [ComputedColumnRecord] - computed columns with their defining formula
//
// List order reflects source document order and is preserved through merging.
//
// # Provenance
//
// Every TableSchema carries a [Provenance] tag recording which extraction
// pass produced it: the text dump ("pdf"), the HTML rendering ("html"), or
// the reconciliation of both ("merged").
//
// # Tri-state Booleans
//
// Boolean-like document tokens are represented by [TriBool] rather than bool,
// so an unrecognized or missing token stays distinguishable from an explicit
// "no". ParseTriBool maps YES/Y/1/TRUE to True, NO/N/0/FALSE to False, and
// anything else to Unknown - never to a guessed default.
//
// # Field Mapping
//
// Both parsers recover loosely-labeled fields before building records. The
// [FieldMap] type and the *FromFields constructors implement the shared
// normalization conventions (label folding, comma-list splitting, ASC/DESC
// stripping, type decomposition) so that the two extraction paths cannot
// drift apart.
package model
