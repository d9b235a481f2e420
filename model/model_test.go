package model

import (
	"encoding/json"
	"testing"
)

func TestParseTriBool(t *testing.T) {
	tests := []struct {
		token string
		want  TriBool
	}{
		{"YES", True},
		{"yes", True},
		{"Y", True},
		{"1", True},
		{"TRUE", True},
		{"true", True},
		{"NO", False},
		{"no", False},
		{"N", False},
		{"0", False},
		{"FALSE", False},
		{" False ", False},
		{"", Unknown},
		{"maybe", Unknown},
		{"2", Unknown},
		{"nullable", Unknown},
	}

	for _, tt := range tests {
		if got := ParseTriBool(tt.token); got != tt.want {
			t.Errorf("ParseTriBool(%q) = %v, want %v", tt.token, got, tt.want)
		}
	}
}

func TestTriBoolJSON(t *testing.T) {
	tests := []struct {
		value TriBool
		want  string
	}{
		{True, "true"},
		{False, "false"},
		{Unknown, "null"},
	}

	for _, tt := range tests {
		data, err := json.Marshal(tt.value)
		if err != nil {
			t.Fatalf("Marshal(%v): %v", tt.value, err)
		}
		if string(data) != tt.want {
			t.Errorf("Marshal(%v) = %s, want %s", tt.value, data, tt.want)
		}

		var back TriBool
		if err := json.Unmarshal(data, &back); err != nil {
			t.Fatalf("Unmarshal(%s): %v", data, err)
		}
		if back != tt.value {
			t.Errorf("round trip of %v gave %v", tt.value, back)
		}
	}
}

func TestNewTableKey(t *testing.T) {
	tests := []struct {
		raw    string
		want   TableKey
		schema string
		table  string
	}{
		{"dbo.Widget", "dbo.Widget", "dbo", "Widget"},
		{"[dbo].[Widget]", "dbo.Widget", "dbo", "Widget"},
		{"  [Billing].[Invoice]  ", "Billing.Invoice", "Billing", "Invoice"},
		{"Widget", "dbo.Widget", "dbo", "Widget"},
		{"", "", "dbo", ""},
	}

	for _, tt := range tests {
		got := NewTableKey(tt.raw)
		if got != tt.want {
			t.Errorf("NewTableKey(%q) = %q, want %q", tt.raw, got, tt.want)
		}
		if got.Schema() != tt.schema {
			t.Errorf("Schema() of %q = %q, want %q", got, got.Schema(), tt.schema)
		}
		if got.Table() != tt.table {
			t.Errorf("Table() of %q = %q, want %q", got, got.Table(), tt.table)
		}
	}
}

func TestTableKeyPreservesCase(t *testing.T) {
	key := NewTableKey("[DBO].[PhysicianOrder]")
	if key != "DBO.PhysicianOrder" {
		t.Errorf("case not preserved: %q", key)
	}
}

func TestTableKeyBracketed(t *testing.T) {
	if got := NewTableKey("dbo.Widget").Bracketed(); got != "[dbo].[Widget]" {
		t.Errorf("Bracketed() = %q", got)
	}
}

func TestTableSchemaClone(t *testing.T) {
	original := NewTableSchema("dbo.Widget", ProvenancePDF)
	original.Columns = []ColumnRecord{{Name: "Id", DataType: "int"}}
	original.Indexes = []IndexRecord{{Name: "PK_Widget", KeyColumns: []string{"Id"}}}

	clone := original.Clone()
	clone.Columns[0].Name = "Changed"
	clone.Indexes[0].KeyColumns[0] = "Changed"

	if original.Columns[0].Name != "Id" {
		t.Error("clone shares Columns backing array with original")
	}
	if original.Indexes[0].KeyColumns[0] != "Id" {
		t.Error("clone shares KeyColumns backing array with original")
	}
}

func TestExtractionResultKeysSorted(t *testing.T) {
	result := ExtractionResult{
		"dbo.Zebra": NewTableSchema("dbo.Zebra", ProvenancePDF),
		"dbo.Apple": NewTableSchema("dbo.Apple", ProvenancePDF),
		"dbo.Mango": NewTableSchema("dbo.Mango", ProvenancePDF),
	}

	keys := result.Keys()
	want := []TableKey{"dbo.Apple", "dbo.Mango", "dbo.Zebra"}
	if len(keys) != len(want) {
		t.Fatalf("got %d keys, want %d", len(keys), len(want))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
