package textdoc

import (
	"regexp"
	"testing"
)

func TestPositionalExtractorCalibration(t *testing.T) {
	e := &PositionalExtractor{
		HeaderWords:   [][]string{{"column name", "name"}, {"data type", "type"}},
		MinLineLength: 10,
	}

	lines := []string{
		"Column Name  Data Type  Max Length  Allow Nulls",
		"Id           int        4           NO",
		"Name         varchar    255         YES",
	}

	rows := e.Extract(lines)
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["column_name"] != "Id" || rows[0]["data_type"] != "int" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[0]["max_length"] != "4" || rows[0]["allow_nulls"] != "NO" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["column_name"] != "Name" || rows[1]["allow_nulls"] != "YES" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestPositionalExtractorEmbeddedSpace(t *testing.T) {
	e := &PositionalExtractor{
		HeaderWords:   [][]string{{"name"}, {"key columns"}},
		MinLineLength: 5,
	}

	// A single embedded space inside a value must survive slicing.
	lines := []string{
		"Name             Key Columns",
		"PK_Order         OrderId, LineNo",
	}

	rows := e.Extract(lines)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["key_columns"] != "OrderId, LineNo" {
		t.Errorf("key_columns = %q", rows[0]["key_columns"])
	}
}

func TestPositionalExtractorNoHeader(t *testing.T) {
	e := &PositionalExtractor{
		HeaderWords:   [][]string{{"column name"}, {"data type"}},
		MinLineLength: 10,
	}

	rows := e.Extract([]string{"Id           int        4           NO"})
	if rows != nil {
		t.Errorf("expected nil without a header line, got %v", rows)
	}
}

func TestPositionalExtractorSingleSpacedHeader(t *testing.T) {
	// A header without two-space runs cannot be calibrated.
	e := &PositionalExtractor{
		HeaderWords:   [][]string{{"name"}, {"type"}},
		MinLineLength: 5,
	}

	rows := e.Extract([]string{
		"Key Name Data Type Allow Nulls",
		"Id int 4 NO",
	})
	if rows != nil {
		t.Errorf("expected nil for uncalibratable header, got %v", rows)
	}
}

func TestPatternExtractor(t *testing.T) {
	e := &PatternExtractor{
		Pattern:       columnsSpec.pattern,
		MinLineLength: 10,
	}

	rows := e.Extract([]string{
		"Id int 4 NO YES",
		"Name varchar(255) 255 YES",
		"short",
	})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0]["column_name"] != "Id" || rows[0]["identity"] != "YES" {
		t.Errorf("row 0 = %v", rows[0])
	}
	if rows[1]["data_type"] != "varchar(255)" || rows[1]["max_length"] != "255" {
		t.Errorf("row 1 = %v", rows[1])
	}
}

func TestPatternExtractorKeyMarker(t *testing.T) {
	e := &PatternExtractor{Pattern: columnsSpec.pattern, MinLineLength: 10}

	rows := e.Extract([]string{"PK Id int 4 NO"})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0]["key"] != "PK" || rows[0]["column_name"] != "Id" {
		t.Errorf("row = %v", rows[0])
	}
}

func TestExtractorNames(t *testing.T) {
	var pos SectionExtractor = &PositionalExtractor{}
	var pat SectionExtractor = &PatternExtractor{Pattern: regexp.MustCompile(`x`)}
	if pos.Name() != "positional" {
		t.Errorf("positional Name() = %q", pos.Name())
	}
	if pat.Name() != "pattern" {
		t.Errorf("pattern Name() = %q", pat.Name())
	}
}
