package merge

import (
	"reflect"
	"strings"
	"testing"

	"github.com/tsawler/schemadict/internal/testutil"
	"github.com/tsawler/schemadict/model"
)

func schemaWith(key model.TableKey, provenance model.Provenance, mutate func(*model.TableSchema)) *model.TableSchema {
	s := model.NewTableSchema(key, provenance)
	if mutate != nil {
		mutate(s)
	}
	return s
}

func newTestMerger(t *testing.T, prefer model.Provenance) *Merger {
	t.Helper()
	return New(Config{Prefer: prefer, Logger: testutil.NewTestLogger(t)})
}

func TestMergeUnionAndProvenance(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Id", DataType: "int"}}
		}),
		"dbo.TextOnly": schemaWith("dbo.TextOnly", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "A"}}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Id", DataType: "int"}}
		}),
		"dbo.HtmlOnly": schemaWith("dbo.HtmlOnly", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "B"}}
		}),
	}
	textBefore := textResult.Clone()
	htmlBefore := htmlResult.Clone()

	merged, report := newTestMerger(t, model.ProvenanceHTML).Merge(textResult, htmlResult)

	if report.TotalTables != 3 || report.PDFOnly != 1 || report.HTMLOnly != 1 || report.Merged != 1 {
		t.Errorf("unexpected report counts: %+v", report)
	}
	if merged["dbo.TextOnly"].Provenance != model.ProvenancePDF {
		t.Errorf("expected pdf provenance, got %q", merged["dbo.TextOnly"].Provenance)
	}
	if merged["dbo.HtmlOnly"].Provenance != model.ProvenanceHTML {
		t.Errorf("expected html provenance, got %q", merged["dbo.HtmlOnly"].Provenance)
	}
	if merged["dbo.Widget"].Provenance != model.ProvenanceMerged {
		t.Errorf("expected merged provenance, got %q", merged["dbo.Widget"].Provenance)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("identical records should merge silently: %v", report.Warnings)
	}

	if !reflect.DeepEqual(textResult, textBefore) || !reflect.DeepEqual(htmlResult, htmlBefore) {
		t.Error("merge modified its inputs")
	}
}

func TestConflictResolvesToPreferredSource(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Indexes = []model.IndexRecord{{Name: "IX_1", KeyColumns: []string{"Name"}, Unique: model.False}}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.Indexes = []model.IndexRecord{{Name: "IX_1", KeyColumns: []string{"Name"}, Unique: model.True}}
		}),
	}

	merged, report := newTestMerger(t, model.ProvenanceHTML).Merge(textResult, htmlResult)

	idx := merged["dbo.Widget"].Indexes
	if len(idx) != 1 {
		t.Fatalf("expected 1 index, got %d", len(idx))
	}
	if idx[0].Unique != model.True {
		t.Errorf("expected preferred html value, got %v", idx[0].Unique)
	}
	if len(report.Warnings) != 1 {
		t.Fatalf("expected exactly 1 warning, got %v", report.Warnings)
	}
	w := report.Warnings[0]
	for _, want := range []string{"IX_1", "dbo.Widget", "is_unique", "html", "pdf"} {
		if !strings.Contains(w, want) {
			t.Errorf("warning missing %q: %s", want, w)
		}
	}
}

func TestPreferPDFFlipsPrecedence(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Id", DataType: "bigint"}}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Id", DataType: "int"}}
		}),
	}

	merged, report := newTestMerger(t, model.ProvenancePDF).Merge(textResult, htmlResult)

	if got := merged["dbo.Widget"].Columns[0].DataType; got != "bigint" {
		t.Errorf("expected pdf value to win, got %q", got)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "using pdf") {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
}

func TestMissingFieldFilledWithoutWarning(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Name", DataType: "varchar", MaxLength: "50", Nullable: model.True}}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Name", DataType: "varchar"}}
		}),
	}

	merged, report := newTestMerger(t, model.ProvenanceHTML).Merge(textResult, htmlResult)

	col := merged["dbo.Widget"].Columns[0]
	if col.MaxLength != "50" || col.Nullable != model.True {
		t.Errorf("missing preferred-side fields not filled: %+v", col)
	}
	if len(report.Warnings) != 0 {
		t.Errorf("filling absent fields is not a conflict: %v", report.Warnings)
	}
}

func TestUnmatchedRecordsCarriedThrough(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{
				{Name: "Id", DataType: "int"},
				{Name: "LegacyCode", DataType: "char"},
			}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Id", DataType: "int"}}
		}),
	}

	merged, _ := newTestMerger(t, model.ProvenanceHTML).Merge(textResult, htmlResult)

	cols := merged["dbo.Widget"].Columns
	if len(cols) != 2 {
		t.Fatalf("expected 2 columns, got %d", len(cols))
	}
	// Preferred-source order first, then unmatched secondary records.
	if cols[0].Name != "Id" || cols[1].Name != "LegacyCode" {
		t.Errorf("unexpected order: %v, %v", cols[0].Name, cols[1].Name)
	}
}

func TestCaseFoldedMatching(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "ID", DataType: "int"}}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.Columns = []model.ColumnRecord{{Name: "Id", DataType: "int"}}
		}),
	}

	merged, _ := newTestMerger(t, model.ProvenanceHTML).Merge(textResult, htmlResult)

	if n := len(merged["dbo.Widget"].Columns); n != 1 {
		t.Errorf("names differing only in case must match, got %d columns", n)
	}
}

func TestDuplicateNameDropped(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.Indexes = []model.IndexRecord{
				{Name: "IX_1", KeyColumns: []string{"A"}},
				{Name: "IX_1", KeyColumns: []string{"B"}},
			}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, nil),
	}

	merged, report := newTestMerger(t, model.ProvenancePDF).Merge(textResult, htmlResult)

	idx := merged["dbo.Widget"].Indexes
	if len(idx) != 1 || !reflect.DeepEqual(idx[0].KeyColumns, []string{"A"}) {
		t.Fatalf("expected first occurrence only, got %+v", idx)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "duplicate") {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
}

func TestMissingNameAppendedWithWarning(t *testing.T) {
	textResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenancePDF, func(s *model.TableSchema) {
			s.ForeignKeys = []model.ForeignKeyRecord{{Columns: []string{"MakerId"}, ReferencedTable: "Maker"}}
		}),
	}
	htmlResult := model.ExtractionResult{
		"dbo.Widget": schemaWith("dbo.Widget", model.ProvenanceHTML, func(s *model.TableSchema) {
			s.ForeignKeys = []model.ForeignKeyRecord{{Name: "FK_Widget_Maker", Columns: []string{"MakerId"}, ReferencedTable: "Maker"}}
		}),
	}

	merged, report := newTestMerger(t, model.ProvenanceHTML).Merge(textResult, htmlResult)

	if n := len(merged["dbo.Widget"].ForeignKeys); n != 2 {
		t.Fatalf("expected nameless record carried separately, got %d", n)
	}
	if len(report.Warnings) != 1 || !strings.Contains(report.Warnings[0], "no name") {
		t.Errorf("unexpected warnings: %v", report.Warnings)
	}
}
