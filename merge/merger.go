package merge

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/tsawler/schemadict/model"
)

// Config controls merge behavior.
type Config struct {
	// Prefer names the source whose values win on disagreement. Either
	// model.ProvenancePDF or model.ProvenanceHTML; anything else is
	// treated as HTML.
	Prefer model.Provenance

	// Logger receives diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig prefers the HTML source. The HTML rendering is typeset
// from structured markup and tends to carry cleaner cell boundaries than
// the text dump.
func DefaultConfig() Config {
	return Config{Prefer: model.ProvenanceHTML}
}

// Report summarizes one merge pass.
type Report struct {
	TotalTables int      `json:"total_tables"`
	PDFOnly     int      `json:"pdf_only_tables"`
	HTMLOnly    int      `json:"html_only_tables"`
	Merged      int      `json:"merged_tables"`
	Warnings    []string `json:"warnings"`
}

// Merger reconciles two extraction results.
type Merger struct {
	cfg    Config
	logger *slog.Logger
}

// New returns a Merger with the given configuration.
func New(cfg Config) *Merger {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Prefer != model.ProvenancePDF {
		cfg.Prefer = model.ProvenanceHTML
	}
	return &Merger{cfg: cfg, logger: logger}
}

// Merge reconciles the text-side and HTML-side results into a third
// result. Both inputs are left unmodified.
func (m *Merger) Merge(textResult, htmlResult model.ExtractionResult) (model.ExtractionResult, *Report) {
	m.logger.Info("merging extraction results",
		"prefer", string(m.cfg.Prefer),
		"pdf_tables", len(textResult),
		"html_tables", len(htmlResult))

	out := model.ExtractionResult{}
	report := &Report{Warnings: []string{}}

	keys := map[model.TableKey]bool{}
	for k := range textResult {
		keys[k] = true
	}
	for k := range htmlResult {
		keys[k] = true
	}
	report.TotalTables = len(keys)

	for key := range keys {
		textSchema := textResult[key]
		htmlSchema := htmlResult[key]

		switch {
		case htmlSchema == nil:
			schema := textSchema.Clone()
			schema.Provenance = model.ProvenancePDF
			out[key] = schema
			report.PDFOnly++
		case textSchema == nil:
			schema := htmlSchema.Clone()
			schema.Provenance = model.ProvenanceHTML
			out[key] = schema
			report.HTMLOnly++
		default:
			out[key] = m.mergeTable(key, textSchema, htmlSchema, report)
			report.Merged++
		}
	}

	m.logger.Info("merge complete", "tables", report.TotalTables, "warnings", len(report.Warnings))
	return out, report
}

// mergeTable reconciles one table present in both sources.
func (m *Merger) mergeTable(key model.TableKey, textSchema, htmlSchema *model.TableSchema, report *Report) *model.TableSchema {
	primary, secondary := htmlSchema.Clone(), textSchema.Clone()
	primaryName, secondaryName := "html", "pdf"
	if m.cfg.Prefer == model.ProvenancePDF {
		primary, secondary = secondary, primary
		primaryName, secondaryName = secondaryName, primaryName
	}

	merged := model.NewTableSchema(key, model.ProvenanceMerged)

	warn := func(kind string, issues []recordIssue) {
		for _, is := range issues {
			var w string
			switch {
			case is.missingName:
				w = fmt.Sprintf("%s in %s from %s has no name, added as separate record",
					kind, key, secondaryName)
			case is.duplicate:
				w = fmt.Sprintf("duplicate %s %q in %s from %s dropped, first occurrence kept",
					kind, is.name, key, is.source(primaryName, secondaryName))
			default:
				w = fmt.Sprintf("conflict: %s %q in %s has different %s values: %s=%q, %s=%q, using %s",
					kind, is.name, key, is.field, primaryName, is.primary, secondaryName, is.secondary, primaryName)
			}
			report.Warnings = append(report.Warnings, w)
			m.logger.Warn(w)
		}
	}

	var issues []recordIssue
	merged.Columns, issues = mergeByName(primary.Columns, secondary.Columns,
		func(c model.ColumnRecord) string { return c.Name }, reconcileColumn)
	warn("column", issues)

	merged.Indexes, issues = mergeByName(primary.Indexes, secondary.Indexes,
		func(i model.IndexRecord) string { return i.Name }, reconcileIndex)
	warn("index", issues)

	merged.ForeignKeys, issues = mergeByName(primary.ForeignKeys, secondary.ForeignKeys,
		func(f model.ForeignKeyRecord) string { return f.Name }, reconcileForeignKey)
	warn("foreign key", issues)

	merged.ComputedColumns, issues = mergeByName(primary.ComputedColumns, secondary.ComputedColumns,
		func(c model.ComputedColumnRecord) string { return c.Name }, reconcileComputedColumn)
	warn("computed column", issues)

	return merged
}

// recordIssue is one irregularity found while merging a record list.
type recordIssue struct {
	name        string
	field       string
	primary     string
	secondary   string
	missingName bool
	duplicate   bool
	fromPrimary bool
}

func (is recordIssue) source(primaryName, secondaryName string) string {
	if is.fromPrimary {
		return primaryName
	}
	return secondaryName
}

// mergeByName combines two record lists. Preferred-source records come
// first in their own order; secondary records match against them by
// case-folded name, and unmatched ones append in order. A name never
// appears twice in the output: within one source the first occurrence
// wins and later duplicates are dropped with an issue.
func mergeByName[T any](primary, secondary []T, nameOf func(T) string, reconcile func(*T, T) []fieldDiff) ([]T, []recordIssue) {
	out := make([]T, 0, len(primary)+len(secondary))
	var issues []recordIssue
	seen := map[string]int{}

	for _, rec := range primary {
		name := model.Fold(nameOf(rec))
		if name != "" {
			if _, dup := seen[name]; dup {
				issues = append(issues, recordIssue{name: nameOf(rec), duplicate: true, fromPrimary: true})
				continue
			}
			seen[name] = len(out)
		}
		out = append(out, rec)
	}

	for _, rec := range secondary {
		name := model.Fold(nameOf(rec))
		if name == "" {
			out = append(out, rec)
			issues = append(issues, recordIssue{missingName: true})
			continue
		}
		i, matched := seen[name]
		if !matched {
			seen[name] = len(out)
			out = append(out, rec)
			continue
		}
		for _, d := range reconcile(&out[i], rec) {
			issues = append(issues, recordIssue{
				name:      nameOf(rec),
				field:     d.field,
				primary:   d.primary,
				secondary: d.secondary,
			})
		}
	}

	return out, issues
}

// fieldDiff is one field where both sources carried a value and they
// disagreed. The primary value is kept.
type fieldDiff struct {
	field     string
	primary   string
	secondary string
}

// diffString reconciles one string field. An empty primary value is
// filled from the secondary without a diff.
func diffString(field string, p *string, s string, diffs *[]fieldDiff) {
	switch {
	case s == "":
	case *p == "":
		*p = s
	case *p != s:
		*diffs = append(*diffs, fieldDiff{field, *p, s})
	}
}

func diffTri(field string, p *model.TriBool, s model.TriBool, diffs *[]fieldDiff) {
	switch {
	case !s.Known():
	case !p.Known():
		*p = s
	case *p != s:
		*diffs = append(*diffs, fieldDiff{field, p.String(), s.String()})
	}
}

func diffList(field string, p *[]string, s []string, diffs *[]fieldDiff) {
	switch {
	case len(s) == 0:
	case len(*p) == 0:
		*p = s
	case strings.Join(*p, ",") != strings.Join(s, ","):
		*diffs = append(*diffs, fieldDiff{field, strings.Join(*p, ", "), strings.Join(s, ", ")})
	}
}

func diffInt(field string, p *int, s int, diffs *[]fieldDiff) {
	switch {
	case s == 0:
	case *p == 0:
		*p = s
	case *p != s:
		*diffs = append(*diffs, fieldDiff{field, strconv.Itoa(*p), strconv.Itoa(s)})
	}
}

func reconcileColumn(p *model.ColumnRecord, s model.ColumnRecord) []fieldDiff {
	var diffs []fieldDiff
	diffString("data_type", &p.DataType, s.DataType, &diffs)
	diffString("base_data_type", &p.BaseType, s.BaseType, &diffs)
	diffString("max_length", &p.MaxLength, s.MaxLength, &diffs)
	diffString("numeric_precision", &p.Precision, s.Precision, &diffs)
	diffString("numeric_scale", &p.Scale, s.Scale, &diffs)
	diffTri("allow_nulls", &p.Nullable, s.Nullable, &diffs)
	diffTri("identity", &p.Identity, s.Identity, &diffs)
	diffString("identity_seed", &p.IdentitySeed, s.IdentitySeed, &diffs)
	diffString("identity_increment", &p.IdentityIncrement, s.IdentityIncrement, &diffs)
	diffString("key", &p.Key, s.Key, &diffs)
	diffString("default", &p.Default, s.Default, &diffs)
	return diffs
}

func reconcileIndex(p *model.IndexRecord, s model.IndexRecord) []fieldDiff {
	var diffs []fieldDiff
	diffList("key_columns", &p.KeyColumns, s.KeyColumns, &diffs)
	diffList("included_columns", &p.IncludedColumns, s.IncludedColumns, &diffs)
	diffTri("is_unique", &p.Unique, s.Unique, &diffs)
	diffString("type", &p.Type, s.Type, &diffs)
	diffInt("fill_factor", &p.FillFactor, s.FillFactor, &diffs)
	if p.Primary != s.Primary {
		// Primary flags derive from the name prefix so a mismatch means
		// the sources disagree on the name itself.
		diffs = append(diffs, fieldDiff{"is_primary", strconv.FormatBool(p.Primary), strconv.FormatBool(s.Primary)})
	}
	return diffs
}

func reconcileForeignKey(p *model.ForeignKeyRecord, s model.ForeignKeyRecord) []fieldDiff {
	var diffs []fieldDiff
	diffList("columns", &p.Columns, s.Columns, &diffs)
	diffString("referenced_schema", &p.ReferencedSchema, s.ReferencedSchema, &diffs)
	diffString("referenced_table", &p.ReferencedTable, s.ReferencedTable, &diffs)
	diffList("referenced_columns", &p.ReferencedColumns, s.ReferencedColumns, &diffs)
	diffString("update_rule", &p.UpdateRule, s.UpdateRule, &diffs)
	diffString("delete_rule", &p.DeleteRule, s.DeleteRule, &diffs)
	return diffs
}

func reconcileComputedColumn(p *model.ComputedColumnRecord, s model.ComputedColumnRecord) []fieldDiff {
	var diffs []fieldDiff
	diffString("formula", &p.Formula, s.Formula, &diffs)
	diffString("data_type", &p.DataType, s.DataType, &diffs)
	diffTri("is_persisted", &p.Persisted, s.Persisted, &diffs)
	return diffs
}
