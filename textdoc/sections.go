package textdoc

import (
	"regexp"
	"strings"

	"github.com/tsawler/schemadict/model"
)

// sectionSpec describes how one named sub-section of a definition block is
// recognized and parsed.
type sectionSpec struct {
	heading     string
	headingRe   *regexp.Regexp
	headerWords [][]string
	pattern     *regexp.Regexp
	minLine     int
}

func newSectionSpec(heading string, headerWords [][]string, pattern *regexp.Regexp, minLine int) sectionSpec {
	return sectionSpec{
		heading:     heading,
		headingRe:   regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(heading) + `\s*$`),
		headerWords: headerWords,
		pattern:     pattern,
		minLine:     minLine,
	}
}

var (
	columnsSpec = newSectionSpec("Columns",
		[][]string{{"column name", "name"}, {"data type", "type"}},
		regexp.MustCompile(`(?i)^(?:(?P<key>PK|FK|UK)\s+)?(?P<column_name>\w+)\s+(?P<data_type>\w+(?:\(\d+(?:,\d+)?\))?)(?:\s+(?P<max_length>\d+))?(?:\s+(?P<allow_nulls>YES|NO|Y|N|TRUE|FALSE))?(?:\s+(?P<identity>YES|NO|Y|N|TRUE|FALSE|\d+\s*-\s*\d+))?(?:\s+(?P<default>\(\(.*\)\)))?`),
		10)

	indexesSpec = newSectionSpec("Indexes",
		[][]string{{"name"}, {"key columns"}},
		regexp.MustCompile(`(?i)^(?P<name>\S+)\s{2,}(?P<key_columns>\S.*?)(?:\s{2,}(?P<is_unique>YES|NO|Y|N|TRUE|FALSE|UNIQUE))?(?:\s{2,}(?P<type>[A-Za-z]+))?(?:\s{2,}(?P<fill_factor>\d+))?\s*$`),
		5)

	foreignKeysSpec = newSectionSpec("Foreign Keys",
		[][]string{{"name"}, {"referenced"}},
		regexp.MustCompile(`(?i)^(?P<name>\S+)\s{2,}(?P<columns>\S.*?)\s{2,}(?P<referenced>\S+)(?:\s{2,}(?P<update_rule>[A-Za-z][A-Za-z ]*?))?(?:\s{2,}(?P<delete_rule>[A-Za-z][A-Za-z ]*?))?\s*$`),
		5)

	computedColumnsSpec = newSectionSpec("Computed Columns",
		[][]string{{"column name", "name"}, {"formula"}},
		regexp.MustCompile(`(?i)^(?P<column_name>\S+)\s{2,}(?P<formula>\S.*?)(?:\s{2,}(?P<data_type>[A-Za-z]\w*(?:\(\d+(?:,\d+)?\))?))?(?:\s{2,}(?P<is_persisted>YES|NO|Y|N|TRUE|FALSE))?\s*$`),
		5)

	allSpecs = []sectionSpec{columnsSpec, indexesSpec, foreignKeysSpec, computedColumnsSpec}
)

// sectionLines returns the lines between the named section heading and the
// next section heading (or block end). Nil when the section is absent.
func sectionLines(block []string, spec sectionSpec) []string {
	start := -1
	for i, line := range block {
		if spec.headingRe.MatchString(line) {
			start = i + 1
			break
		}
	}
	if start < 0 {
		return nil
	}

	end := len(block)
	for i := start; i < len(block); i++ {
		for _, other := range allSpecs {
			if other.heading == spec.heading {
				continue
			}
			if other.headingRe.MatchString(block[i]) {
				end = i
				break
			}
		}
		if end != len(block) {
			break
		}
	}
	return block[start:end]
}

// extractRows is the single decision point between the two extraction
// strategies: positional slicing when a calibratable header line exists,
// pattern matching otherwise.
func extractRows(lines []string, spec sectionSpec) []model.FieldMap {
	if len(lines) == 0 {
		return nil
	}

	positional := &PositionalExtractor{
		HeaderWords:   spec.headerWords,
		MinLineLength: spec.minLine,
	}
	if idx := positional.headerIndex(lines); idx >= 0 {
		if rows := positional.extractFrom(lines, idx); len(rows) > 0 {
			return rows
		}
		// Header present but slicing produced nothing; let the pattern
		// try the data lines below it.
		lines = lines[idx+1:]
	}

	pattern := &PatternExtractor{
		Pattern:       spec.pattern,
		MinLineLength: spec.minLine,
	}
	return pattern.Extract(lines)
}

func parseColumns(block []string) []model.ColumnRecord {
	var out []model.ColumnRecord
	for _, row := range extractRows(sectionLines(block, columnsSpec), columnsSpec) {
		if col, ok := model.ColumnFromFields(row); ok {
			out = append(out, col)
		}
	}
	return out
}

func parseIndexes(block []string) []model.IndexRecord {
	var out []model.IndexRecord
	for _, row := range extractRows(sectionLines(block, indexesSpec), indexesSpec) {
		// Some layouts use a literal UNIQUE keyword instead of a boolean.
		if strings.EqualFold(row["is_unique"], "unique") {
			row["is_unique"] = "YES"
		}
		if idx, ok := model.IndexFromFields(row); ok {
			out = append(out, idx)
		}
	}
	return out
}

func parseForeignKeys(block []string) []model.ForeignKeyRecord {
	var out []model.ForeignKeyRecord
	for _, row := range extractRows(sectionLines(block, foreignKeysSpec), foreignKeysSpec) {
		if fk, ok := model.ForeignKeyFromFields(row); ok {
			out = append(out, fk)
		}
	}
	return out
}

func parseComputedColumns(block []string) []model.ComputedColumnRecord {
	var out []model.ComputedColumnRecord
	for _, row := range extractRows(sectionLines(block, computedColumnsSpec), computedColumnsSpec) {
		if cc, ok := model.ComputedColumnFromFields(row); ok {
			out = append(out, cc)
		}
	}
	return out
}
