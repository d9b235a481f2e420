package textdoc

import (
	"regexp"
	"strings"

	"github.com/tsawler/schemadict/model"
)

// SectionExtractor recovers labeled rows from the data lines of one
// definition-block section. Implementations return nil when the lines do
// not fit their strategy, letting the caller fall back to another.
type SectionExtractor interface {
	// Name identifies the extraction strategy.
	Name() string

	// Extract parses section lines into labeled rows.
	Extract(lines []string) []model.FieldMap
}

// headerFieldRe matches one header field: a token run where single embedded
// spaces are part of a field name and runs of two or more spaces separate
// fields ("Column Name  Data Type  Allow Nulls").
var headerFieldRe = regexp.MustCompile(`\S+(?: \S+)*`)

// PositionalExtractor calibrates field boundaries from the whitespace runs
// of a recognizable header line, then slices every following data line at
// those same offsets. Single embedded spaces inside values survive slicing.
type PositionalExtractor struct {
	// HeaderWords lists the phrases a header line must carry, one group
	// of accepted alternatives per required field.
	HeaderWords [][]string

	// MinLineLength skips noise lines shorter than this.
	MinLineLength int
}

func (e *PositionalExtractor) Name() string { return "positional" }

// Extract locates the header line, derives field offsets and labels from
// it, and slices the subsequent lines. Returns nil when no header line is
// present or calibration yields fewer than two fields.
func (e *PositionalExtractor) Extract(lines []string) []model.FieldMap {
	idx := e.headerIndex(lines)
	if idx < 0 {
		return nil
	}
	return e.extractFrom(lines, idx)
}

// headerIndex returns the index of the first line carrying all required
// header phrases, or -1.
func (e *PositionalExtractor) headerIndex(lines []string) int {
	for i, line := range lines {
		if e.isHeader(line) {
			return i
		}
	}
	return -1
}

// extractFrom calibrates boundaries from the header at headerIdx and slices
// the lines below it.
func (e *PositionalExtractor) extractFrom(lines []string, headerIdx int) []model.FieldMap {
	header := lines[headerIdx]
	locs := headerFieldRe.FindAllStringIndex(header, -1)
	if len(locs) < 2 {
		return nil
	}
	positions := make([]int, len(locs))
	labels := make([]string, len(locs))
	for i, loc := range locs {
		positions[i] = loc[0]
		labels[i] = model.NormalizeLabel(header[loc[0]:loc[1]])
	}

	var rows []model.FieldMap
	for _, line := range lines[headerIdx+1:] {
		if len(strings.TrimSpace(line)) < e.MinLineLength {
			continue
		}
		row := make(model.FieldMap, len(labels))
		for i := range positions {
			start := positions[i]
			if start >= len(line) {
				break
			}
			end := len(line)
			if i+1 < len(positions) && positions[i+1] < end {
				end = positions[i+1]
			}
			if value := strings.TrimSpace(line[start:end]); value != "" {
				row[labels[i]] = value
			}
		}
		// A single populated field is a stray line, not a record.
		if len(row) >= 2 {
			rows = append(rows, row)
		}
	}
	return rows
}

func (e *PositionalExtractor) isHeader(line string) bool {
	lower := strings.ToLower(line)
	for _, group := range e.HeaderWords {
		found := false
		for _, alt := range group {
			if strings.Contains(lower, alt) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// PatternExtractor applies a fixed regular expression to every data line.
// Named capture groups become field labels. It is the fallback when no
// calibratable header exists.
type PatternExtractor struct {
	Pattern       *regexp.Regexp
	MinLineLength int
}

func (e *PatternExtractor) Name() string { return "pattern" }

// Extract matches each line against the section pattern and maps named
// groups onto a labeled row. Lines that do not match are skipped.
func (e *PatternExtractor) Extract(lines []string) []model.FieldMap {
	names := e.Pattern.SubexpNames()
	var rows []model.FieldMap
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < e.MinLineLength {
			continue
		}
		m := e.Pattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		row := make(model.FieldMap)
		for i, name := range names {
			if name == "" || i >= len(m) {
				continue
			}
			if value := strings.TrimSpace(m[i]); value != "" {
				row[name] = value
			}
		}
		if len(row) > 0 {
			rows = append(rows, row)
		}
	}
	return rows
}
