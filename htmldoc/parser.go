package htmldoc

import (
	"io"
	"log/slog"
	"regexp"

	"github.com/tsawler/schemadict/model"
)

// tableHeadingRe matches a schema-qualified table name inside a heading,
// with or without brackets.
var tableHeadingRe = regexp.MustCompile(`(\[?\w+\]?\.\[?\w+\]?)`)

// Config controls HTML parsing behavior.
type Config struct {
	// Logger receives diagnostics. Defaults to slog.Default.
	Logger *slog.Logger
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Parser extracts table schemas from an HTML rendering of a data
// dictionary. A Parser never fails hard: any document it cannot open or
// make sense of yields an empty result.
type Parser struct {
	cfg    Config
	logger *slog.Logger

	reader *Reader
}

// Open prepares a parser for the HTML file at filename. An unreadable or
// unparseable file is reported at Parse time as an empty result, not an
// error.
func Open(filename string, cfg Config) *Parser {
	p := &Parser{cfg: cfg, logger: cfg.logger()}
	reader, err := OpenFile(filename)
	if err != nil {
		p.logger.Warn("html document unavailable", "file", filename, "error", err)
		return p
	}
	p.reader = reader
	return p
}

// NewFromReader prepares a parser reading HTML from r.
func NewFromReader(r io.Reader, cfg Config) *Parser {
	p := &Parser{cfg: cfg, logger: cfg.logger()}
	reader, err := OpenReader(r)
	if err != nil {
		p.logger.Warn("html document unparseable", "error", err)
		return p
	}
	p.reader = reader
	return p
}

// Parse walks the document's headings and grids and extracts one
// TableSchema per table heading. A table's region runs until the next
// heading of equal or higher level; every recognized grid inside the
// region contributes records. Tables with no recognizable grids are
// dropped.
func (p *Parser) Parse() (model.ExtractionResult, error) {
	result := model.ExtractionResult{}
	if p.reader == nil {
		return result, nil
	}

	var current *model.TableSchema
	currentLevel := 0

	flush := func() {
		if current == nil {
			return
		}
		if current.Empty() {
			p.logger.Debug("no recognizable grids for table", "table", string(current.Key))
		} else {
			result[current.Key] = current
		}
		current = nil
	}

	for _, el := range p.reader.elements {
		if el.level > 0 {
			if key, ok := tableHeading(el.heading); ok {
				flush()
				current = model.NewTableSchema(key, model.ProvenanceHTML)
				currentLevel = el.level
			} else if current != nil && el.level <= currentLevel {
				flush()
			}
			continue
		}

		if current == nil || el.grid == nil {
			continue
		}
		p.addGrid(current, el.grid)
	}
	flush()

	p.logger.Info("html parse complete", "tables", len(result))
	return result, nil
}

// addGrid classifies one grid and appends its rows to the schema's
// matching record list.
func (p *Parser) addGrid(schema *model.TableSchema, grid *Grid) {
	kind := Classify(grid)
	if kind == GridUnrecognized {
		p.logger.Debug("unrecognized grid skipped", "table", string(schema.Key), "header", grid.Header)
		return
	}

	for _, fields := range gridFields(grid) {
		switch kind {
		case GridColumns:
			if rec, ok := model.ColumnFromFields(fields); ok {
				schema.Columns = append(schema.Columns, rec)
			}
		case GridIndexes:
			if rec, ok := model.IndexFromFields(fields); ok {
				schema.Indexes = append(schema.Indexes, rec)
			}
		case GridForeignKeys:
			if rec, ok := model.ForeignKeyFromFields(fields); ok {
				schema.ForeignKeys = append(schema.ForeignKeys, rec)
			}
		case GridComputedColumns:
			if rec, ok := model.ComputedColumnFromFields(fields); ok {
				schema.ComputedColumns = append(schema.ComputedColumns, rec)
			}
		}
	}
}

// gridFields pairs each data row with the grid's normalized header labels.
// Short rows map only the cells they have; extra cells are dropped.
func gridFields(grid *Grid) []model.FieldMap {
	labels := make([]string, len(grid.Header))
	for i, h := range grid.Header {
		labels[i] = model.NormalizeLabel(h)
	}

	out := make([]model.FieldMap, 0, len(grid.Rows))
	for _, row := range grid.Rows {
		fields := model.FieldMap{}
		for i, cell := range row {
			if i >= len(labels) || labels[i] == "" {
				continue
			}
			if cell != "" {
				fields[labels[i]] = cell
			}
		}
		if len(fields) > 0 {
			out = append(out, fields)
		}
	}
	return out
}

// tableHeading extracts a table key from heading text.
func tableHeading(text string) (model.TableKey, bool) {
	m := tableHeadingRe.FindString(text)
	if m == "" {
		return "", false
	}
	return model.NewTableKey(m), true
}
