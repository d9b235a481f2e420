package textdoc

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/tsawler/schemadict/model"
)

// pageDelimiter is the literal marker carrying the page ordinal; the dump
// contains lines like "--- Page 12 ---".
const pageDelimiter = "--- Page "

// tocMarker identifies the start of the table of contents.
const tocMarker = "Table of Contents"

// TocEntry is one table listed in the TOC with its printed page number.
type TocEntry struct {
	Key  model.TableKey
	Page int
}

// Parser extracts table definitions from one text dump. A Parser is built
// for exactly one document pass; the page split and TOC are instance-owned,
// lazily-populated caches.
type Parser struct {
	cfg    Config
	logger *slog.Logger

	text  string
	pages []string   // lazily split from text
	toc   []TocEntry // lazily located; non-nil once the TOC scan has run
	drift DriftStats
}

// Open reads the text dump at filename and returns a Parser for it.
func Open(filename string, cfg Config) (*Parser, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("opening text dump: %w", err)
	}
	return newParser(string(data), cfg), nil
}

// NewFromReader builds a Parser from an already-open text dump.
func NewFromReader(r io.Reader, cfg Config) (*Parser, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading text dump: %w", err)
	}
	return newParser(string(data), cfg), nil
}

func newParser(text string, cfg Config) *Parser {
	return &Parser{
		cfg:    cfg,
		logger: cfg.logger(),
		text:   text,
	}
}

// Parse extracts all table definitions addressed by the TOC, in page-number
// order. A document without a locatable TOC yields an empty result, and a
// table whose start marker cannot be found is skipped; neither is an error.
func (p *Parser) Parse() (model.ExtractionResult, error) {
	result := make(model.ExtractionResult)

	entries := p.tocEntries()
	if len(entries) == 0 {
		p.logger.Warn("table of contents not found, no tables extracted",
			"searchWindow", p.cfg.TOCSearchWindow)
		return result, nil
	}

	p.drift = DriftStats{
		TotalTables: len(entries),
		ByOffset:    make(map[int]int),
	}

	for i, entry := range entries {
		if _, dup := result[entry.Key]; dup {
			p.logger.Warn("duplicate TOC entry skipped", "table", entry.Key, "page", entry.Page)
			continue
		}

		var next *TocEntry
		if i+1 < len(entries) {
			next = &entries[i+1]
		}

		block, actualPage, ok := p.extractDefinitionBlock(entry, next)
		if !ok {
			p.logger.Warn("start marker not found, table skipped",
				"table", entry.Key, "page", entry.Page)
			continue
		}
		p.recordDrift(entry, actualPage)

		schema := model.NewTableSchema(entry.Key, model.ProvenancePDF)
		schema.Columns = parseColumns(block)
		schema.Indexes = parseIndexes(block)
		schema.ForeignKeys = parseForeignKeys(block)
		schema.ComputedColumns = parseComputedColumns(block)
		result[entry.Key] = schema

		p.logger.Debug("table parsed",
			"table", entry.Key,
			"columns", len(schema.Columns),
			"indexes", len(schema.Indexes),
			"foreignKeys", len(schema.ForeignKeys),
			"computedColumns", len(schema.ComputedColumns))
	}

	p.logDrift()
	return result, nil
}

// Drift returns page-drift statistics for the most recent Parse call.
func (p *Parser) Drift() DriftStats {
	return p.drift
}

// splitPages lazily splits the dump into page segments. Segment index 0 is
// whatever precedes the first delimiter; segment i corresponds to physical
// page i.
func (p *Parser) splitPages() []string {
	if p.pages == nil {
		p.pages = strings.Split(p.text, pageDelimiter)
	}
	return p.pages
}

// tocLineRe matches "schema.table ... page", with the name optionally
// bracketed and the leader made of dots or spaces.
var tocLineRe = regexp.MustCompile(`(\[?\w+\]?\.\[?\w+\]?)\s*[. ]+\s*(\d+)`)

// tocEntries locates and parses the table of contents, sorted by page
// number. The scan runs at most once per Parser.
func (p *Parser) tocEntries() []TocEntry {
	if p.toc != nil {
		return p.toc
	}
	p.toc = []TocEntry{}

	pages := p.splitPages()
	tocStart := -1
	limit := min(p.cfg.TOCSearchWindow+1, len(pages))
	for i := 1; i < limit; i++ {
		if strings.Contains(pages[i], tocMarker) {
			tocStart = i
			break
		}
	}
	if tocStart < 0 {
		return p.toc
	}
	p.logger.Debug("table of contents located", "page", tocStart)

	end := min(tocStart+p.cfg.MaxTOCPages, len(pages))
scan:
	for i := tocStart; i < end; i++ {
		for _, line := range strings.Split(pages[i], "\n") {
			if p.cfg.TOCStopMarker != "" && strings.Contains(line, p.cfg.TOCStopMarker) {
				p.logger.Debug("TOC section boundary reached", "marker", p.cfg.TOCStopMarker)
				break scan
			}
			m := tocLineRe.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			page, err := strconv.Atoi(m[2])
			if err != nil {
				continue
			}
			p.toc = append(p.toc, TocEntry{Key: model.NewTableKey(m[1]), Page: page})
		}
	}

	// Page-number order is the physical appearance order of tables in the
	// dump, independent of how the TOC itself lists them.
	sort.SliceStable(p.toc, func(i, j int) bool { return p.toc[i].Page < p.toc[j].Page })

	p.logger.Info("table of contents parsed", "entries", len(p.toc))
	return p.toc
}
