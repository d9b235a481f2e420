package textdoc

import (
	"regexp"
	"strings"

	"github.com/tsawler/schemadict/model"
)

// TableDrift records one table whose definition was found on a different
// physical page than its TOC entry predicted.
type TableDrift struct {
	Key          model.TableKey
	ExpectedPage int
	ActualPage   int
	Drift        int
}

// DriftStats aggregates page drift across one parse pass.
type DriftStats struct {
	TotalTables     int
	TablesWithDrift int
	ByOffset        map[int]int
	Drifted         []TableDrift
}

func (p *Parser) recordDrift(entry TocEntry, actualPage int) {
	expected := entry.Page + p.cfg.PageOffset
	drift := actualPage - expected
	if drift == 0 {
		return
	}
	p.drift.TablesWithDrift++
	p.drift.ByOffset[drift]++
	p.drift.Drifted = append(p.drift.Drifted, TableDrift{
		Key:          entry.Key,
		ExpectedPage: expected,
		ActualPage:   actualPage,
		Drift:        drift,
	})
}

func (p *Parser) logDrift() {
	if p.drift.TotalTables == 0 {
		return
	}
	p.logger.Info("page drift summary",
		"tables", p.drift.TotalTables,
		"tablesWithDrift", p.drift.TablesWithDrift)
	for offset, count := range p.drift.ByOffset {
		p.logger.Debug("drift distribution", "offset", offset, "tables", count)
	}
}

// extractDefinitionBlock collects the lines of one table's definition. The
// scan starts SearchRadius pages before the physical page computed from the
// TOC entry and ends when the next table's start marker appears or the page
// budget runs out. It reports the physical page where the start marker was
// found and false when the marker never appeared within the search window.
func (p *Parser) extractDefinitionBlock(entry TocEntry, next *TocEntry) ([]string, int, bool) {
	pages := p.splitPages()
	filePage := entry.Page + p.cfg.PageOffset
	if filePage >= len(pages) {
		p.logger.Warn("page out of range", "table", entry.Key, "page", filePage)
		return nil, 0, false
	}

	startMarkers := markersFor(entry.Key)
	var endMarkers []string
	if next != nil {
		endMarkers = markersFor(next.Key)
	}

	searchStart := max(filePage-p.cfg.SearchRadius, 0)
	budgetEnd := min(filePage+p.cfg.MaxPagesPerTable+1, len(pages))

	var lines []string
	started := false
	actualPage := 0

	for idx := searchStart; idx < budgetEnd; idx++ {
		if !started && idx > filePage+p.cfg.SearchRadius {
			// Marker not within the search window; scanning further
			// would only find some later table's pages.
			break
		}

		for _, line := range strings.Split(pages[idx], "\n") {
			stripped := strings.TrimSpace(line)

			if !started {
				if matchesMarker(stripped, startMarkers, entry.Key) {
					started = true
					actualPage = idx
					lines = append(lines, line)
				}
				continue
			}

			if len(endMarkers) > 0 && matchesMarker(stripped, endMarkers, next.Key) {
				return lines, actualPage, len(lines) > 0
			}
			if p.isBoilerplate(stripped) {
				continue
			}
			lines = append(lines, line)
		}
	}

	if !started || len(lines) == 0 {
		return nil, 0, false
	}
	return lines, actualPage, true
}

// markersFor returns the literal start-marker forms of a table name.
func markersFor(key model.TableKey) []string {
	return []string{key.Bracketed(), string(key)}
}

// matchesMarker reports whether a line marks the start of the given table's
// definition: either a literal bracketed/plain name, or, as a fallback, a
// line mentioning both the schema and table tokens.
func matchesMarker(line string, markers []string, key model.TableKey) bool {
	for _, m := range markers {
		if strings.Contains(line, m) {
			return true
		}
	}
	lower := strings.ToLower(line)
	return strings.Contains(lower, strings.ToLower(key.Schema())) &&
		strings.Contains(lower, strings.ToLower(key.Table()))
}

var pageNumberRe = regexp.MustCompile(`^page\s+\d+`)

// isBoilerplate identifies running header/footer lines that would otherwise
// pollute section data.
func (p *Parser) isBoilerplate(line string) bool {
	lower := strings.ToLower(line)
	if pageNumberRe.MatchString(lower) {
		return true
	}
	for _, phrase := range p.cfg.Boilerplate {
		if strings.Contains(lower, phrase) {
			return true
		}
	}
	return false
}
