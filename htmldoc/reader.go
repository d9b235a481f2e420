package htmldoc

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/net/html"
)

// Grid is one tabular grid element, flattened to cell text. The first row
// of the source table is taken as the header row.
type Grid struct {
	Header []string
	Rows   [][]string

	// Preceding is the text content of the heading or paragraph
	// immediately before the grid, used when the header row alone
	// cannot classify it.
	Preceding string
}

// element is one entry in the flattened document stream: a heading or a
// grid, in document order.
type element struct {
	heading string
	level   int // 0 for grids
	grid    *Grid
}

// Reader provides ordered access to the headings and grids of an HTML
// document.
type Reader struct {
	elements []element
}

// OpenFile parses the HTML file at filename.
func OpenFile(filename string) (*Reader, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return OpenReader(f)
}

// OpenReader parses HTML from an io.Reader.
func OpenReader(r io.Reader) (*Reader, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	reader := &Reader{}
	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	var lastText string
	reader.traverse(body, &lastText)
	return reader, nil
}

// traverse walks the DOM collecting headings and tables in document order.
// lastText tracks the most recent heading or paragraph text so grids can
// carry their preceding context.
func (r *Reader) traverse(n *html.Node, lastText *string) {
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}

		switch n.Data {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			text := getTextContent(n)
			if text != "" {
				r.elements = append(r.elements, element{
					heading: text,
					level:   int(n.Data[1] - '0'),
				})
				*lastText = text
			}
			return

		case "p":
			if text := getTextContent(n); text != "" {
				*lastText = text
			}
			return

		case "table":
			grid := parseGrid(n)
			if grid != nil {
				grid.Preceding = *lastText
				r.elements = append(r.elements, element{grid: grid})
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.traverse(c, lastText)
	}
}

// parseGrid flattens an HTML table element. Returns nil for tables with no
// data rows.
func parseGrid(tableNode *html.Node) *Grid {
	var rows [][]string

	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			switch c.Data {
			case "thead", "tbody", "tfoot":
				collect(c)
			case "tr":
				if row := parseRow(c); len(row) > 0 {
					rows = append(rows, row)
				}
			}
		}
	}
	collect(tableNode)

	if len(rows) < 2 {
		return nil
	}
	return &Grid{Header: rows[0], Rows: rows[1:]}
}

func parseRow(tr *html.Node) []string {
	var row []string
	for c := tr.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && (c.Data == "td" || c.Data == "th") {
			row = append(row, getTextContent(c))
		}
	}
	return row
}

// shouldSkipElement reports whether the element never carries document
// content.
func shouldSkipElement(tagName string) bool {
	switch tagName {
	case "script", "style", "noscript", "template", "svg", "math", "iframe", "object", "embed":
		return true
	}
	return false
}

// findElement finds the first element with the given tag name.
func findElement(n *html.Node, tagName string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tagName {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if result := findElement(c, tagName); result != nil {
			return result
		}
	}
	return nil
}

// getTextContent extracts all text content from a node and its descendants.
func getTextContent(n *html.Node) string {
	var sb strings.Builder
	textContent(n, &sb)
	return strings.Join(strings.Fields(sb.String()), " ")
}

func textContent(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
	}
	if n.Type == html.ElementNode {
		if shouldSkipElement(n.Data) {
			return
		}
		if n.Data == "br" {
			sb.WriteString(" ")
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		textContent(c, sb)
	}
}
