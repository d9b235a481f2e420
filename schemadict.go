// Package schemadict extracts database table schemas from a rendered data
// dictionary. It reads a page-delimited text dump of the document and,
// optionally, an HTML rendering of the same document, then reconciles the
// two extractions into a single result.
//
// Basic usage:
//
//	result, report, err := schemadict.Open("dictionary.txt").
//	    HTML("dictionary.html").
//	    Extract(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, w := range report.Warnings {
//	    log.Println("warning:", w)
//	}
//
// With options:
//
//	result, _, err := schemadict.Open("dictionary.txt").
//	    HTML("dictionary.html").
//	    PreferText().
//	    PageOffset(3).
//	    Extract(ctx)
//
// For lower-level control, the textdoc, htmldoc and merge packages are
// also available directly.
package schemadict

// Open prepares an Extractor for the given text dump. Configuration
// methods return new Extractor instances, so a configured Extractor may
// be shared and re-chained freely.
//
// Example:
//
//	result, report, err := schemadict.Open("dictionary.txt").Extract(ctx)
func Open(textFile string) *Extractor {
	return &Extractor{
		textFile: textFile,
		options:  defaultOptions(),
	}
}
