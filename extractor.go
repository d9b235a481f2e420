package schemadict

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/schemadict/htmldoc"
	"github.com/tsawler/schemadict/merge"
	"github.com/tsawler/schemadict/model"
	"github.com/tsawler/schemadict/textdoc"
)

// Extractor provides a fluent interface for configuring and running one
// extraction pass. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method
// chaining.
type Extractor struct {
	textFile string
	options  ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of
// options. This ensures immutability, each chain method returns a new
// instance.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		textFile: e.textFile,
		options:  e.options.clone(),
		err:      e.err,
	}
}

// HTML adds an HTML rendering of the document as a corroborating source.
func (e *Extractor) HTML(filename string) *Extractor {
	newExt := e.clone()
	newExt.options.htmlFile = filename
	return newExt
}

// PreferText makes the text dump win merge disagreements.
func (e *Extractor) PreferText() *Extractor {
	newExt := e.clone()
	newExt.options.prefer = model.ProvenancePDF
	return newExt
}

// PreferHTML makes the HTML rendering win merge disagreements. This is
// the default.
func (e *Extractor) PreferHTML() *Extractor {
	newExt := e.clone()
	newExt.options.prefer = model.ProvenanceHTML
	return newExt
}

// PageOffset overrides the printed-to-physical page offset used when
// locating definition blocks in the text dump.
func (e *Extractor) PageOffset(offset int) *Extractor {
	newExt := e.clone()
	newExt.options.textConfig.PageOffset = offset
	return newExt
}

// TextConfig replaces the whole text-side scan configuration for
// documents that need more calibration than PageOffset alone.
func (e *Extractor) TextConfig(cfg textdoc.Config) *Extractor {
	newExt := e.clone()
	newExt.options.textConfig = cfg
	return newExt
}

// Logger directs diagnostics from every stage to the given logger.
func (e *Extractor) Logger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = logger
	return newExt
}

// Extract is the terminal operation: it runs the text parse and, when an
// HTML file was given, the HTML parse concurrently, then merges the two
// results. The returned report carries per-source table counts and every
// reconciliation warning.
func (e *Extractor) Extract(ctx context.Context) (model.ExtractionResult, *merge.Report, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if e.textFile == "" {
		return nil, nil, fmt.Errorf("no text file specified")
	}

	textCfg := e.options.textConfig
	if textCfg.Logger == nil {
		textCfg.Logger = e.options.logger
	}

	var textResult, htmlResult model.ExtractionResult

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		p, err := textdoc.Open(e.textFile, textCfg)
		if err != nil {
			return fmt.Errorf("opening text dump: %w", err)
		}
		textResult, err = p.Parse()
		return err
	})
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if e.options.htmlFile == "" {
			htmlResult = model.ExtractionResult{}
			return nil
		}
		p := htmldoc.Open(e.options.htmlFile, htmldoc.Config{Logger: e.options.logger})
		var err error
		htmlResult, err = p.Parse()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	merger := merge.New(merge.Config{Prefer: e.options.prefer, Logger: e.options.logger})
	result, report := merger.Merge(textResult, htmlResult)
	return result, report, nil
}
