package schemadict

import (
	"log/slog"

	"github.com/tsawler/schemadict/model"
	"github.com/tsawler/schemadict/textdoc"
)

// ExtractOptions holds configuration for an extraction pass.
type ExtractOptions struct {
	// HTML rendering of the same document; empty means text-only.
	htmlFile string

	// Source whose values win merge disagreements.
	prefer model.Provenance

	// Text-side scan calibration.
	textConfig textdoc.Config

	logger *slog.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		prefer:     model.ProvenanceHTML,
		textConfig: textdoc.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	if o.textConfig.Boilerplate != nil {
		newOpts.textConfig.Boilerplate = append([]string(nil), o.textConfig.Boilerplate...)
	}
	return newOpts
}
