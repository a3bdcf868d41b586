// Package pipeline provides the conversion pipeline for kgviz.
//
// This package implements the complete load → decode → unwrap → assemble →
// store pipeline used by the CLI and the HTTP service, so both entry points
// behave the same way.
//
// # Architecture
//
// A conversion runs these stages in order:
//
//  1. Load: read the document inside the sandbox root (file input only)
//  2. Decode: find the text encoding that yields valid JSON
//  3. Unwrap: extract the entities and relations from the result envelope
//  4. Assemble: build nodes, links and metadata, optionally validating links
//  5. Store: write the graph document inside the sandbox root (file input only)
//
// # Usage
//
//	runner := pipeline.NewRunner(logger)
//	res, err := runner.Convert(ctx, pipeline.Options{
//	    Input:  "memory.json",
//	    Output: "d3_graph.json",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.OutputPath, res.Stats.NodeCount)
//
// Convert an in-memory document:
//
//	g, err := runner.ConvertBytes(ctx, "upload.json", data, pipeline.Options{})
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kgviz/pkg/config"
	"github.com/matzehuels/kgviz/pkg/d3"
	"github.com/matzehuels/kgviz/pkg/errors"
)

// DefaultSource is recorded as metadata.source when an in-memory document
// has no name.
const DefaultSource = "input"

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for one conversion.
type Options struct {
	// Input is the document path, relative to Root unless absolute.
	// Required by Convert, ignored by ConvertBytes.
	Input string

	// Output is the graph document path. Its file name is sanitized.
	Output string

	// Root confines reads and writes. Defaults to the working directory.
	Root string

	// Source overrides metadata.source. Defaults to Input.
	Source string

	// SkipValidate disables the link integrity check (default: false = validate).
	SkipValidate bool

	// GeneratedAt pins metadata.generatedAt. Zero means the current day.
	GeneratedAt time.Time

	// Logger receives progress and diagnostics. Nil discards them.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a conversion.
type Result struct {
	// Graph is the assembled graph document.
	Graph *d3.Graph

	// OutputPath is the absolute path the document was written to.
	// Empty for ConvertBytes.
	OutputPath string

	// Encoding is the text encoding the input was decoded with.
	Encoding string

	// Stats contains timing and size information.
	Stats Stats
}

// Stats contains conversion statistics.
type Stats struct {
	NodeCount  int
	LinkCount  int
	InputBytes int
	Duration   time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for a
// file conversion. Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Input == "" {
		return errors.New(errors.ErrCodeInvalidInput, "input is required")
	}
	o.SetDefaults()
	if err := errors.ValidateOutputName(o.Output); err != nil {
		return err
	}
	if err := errors.ValidateSourceName(o.Source); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// SetDefaults fills empty fields with their defaults.
func (o *Options) SetDefaults() {
	if o.Output == "" {
		o.Output = config.DefaultOutput
	}
	if o.Root == "" {
		o.Root = "."
	}
	if o.Source == "" {
		o.Source = o.Input
	}
	if o.Source == "" {
		o.Source = DefaultSource
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ShouldValidate reports whether the link integrity check runs.
func (o *Options) ShouldValidate() bool {
	return !o.SkipValidate
}

// FromConfig returns options carrying the values of cfg. Input is left empty.
func FromConfig(cfg config.Config) Options {
	return Options{
		Output:       cfg.Output,
		Root:         cfg.Root,
		SkipValidate: !cfg.Validate,
	}
}
