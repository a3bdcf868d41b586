package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/kgviz/pkg/d3"
	"github.com/matzehuels/kgviz/pkg/errors"
	pkgio "github.com/matzehuels/kgviz/pkg/io"
	"github.com/matzehuels/kgviz/pkg/kg"
	"github.com/matzehuels/kgviz/pkg/observability"
)

// Runner executes conversions.
//
// The Runner holds no state besides its logger, so multiple goroutines can
// use the same Runner with different options. Every conversion builds its
// own tables and discards them when it returns.
type Runner struct {
	Logger *log.Logger
}

// NewRunner creates a runner. If logger is nil, log.Default() is used.
func NewRunner(logger *log.Logger) *Runner {
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Logger: logger}
}

// Convert runs the complete pipeline on a file inside opts.Root and writes
// the graph document to opts.Output.
func (r *Runner) Convert(ctx context.Context, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	logger := opts.Logger.With("run", runID())
	opts.Logger = logger

	start := time.Now()
	hooks := observability.Convert()
	hooks.OnConvertStart(ctx, opts.Source)
	defer func() {
		var stats observability.ConvertStats
		if res != nil {
			stats = observability.ConvertStats{Nodes: res.Stats.NodeCount, Links: res.Stats.LinkCount}
		}
		hooks.OnConvertComplete(ctx, opts.Source, stats, time.Since(start), err)
	}()

	sb, err := pkgio.NewSandbox(opts.Root, logger)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stages 1-2: Load, Decode
	doc, err := sb.LoadDocument(opts.Input)
	if err != nil {
		return nil, err
	}

	// Stages 3-4: Unwrap, Assemble
	res, err = r.assemble(ctx, doc, opts)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// Stage 5: Store
	res.OutputPath, err = sb.StoreDocument(opts.Output, res.Graph)
	if err != nil {
		return nil, err
	}
	res.Stats.Duration = time.Since(start)

	logger.Debug("converted knowledge graph",
		"nodes", res.Stats.NodeCount,
		"links", res.Stats.LinkCount,
		"output", res.OutputPath,
		"duration", res.Stats.Duration)
	return res, nil
}

// ConvertBytes runs the decode, unwrap and assemble stages on an in-memory
// document. Nothing touches the filesystem. source names the document in
// metadata.source and in error messages.
func (r *Runner) ConvertBytes(ctx context.Context, source string, data []byte, opts Options) (res *Result, err error) {
	r.applyLogger(&opts)
	if source != "" {
		opts.Source = source
	}
	opts.SetDefaults()
	if err := errors.ValidateSourceName(opts.Source); err != nil {
		return nil, err
	}
	opts.Logger = opts.Logger.With("run", runID())

	start := time.Now()
	hooks := observability.Convert()
	hooks.OnConvertStart(ctx, opts.Source)
	defer func() {
		var stats observability.ConvertStats
		if res != nil {
			stats = observability.ConvertStats{Nodes: res.Stats.NodeCount, Links: res.Stats.LinkCount}
		}
		hooks.OnConvertComplete(ctx, opts.Source, stats, time.Since(start), err)
	}()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	text, enc, err := pkgio.DecodeText(data, opts.Logger)
	if err != nil {
		return nil, errors.New(errors.ErrCodeDecode, "unable to decode %s with any supported encoding", opts.Source)
	}

	res, err = r.assemble(ctx, &pkgio.Document{Text: text, Encoding: enc, Size: len(data)}, opts)
	if err != nil {
		return nil, err
	}
	res.Stats.Duration = time.Since(start)
	opts.Logger.Debug("converted document",
		"source", opts.Source,
		"nodes", res.Stats.NodeCount,
		"links", res.Stats.LinkCount,
		"duration", res.Stats.Duration)
	return res, nil
}

// assemble unwraps a decoded document and builds the graph.
func (r *Runner) assemble(ctx context.Context, doc *pkgio.Document, opts Options) (*Result, error) {
	observability.Convert().OnDecode(ctx, opts.Source, doc.Encoding)
	opts.Logger.Debug("decoded input", "encoding", doc.Encoding, "bytes", doc.Size)

	content, err := kg.ParseEnvelope(doc.Text)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g, err := d3.Assemble(opts.Source, content, d3.Options{
		Validate:    opts.ShouldValidate(),
		GeneratedAt: opts.GeneratedAt,
		Logger:      opts.Logger,
	})
	if err != nil {
		if missing := errors.MissingIDs(err); len(missing) > 0 {
			observability.Convert().OnIntegrityFailure(ctx, opts.Source, len(missing))
		}
		return nil, err
	}

	return &Result{
		Graph:    g,
		Encoding: doc.Encoding,
		Stats: Stats{
			NodeCount:  g.Metadata.NodeCount,
			LinkCount:  g.Metadata.LinkCount,
			InputBytes: doc.Size,
		},
	}, nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// runID returns a short identifier that ties together the log lines of one
// conversion.
func runID() string {
	return uuid.NewString()[:8]
}
