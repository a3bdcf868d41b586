package d3

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kgviz/pkg/errors"
	"github.com/matzehuels/kgviz/pkg/kg"
)

// Options configures [Assemble].
type Options struct {
	// Validate enables the integrity check. A dangling link then fails the
	// conversion with a GRAPH_INTEGRITY error.
	Validate bool

	// GeneratedAt is recorded as metadata.generatedAt. Zero means midnight
	// UTC of the current day, so runs on the same day produce identical
	// output.
	GeneratedAt time.Time

	// Logger receives validation diagnostics. Nil discards them.
	Logger *log.Logger
}

// Assemble converts content into a complete graph document.
//
// source identifies the input and is recorded as metadata.source. Content
// with a nil Entities or Relations slice is treated as missing that key and
// fails with INVALID_STRUCTURE before anything is extracted.
func Assemble(source string, content *kg.Content, opts Options) (*Graph, error) {
	if content == nil {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "knowledge graph content is empty")
	}
	if content.Entities == nil {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "knowledge graph must contain 'entities' array")
	}
	if content.Relations == nil {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "knowledge graph must contain 'relations' array")
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	// Global tables first: group indices and link values depend on the whole input.
	groups := ComputeGroups(content.Entities)
	tally := ComputeTally(content.Relations)
	logger.Debug("computed tables", "groups", groups.Len(), "relationTypes", len(tally))

	nodes, err := ExtractNodes(content.Entities, groups)
	if err != nil {
		return nil, err
	}
	links, err := ExtractLinks(content.Relations, tally)
	if err != nil {
		return nil, err
	}

	if opts.Validate {
		res := Validate(nodes, links)
		res.Report(logger)
		if err := res.Err(); err != nil {
			return nil, err
		}
	}

	generatedAt := opts.GeneratedAt
	if generatedAt.IsZero() {
		generatedAt = Today()
	}

	return &Graph{
		Nodes: nodes,
		Links: links,
		Metadata: Metadata{
			NodeCount:     len(nodes),
			LinkCount:     len(links),
			EntityTypes:   distinct(nodes, func(n Node) string { return n.Type }),
			RelationTypes: distinct(links, func(l Link) string { return l.Type }),
			GeneratedAt:   generatedAt.UTC(),
			Source:        source,
		},
	}, nil
}

// Today returns midnight UTC of the current day.
func Today() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

func distinct[T any](items []T, key func(T) string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, key(it))
	}
	slices.Sort(out)
	return slices.Compact(out)
}
