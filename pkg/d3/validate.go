package d3

import (
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kgviz/pkg/errors"
)

// Link endpoints.
const (
	EndpointSource = "source"
	EndpointTarget = "target"
)

// DanglingRef is one link endpoint that names no existing node.
type DanglingRef struct {
	Link     int    // index into the links slice
	Endpoint string // EndpointSource or EndpointTarget
	ID       string
}

// ValidationResult is the outcome of [Validate].
type ValidationResult struct {
	OK         bool
	MissingIDs []string      // sorted, distinct
	Dangling   []DanglingRef // in link order, source before target
}

// Validate checks every link endpoint against the node ids. It never stops
// at the first failure, so the result lists every dangling reference.
func Validate(nodes []Node, links []Link) ValidationResult {
	ids := make(map[string]struct{}, len(nodes))
	for _, n := range nodes {
		ids[n.ID] = struct{}{}
	}

	var res ValidationResult
	missing := make(map[string]struct{})
	check := func(i int, endpoint, id string) {
		if _, ok := ids[id]; ok {
			return
		}
		res.Dangling = append(res.Dangling, DanglingRef{Link: i, Endpoint: endpoint, ID: id})
		missing[id] = struct{}{}
	}
	for i, l := range links {
		check(i, EndpointSource, l.Source)
		check(i, EndpointTarget, l.Target)
	}

	res.MissingIDs = make([]string, 0, len(missing))
	for id := range missing {
		res.MissingIDs = append(res.MissingIDs, id)
	}
	slices.Sort(res.MissingIDs)
	res.OK = len(res.MissingIDs) == 0
	return res
}

// Report logs one warning per dangling reference followed by a summary.
// It logs nothing for a valid graph.
func (r ValidationResult) Report(logger *log.Logger) {
	if r.OK || logger == nil {
		return
	}
	for _, d := range r.Dangling {
		logger.Warnf("Link %s '%s' not found in nodes", d.Endpoint, d.ID)
	}
	logger.Warnf("Found %d missing nodes: %s", len(r.MissingIDs), strings.Join(r.MissingIDs, ", "))
}

// Err returns a GRAPH_INTEGRITY error carrying every missing id, or nil when
// the graph is valid.
func (r ValidationResult) Err() error {
	if r.OK {
		return nil
	}
	return errors.Wrap(errors.ErrCodeGraphIntegrity,
		&errors.IntegrityError{Missing: slices.Clone(r.MissingIDs)},
		"graph integrity validation failed")
}
