package d3

import (
	"slices"

	"github.com/matzehuels/kgviz/pkg/kg"
)

// GroupTable is the sorted set of distinct entity types.
type GroupTable struct {
	labels []string
	index  map[string]int
}

// ComputeGroups collects the entity type of every record, with a missing
// type counted as [kg.UnknownType], and sorts them lexicographically.
// Records are not filtered by discriminator.
func ComputeGroups(entities []kg.RawEntity) GroupTable {
	seen := make(map[string]struct{}, len(entities))
	for _, e := range entities {
		seen[e.TypeLabel()] = struct{}{}
	}

	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	slices.Sort(labels)

	return newGroupTable(labels)
}

func newGroupTable(labels []string) GroupTable {
	index := make(map[string]int, len(labels))
	for i, l := range labels {
		index[l] = i
	}
	return GroupTable{labels: labels, index: index}
}

// Index returns the position of label in the table.
// Unknown labels map to group 0.
func (t GroupTable) Index(label string) int {
	if i, ok := t.index[label]; ok {
		return i
	}
	return 0
}

// Labels returns a copy of the sorted labels.
func (t GroupTable) Labels() []string {
	return slices.Clone(t.labels)
}

// Len returns the number of groups.
func (t GroupTable) Len() int { return len(t.labels) }
