package d3

import "github.com/matzehuels/kgviz/pkg/kg"

// RelationTally maps each relation type to its number of occurrences.
type RelationTally map[string]int

// ComputeTally counts the relation type of every record, with a missing type
// counted as [kg.UnknownType]. Records are not filtered by discriminator.
func ComputeTally(relations []kg.RawRelation) RelationTally {
	tally := make(RelationTally)
	for _, r := range relations {
		tally[r.TypeLabel()]++
	}
	return tally
}

// Strength returns the count for label, or 0 if it was never seen.
func (t RelationTally) Strength(label string) int {
	return t[label]
}

