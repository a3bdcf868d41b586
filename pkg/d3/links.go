package d3

import (
	"github.com/matzehuels/kgviz/pkg/errors"
	"github.com/matzehuels/kgviz/pkg/kg"
)

// ExtractLinks converts relation records into links, in input order.
//
// Records whose discriminator is not "relation" are skipped. The from, to and
// relationType keys are required; a missing one is an INVALID_STRUCTURE
// error. Each link's value is the tally count of its type.
func ExtractLinks(relations []kg.RawRelation, tally RelationTally) ([]Link, error) {
	links := make([]Link, 0, len(relations))
	for i, r := range relations {
		if !r.IsRelation() {
			continue
		}
		if key := missingRelationKey(r); key != "" {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "relation %d is missing required key '%s'", i, key)
		}

		links = append(links, Link{
			Source: *r.From,
			Target: *r.To,
			Type:   *r.RelationType,
			Value:  tally.Strength(*r.RelationType),
		})
	}
	return links, nil
}

func missingRelationKey(r kg.RawRelation) string {
	switch {
	case r.From == nil:
		return "from"
	case r.To == nil:
		return "to"
	case r.RelationType == nil:
		return "relationType"
	}
	return ""
}
