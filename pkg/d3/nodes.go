package d3

import (
	"slices"

	"github.com/matzehuels/kgviz/pkg/errors"
	"github.com/matzehuels/kgviz/pkg/kg"
)

// ExtractNodes converts entity records into nodes, in input order.
//
// Records whose discriminator is not "entity" are skipped. A missing name is
// an INVALID_STRUCTURE error. A missing type becomes [kg.UnknownType] and
// missing observations become an empty list.
func ExtractNodes(entities []kg.RawEntity, groups GroupTable) ([]Node, error) {
	nodes := make([]Node, 0, len(entities))
	for i, e := range entities {
		if !e.IsEntity() {
			continue
		}
		if e.Name == nil {
			return nil, errors.New(errors.ErrCodeInvalidStructure, "entity %d is missing required key 'name'", i)
		}

		typ := e.TypeLabel()
		obs := slices.Clone(e.Observations)
		if obs == nil {
			obs = []string{}
		}
		nodes = append(nodes, Node{
			ID:           *e.Name,
			Type:         typ,
			Observations: obs,
			Group:        groups.Index(typ),
		})
	}
	return nodes, nil
}
