package d3_test

import (
	"fmt"
	"time"

	"github.com/matzehuels/kgviz/pkg/d3"
	"github.com/matzehuels/kgviz/pkg/kg"
)

func ExampleAssemble() {
	content := &kg.Content{
		Entities: []kg.RawEntity{
			{Kind: kg.KindEntity, Name: kg.Ptr("Ada"), EntityType: kg.Ptr("Person")},
			{Kind: kg.KindEntity, Name: kg.Ptr("London"), EntityType: kg.Ptr("Place")},
			{Kind: kg.KindEntity, Name: kg.Ptr("Charles"), EntityType: kg.Ptr("Person")},
		},
		Relations: []kg.RawRelation{
			{Kind: kg.KindRelation, From: kg.Ptr("Ada"), To: kg.Ptr("London"), RelationType: kg.Ptr("lived_in")},
			{Kind: kg.KindRelation, From: kg.Ptr("Ada"), To: kg.Ptr("Charles"), RelationType: kg.Ptr("knows")},
			{Kind: kg.KindRelation, From: kg.Ptr("Charles"), To: kg.Ptr("London"), RelationType: kg.Ptr("lived_in")},
		},
	}

	g, err := d3.Assemble("memory.json", content, d3.Options{
		Validate:    true,
		GeneratedAt: time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, n := range g.Nodes {
		fmt.Printf("node %s group=%d\n", n.ID, n.Group)
	}
	for _, l := range g.Links {
		fmt.Printf("link %s -> %s %s value=%d\n", l.Source, l.Target, l.Type, l.Value)
	}
	fmt.Println("entity types:", g.Metadata.EntityTypes)
	// Output:
	// node Ada group=0
	// node London group=1
	// node Charles group=0
	// link Ada -> London lived_in value=2
	// link Ada -> Charles knows value=1
	// link Charles -> London lived_in value=2
	// entity types: [Person Place]
}

func ExampleValidate() {
	nodes := []d3.Node{{ID: "A"}, {ID: "B"}}
	links := []d3.Link{{Source: "A", Target: "B"}, {Source: "Z", Target: "A"}}

	res := d3.Validate(nodes, links)
	fmt.Println("ok:", res.OK)
	fmt.Println("missing:", res.MissingIDs)
	// Output:
	// ok: false
	// missing: [Z]
}
