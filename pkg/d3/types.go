package d3

import "time"

// Node is a D3 node derived from an entity record.
type Node struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	Observations []string `json:"observations"`
	Group        int      `json:"group"`
}

// Link is a D3 link derived from a relation record.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
	Value  int    `json:"value"`
}

// Metadata summarizes a converted graph.
//
// EntityTypes and RelationTypes are the sorted, distinct type fields of the
// output nodes and links, after "Unknown" defaults were applied.
type Metadata struct {
	NodeCount     int       `json:"nodeCount"`
	LinkCount     int       `json:"linkCount"`
	EntityTypes   []string  `json:"entityTypes"`
	RelationTypes []string  `json:"relationTypes"`
	GeneratedAt   time.Time `json:"generatedAt"`
	Source        string    `json:"source"`
}

// Graph is the complete output document.
type Graph struct {
	Nodes    []Node   `json:"nodes"`
	Links    []Link   `json:"links"`
	Metadata Metadata `json:"metadata"`
}
