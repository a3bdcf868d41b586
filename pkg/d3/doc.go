// Package d3 converts knowledge-graph content into the node/link graph
// format consumed by D3.js force-directed layouts.
//
// # Overview
//
// The conversion is a single linear pipeline over immutable input:
//
//  1. [ComputeGroups] collects the distinct entity types into a sorted
//     [GroupTable], and [ComputeTally] counts relation types into a
//     [RelationTally]. Both run over the whole input before any node or
//     link is built, since group indices and link values are global
//     statistics.
//  2. [ExtractNodes] and [ExtractLinks] map records to [Node] and [Link]
//     values in input order.
//  3. [Validate] optionally checks that every link endpoint names an
//     existing node.
//  4. [Assemble] runs all of the above and adds [Metadata].
//
// # Output Format
//
//	{
//	  "nodes": [
//	    {"id": "A", "type": "Person", "observations": [], "group": 0}
//	  ],
//	  "links": [
//	    {"source": "A", "target": "B", "type": "visited", "value": 1}
//	  ],
//	  "metadata": {
//	    "nodeCount": 1,
//	    "linkCount": 1,
//	    "entityTypes": ["Person"],
//	    "relationTypes": ["visited"],
//	    "generatedAt": "2025-01-14T00:00:00Z",
//	    "source": "knowledge_graph.json"
//	  }
//	}
//
// # Groups and Values
//
// A node's group is the index of its type in the sorted [GroupTable], so the
// same input always yields the same coloring. A link's value is the number of
// relations sharing its type, a cheap edge-weight proxy for the force layout.
//
// # Concurrency
//
// Every function in this package is pure apart from logging. Tables are
// local to one call, so concurrent conversions share nothing.
package d3
