// Package pkg provides the core libraries for kgviz knowledge-graph conversion.
//
// # Overview
//
// kgviz turns a knowledge-graph document (entities and relations, wrapped in
// a result envelope) into a node/link document for D3.js force-directed
// layouts. The pkg directory is organized into these areas:
//
//  1. [kg] - Input records and the result envelope
//  2. [d3] - Group table, relation tally, extraction, validation, assembly
//  3. [io] - Sandboxed document load/store and text encoding detection
//  4. [pipeline] - Orchestration (load → decode → unwrap → assemble → store)
//  5. [config], [errors], [observability], [buildinfo] - Supporting infrastructure
//
// # Architecture
//
// The data flow through kgviz:
//
//	knowledge-graph document (utf-8, utf-16 or cp1252)
//	         ↓
//	    [io] package (sandboxed read, encoding detection)
//	         ↓
//	    [kg] package (unwrap result.content[0].text)
//	         ↓
//	    [d3] package (groups + tally, nodes + links, validation, metadata)
//	         ↓
//	    indented JSON graph document
//
// # Quick Start
//
// Convert a document inside a root directory:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/kgviz/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(nil)
//	res, err := runner.Convert(context.Background(), pipeline.Options{
//	    Input: "knowledge_graph.json",
//	    Root:  "/srv/graphs",
//	})
//
// Or use the building blocks directly:
//
//	content, _ := kg.ParseEnvelope(data)
//	g, _ := d3.Assemble("knowledge_graph.json", content, d3.Options{Validate: true})
//	_ = io.WriteGraph(g, os.Stdout)
//
// # Error Handling
//
// Every failure carries an [errors.Code]: INVALID_PATH, FILE_NOT_FOUND,
// DECODE_ERROR, INVALID_STRUCTURE or GRAPH_INTEGRITY. Integrity failures
// list every missing node id; use [errors.MissingIDs] to retrieve them.
package pkg
