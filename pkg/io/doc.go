// Package io loads knowledge-graph documents and stores converted graphs,
// confined to a permitted root directory.
//
// # Sandbox
//
// Every path goes through a [Sandbox]. Relative paths are resolved against
// the sandbox root, and any path that resolves outside it (through "..",
// an absolute path or a symlink) fails with an INVALID_PATH error:
//
//	sb, err := io.NewSandbox(".", logger)
//	doc, err := sb.LoadDocument("knowledge_graph.json")
//	...
//	path, err := sb.StoreDocument("d3_graph.json", graph)
//
// # Encodings
//
// Knowledge-graph exports come from many tools, so [DecodeText] tries a fixed
// list of encodings in order: utf-8-sig, utf-8, utf-16 and cp1252. The first
// candidate that yields valid JSON wins. Failed attempts are logged at debug
// level; only when all of them fail is a DECODE_ERROR returned.
//
// # Output
//
// [WriteGraph] encodes a graph with two-space indentation. Non-ASCII text and
// HTML characters are written as-is, not escaped. [Sandbox.StoreDocument]
// sanitizes the file name with [SanitizeFilename] and overwrites any existing
// file.
package io
