// Package kg decodes knowledge-graph documents produced by MCP memory servers.
//
// # Envelope
//
// A read_graph tool result nests the actual graph as a JSON-encoded string:
//
//	{
//	  "result": {
//	    "content": [
//	      {"type": "text", "text": "{\"entities\": [...], \"relations\": [...]}"}
//	    ]
//	  }
//	}
//
// [ParseEnvelope] unwraps result.content[0].text and decodes it into a
// [Content]. Both the "entities" and "relations" keys must be present as
// arrays; either may be empty.
//
// # Records
//
// Entity and relation records carry a "type" discriminator. Records whose
// discriminator does not match their array are kept in [Content] but are
// skipped by extraction in package d3. Optional keys are decoded as pointers
// so that a missing key can be told apart from an empty value.
package kg
