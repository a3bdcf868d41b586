package kg

import (
	"encoding/json"

	"github.com/matzehuels/kgviz/pkg/errors"
)

type envelope struct {
	Result *result `json:"result"`
}

type result struct {
	Content []contentItem `json:"content"`
}

type contentItem struct {
	Type string  `json:"type,omitempty"`
	Text *string `json:"text"`
}

// ParseEnvelope extracts and decodes the graph content from a UTF-8 JSON
// envelope. Keys are matched exactly.
//
// It returns an INVALID_STRUCTURE error when the envelope has no
// result.content[0].text string, when the decoded content lacks the
// "entities" or "relations" array, or when a record has the wrong shape.
// It returns a DECODE_ERROR when the text is not valid JSON.
func ParseEnvelope(data []byte) (*Content, error) {
	env, err := decodeObject(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "malformed envelope")
	}
	var res object
	if ok, err := env.field("result", &res); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "malformed envelope")
	} else if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "envelope must contain 'result'")
	}
	var items []object
	if _, err := res.field("content", &items); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "malformed envelope")
	}
	if len(items) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "envelope must contain a non-empty 'result.content' array")
	}
	var text string
	if ok, err := items[0].field("text", &text); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "malformed envelope")
	} else if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "envelope must contain 'result.content[0].text'")
	}
	return ParseContent([]byte(text))
}

// ParseContent decodes the inner graph JSON.
func ParseContent(data []byte) (*Content, error) {
	if !json.Valid(data) {
		var v any
		err := json.Unmarshal(data, &v)
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "content text is not valid JSON")
	}

	o, err := decodeObject(data)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "malformed knowledge graph content")
	}
	c := &Content{Entities: []RawEntity{}, Relations: []RawRelation{}}
	if ok, err := o.field("entities", &c.Entities); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "malformed knowledge graph content")
	} else if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "knowledge graph must contain 'entities' array")
	}
	if ok, err := o.field("relations", &c.Relations); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidStructure, err, "malformed knowledge graph content")
	} else if !ok {
		return nil, errors.New(errors.ErrCodeInvalidStructure, "knowledge graph must contain 'relations' array")
	}
	return c, nil
}

// Wrap encodes c as the text of a single-item envelope, the shape produced
// by a read_graph tool call.
func Wrap(c Content) ([]byte, error) {
	if c.Entities == nil {
		c.Entities = []RawEntity{}
	}
	if c.Relations == nil {
		c.Relations = []RawRelation{}
	}
	inner, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	text := string(inner)
	return json.Marshal(envelope{Result: &result{
		Content: []contentItem{{Type: "text", Text: &text}},
	}})
}
