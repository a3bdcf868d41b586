package kg

import (
	"testing"

	"github.com/matzehuels/kgviz/pkg/errors"
)

func TestParseEnvelope(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		wantCode      errors.Code
		wantEntities  int
		wantRelations int
	}{
		{
			name:          "Valid",
			input:         `{"result":{"content":[{"type":"text","text":"{\"entities\":[{\"type\":\"entity\",\"name\":\"A\",\"entityType\":\"Person\",\"observations\":[\"x\"]}],\"relations\":[]}"}]}}`,
			wantEntities:  1,
			wantRelations: 0,
		},
		{
			name:          "EmptyArrays",
			input:         `{"result":{"content":[{"text":"{\"entities\":[],\"relations\":[]}"}]}}`,
			wantEntities:  0,
			wantRelations: 0,
		},
		{
			name:     "MissingResult",
			input:    `{"jsonrpc":"2.0"}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "EmptyContent",
			input:    `{"result":{"content":[]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "MissingText",
			input:    `{"result":{"content":[{"type":"image"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "ResultNotObject",
			input:    `{"result":"nope"}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "TextNotJSON",
			input:    `{"result":{"content":[{"text":"not json"}]}}`,
			wantCode: errors.ErrCodeDecode,
		},
		{
			name:     "MissingEntities",
			input:    `{"result":{"content":[{"text":"{\"relations\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "MissingRelations",
			input:    `{"result":{"content":[{"text":"{\"entities\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "NullEntities",
			input:    `{"result":{"content":[{"text":"{\"entities\":null,\"relations\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "RelationsKeyWrongCase",
			input:    `{"result":{"content":[{"text":"{\"entities\":[],\"RELATIONS\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "EntitiesKeyWrongCase",
			input:    `{"result":{"content":[{"text":"{\"Entities\":[],\"relations\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "ResultKeyWrongCase",
			input:    `{"Result":{"content":[{"text":"{\"entities\":[],\"relations\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "TextKeyWrongCase",
			input:    `{"result":{"content":[{"TEXT":"{\"entities\":[],\"relations\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "RecordNotObject",
			input:    `{"result":{"content":[{"text":"{\"entities\":[5],\"relations\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
		{
			name:     "NameNotString",
			input:    `{"result":{"content":[{"text":"{\"entities\":[{\"type\":\"entity\",\"name\":5}],\"relations\":[]}"}]}}`,
			wantCode: errors.ErrCodeInvalidStructure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := ParseEnvelope([]byte(tt.input))
			if tt.wantCode != "" {
				if err == nil {
					t.Fatalf("ParseEnvelope() error = nil, want %s", tt.wantCode)
				}
				if !errors.Is(err, tt.wantCode) {
					t.Fatalf("ParseEnvelope() error = %v, want code %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseEnvelope() error: %v", err)
			}
			if len(c.Entities) != tt.wantEntities {
				t.Errorf("entities = %d, want %d", len(c.Entities), tt.wantEntities)
			}
			if len(c.Relations) != tt.wantRelations {
				t.Errorf("relations = %d, want %d", len(c.Relations), tt.wantRelations)
			}
		})
	}
}

func TestParseEnvelopeOptionalKeys(t *testing.T) {
	input := `{"result":{"content":[{"text":"{\"entities\":[{\"type\":\"entity\",\"name\":\"A\"},{\"type\":\"entity\",\"name\":\"B\",\"entityType\":null}],\"relations\":[{\"type\":\"relation\",\"from\":\"A\",\"to\":\"B\"}]}"}]}}`

	c, err := ParseEnvelope([]byte(input))
	if err != nil {
		t.Fatalf("ParseEnvelope() error: %v", err)
	}

	for _, e := range c.Entities {
		if got := e.TypeLabel(); got != UnknownType {
			t.Errorf("entity %s TypeLabel() = %q, want %q", *e.Name, got, UnknownType)
		}
		if e.Observations != nil {
			t.Errorf("entity %s observations = %v, want nil", *e.Name, e.Observations)
		}
	}
	r := c.Relations[0]
	if r.RelationType != nil {
		t.Errorf("RelationType = %v, want nil", *r.RelationType)
	}
	if got := r.TypeLabel(); got != UnknownType {
		t.Errorf("TypeLabel() = %q, want %q", got, UnknownType)
	}
}

func TestWrapRoundTrip(t *testing.T) {
	in := Content{
		Entities: []RawEntity{
			{Kind: KindEntity, Name: Ptr("Zoë"), EntityType: Ptr("Person"), Observations: []string{"lives in Köln"}},
		},
		Relations: []RawRelation{
			{Kind: KindRelation, From: Ptr("Zoë"), To: Ptr("Zoë"), RelationType: Ptr("knows")},
		},
	}

	data, err := Wrap(in)
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}
	out, err := ParseEnvelope(data)
	if err != nil {
		t.Fatalf("ParseEnvelope() error: %v", err)
	}

	if len(out.Entities) != 1 || *out.Entities[0].Name != "Zoë" {
		t.Errorf("entities = %+v", out.Entities)
	}
	if out.Entities[0].Observations[0] != "lives in Köln" {
		t.Errorf("observations = %v", out.Entities[0].Observations)
	}
	if len(out.Relations) != 1 || out.Relations[0].TypeLabel() != "knows" {
		t.Errorf("relations = %+v", out.Relations)
	}
}

func TestWrapEmpty(t *testing.T) {
	data, err := Wrap(Content{})
	if err != nil {
		t.Fatalf("Wrap() error: %v", err)
	}
	c, err := ParseEnvelope(data)
	if err != nil {
		t.Fatalf("ParseEnvelope() error: %v", err)
	}
	if len(c.Entities) != 0 || len(c.Relations) != 0 {
		t.Errorf("content = %+v, want empty", c)
	}
}

func TestDiscriminators(t *testing.T) {
	if !(RawEntity{Kind: KindEntity}).IsEntity() {
		t.Error("IsEntity() = false for entity record")
	}
	if (RawEntity{Kind: KindRelation}).IsEntity() {
		t.Error("IsEntity() = true for relation record")
	}
	if !(RawRelation{Kind: KindRelation}).IsRelation() {
		t.Error("IsRelation() = false for relation record")
	}
	if (RawRelation{}).IsRelation() {
		t.Error("IsRelation() = true for untyped record")
	}
}

func TestParseContentExactKeys(t *testing.T) {
	data := `{"entities":[{"type":"entity","NAME":"A","EntityType":"Person"}],` +
		`"relations":[{"TYPE":"relation","From":"A","to":"B","relationtype":"knows"}]}`

	c, err := ParseContent([]byte(data))
	if err != nil {
		t.Fatalf("ParseContent() error: %v", err)
	}

	e := c.Entities[0]
	if !e.IsEntity() {
		t.Error("IsEntity() = false, want true")
	}
	if e.Name != nil {
		t.Errorf("Name = %q, want nil for key \"NAME\"", *e.Name)
	}
	if got := e.TypeLabel(); got != UnknownType {
		t.Errorf("TypeLabel() = %q, want %q", got, UnknownType)
	}

	r := c.Relations[0]
	if r.IsRelation() {
		t.Error("IsRelation() = true for key \"TYPE\"")
	}
	if r.From != nil {
		t.Errorf("From = %q, want nil for key \"From\"", *r.From)
	}
	if r.To == nil || *r.To != "B" {
		t.Errorf("To = %v, want B", r.To)
	}
	if r.RelationType != nil {
		t.Errorf("RelationType = %q, want nil", *r.RelationType)
	}
}
