package kg

// Record discriminators.
const (
	KindEntity   = "entity"
	KindRelation = "relation"
)

// UnknownType is substituted for a missing entityType or relationType.
const UnknownType = "Unknown"

// RawEntity is an entity record as stored by the memory server.
type RawEntity struct {
	Kind         string   `json:"type"`
	Name         *string  `json:"name,omitempty"`
	EntityType   *string  `json:"entityType,omitempty"`
	Observations []string `json:"observations,omitempty"`
}

// IsEntity reports whether the record is marked as an entity.
func (e RawEntity) IsEntity() bool { return e.Kind == KindEntity }

// TypeLabel returns the entity type, or [UnknownType] when absent.
func (e RawEntity) TypeLabel() string {
	if e.EntityType == nil {
		return UnknownType
	}
	return *e.EntityType
}

// RawRelation is a directed, labeled edge between two entity names.
type RawRelation struct {
	Kind         string  `json:"type"`
	From         *string `json:"from,omitempty"`
	To           *string `json:"to,omitempty"`
	RelationType *string `json:"relationType,omitempty"`
}

// IsRelation reports whether the record is marked as a relation.
func (r RawRelation) IsRelation() bool { return r.Kind == KindRelation }

// TypeLabel returns the relation type, or [UnknownType] when absent.
func (r RawRelation) TypeLabel() string {
	if r.RelationType == nil {
		return UnknownType
	}
	return *r.RelationType
}

// Content is the decoded graph carried inside an envelope.
type Content struct {
	Entities  []RawEntity   `json:"entities"`
	Relations []RawRelation `json:"relations"`
}

// Ptr returns a pointer to s. It keeps record literals short.
func Ptr(s string) *string { return &s }
