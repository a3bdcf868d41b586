package kg

import (
	"encoding/json"
	"fmt"
)

// object holds the members of a JSON object by their exact key.
// encoding/json matches struct tags case-insensitively, so records are
// decoded through object to make "NAME" distinct from "name".
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("expected object, got null")
	}
	return o, nil
}

// field decodes the member key into dst. It reports false, leaving dst
// untouched, when the key is absent or null.
func (o object) field(key string, dst any) (bool, error) {
	raw, ok := o[key]
	if !ok || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("field %q: %w", key, err)
	}
	return true, nil
}

// optionalString decodes key into a fresh string pointer, nil when absent.
func (o object) optionalString(key string) (*string, error) {
	var s string
	ok, err := o.field(key, &s)
	if err != nil || !ok {
		return nil, err
	}
	return &s, nil
}

// UnmarshalJSON decodes an entity record with exact key matching.
func (e *RawEntity) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out RawEntity
	if _, err := o.field("type", &out.Kind); err != nil {
		return err
	}
	if out.Name, err = o.optionalString("name"); err != nil {
		return err
	}
	if out.EntityType, err = o.optionalString("entityType"); err != nil {
		return err
	}
	if _, err := o.field("observations", &out.Observations); err != nil {
		return err
	}
	*e = out
	return nil
}

// UnmarshalJSON decodes a relation record with exact key matching.
func (r *RawRelation) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	var out RawRelation
	if _, err := o.field("type", &out.Kind); err != nil {
		return err
	}
	if out.From, err = o.optionalString("from"); err != nil {
		return err
	}
	if out.To, err = o.optionalString("to"); err != nil {
		return err
	}
	if out.RelationType, err = o.optionalString("relationType"); err != nil {
		return err
	}
	*r = out
	return nil
}
