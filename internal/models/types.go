package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON is a generic object column stored as serialized JSON.
type JSON map[string]interface{}

// Value implements driver.Valuer.
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner.
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, j)
}

// StringArray is a string list column stored as serialized JSON, used for
// image paths and tags.
type StringArray []string

// Value implements driver.Valuer.
func (s StringArray) Value() (driver.Value, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (s *StringArray) Scan(value interface{}) error {
	if value == nil {
		*s = StringArray{}
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, s)
}

// StringMap is a flat string-to-string column stored as serialized JSON,
// used for variant option selections.
type StringMap map[string]string

// Value implements driver.Valuer.
func (m StringMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner.
func (m *StringMap) Scan(value interface{}) error {
	if value == nil {
		*m = StringMap{}
		return nil
	}
	raw, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, m)
}
