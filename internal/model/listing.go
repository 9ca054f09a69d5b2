package model

import (
	"database/sql/driver"
	"encoding/json"
)

// Listing is one hotel search result as delivered by the hotels API.
// The upstream feed is loosely typed: no field is guaranteed present, field
// names drift between exports, and numbers sometimes arrive boxed
// (e.g. {"$numberDouble": "94.5"}). The record is therefore kept as a raw
// map and read only through the accessors in internal/normalize.
type Listing map[string]any

// Get returns the first present, non-nil value among the given field names.
func (l Listing) Get(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := l[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Value implements driver.Valuer interface
func (l Listing) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface
func (l *Listing) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), l)
	}
	return json.Unmarshal(bytes, l)
}

// Listings is a listing array stored as a single JSONB column.
type Listings []Listing

// Value implements driver.Valuer interface
func (ls Listings) Value() (driver.Value, error) {
	if ls == nil {
		return nil, nil
	}
	return json.Marshal(ls)
}

// Scan implements sql.Scanner interface
func (ls *Listings) Scan(value any) error {
	if value == nil {
		*ls = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return json.Unmarshal([]byte(value.(string)), ls)
	}
	return json.Unmarshal(bytes, ls)
}
