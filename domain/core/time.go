package core

import (
	"time"

	"gopkg.in/yaml.v3"
)

// Timestamp wraps time.Time with consistent UTC normalization and
// RFC3339 JSON encoding for stored records.
type Timestamp struct {
	t time.Time
}

// Now returns the current UTC timestamp truncated to millisecond
// precision, which is what the ledger columns store.
func Now() Timestamp {
	return Timestamp{t: time.Now().UTC().Truncate(time.Millisecond)}
}

// NewTimestamp wraps an existing time value.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{t: t.UTC().Truncate(time.Millisecond)}
}

// Time returns the underlying time value.
func (ts Timestamp) Time() time.Time {
	return ts.t
}

// IsZero reports whether the timestamp is unset.
func (ts Timestamp) IsZero() bool {
	return ts.t.IsZero()
}

// Before reports whether ts is before other.
func (ts Timestamp) Before(other Timestamp) bool {
	return ts.t.Before(other.t)
}

// Sub returns the duration ts - other.
func (ts Timestamp) Sub(other Timestamp) time.Duration {
	return ts.t.Sub(other.t)
}

// String formats the timestamp as RFC3339 with millisecond precision.
func (ts Timestamp) String() string {
	return ts.t.Format("2006-01-02T15:04:05.000Z07:00")
}

// MarshalJSON encodes as an RFC3339 string.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + ts.String() + `"`), nil
}

// UnmarshalJSON decodes from an RFC3339 string.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		ts.t = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	ts.t = parsed.UTC()
	return nil
}

// MarshalYAML encodes as an RFC3339 string.
func (ts Timestamp) MarshalYAML() (interface{}, error) {
	return ts.String(), nil
}

// UnmarshalYAML decodes from an RFC3339 string.
func (ts *Timestamp) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		ts.t = time.Time{}
		return nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	ts.t = parsed.UTC()
	return nil
}
