package core

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Hash represents a cryptographic hash
type Hash string

// NewHash creates a new hash from data
func NewHash(data []byte) Hash {
	sum := sha256.Sum256(data)
	return Hash(hex.EncodeToString(sum[:]))
}

// String returns the string representation
func (h Hash) String() string {
	return string(h)
}

// IsEmpty checks if the hash is empty
func (h Hash) IsEmpty() bool {
	return h == ""
}

// Equals checks if two hashes are equal
func (h Hash) Equals(other Hash) bool {
	return h == other
}

// Short returns the first 12 hex characters, enough to disambiguate
// runs in logs and filenames.
func (h Hash) Short() string {
	if len(h) <= 12 {
		return string(h)
	}
	return string(h[:12])
}

// Domain-specific hash types
type (
	GraphHash Hash
)

// NewGraphHash creates a graph topology hash from serialized graph data
func NewGraphHash(data []byte) GraphHash { return GraphHash(NewHash(data)) }

// String conversions
func (h GraphHash) String() string { return Hash(h).String() }

// HashStrings hashes an ordered sequence of strings. Order matters:
// parts are joined with a separator that cannot appear in well-formed
// identifiers before hashing.
func HashStrings(parts ...string) Hash {
	return NewHash([]byte(strings.Join(parts, "\x1f")))
}

// HashValue computes a deterministic hash of any JSON-serializable value.
// Map keys are sorted at every level during serialization so equal values
// always produce equal hashes regardless of insertion order.
func HashValue(v any) (Hash, error) {
	canonical, err := canonicalJSON(v)
	if err != nil {
		return "", fmt.Errorf("canonical serialization failed: %w", err)
	}
	return NewHash(canonical), nil
}

// MustHashValue is HashValue for values known to be serializable. It panics
// on serialization failure, which only happens for types JSON cannot encode.
func MustHashValue(v any) Hash {
	h, err := HashValue(v)
	if err != nil {
		panic(fmt.Sprintf("core.MustHashValue: %v", err))
	}
	return h
}

// canonicalJSON produces byte-stable JSON: objects are re-encoded with
// sorted keys at every level. encoding/json already sorts map keys, but
// struct fields serialize in declaration order, so the value is
// round-tripped through a generic form to normalize everything into
// sorted-map shape.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	var b strings.Builder
	if err := writeCanonical(&b, generic); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func writeCanonical(b *strings.Builder, v any) error {
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			kb, err := json.Marshal(k)
			if err != nil {
				return err
			}
			b.Write(kb)
			b.WriteByte(':')
			if err := writeCanonical(b, val[k]); err != nil {
				return err
			}
		}
		b.WriteByte('}')
	case []any:
		b.WriteByte('[')
		for i, item := range val {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := writeCanonical(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
	default:
		raw, err := json.Marshal(val)
		if err != nil {
			return err
		}
		b.Write(raw)
	}
	return nil
}
