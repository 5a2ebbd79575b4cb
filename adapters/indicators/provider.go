// Package indicators supplies baseline economic snapshots to the
// simulation layer. The file provider reads YAML indicator documents;
// the static provider serves a fixed snapshot for tests and demo runs.
package indicators

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/ports"
)

// FileProvider reads baseline snapshots from a YAML document
type FileProvider struct {
	path string
}

// NewFileProvider creates a provider reading from the given path
func NewFileProvider(path string) *FileProvider {
	return &FileProvider{path: path}
}

var _ ports.BaselineProviderPort = (*FileProvider)(nil)

// Snapshot reads and decodes the indicator document. The file is read
// on every call so a refreshed document is picked up without a restart;
// freshness checks against the decoded timestamps happen downstream.
func (p *FileProvider) Snapshot(ctx context.Context) (baseline.Data, error) {
	if _, err := os.Stat(p.path); os.IsNotExist(err) {
		return baseline.Data{}, fmt.Errorf("baseline file not found: %s", p.path)
	}

	raw, err := os.ReadFile(p.path)
	if err != nil {
		return baseline.Data{}, fmt.Errorf("failed to read baseline file: %w", err)
	}

	data, err := Decode(raw)
	if err != nil {
		return baseline.Data{}, fmt.Errorf("baseline file %s: %w", p.path, err)
	}

	log.Printf("[BaselineProvider] Loaded %d indicators from %s", len(data.Indicators), p.path)
	return data, nil
}

// Decode parses a YAML indicator document. Unknown fields are rejected
// rather than silently dropped.
func Decode(raw []byte) (baseline.Data, error) {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	var data baseline.Data
	if err := dec.Decode(&data); err != nil {
		if err == io.EOF {
			return baseline.Data{}, fmt.Errorf("empty baseline document")
		}
		return baseline.Data{}, fmt.Errorf("decode baseline: %w", err)
	}
	return data, nil
}

// StaticProvider serves a fixed in-memory snapshot
type StaticProvider struct {
	data baseline.Data
}

// NewStaticProvider creates a provider around an existing snapshot
func NewStaticProvider(data baseline.Data) *StaticProvider {
	return &StaticProvider{data: data}
}

var _ ports.BaselineProviderPort = (*StaticProvider)(nil)

// Snapshot returns the fixed snapshot
func (p *StaticProvider) Snapshot(ctx context.Context) (baseline.Data, error) {
	return p.data, nil
}
