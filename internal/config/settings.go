package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/nishasharma303/NitiVimarsh/domain/baseline"
	"github.com/nishasharma303/NitiVimarsh/domain/graph"
	"github.com/nishasharma303/NitiVimarsh/domain/policy"
	"github.com/nishasharma303/NitiVimarsh/domain/scenario"
)

// Settings bundles the engine configuration: scenario defaults,
// simulation tuning, baseline freshness thresholds, the effect matrix
// and the shock rule table. Everything here is threaded explicitly
// into calls; nothing is read from ambient state at simulation time.
type Settings struct {
	Scenario   scenario.Parameters       `yaml:"scenario"`
	Simulation scenario.SimulationConfig `yaml:"simulation"`
	Freshness  baseline.FreshnessPolicy  `yaml:"freshness"`
	Effects    policy.EffectMatrix       `yaml:"effects"`
	ShockRules policy.ShockRules         `yaml:"shock_rules"`
}

// DefaultSettings returns the built-in engine configuration
func DefaultSettings() Settings {
	return Settings{
		Scenario:   scenario.Defaults(),
		Simulation: scenario.DefaultSimulationConfig(),
		Freshness:  baseline.DefaultFreshnessPolicy(),
		Effects:    policy.DefaultEffectMatrix(),
		ShockRules: policy.DefaultShockRules(),
	}
}

// Validate checks every section against its domain rules
func (s Settings) Validate() error {
	if err := s.Scenario.Validate(); err != nil {
		return err
	}
	if err := s.Simulation.Validate(); err != nil {
		return err
	}
	if s.Freshness.MaxAgeDays < 1 {
		return fmt.Errorf("freshness max_age_days must be at least 1, got %d", s.Freshness.MaxAgeDays)
	}
	if s.Freshness.MinConfidence < 0 || s.Freshness.MinConfidence > 1 {
		return fmt.Errorf("freshness min_confidence %g outside [0, 1]", s.Freshness.MinConfidence)
	}
	if err := s.Effects.Validate(); err != nil {
		return err
	}
	return s.ShockRules.Validate()
}

// LoadSettings reads a settings document and merges it over the
// defaults: absent sections and fields keep their built-in values,
// while a policy type's effect or rule set is replaced wholesale when
// present. An empty path selects the defaults unchanged.
func LoadSettings(path string) (Settings, error) {
	settings := DefaultSettings()
	if path == "" {
		return settings, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Settings{}, fmt.Errorf("settings file not found: %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("failed to read settings file: %w", err)
	}
	if err := DecodeSettings(raw, &settings); err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	if err := settings.Validate(); err != nil {
		return Settings{}, fmt.Errorf("settings file %s: %w", path, err)
	}
	return settings, nil
}

// DecodeSettings applies one YAML document on top of the given
// settings. Unknown keys are rejected rather than silently dropped.
func DecodeSettings(raw []byte, settings *Settings) error {
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(settings); err != nil {
		if err == io.EOF {
			return fmt.Errorf("empty settings document")
		}
		return err
	}
	return nil
}

// LoadGraph reads a causal graph document, YAML by default and JSON
// for .json files. Structural validation is the caller's decision;
// this only decodes and enforces construction invariants.
func LoadGraph(path string) (*graph.CausalGraph, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("graph file not found: %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read graph file: %w", err)
	}
	var g *graph.CausalGraph
	if strings.EqualFold(filepath.Ext(path), ".json") {
		g, err = graph.DecodeJSON(raw)
	} else {
		g, err = graph.DecodeYAML(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("graph file %s: %w", path, err)
	}
	return g, nil
}

// LoadPolicy reads a policy variables document, YAML by default and
// JSON for .json files, and validates it before returning.
func LoadPolicy(path string) (policy.Variables, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return policy.Variables{}, fmt.Errorf("policy file not found: %s", path)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return policy.Variables{}, fmt.Errorf("failed to read policy file: %w", err)
	}

	var vars policy.Variables
	if strings.EqualFold(filepath.Ext(path), ".json") {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		err = dec.Decode(&vars)
	} else {
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err = dec.Decode(&vars); err == io.EOF {
			err = fmt.Errorf("empty policy document")
		}
	}
	if err != nil {
		return policy.Variables{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	if err := vars.Validate(); err != nil {
		return policy.Variables{}, fmt.Errorf("policy file %s: %w", path, err)
	}
	return vars, nil
}
