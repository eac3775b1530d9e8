package template

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// RegistrySchema is the on-disk layout of a template registry.
type RegistrySchema struct {
	Version         string              `yaml:"version" json:"version"`
	DefaultTechPool []string            `yaml:"default_tech_pool,omitempty" json:"default_tech_pool,omitempty"`
	TechPools       map[string][]string `yaml:"tech_pools" json:"tech_pools"`
	TaskTemplates   []TemplateConfig    `yaml:"task_templates" json:"task_templates"`
	QATemplates     []TemplateConfig    `yaml:"qa_templates" json:"qa_templates"`
}

// TemplateConfig describes one instruction pattern. A template either binds
// independent Slots or a single Pairs pool, never both.
type TemplateConfig struct {
	ID          string              `yaml:"id" json:"id"`
	Category    string              `yaml:"category" json:"category"`
	Pattern     string              `yaml:"pattern" json:"pattern"`
	Slots       map[string][]string `yaml:"slots,omitempty" json:"slots,omitempty"`
	Pairs       *PairsConfig        `yaml:"pairs,omitempty" json:"pairs,omitempty"`
	ConceptSlot string              `yaml:"concept_slot,omitempty" json:"concept_slot,omitempty"`
}

// PairsConfig binds two placeholders to one pool of (A, B) tuples.
type PairsConfig struct {
	Placeholders []string   `yaml:"placeholders" json:"placeholders"`
	Values       [][]string `yaml:"values" json:"values"`
}

// LoadSchema reads a registry file. The format follows the extension:
// .json is decoded as JSON, .yaml and .yml as YAML.
func LoadSchema(path string) (*RegistrySchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return DecodeJSON(data)
	case ".yaml", ".yml":
		return DecodeYAML(data)
	default:
		return nil, fmt.Errorf("unsupported registry format %q", filepath.Ext(path))
	}
}

// DecodeYAML parses a YAML registry, rejecting unknown fields.
func DecodeYAML(data []byte) (*RegistrySchema, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var schema RegistrySchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	return &schema, nil
}

// DecodeJSON parses a JSON registry, rejecting unknown fields.
func DecodeJSON(data []byte) (*RegistrySchema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var schema RegistrySchema
	if err := dec.Decode(&schema); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	return &schema, nil
}
