package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `version: "test"
tech_pools:
  frontend: [React]
task_templates:
  - id: t1
    category: frontend
    pattern: "Build a {thing} in {tech}"
    slots:
      thing: [navbar]
qa_templates:
  - id: q1
    category: general
    pattern: "What is {concept}?"
    concept_slot: concept
    slots:
      concept: [CI/CD]
`

func TestLoadSchema(t *testing.T) {
	dir := t.TempDir()

	yamlPath := filepath.Join(dir, "registry.yaml")
	require.NoError(t, os.WriteFile(yamlPath, []byte(minimalYAML), 0o644))

	schema, err := LoadSchema(yamlPath)
	require.NoError(t, err)
	assert.Equal(t, "test", schema.Version)
	require.Len(t, schema.TaskTemplates, 1)
	assert.Equal(t, "t1", schema.TaskTemplates[0].ID)
	assert.Equal(t, []string{"React"}, schema.TechPools["frontend"])

	jsonPath := filepath.Join(dir, "registry.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{
  "version": "json",
  "tech_pools": {},
  "task_templates": [{"id": "t1", "category": "backend", "pattern": "Set up {tech}"}],
  "qa_templates": [{"id": "q1", "category": "general", "pattern": "Explain REST"}]
}`), 0o644))

	schema, err = LoadSchema(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, "json", schema.Version)
	assert.Equal(t, "Set up {tech}", schema.TaskTemplates[0].Pattern)

	invalidPath := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidPath, []byte(`{"version":"broken"`), 0o644))
	_, err = LoadSchema(invalidPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing registry")

	_, err = LoadSchema(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)

	txtPath := filepath.Join(dir, "registry.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte(minimalYAML), 0o644))
	_, err = LoadSchema(txtPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported registry format")
}

func TestDecodeYAML_RejectsUnknownFields(t *testing.T) {
	_, err := DecodeYAML([]byte("version: x\ntemplates: []\n"))
	require.Error(t, err)
}

func TestLoad_EmptyPathUsesBuiltin(t *testing.T) {
	r, err := Load("")
	require.NoError(t, err)
	b, err := Builtin()
	require.NoError(t, err)
	assert.Same(t, b, r)
}

func TestLoad_InvalidFileFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
task_templates:
  - id: t1
    category: frontend
    pattern: "Build a {widget}"
qa_templates:
  - id: q1
    category: general
    pattern: "Explain REST"
`), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unbound placeholder {widget}")
}
