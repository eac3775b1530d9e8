package generation

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtin(t *testing.T) *template.Registry {
	t.Helper()
	r, err := template.Builtin()
	require.NoError(t, err)
	return r
}

func contains[T comparable](pool []T, v T) bool {
	for _, p := range pool {
		if p == v {
			return true
		}
	}
	return false
}

func assertTaskInvariants(t *testing.T, p Profile, pool []string, rec domain.TaskRecord) {
	t.Helper()

	assert.Len(t, rec.TechStack, min(p.TechTarget, len(pool)))
	seen := map[string]bool{}
	for _, tech := range rec.TechStack {
		assert.False(t, seen[tech], "duplicate tech %q", tech)
		seen[tech] = true
		assert.True(t, contains(pool, tech), "tech %q not in pool %v", tech, pool)
	}

	require.NotEmpty(t, rec.Steps)
	for i, step := range rec.Steps {
		assert.Equal(t, i+1, step.Step)
		assert.Equal(t, domain.StepPending, step.Status)
		assert.True(t, contains(p.StepPool, step.Description))
	}
	assert.GreaterOrEqual(t, len(rec.Steps), p.MinSteps)
	assert.LessOrEqual(t, len(rec.Steps), p.MaxSteps)

	assert.True(t, contains(p.Priorities, rec.Priority), "priority %q", rec.Priority)
	assert.True(t, contains(p.Hours, rec.EstimatedHours), "hours %d", rec.EstimatedHours)
}

func TestMakeTask_StandardInvariants(t *testing.T) {
	reg := builtin(t)
	synth := NewTaskSynthesizer(Standard, reg)
	rng := rand.New(rand.NewPCG(1, 1))

	for _, tpl := range reg.TaskTemplates() {
		for i := 0; i < 100; i++ {
			exp := reg.Expand(tpl, rng)
			rec := synth.MakeTask(exp.Instruction, tpl.Category, rng)
			assertTaskInvariants(t, Standard, reg.TechPool(tpl.Category), rec)
			assert.Equal(t, "Implementation task: "+exp.Instruction, rec.Description)
			assert.Equal(t, Standard.AcceptanceCriteria, rec.AcceptanceCriteria)
			assert.Equal(t, tpl.Category, rec.Category)
		}
	}
}

func TestMakeTask_StepsAreDistinct(t *testing.T) {
	synth := NewTaskSynthesizer(Standard, builtin(t))
	rng := rand.New(rand.NewPCG(5, 5))

	for i := 0; i < 200; i++ {
		rec := synth.MakeTask("Build a thing", domain.CategoryBackend, rng)
		seen := map[string]bool{}
		for _, s := range rec.Steps {
			assert.False(t, seen[s.Description], "step %q drawn twice", s.Description)
			seen[s.Description] = true
		}
	}
}

func TestMakeTask_CompactKeepsCanonicalOrder(t *testing.T) {
	synth := NewTaskSynthesizer(Compact, builtin(t))
	rng := rand.New(rand.NewPCG(2, 2))

	for i := 0; i < 50; i++ {
		rec := synth.MakeTask("Set up monitoring", domain.CategoryDevOps, rng)
		assertTaskInvariants(t, Compact, builtin(t).TechPool(domain.CategoryDevOps), rec)
		require.Len(t, rec.Steps, 4)
		for j, s := range rec.Steps {
			assert.Equal(t, Compact.StepPool[j], s.Description)
		}
		assert.Empty(t, rec.Description)
		assert.Empty(t, rec.AcceptanceCriteria)
		assert.Equal(t, "Monitoring", rec.Title)
	}
}

func TestMakeTask_UnknownCategoryUsesDefaultPool(t *testing.T) {
	synth := NewTaskSynthesizer(Standard, builtin(t))
	rng := rand.New(rand.NewPCG(3, 3))

	rec := synth.MakeTask("Implement offline sync", domain.Category("mobile"), rng)
	assert.Equal(t, []string{"JavaScript"}, rec.TechStack)
	assert.Equal(t, domain.Category("mobile"), rec.Category)
	assert.Equal(t, "Offline sync", rec.Title)
}

func TestRender_IndentedJSON(t *testing.T) {
	rec := domain.TaskRecord{
		Title:          "Building a navbar in react",
		Category:       domain.CategoryFrontend,
		Priority:       domain.PriorityHigh,
		EstimatedHours: 8,
		TechStack:      []string{"React", "Tailwind CSS"},
		Steps: []domain.TaskStep{
			{Step: 1, Description: "Research requirements", Status: domain.StepPending},
		},
		AcceptanceCriteria: []string{"Unit tests pass with >80% coverage"},
	}

	out, err := Render(rec)
	require.NoError(t, err)

	want := `{
  "title": "Building a navbar in react",
  "category": "frontend",
  "priority": "high",
  "estimated_hours": 8,
  "tech_stack": [
    "React",
    "Tailwind CSS"
  ],
  "steps": [
    {
      "step": 1,
      "description": "Research requirements",
      "status": "pending"
    }
  ],
  "acceptance_criteria": [
    "Unit tests pass with >80% coverage"
  ]
}`
	assert.Equal(t, want, out)
	assert.False(t, strings.HasSuffix(out, "\n"))

	var back domain.TaskRecord
	require.NoError(t, json.Unmarshal([]byte(out), &back))
	assert.Equal(t, rec, back)
}

func TestProfileByName(t *testing.T) {
	p, err := ProfileByName("standard")
	require.NoError(t, err)
	assert.Equal(t, 3, p.TechTarget)

	p, err = ProfileByName("compact")
	require.NoError(t, err)
	assert.Equal(t, 2, p.TechTarget)

	_, err = ProfileByName("huge")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown profile "huge"`)

	assert.Equal(t, []string{"compact", "standard"}, ProfileNames())
}
