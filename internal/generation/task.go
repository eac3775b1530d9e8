package generation

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand/v2"

	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/template"
)

// TaskSynthesizer builds structured task records from instructions.
type TaskSynthesizer struct {
	profile Profile
	pools   template.TechPooler
}

func NewTaskSynthesizer(profile Profile, pools template.TechPooler) *TaskSynthesizer {
	return &TaskSynthesizer{profile: profile, pools: pools}
}

// Profile returns the profile records are drawn from.
func (s *TaskSynthesizer) Profile() Profile {
	return s.profile
}

// MakeTask draws a TaskRecord for instruction. Unknown categories use the
// default technology pool.
func (s *TaskSynthesizer) MakeTask(instruction string, category domain.Category, rng *rand.Rand) domain.TaskRecord {
	p := s.profile
	rec := domain.TaskRecord{
		Title:          template.ExtractTitle(instruction),
		Category:       category,
		Priority:       p.Priorities[rng.IntN(len(p.Priorities))],
		EstimatedHours: p.Hours[rng.IntN(len(p.Hours))],
	}
	if p.DescriptionPrefix != "" {
		rec.Description = p.DescriptionPrefix + instruction
	}

	pool := s.pools.TechPool(category)
	rec.TechStack = sample(rng, pool, min(p.TechTarget, len(pool)))

	var steps []string
	if p.SampleSteps {
		k := p.MinSteps + rng.IntN(p.MaxSteps-p.MinSteps+1)
		steps = sample(rng, p.StepPool, min(k, len(p.StepPool)))
	} else {
		steps = p.StepPool[:min(p.MaxSteps, len(p.StepPool))]
	}
	rec.Steps = make([]domain.TaskStep, len(steps))
	for i, desc := range steps {
		rec.Steps[i] = domain.TaskStep{Step: i + 1, Description: desc, Status: domain.StepPending}
	}

	if len(p.AcceptanceCriteria) > 0 {
		rec.AcceptanceCriteria = append([]string(nil), p.AcceptanceCriteria...)
	}
	return rec
}

// Render serializes rec as two-space indented JSON without a trailing newline.
// HTML characters are kept literal.
func Render(rec domain.TaskRecord) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rec); err != nil {
		return "", fmt.Errorf("rendering task record: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n"))), nil
}

// sample draws k distinct elements of pool in draw order.
func sample(rng *rand.Rand, pool []string, k int) []string {
	idx := rng.Perm(len(pool))[:k]
	out := make([]string, k)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
