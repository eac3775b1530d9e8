package testutil

import (
	"time"

	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/google/uuid"
)

// RunOption customizes a run built by NewTestRun.
type RunOption func(*domain.DatasetRun)

func WithSeed(seed uint64) RunOption {
	return func(r *domain.DatasetRun) {
		r.Seed = seed
	}
}

func WithProfile(name string) RunOption {
	return func(r *domain.DatasetRun) {
		r.Profile = name
	}
}

func WithCreatedAt(t time.Time) RunOption {
	return func(r *domain.DatasetRun) {
		r.CreatedAt = t
	}
}

func WithTemplateDraws(draws map[string]int) RunOption {
	return func(r *domain.DatasetRun) {
		r.TemplateDraws = draws
	}
}

// WithCounts sets the requested counts and derives the split sizes.
func WithCounts(numTasks, numQA int) RunOption {
	return func(r *domain.DatasetRun) {
		r.NumTasks = numTasks
		r.NumQA = numQA
		r.TrainCount = domain.SplitIndex(numTasks + numQA)
		r.ValCount = numTasks + numQA - r.TrainCount
	}
}

// NewTestRun returns a manifest row for a 20+20 standard run.
func NewTestRun(opts ...RunOption) *domain.DatasetRun {
	r := &domain.DatasetRun{
		ID:              uuid.New().String(),
		Seed:            42,
		Profile:         "standard",
		NumTasks:        20,
		NumQA:           20,
		TrainCount:      36,
		ValCount:        4,
		TrainPath:       "data/dataset/train.jsonl",
		ValPath:         "data/dataset/val.jsonl",
		TrainSHA256:     "a3f1",
		ValSHA256:       "b7c2",
		RegistryVersion: "2",
		CannedAnswers:   3,
		FallbackAnswers: 17,
		TemplateDraws:   map[string]int{"frontend_component": 12, "js_concept": 20, "devops_docker": 8},
		CreatedAt:       time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}
