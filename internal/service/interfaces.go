package service

import (
	"context"
	"time"

	"github.com/alexanderramin/devsynth/internal/dataset"
	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/generation"
)

// GenerateRequest is one dataset build.
type GenerateRequest struct {
	NumTasks int
	NumQA    int
	// Seed 0 picks a random seed; the result reports the one used.
	Seed    uint64
	Profile string
	Workers int
	OutDir  string
	// TemplatesFile replaces the builtin registry when set.
	TemplatesFile string
	// MetricsFile receives a Prometheus textfile export when set.
	MetricsFile string
}

type GenerateResult struct {
	Run      *domain.DatasetRun
	Files    *dataset.Files
	Stats    generation.Stats
	Duration time.Duration
	// Recorded is true when the run was stored in the manifest.
	Recorded bool
}

type VerifyRequest struct {
	Dir string
	// RunID optionally names a manifest run whose digests must match.
	RunID string
}

type VerifyResult struct {
	Train *dataset.Report
	Val   *dataset.Report
	// SplitOK reports whether the train file holds floor(0.9 x total) lines.
	SplitOK bool
	// Run is the manifest run checked against, if any.
	Run         *domain.DatasetRun
	DigestMatch bool
}

type DatasetService interface {
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error)
	Verify(ctx context.Context, req VerifyRequest) (*VerifyResult, error)
}

type RunService interface {
	List(ctx context.Context, limit int) ([]*domain.DatasetRun, error)
	Get(ctx context.Context, id string) (*domain.DatasetRun, error)
	Delete(ctx context.Context, id string) error
}

// TemplateInfo describes one registry template for display.
type TemplateInfo struct {
	ID          string
	Kind        domain.ExampleKind
	Category    domain.Category
	Pattern     string
	Variant     string
	Slots       map[string][]string
	Pairs       [][2]string
	ConceptSlot string
	// TechPool is set when the pattern draws {tech}.
	TechPool []string
	// Combinations is the number of distinct instructions the template yields.
	Combinations int
}

type TemplateService interface {
	List(ctx context.Context) ([]TemplateInfo, error)
	Get(ctx context.Context, id string) (*TemplateInfo, error)
	// Sample expands a template n times with a fixed seed.
	Sample(ctx context.Context, id string, n int, seed uint64) ([]domain.GeneratedExample, error)
}
