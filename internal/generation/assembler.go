package generation

import (
	"context"
	"fmt"
	"math/rand/v2"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/devsynth/internal/domain"
	"github.com/alexanderramin/devsynth/internal/template"
)

// DefaultWorkers bounds the draw pool when Options.Workers is unset.
const DefaultWorkers = 4

// Stream identifiers keep the per-draw generators of each kind and the
// shuffle generator apart for a given seed.
const (
	streamTask    uint64 = 0x7461736b00000000
	streamQA      uint64 = 0x7161000000000000
	streamShuffle uint64 = 0x73687566666c6500
)

// Options configures an Assembler.
type Options struct {
	Seed    uint64
	Workers int
}

// Stats summarizes one batch.
type Stats struct {
	Tasks           int
	QA              int
	CannedAnswers   int
	FallbackAnswers int
	// Templates counts draws per template id.
	Templates map[string]int
}

// Batch is the shuffled output of GenerateBatch.
type Batch struct {
	Seed     uint64
	Examples []domain.GeneratedExample
	Stats    Stats
}

// Assembler drives the task and QA draws for a dataset.
type Assembler struct {
	registry *template.Registry
	tasks    *TaskSynthesizer
	seed     uint64
	workers  int
}

func NewAssembler(registry *template.Registry, profile Profile, opts Options) *Assembler {
	workers := opts.Workers
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Assembler{
		registry: registry,
		tasks:    NewTaskSynthesizer(profile, registry),
		seed:     opts.Seed,
		workers:  workers,
	}
}

// Seed returns the seed every draw stream derives from.
func (a *Assembler) Seed() uint64 {
	return a.seed
}

// GenerateExamples draws numTasks task_creation and numQA tech_qa examples
// and returns them shuffled.
func (a *Assembler) GenerateExamples(ctx context.Context, numTasks, numQA int) ([]domain.GeneratedExample, error) {
	b, err := a.GenerateBatch(ctx, numTasks, numQA)
	if err != nil {
		return nil, err
	}
	return b.Examples, nil
}

type draw struct {
	example    domain.GeneratedExample
	templateID string
	canned     bool
}

// GenerateBatch is GenerateExamples with per-batch statistics. Every draw uses
// its own generator derived from (seed, kind, index), so the result does not
// depend on the worker count.
func (a *Assembler) GenerateBatch(ctx context.Context, numTasks, numQA int) (*Batch, error) {
	if numTasks < 0 || numQA < 0 {
		return nil, fmt.Errorf("example counts must be non-negative: tasks=%d qa=%d", numTasks, numQA)
	}

	draws := make([]draw, numTasks+numQA)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)

	for i := range draws {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var err error
			if i < numTasks {
				draws[i], err = a.drawTask(i)
			} else {
				draws[i] = a.drawQA(i - numTasks)
			}
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("generating examples: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("generating examples: %w", err)
	}

	stats := Stats{Tasks: numTasks, QA: numQA, Templates: make(map[string]int)}
	examples := make([]domain.GeneratedExample, len(draws))
	for i, d := range draws {
		examples[i] = d.example
		stats.Templates[d.templateID]++
		if d.example.Kind == domain.KindTechQA {
			if d.canned {
				stats.CannedAnswers++
			} else {
				stats.FallbackAnswers++
			}
		}
	}

	shuffle := a.rng(streamShuffle, 0)
	shuffle.Shuffle(len(examples), func(i, j int) {
		examples[i], examples[j] = examples[j], examples[i]
	})

	return &Batch{Seed: a.seed, Examples: examples, Stats: stats}, nil
}

func (a *Assembler) drawTask(i int) (draw, error) {
	rng := a.rng(streamTask, i)
	pool := a.registry.TaskTemplates()
	tpl := pool[rng.IntN(len(pool))]

	exp := a.registry.Expand(tpl, rng)
	out, err := Render(a.tasks.MakeTask(exp.Instruction, tpl.Category, rng))
	if err != nil {
		return draw{}, fmt.Errorf("task %d (%s): %w", i, tpl.ID, err)
	}
	return draw{
		example:    domain.GeneratedExample{Instruction: exp.Instruction, Output: out, Kind: domain.KindTaskCreation},
		templateID: tpl.ID,
	}, nil
}

func (a *Assembler) drawQA(i int) draw {
	rng := a.rng(streamQA, i)
	pool := a.registry.QATemplates()
	tpl := pool[rng.IntN(len(pool))]

	exp := a.registry.Expand(tpl, rng)
	return draw{
		example: domain.GeneratedExample{
			Instruction: exp.Instruction,
			Output:      Answer(exp.Instruction, exp.Concept),
			Kind:        domain.KindTechQA,
		},
		templateID: tpl.ID,
		canned:     IsCanned(exp.Concept),
	}
}

func (a *Assembler) rng(stream uint64, i int) *rand.Rand {
	return rand.New(rand.NewPCG(a.seed, mix(stream+uint64(i))))
}

// mix is the splitmix64 finalizer.
func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// ResolveSeed returns seed, or a fresh non-zero random seed when seed is 0.
func ResolveSeed(seed uint64) uint64 {
	for seed == 0 {
		seed = rand.Uint64()
	}
	return seed
}

// Split partitions shuffled examples into train and validation sets.
func Split(examples []domain.GeneratedExample) domain.Partition {
	return domain.Split(examples)
}
