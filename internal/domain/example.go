package domain

import "time"

// GeneratedExample is one labeled instruction/response pair.
type GeneratedExample struct {
	Instruction string
	Output      string
	Kind        ExampleKind
}

// TaskRecord is the structured label of a task_creation example. It is
// serialized to indented JSON and that text becomes the example output.
type TaskRecord struct {
	Title              string     `json:"title"`
	Description        string     `json:"description,omitempty"`
	Category           Category   `json:"category"`
	Priority           Priority   `json:"priority"`
	EstimatedHours     int        `json:"estimated_hours"`
	TechStack          []string   `json:"tech_stack"`
	Steps              []TaskStep `json:"steps"`
	AcceptanceCriteria []string   `json:"acceptance_criteria,omitempty"`
}

type TaskStep struct {
	Step        int        `json:"step"`
	Description string     `json:"description"`
	Status      StepStatus `json:"status"`
}

// SplitFraction is the share of shuffled examples that goes to training.
const SplitFraction = 0.9

// Partition is a train/validation split of an already shuffled sequence.
type Partition struct {
	Train      []GeneratedExample
	Validation []GeneratedExample
}

// SplitIndex returns floor(SplitFraction * n).
func SplitIndex(n int) int {
	return n * 9 / 10
}

// Split cuts examples at SplitIndex. The order is preserved; the halves share
// the backing array of examples.
func Split(examples []GeneratedExample) Partition {
	idx := SplitIndex(len(examples))
	return Partition{
		Train:      examples[:idx:idx],
		Validation: examples[idx:],
	}
}

// DatasetRun is the manifest of one generate invocation.
type DatasetRun struct {
	ID          string
	Seed        uint64
	Profile     string
	NumTasks    int
	NumQA       int
	TrainCount  int
	ValCount    int
	TrainPath   string
	ValPath     string
	TrainSHA256 string
	ValSHA256   string
	// RegistryVersion is the version string of the template registry used.
	RegistryVersion string
	CannedAnswers   int
	FallbackAnswers int
	// TemplateDraws counts draws per template id.
	TemplateDraws map[string]int
	CreatedAt     time.Time
}

// Total returns the number of examples in the run.
func (r *DatasetRun) Total() int {
	return r.TrainCount + r.ValCount
}
