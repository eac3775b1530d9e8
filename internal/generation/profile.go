package generation

import (
	"fmt"
	"sort"

	"github.com/alexanderramin/devsynth/internal/domain"
)

// Profile fixes the enumerations a TaskRecord is drawn from.
type Profile struct {
	Name       string
	Priorities []domain.Priority
	Hours      []int
	// TechTarget is the desired tech_stack length before capping at pool size.
	TechTarget int
	StepPool   []string
	MinSteps   int
	MaxSteps   int
	// SampleSteps draws steps without replacement; otherwise the first
	// MaxSteps entries of StepPool are used in order.
	SampleSteps bool
	// DescriptionPrefix is prepended to the instruction; empty omits the field.
	DescriptionPrefix  string
	AcceptanceCriteria []string
}

const (
	ProfileStandard = "standard"
	ProfileCompact  = "compact"
)

// Standard is the canonical record schema.
var Standard = Profile{
	Name: ProfileStandard,
	Priorities: []domain.Priority{
		domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh, domain.PriorityCritical,
	},
	Hours:      []int{1, 2, 4, 8, 16, 24},
	TechTarget: 3,
	StepPool: []string{
		"Research and understand requirements",
		"Set up development environment",
		"Implement core functionality",
		"Write unit tests",
		"Code review and refactoring",
		"Documentation and deployment",
	},
	MinSteps:          3,
	MaxSteps:          5,
	SampleSteps:       true,
	DescriptionPrefix: "Implementation task: ",
	AcceptanceCriteria: []string{
		"All functionality works as expected",
		"Unit tests pass with >80% coverage",
		"Code follows project style guidelines",
	},
}

// Compact is the smaller schema without description or acceptance criteria.
var Compact = Profile{
	Name:       ProfileCompact,
	Priorities: []domain.Priority{domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh},
	Hours:      []int{2, 4, 8, 16},
	TechTarget: 2,
	StepPool: []string{
		"Research requirements",
		"Implement core functionality",
		"Write tests",
		"Review and deploy",
	},
	MinSteps: 4,
	MaxSteps: 4,
}

var profiles = map[string]Profile{
	ProfileStandard: Standard,
	ProfileCompact:  Compact,
}

// ProfileByName resolves a profile name.
func ProfileByName(name string) (Profile, error) {
	p, ok := profiles[name]
	if !ok {
		return Profile{}, fmt.Errorf("unknown profile %q (valid: %v)", name, ProfileNames())
	}
	return p, nil
}

// ProfileNames lists the known profile names, sorted.
func ProfileNames() []string {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
