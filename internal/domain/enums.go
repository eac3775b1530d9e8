package domain

type Category string

const (
	CategoryFrontend      Category = "frontend"
	CategoryBackend       Category = "backend"
	CategoryDatabase      Category = "database"
	CategoryDevOps        Category = "devops"
	CategoryAPI           Category = "api"
	CategoryTesting       Category = "testing"
	CategoryDeployment    Category = "deployment"
	CategoryDocumentation Category = "documentation"
	CategorySecurity      Category = "security"
	CategoryPerformance   Category = "performance"
	CategoryJavaScript    Category = "javascript"
	CategoryReact         Category = "react"
	CategoryGeneral       Category = "general"
)

// ValidCategories is the canonical set of accepted category strings.
var ValidCategories = map[Category]bool{
	CategoryFrontend: true, CategoryBackend: true, CategoryDatabase: true,
	CategoryDevOps: true, CategoryAPI: true, CategoryTesting: true,
	CategoryDeployment: true, CategoryDocumentation: true, CategorySecurity: true,
	CategoryPerformance: true, CategoryJavaScript: true, CategoryReact: true,
	CategoryGeneral: true,
}

// IsKnown reports whether c belongs to the closed category set.
func (c Category) IsKnown() bool {
	return ValidCategories[c]
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

type ExampleKind string

const (
	KindTaskCreation ExampleKind = "task_creation"
	KindTechQA       ExampleKind = "tech_qa"
)

// StepStatus is the lifecycle state of a synthesized task step. Generated
// steps are never executed, so pending is the only value produced.
type StepStatus string

const (
	StepPending StepStatus = "pending"
)
