package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Create a task for building a navbar in React", "Building a navbar in react"},
		{"I need to set up CI/CD pipeline", "Set up ci/cd pipeline"},
		{"create a TASK for Docker containerization", "Docker containerization"},
		{"Build a REST API", "Rest api"},
		{"Set up monitoring", "Monitoring"},
		{"Implement   dark mode", "Dark mode"},
		{"Create a development task for updating dependencies", "Create a development task for updating dependencies"},
		{"refactor the codebase", "Refactor the codebase"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ExtractTitle(tc.in), "input %q", tc.in)
	}
}

func TestExtractTitle_OnlyFirstMatchingPrefixStripped(t *testing.T) {
	// "I need to " matches first; the following "Build a " stays.
	assert.Equal(t, "Build a login form", ExtractTitle("I need to Build a login form"))
}

func TestExtractTitle_NonASCIIFirstRune(t *testing.T) {
	assert.Equal(t, "Écrire des tests", ExtractTitle("Create a task for écrire des tests"))
}
