package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceholders(t *testing.T) {
	names, err := Placeholders("Build a {component} in {tech} with {component}")
	require.NoError(t, err)
	assert.Equal(t, []string{"component", "tech"}, names)

	names, err = Placeholders("No placeholders here")
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestPlaceholders_Errors(t *testing.T) {
	cases := []struct {
		pattern string
		errMsg  string
	}{
		{"open {brace", "unmatched '{' at position 5"},
		{"close } brace", "unmatched '}' at position 6"},
		{"empty {}", `invalid placeholder "{}"`},
		{"bad {two words}", `invalid placeholder "{two words}"`},
		{"digit {1st}", `invalid placeholder "{1st}"`},
	}
	for _, tc := range cases {
		_, err := Placeholders(tc.pattern)
		require.Error(t, err, tc.pattern)
		assert.Contains(t, err.Error(), tc.errMsg, tc.pattern)
	}
}

func TestRender(t *testing.T) {
	segs, err := parsePattern("{a} vs {b}!")
	require.NoError(t, err)
	assert.Equal(t, "let vs const!", render(segs, map[string]string{"a": "let", "b": "const"}))
}
