package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_AutoOnBufferIsJSON(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "info", FormatAuto)
	require.NoError(t, err)

	log.Info().Int("examples", 4000).Msg("generated")
	log.Debug().Msg("hidden")

	var ev map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &ev))
	assert.Equal(t, "generated", ev["message"])
	assert.Equal(t, "devsynth", ev["app"])
	assert.Equal(t, float64(4000), ev["examples"])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(&buf, "debug", FormatConsole)
	require.NoError(t, err)

	log.Debug().Str("profile", "compact").Msg("loaded")
	out := buf.String()
	assert.Contains(t, out, "loaded")
	assert.Contains(t, out, "profile=compact")
	assert.NotContains(t, out, "\x1b[", "no color off a terminal")
}

func TestNew_Errors(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "loud", FormatJSON)
	assert.Error(t, err)

	_, err = New(&bytes.Buffer{}, "info", "xml")
	assert.Error(t, err)
}

func TestIsTerminal_NonFile(t *testing.T) {
	assert.False(t, IsTerminal(&bytes.Buffer{}))
}
