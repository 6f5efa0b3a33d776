package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJSON(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	log := New("debug", "json", &b)
	log.Debug().Str("trade_id", "T1").Msg("added")

	var line map[string]any
	require.NoError(t, json.Unmarshal(b.Bytes(), &line))
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "T1", line["trade_id"])
	assert.Equal(t, "added", line["message"])
}

func TestNewLevelFallback(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	log := New("loud", "json", &b)
	assert.Equal(t, zerolog.InfoLevel, log.GetLevel())

	log.Debug().Msg("hidden")
	assert.Empty(t, b.String())
}

func TestNewConsole(t *testing.T) {
	t.Parallel()

	var b bytes.Buffer
	log := New("warn", "console", &b)
	log.Warn().Msg("careful")
	assert.Contains(t, b.String(), "careful")
}
