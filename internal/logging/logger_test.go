package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := New("test", WARN, false)
	log.SetOutput(&buf)

	log.Debug("low")
	log.Info("low")
	log.Warn("kept")
	log.Error("kept too")

	out := buf.String()
	assert.NotContains(t, out, "low")
	assert.Contains(t, out, "kept")
	assert.Contains(t, out, "kept too")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New("worker-0", INFO, true)
	log.SetOutput(&buf)

	log.Infof("serving on %s", "0.0.0.0:8000")

	line := strings.TrimSpace(buf.String())
	var e entry
	require.NoError(t, json.Unmarshal([]byte(line), &e))
	assert.Equal(t, "INFO", e.Level)
	assert.Equal(t, "worker-0", e.Component)
	assert.Equal(t, "serving on 0.0.0.0:8000", e.Message)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, INFO, ParseLevel("info"))
	assert.Equal(t, WARN, ParseLevel("warn"))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel("bogus"))
}
