package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "info", Format: "json"}, &buf, false)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("verified", zap.String("path", "test/a.test.cpp"))
	require.NoError(t, logger.Sync())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "verified", entry["msg"])
	assert.Equal(t, "test/a.test.cpp", entry["path"])
	assert.NotEmpty(t, entry["time"])
}

func TestNewWithWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWithWriter(Config{Level: "debug"}, &buf, false)
	require.NoError(t, err)

	logger.Debug("compiling", zap.String("step", "g++"))
	assert.Contains(t, buf.String(), "DEBUG")
	assert.Contains(t, buf.String(), "compiling")
	assert.NotContains(t, buf.String(), "\x1b[", "no color codes without a terminal")
}

func TestNewWithWriter_Invalid(t *testing.T) {
	_, err := NewWithWriter(Config{Level: "loud"}, &bytes.Buffer{}, false)
	assert.Error(t, err)

	_, err = NewWithWriter(Config{Format: "xml"}, &bytes.Buffer{}, false)
	assert.Error(t, err)
}

func TestNew_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "verify.log")
	logger, err := New(Config{Format: "json", OutputPath: path})
	require.NoError(t, err)

	logger.Warn("dropping result entry")
	require.NoError(t, logger.Sync())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "dropping result entry")
}
