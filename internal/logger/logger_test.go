package logger

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit(t *testing.T) {
	configDir := filepath.Join(t.TempDir(), "config")

	err := Init(Config{Debug: false, ConfigDir: configDir})
	require.NoError(t, err)

	logDir := filepath.Join(configDir, "logs")
	_, err = os.Stat(logDir)
	assert.NoError(t, err, "log directory was not created")
	assert.NotNil(t, Logger)

	Debug("Test debug message")
	Info("Test info message")
	Warn("Test warning message")
	Error("Test error message")

	_, err = os.Stat(filepath.Join(logDir, "habitual.log"))
	assert.NoError(t, err, "log file was not created")
}

func TestInitDebugMode(t *testing.T) {
	err := Init(Config{Debug: true, ConfigDir: filepath.Join(t.TempDir(), "config")})
	require.NoError(t, err)
	assert.NotNil(t, Logger)
}

func TestInitWriterLevels(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf, false)

	Info("hidden")
	Warn("shown", "habit", 7)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "habit=7")
}

func TestWithoutInit(t *testing.T) {
	Logger = nil
	// Must not panic
	Debug("noop")
	Info("noop")
	Warn("noop")
	Error("noop")
}
