package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/gridstock/internal/adapters/logging"
	"github.com/andrescamacho/gridstock/internal/application/common"
	"github.com/andrescamacho/gridstock/internal/domain/shared"
	"github.com/andrescamacho/gridstock/internal/infrastructure/config"
)

var fixedTime = time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)

func TestLogger_TextFormat(t *testing.T) {
	// Arrange
	var buf bytes.Buffer
	l, err := logging.NewWithWriter(&buf, "info", "text", "engine")
	require.NoError(t, err)
	l.WithClock(shared.NewMockClock(fixedTime))

	// Act
	l.Log(common.LevelInfo, "Fed refineries", map[string]interface{}{"ore": "Iron", "delivered": "100"})

	// Assert
	assert.Equal(t, "[2024-03-01T10:30:00Z] [engine] INFO: Fed refineries delivered=100 ore=Iron\n", buf.String())
}

func TestLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewWithWriter(&buf, "debug", "json", "engine")
	require.NoError(t, err)
	l.WithClock(shared.NewMockClock(fixedTime))

	l.Log(common.LevelWarn, "Skipping unreadable unit", map[string]interface{}{"unit": "Cargo 3"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "Skipping unreadable unit", entry["message"])
	assert.Equal(t, "engine", entry["component"])
	assert.Equal(t, map[string]interface{}{"unit": "Cargo 3"}, entry["metadata"])
}

func TestLogger_FiltersBelowMinimumLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := logging.NewWithWriter(&buf, "warn", "text", "engine")
	require.NoError(t, err)

	l.Log(common.LevelDebug, "noise", nil)
	l.Log(common.LevelInfo, "noise", nil)
	l.Log(common.LevelError, "Failed to save cycle snapshot", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "ERROR: Failed to save cycle snapshot")
}

func TestNewWithWriter_RejectsUnknownSettings(t *testing.T) {
	_, err := logging.NewWithWriter(&bytes.Buffer{}, "loud", "text", "x")
	assert.Error(t, err)

	_, err = logging.NewWithWriter(&bytes.Buffer{}, "info", "xml", "x")
	assert.Error(t, err)
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gridstock.log")
	l, err := logging.New(config.LoggingConfig{Level: "info", Format: "text", Output: "file", FilePath: path}, "cli")
	require.NoError(t, err)

	l.Log(common.LevelInfo, "Command completed", nil)
	require.NoError(t, l.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[cli] INFO: Command completed")
}

func TestNew_FileOutputWithoutPath(t *testing.T) {
	_, err := logging.New(config.LoggingConfig{Level: "info", Format: "text", Output: "file"}, "cli")

	assert.Error(t, err)
}
