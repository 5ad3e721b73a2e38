package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	require.NoError(t, configure(l, &buf, "debug", "json"))

	l.WithField("rows", 3).Debug("accel loaded")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "accel loaded", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
	assert.EqualValues(t, 3, entry["rows"])
}

func TestConfigureLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	require.NoError(t, configure(l, &buf, "WARN", ""))

	l.Info("hidden")
	assert.Empty(t, buf.String())
	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestConfigureRejectsUnknown(t *testing.T) {
	l := logrus.New()
	require.Error(t, configure(l, &bytes.Buffer{}, "loud", "text"))
	require.Error(t, configure(l, &bytes.Buffer{}, "info", "xml"))
}
