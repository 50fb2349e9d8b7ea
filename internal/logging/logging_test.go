package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_AddsServiceAttr(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "agenda-api", "info")

	logger.Info("hello", "k", "v")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	require.Equal(t, "agenda-api", line["service"])
	require.Equal(t, "hello", line["msg"])
	require.Equal(t, "v", line["k"])
}

func TestNewWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "agenda-api", "warn")

	logger.Info("ignored")
	require.Zero(t, buf.Len())

	logger.Warn("kept")
	require.NotZero(t, buf.Len())
}
