package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWithOutput(&buf, "debug", "json")

	l.WithField("post_id", "p1").Info("Post created successfully")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Post created successfully", entry["msg"])
	assert.Equal(t, "p1", entry["post_id"])
	assert.Equal(t, "info", entry["level"])
}

func TestNewLoggerLevelFallback(t *testing.T) {
	l := NewLoggerWithOutput(&bytes.Buffer{}, "nonsense", "json")
	assert.Equal(t, logrus.InfoLevel, l.GetLevel())

	l = NewLoggerWithOutput(&bytes.Buffer{}, "warn", "text")
	assert.Equal(t, logrus.WarnLevel, l.GetLevel())
}
