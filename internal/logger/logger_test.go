package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestLogger(buf *bytes.Buffer, level Level) *Logger {
	return New(WithOutput(buf), WithLevel(level), WithColors(false))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel("warning"))
	assert.Equal(t, ERROR, ParseLevel("ERROR"))
	assert.Equal(t, INFO, ParseLevel("verbose"))
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, WARN)

	l.Info("hidden")
	l.Warn("shown %d", 1)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN ")
	assert.Contains(t, out, "shown 1")
}

func TestLogger_FieldsSortedAndQuoted(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, DEBUG).
		WithPrefix("session_service").
		WithFields(map[string]any{"user_id": 7, "reason": "review due"}).
		WithField("count", 3)

	l.Info("composed")

	line := strings.TrimSpace(buf.String())
	assert.Contains(t, line, "[session_service]")
	assert.True(t, strings.HasSuffix(line, `composed count=3 reason="review due" user_id=7`), line)
}

func TestLogger_DerivedDoesNotMutateParent(t *testing.T) {
	var buf bytes.Buffer
	parent := newTestLogger(&buf, INFO)
	_ = parent.WithField("child", true)

	parent.Info("plain")
	assert.NotContains(t, buf.String(), "child=")
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, INFO)

	assert.Same(t, l, l.WithError(nil))

	l.WithError(errors.New("boom")).Error("failed")
	assert.Contains(t, buf.String(), "error=boom")
}

func TestContext(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, INFO).WithField("request_id", "abc")

	ctx := NewContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
	assert.Same(t, Default(), FromContext(context.Background()))
}
