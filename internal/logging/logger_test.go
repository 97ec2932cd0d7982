package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mdrefs/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	type testCase struct {
		name     string
		level    string
		expected log.Level
	}

	tests := []testCase{
		{"debug level", "debug", log.DebugLevel},
		{"info level", "info", log.InfoLevel},
		{"warn level", "warn", log.WarnLevel},
		{"warning level", "warning", log.WarnLevel},
		{"error level", "error", log.ErrorLevel},
		{"invalid defaults to info", "invalid", log.InfoLevel},
		{"empty defaults to info", "", log.InfoLevel},
		{"case insensitive DEBUG", "DEBUG", log.DebugLevel},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, logging.ParseLevel(tc.level))
			assert.Equal(t, tc.expected, logging.New(logging.Options{Level: tc.level}).GetLevel())
		})
	}
}

func TestNewWritesFields(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "debug", Output: &buf})

	logger.Debug("organized", logging.FieldPath, "docs/guide.md", logging.FieldEdits, 2)

	out := buf.String()
	assert.Contains(t, out, "organized")
	assert.Contains(t, out, "path=docs/guide.md")
	assert.Contains(t, out, "edits=2")
}

func TestNewFiltersBelowLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.New(logging.Options{Level: "warn", Output: &buf})

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

func TestContext(t *testing.T) {
	t.Parallel()

	logger := logging.New(logging.Options{Level: "error"})
	ctx := logging.WithLogger(context.Background(), logger)
	assert.Same(t, logger, logging.FromContext(ctx))

	assert.NotNil(t, logging.FromContext(context.Background()))
	//nolint:staticcheck // SA1012
	assert.NotNil(t, logging.FromContext(nil))
}

func TestWithFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		keyvals []any
		want    []string
	}{
		{name: "adds fields", keyvals: []any{logging.FieldPath, "docs/a.md"}, want: []string{"path=docs/a.md", "processed"}},
		{name: "no fields", keyvals: nil, want: []string{"processed"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := logging.New(logging.Options{Level: "debug", Output: &buf})
			ctx := logging.WithLogger(context.Background(), logger)

			logging.FromContext(logging.WithFields(ctx, tt.keyvals...)).Info("processed")

			for _, want := range tt.want {
				assert.Contains(t, buf.String(), want)
			}
		})
	}
}

func TestSetLevel(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	defer logging.SetDefault(original)

	logging.SetDefault(logging.New(logging.Options{Level: "info"}))

	logging.SetLevel("debug")
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())

	logging.SetLevel("error")
	assert.Equal(t, log.ErrorLevel, logging.Default().GetLevel())
}

func TestSetDefault(t *testing.T) {
	// Not parallel because it modifies global state.
	original := logging.Default()
	require.NotNil(t, original)
	defer logging.SetDefault(original)

	newLogger := logging.New(logging.Options{Level: "error"})
	logging.SetDefault(newLogger)

	assert.Same(t, newLogger, logging.Default())
}
