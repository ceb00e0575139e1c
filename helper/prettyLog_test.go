package helper

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrettyHandler(t *testing.T) {
	t.Run("Create PrettyHandler with default options", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		require.NotNil(t, handler)
		assert.NotNil(t, handler.Handler, "Expected handler to have a non-nil Handler field")
		assert.NotNil(t, handler.l, "Expected handler to have a non-nil logger field")
	})

	t.Run("Respects configured level", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
			SlogOpts: slog.HandlerOptions{Level: slog.LevelWarn},
		})

		assert.False(t, handler.Enabled(context.Background(), slog.LevelInfo))
		assert.True(t, handler.Enabled(context.Background(), slog.LevelError))
	})
}

func TestPrettyHandlerHandle(t *testing.T) {
	ctx := context.Background()

	levels := []struct {
		level  slog.Level
		prefix string
	}{
		{slog.LevelDebug, "DEBUG:"},
		{slog.LevelInfo, "INFO:"},
		{slog.LevelWarn, "WARN:"},
		{slog.LevelError, "ERROR:"},
	}

	for _, l := range levels {
		t.Run("Handle "+l.prefix+" record", func(t *testing.T) {
			var buf bytes.Buffer
			handler := NewPrettyHandler(&buf, PrettyHandlerOptions{
				SlogOpts: slog.HandlerOptions{Level: slog.LevelDebug},
			})

			record := slog.NewRecord(time.Now(), l.level, "indexed chunks", 0)
			record.AddAttrs(slog.Int("total_chunks", 42))

			err := handler.Handle(ctx, record)
			require.NoError(t, err)

			output := buf.String()
			assert.Contains(t, output, l.prefix)
			assert.Contains(t, output, "indexed chunks")
			assert.Contains(t, output, "total_chunks")
			assert.Contains(t, output, "42")
			assert.Regexp(t, `\[\d{2}:\d{2}:\d{2}\.\d{3}\]`, output, "Expected formatted timestamp")
		})
	}

	t.Run("Handle record with no attributes", func(t *testing.T) {
		var buf bytes.Buffer
		handler := NewPrettyHandler(&buf, PrettyHandlerOptions{})

		err := handler.Handle(ctx, slog.NewRecord(time.Now(), slog.LevelInfo, "simple message", 0))

		require.NoError(t, err)
		assert.Contains(t, buf.String(), "{}", "Expected empty JSON object for attributes")
	})
}

func TestPrettyHandlerWithAttrs(t *testing.T) {
	t.Run("Attributes and groups keep the pretty format", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{}))

		logger.With("component", "engine").WithGroup("query").Info("retrieved chunks", "top_k", 5)

		output := buf.String()
		assert.Contains(t, output, "INFO:")
		assert.Contains(t, output, "retrieved chunks")
		assert.Contains(t, output, `"component": "engine"`)
		assert.Contains(t, output, `"query": {`)
		assert.Contains(t, output, `"top_k": 5`)
		assert.NotContains(t, output, `"msg"`, "Expected no plain JSON output")
	})

	t.Run("Handlers are returned as PrettyHandler", func(t *testing.T) {
		handler := NewPrettyHandler(&bytes.Buffer{}, PrettyHandlerOptions{})

		assert.IsType(t, &PrettyHandler{}, handler.WithAttrs([]slog.Attr{slog.String("a", "b")}))
		assert.IsType(t, &PrettyHandler{}, handler.WithGroup("g"))
	})

	t.Run("Derived handlers do not share attributes", func(t *testing.T) {
		var buf bytes.Buffer
		base := slog.New(NewPrettyHandler(&buf, PrettyHandlerOptions{}))
		base.With("first", 1)
		base.With("second", 2).Info("message")

		assert.Contains(t, buf.String(), `"second": 2`)
		assert.NotContains(t, buf.String(), "first")
	})
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel(" WARNING "))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"), "Unknown levels fall back to info")
	assert.NotNil(t, NewLogger("debug"))
}
