package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pchouse/atqr/pkg/logger"
)

type ctxKey string

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json output with static attrs", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithAttr(slog.String("service", "atqr")),
		)
		log.Info("decoded", "fields", 17)

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "decoded", record["msg"])
		assert.Equal(t, "atqr", record["service"])
		assert.EqualValues(t, 17, record["fields"])
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithFormat(logger.FormatText))
		log.Info("hello")
		assert.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("level filtering", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(logger.WithOutput(&buf), logger.WithLevel(slog.LevelWarn))
		log.Info("dropped")
		assert.Empty(t, buf.String())

		log.Warn("kept")
		assert.Contains(t, buf.String(), "kept")
	})

	t.Run("custom extractor", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		log := logger.New(
			logger.WithOutput(&buf),
			logger.WithExtractor(func(_ context.Context) (slog.Attr, bool) {
				return slog.String("trace", "t-1"), true
			}),
		)
		log.InfoContext(context.Background(), "handled")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "t-1", record["trace"])
	})

	t.Run("context value extraction", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		key := ctxKey("request_id")
		log := logger.New(logger.WithOutput(&buf), logger.WithContextValue("request_id", key))

		ctx := context.WithValue(context.Background(), key, "req-123")
		log.InfoContext(ctx, "handled")

		var record map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.Equal(t, "req-123", record["request_id"])

		buf.Reset()
		log.InfoContext(context.Background(), "no id")
		record = map[string]any{}
		require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
		assert.NotContains(t, record, "request_id")
	})
}
