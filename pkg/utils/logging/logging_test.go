package logging_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/m-mizutani/prscout/pkg/domain/types"
	"github.com/m-mizutani/prscout/pkg/utils/logging"
)

func TestWithAndFrom(t *testing.T) {
	t.Run("returns stored logger", func(t *testing.T) {
		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		ctx := logging.With(context.Background(), logger)

		logging.From(ctx).Info("hello from context")
		gt.String(t, buf.String()).Contains("hello from context")
	})

	t.Run("falls back to default logger", func(t *testing.T) {
		gt.Value(t, logging.From(context.Background())).Equal(slog.Default())
	})
}

func TestNewRedactor(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: logging.NewRedactor(),
	}))

	logger.Info("fetching", slog.Any("credential", types.GitHubToken("ghp_supersecretvalue")))

	gt.False(t, bytes.Contains(buf.Bytes(), []byte("ghp_supersecretvalue")))
	gt.String(t, buf.String()).Contains("fetching")
}

func TestNewRedactor_FieldNames(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{
		ReplaceAttr: logging.NewRedactor(),
	}))

	logger.Info("config loaded",
		"token", "lowercase-token-value",
		"secret", "lowercase-secret-value",
		"Authorization", "Bearer header-token-value",
		"token_state", "provided",
	)

	out := buf.String()
	gt.False(t, bytes.Contains(buf.Bytes(), []byte("lowercase-token-value")))
	gt.False(t, bytes.Contains(buf.Bytes(), []byte("lowercase-secret-value")))
	gt.False(t, bytes.Contains(buf.Bytes(), []byte("header-token-value")))
	gt.String(t, out).Contains(`"token_state":"provided"`)
}
