package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/usecase"
)

const sampleDiff = "diff --git a/app.py b/app.py\n+++ b/app.py\n+print('debug')\n+x = 1\n-print('old')\n"

func TestWriteAnalysis(t *testing.T) {
	color.NoColor = true
	result := usecase.AnalyzeDiff(sampleDiff)

	t.Run("text", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, writeAnalysis(&buf, result, "text"))

		out := buf.String()
		gt.String(t, out).Contains("Found 1 suggestions.")
		gt.String(t, out).Contains("1. +print('debug')")
		gt.String(t, out).Contains("Avoid using print statements")
	})

	t.Run("json", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, writeAnalysis(&buf, result, "json"))

		var got model.AnalysisResult
		gt.NoError(t, json.Unmarshal(buf.Bytes(), &got))
		gt.Value(t, got.Summary).Equal("Found 1 suggestions.")
		gt.Number(t, len(got.Details)).Equal(1)
	})

	t.Run("yaml", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, writeAnalysis(&buf, result, "yaml"))

		var got model.AnalysisResult
		gt.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
		gt.Value(t, got.Summary).Equal("Found 1 suggestions.")
		gt.Value(t, got.Details[0].Line).Equal("+print('debug')")
	})

	t.Run("toml", func(t *testing.T) {
		var buf bytes.Buffer
		gt.NoError(t, writeAnalysis(&buf, result, "toml"))

		var got model.AnalysisResult
		gt.NoError(t, toml.Unmarshal(buf.Bytes(), &got))
		gt.Value(t, got.Summary).Equal("Found 1 suggestions.")
		gt.Value(t, got.Details[0].Feedback).Equal(result.Details[0].Feedback)
	})

	t.Run("unknown format", func(t *testing.T) {
		var buf bytes.Buffer
		gt.Error(t, writeAnalysis(&buf, result, "xml"))
	})
}

func TestReadDiff(t *testing.T) {
	t.Run("from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "change.diff")
		gt.NoError(t, os.WriteFile(path, []byte(sampleDiff), 0600))

		diff, err := readDiff(path, nil)
		gt.NoError(t, err)
		gt.Value(t, diff).Equal(sampleDiff)
	})

	t.Run("from stdin", func(t *testing.T) {
		diff, err := readDiff("-", strings.NewReader(sampleDiff))
		gt.NoError(t, err)
		gt.Value(t, diff).Equal(sampleDiff)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readDiff(filepath.Join(t.TempDir(), "nope.diff"), nil)
		gt.Error(t, err)
	})
}

func TestLoadEnvFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	gt.NoError(t, os.WriteFile(path, []byte("PRSCOUT_TEST_ENV_VALUE=from-file\n"), 0600))

	t.Run("separate value", func(t *testing.T) {
		t.Setenv("PRSCOUT_TEST_ENV_VALUE", "")
		os.Unsetenv("PRSCOUT_TEST_ENV_VALUE")

		gt.NoError(t, loadEnvFiles([]string{"prscout", "--env-file", path, "serve"}))
		gt.Value(t, os.Getenv("PRSCOUT_TEST_ENV_VALUE")).Equal("from-file")
	})

	t.Run("equals form", func(t *testing.T) {
		t.Setenv("PRSCOUT_TEST_ENV_VALUE", "")
		os.Unsetenv("PRSCOUT_TEST_ENV_VALUE")

		gt.NoError(t, loadEnvFiles([]string{"prscout", "--env-file=" + path, "serve"}))
		gt.Value(t, os.Getenv("PRSCOUT_TEST_ENV_VALUE")).Equal("from-file")
	})

	t.Run("existing environment wins", func(t *testing.T) {
		t.Setenv("PRSCOUT_TEST_ENV_VALUE", "from-env")

		gt.NoError(t, loadEnvFiles([]string{"prscout", "--env-file", path}))
		gt.Value(t, os.Getenv("PRSCOUT_TEST_ENV_VALUE")).Equal("from-env")
	})

	t.Run("missing file", func(t *testing.T) {
		gt.Error(t, loadEnvFiles([]string{"prscout", "--env-file", filepath.Join(dir, "missing.env")}))
	})
}
