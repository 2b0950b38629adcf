package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/usecase"
	"github.com/pelletier/go-toml/v2"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func cmdAnalyze() *cli.Command {
	var format string

	return &cli.Command{
		Name:      "analyze",
		Aliases:   []string{"a"},
		Usage:     "Analyze a local diff file (stdin when FILE is omitted or -)",
		ArgsUsage: "[FILE]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "format",
				Aliases:     []string{"f"},
				Usage:       "Output format (text, json, yaml, toml)",
				Value:       "text",
				Destination: &format,
				Sources:     cli.EnvVars("PRSCOUT_ANALYZE_FORMAT"),
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			diff, err := readDiff(c.Args().First(), c.Root().Reader)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if w == nil {
				w = os.Stdout
			}

			return writeAnalysis(w, usecase.AnalyzeDiff(diff), format)
		},
	}
}

func readDiff(path string, stdin io.Reader) (string, error) {
	if path == "" || path == "-" {
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read diff from stdin")
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", goerr.Wrap(err, "failed to read diff file", goerr.V("path", path))
	}
	return string(data), nil
}

func writeAnalysis(w io.Writer, result *model.AnalysisResult, format string) error {
	switch format {
	case "text":
		return writeAnalysisText(w, result)

	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			return goerr.Wrap(err, "failed to encode result as JSON")
		}

	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return goerr.Wrap(err, "failed to encode result as YAML")
		}
		if err := enc.Close(); err != nil {
			return goerr.Wrap(err, "failed to flush YAML output")
		}

	case "toml":
		if err := toml.NewEncoder(w).Encode(result); err != nil {
			return goerr.Wrap(err, "failed to encode result as TOML")
		}

	default:
		return goerr.New("unsupported output format", goerr.V("format", format))
	}

	return nil
}

func writeAnalysisText(w io.Writer, result *model.AnalysisResult) error {
	header := color.New(color.Bold)
	lineColor := color.New(color.FgGreen)
	feedbackColor := color.New(color.FgYellow)

	if _, err := header.Fprintln(w, result.Summary); err != nil {
		return goerr.Wrap(err, "failed to write summary")
	}

	for i, s := range result.Details {
		if _, err := fmt.Fprintf(w, "\n%d. ", i+1); err != nil {
			return goerr.Wrap(err, "failed to write suggestion")
		}
		if _, err := lineColor.Fprintln(w, s.Line); err != nil {
			return goerr.Wrap(err, "failed to write suggestion")
		}
		if _, err := feedbackColor.Fprintf(w, "   %s\n", s.Feedback); err != nil {
			return goerr.Wrap(err, "failed to write suggestion")
		}
	}

	return nil
}
