package cli

import (
	"context"
	"log/slog"
	"strings"

	"github.com/joho/godotenv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/cli/config"
	"github.com/m-mizutani/prscout/pkg/domain/types"
	"github.com/m-mizutani/prscout/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

const envFileFlag = "env-file"

// Run runs the CLI application
func Run(ctx context.Context, args []string) error {
	var loggerCfg config.Logger
	var logger *slog.Logger

	// .env values have to be in the environment before flags read their env sources
	if err := loadEnvFiles(args); err != nil {
		slog.Default().Error("Failed to load env file", slog.Any("error", err))
		return err
	}

	flags := append(loggerCfg.Flags(), &cli.StringSliceFlag{
		Name:  envFileFlag,
		Usage: "Load environment variables from a .env file (repeatable)",
	})

	app := &cli.Command{
		Name:    "prscout",
		Usage:   "Pull request webhook reviewer",
		Version: types.Version,
		Flags:   flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			var err error
			logger, err = loggerCfg.Configure()
			if err != nil {
				return nil, err
			}

			slog.SetDefault(logger)
			ctx = logging.With(ctx, logger)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdServe(),
			cmdAnalyze(),
		},
	}

	if err := app.Run(ctx, args); err != nil {
		if logger == nil {
			logger = slog.Default()
		}
		logger.Error("CLI execution failed", slog.Any("error", err))
		return err
	}

	return nil
}

// loadEnvFiles loads files given by --env-file. Without the flag, ./.env is loaded when it
// exists. Variables already set in the environment win.
func loadEnvFiles(args []string) error {
	var files []string
	for i := 0; i < len(args); i++ {
		arg := strings.TrimLeft(args[i], "-")
		if len(arg) == len(args[i]) {
			continue
		}
		switch {
		case arg == envFileFlag && i+1 < len(args):
			files = append(files, args[i+1])
			i++
		case strings.HasPrefix(arg, envFileFlag+"="):
			files = append(files, strings.TrimPrefix(arg, envFileFlag+"="))
		}
	}

	if len(files) == 0 {
		_ = godotenv.Load() // optional
		return nil
	}

	if err := godotenv.Load(files...); err != nil {
		return goerr.Wrap(err, "failed to load env file", goerr.V("files", files))
	}
	return nil
}
