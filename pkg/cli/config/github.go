package config

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/domain/interfaces"
	"github.com/m-mizutani/prscout/pkg/domain/types"
	githubinfra "github.com/m-mizutani/prscout/pkg/infra/github"
	"github.com/urfave/cli/v3"
)

// GitHub holds GitHub API configuration
type GitHub struct {
	Token       string
	DiffTimeout time.Duration
	DiffMaxSize int64
	DiffCache   bool
	CacheSize   int
}

// Flags returns CLI flags for GitHub configuration
func (c *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-token",
			Usage:       "GitHub token used to download pull request diffs",
			Required:    true,
			Destination: &c.Token,
			Sources:     cli.EnvVars("PRSCOUT_GITHUB_TOKEN", "GITHUB_TOKEN"),
		},
		&cli.DurationFlag{
			Name:        "diff-timeout",
			Usage:       "Timeout for a single diff download (0 disables it)",
			Value:       githubinfra.DefaultTimeout,
			Destination: &c.DiffTimeout,
			Sources:     cli.EnvVars("PRSCOUT_DIFF_TIMEOUT"),
		},
		&cli.Int64Flag{
			Name:        "diff-max-size",
			Usage:       "Largest diff body accepted, in bytes",
			Value:       githubinfra.DefaultMaxDiffSize,
			Destination: &c.DiffMaxSize,
			Sources:     cli.EnvVars("PRSCOUT_DIFF_MAX_SIZE"),
		},
		&cli.BoolFlag{
			Name:        "diff-cache",
			Usage:       "Cache diff responses in memory and revalidate them with ETags",
			Destination: &c.DiffCache,
			Sources:     cli.EnvVars("PRSCOUT_DIFF_CACHE"),
		},
		&cli.IntFlag{
			Name:        "diff-cache-size",
			Usage:       "Number of diffs kept by --diff-cache before the least recently used is evicted",
			Value:       githubinfra.DefaultCacheEntries,
			Destination: &c.CacheSize,
			Sources:     cli.EnvVars("PRSCOUT_DIFF_CACHE_SIZE"),
		},
	}
}

// Credential returns the configured token. The serve command requires the flag, so an
// empty value here is a configuration bug.
func (c *GitHub) Credential() (types.GitHubToken, error) {
	if c.Token == "" {
		return "", goerr.New("GitHub token is not configured")
	}
	return types.GitHubToken(c.Token), nil
}

// NewFetcher builds the diff client from the configuration
func (c *GitHub) NewFetcher() interfaces.DiffFetcher {
	opts := []githubinfra.Option{
		githubinfra.WithTimeout(c.DiffTimeout),
		githubinfra.WithMaxDiffSize(c.DiffMaxSize),
	}
	if c.DiffCache {
		opts = append(opts, githubinfra.WithMemoryCache(c.CacheSize))
	}
	return githubinfra.NewClient(opts...)
}
