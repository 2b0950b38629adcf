package interfaces

import (
	"context"

	"github.com/m-mizutani/prscout/pkg/domain/types"
)

// DiffFetcher retrieves raw pull request diffs from GitHub
type DiffFetcher interface {
	// FetchDiff downloads the diff at diffURL using token as bearer credential.
	// A non-200 answer is reported as *model.FetchError.
	FetchDiff(ctx context.Context, diffURL string, token types.GitHubToken) (string, error)
}
