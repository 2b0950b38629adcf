package usecase

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/domain/interfaces"
	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/domain/types"
	"github.com/m-mizutani/prscout/pkg/utils/errutil"
	"github.com/m-mizutani/prscout/pkg/utils/logging"
)

const (
	reasonNotRecognized = "not a recognized event"
	reasonUnsupported   = "unsupported action"
	reasonNothingToDo   = "no valid action or diff to process"
)

type webhookUseCase struct {
	fetcher interfaces.DiffFetcher
	token   types.GitHubToken
}

// NewWebhook creates a new instance of WebhookUseCase. token is used for every diff
// download and never changes after construction.
func NewWebhook(fetcher interfaces.DiffFetcher, token types.GitHubToken) interfaces.WebhookUseCase {
	return &webhookUseCase{
		fetcher: fetcher,
		token:   token,
	}
}

// ProcessEvent runs one webhook delivery through parse, fetch and analyze
func (uc *webhookUseCase) ProcessEvent(ctx context.Context, eventType model.WebhookEventType, payload *model.Payload) (result *model.Result) {
	logger := logging.From(ctx)

	logger.Info("Processing webhook event",
		"type", eventType,
		"action", payload.GetAction(),
	)

	if !IsInScope(eventType) {
		logger.Info("Ignoring unsupported event type", "event_type", eventType)
		return model.NewRejected(reasonNotRecognized)
	}

	defer func() {
		if r := recover(); r != nil {
			err := goerr.New(fmt.Sprintf("panic in webhook processing: %v", r),
				goerr.V("event_type", eventType),
				goerr.V("stack", string(debug.Stack())),
			)
			errutil.Handle(ctx, "panic while processing webhook event", err)
			result = model.NewFailed(err.Error(), nil)
		}
	}()

	details, err := ParsePayload(payload)
	if err != nil {
		logger.Warn("Invalid webhook payload", "error", err, "event_type", eventType)
		return model.NewFailed(err.Error(), nil)
	}
	if details == nil {
		logger.Info("Ignoring webhook event with unsupported action",
			"event_type", eventType,
			"action", payload.GetAction(),
		)
		return model.NewRejected(reasonUnsupported)
	}

	if details.Action.IsCommentAction() && details.HasComment() {
		logger.Info("Processed pull request comment",
			"repository", details.Repository,
			"action", details.Action,
			"comment_author", *details.CommentAuthor,
		)
		return model.NewCommentProcessed(details.Action, *details.CommentAuthor, *details.Comment)
	}

	if details.DiffURL == nil {
		return model.NewRejected(reasonNothingToDo)
	}

	return uc.reviewDiff(ctx, details)
}

func (uc *webhookUseCase) reviewDiff(ctx context.Context, details *model.PullRequestDetails) *model.Result {
	logger := logging.From(ctx)

	diff, err := uc.fetcher.FetchDiff(ctx, details.GetDiffURL(), uc.token)
	if err != nil {
		var fetchErr *model.FetchError
		if errors.As(err, &fetchErr) {
			logger.Warn("GitHub rejected diff request",
				"status_code", fetchErr.StatusCode,
				"url", fetchErr.URL,
				"repository", details.Repository,
			)
			return model.NewFailed(fetchErr.Error(), details)
		}

		errutil.Handle(ctx, "failed to fetch pull request diff", goerr.Wrap(err, "failed to fetch diff",
			goerr.V("repository", details.Repository),
			goerr.V("diff_url", details.GetDiffURL()),
		))
		return model.NewFailed(err.Error(), details)
	}

	review := AnalyzeDiff(diff)

	logger.Info("Analyzed pull request diff",
		"repository", details.Repository,
		"diff_bytes", len(diff),
		"suggestions", len(review.Details),
	)

	return model.NewDiffProcessed(details, diff, review)
}
