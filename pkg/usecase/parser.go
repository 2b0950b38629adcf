package usecase

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/domain/types"
)

// TrustedDiffURLPrefix is the only origin diffs are downloaded from
const TrustedDiffURLPrefix = "https://github.com/"

// IsInScope reports whether the review pipeline handles events of eventType
func IsInScope(eventType model.WebhookEventType) bool {
	return eventType.IsSupported()
}

// ParsePayload extracts pull request details from a webhook payload.
//
// It returns (nil, nil) when the payload is recognized but irrelevant: the action is not
// handled, or neither a pull_request nor a comment sub-record is present. Errors are
// tagged with types.ErrTagValidation.
func ParsePayload(payload *model.Payload) (*model.PullRequestDetails, error) {
	if payload == nil {
		return nil, nil
	}

	action := model.Action(payload.GetAction())
	if !action.IsAllowed() {
		return nil, nil
	}
	if payload.PullRequest == nil && payload.Comment == nil {
		return nil, nil
	}

	pr := payload.PullRequest
	details := &model.PullRequestDetails{
		Action:     action,
		Repository: payload.Repo.GetFullName(),
		Title:      pr.GetTitle(),
		Author:     pr.GetUser().GetLogin(),
		Branch:     pr.GetHead().GetRef(),
	}
	if pr != nil {
		details.PullRequestNumber = pr.Number
		details.PullRequestID = pr.ID
		details.DiffURL = pr.DiffURL
	}

	if err := validateDiffURL(action, details.DiffURL); err != nil {
		return nil, err
	}

	if c := payload.Comment; c != nil {
		body := c.GetBody()
		author := c.GetUser().GetLogin()
		details.Comment = &body
		details.CommentAuthor = &author
	}

	return details, nil
}

func validateDiffURL(action model.Action, diffURL *string) error {
	if diffURL == nil || *diffURL == "" {
		if action.ChangesContent() {
			return goerr.New("missing diff_url",
				goerr.V("action", action),
				goerr.T(types.ErrTagValidation),
			)
		}
		if diffURL == nil {
			return nil
		}
	}

	if !strings.HasPrefix(*diffURL, TrustedDiffURLPrefix) {
		return goerr.New("invalid diff_url",
			goerr.V("action", action),
			goerr.V("diff_url", *diffURL),
			goerr.T(types.ErrTagValidation),
		)
	}

	return nil
}
