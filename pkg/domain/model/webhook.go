package model

import (
	"time"

	"github.com/google/go-github/v82/github"
)

// WebhookEventType represents the type of webhook event received
type WebhookEventType string

const (
	EventTypePullRequest              WebhookEventType = "pull_request"
	EventTypePullRequestReview        WebhookEventType = "pull_request_review"
	EventTypePullRequestReviewComment WebhookEventType = "pull_request_review_comment"
)

// IsSupported reports whether events of this type are handled by the review pipeline
func (t WebhookEventType) IsSupported() bool {
	switch t {
	case EventTypePullRequest, EventTypePullRequestReview, EventTypePullRequestReviewComment:
		return true
	default:
		return false
	}
}

// WebhookEvent represents a webhook delivery received from GitHub
type WebhookEvent struct {
	ID         string           // Retrieved from X-GitHub-Delivery header
	Type       WebhookEventType // Retrieved from X-GitHub-Event header
	ReceivedAt time.Time        // Time when the event was received
	Payload    *Payload         // Decoded JSON payload
}

// Payload is the subset of a pull request family webhook body that the pipeline reads.
// pull_request and comment may both be present (review comment events) or either alone.
type Payload struct {
	Action      *string                    `json:"action,omitempty"`
	PullRequest *github.PullRequest        `json:"pull_request,omitempty"`
	Comment     *github.PullRequestComment `json:"comment,omitempty"`
	Repo        *github.Repository         `json:"repository,omitempty"`
}

// GetAction returns the Action field if it's non-nil, zero value otherwise
func (p *Payload) GetAction() string {
	if p == nil || p.Action == nil {
		return ""
	}
	return *p.Action
}
