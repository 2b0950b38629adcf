package usecase_test

import (
	"encoding/json"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/prscout/pkg/domain/model"
	"github.com/m-mizutani/prscout/pkg/domain/types"
	"github.com/m-mizutani/prscout/pkg/usecase"
)

func decodePayload(t *testing.T, raw string) *model.Payload {
	t.Helper()
	var p model.Payload
	gt.NoError(t, json.Unmarshal([]byte(raw), &p))
	return &p
}

func TestIsInScope(t *testing.T) {
	for _, eventType := range []string{"pull_request", "pull_request_review", "pull_request_review_comment"} {
		gt.True(t, usecase.IsInScope(model.WebhookEventType(eventType)))
	}
	for _, eventType := range []string{"push", "issues", "issue_comment", "release", ""} {
		gt.False(t, usecase.IsInScope(model.WebhookEventType(eventType)))
	}
}

func TestParsePayload_PullRequest(t *testing.T) {
	payload := decodePayload(t, `{
		"action": "opened",
		"pull_request": {
			"id": 123456,
			"number": 42,
			"title": "Fix: Update README",
			"user": {"login": "test-user"},
			"diff_url": "https://github.com/test-user/test-repo/pull/42.diff",
			"head": {"ref": "main"}
		},
		"repository": {"full_name": "test-user/test-repo"}
	}`)

	details, err := usecase.ParsePayload(payload)
	gt.NoError(t, err)
	gt.NotNil(t, details)

	gt.Value(t, details.Action).Equal(model.ActionOpened)
	gt.Value(t, details.Repository).Equal("test-user/test-repo")
	gt.Value(t, *details.PullRequestNumber).Equal(42)
	gt.Value(t, *details.PullRequestID).Equal(int64(123456))
	gt.Value(t, details.GetDiffURL()).Equal("https://github.com/test-user/test-repo/pull/42.diff")
	gt.Value(t, details.Title).Equal("Fix: Update README")
	gt.Value(t, details.Author).Equal("test-user")
	gt.Value(t, details.Branch).Equal("main")
	gt.False(t, details.HasComment())
	gt.Value(t, details.CommentAuthor == nil).Equal(true)
}

func TestParsePayload_Tolerant(t *testing.T) {
	payload := decodePayload(t, `{
		"action": "synchronize",
		"pull_request": {"diff_url": "https://github.com/o/r/pull/1.diff"}
	}`)

	details, err := usecase.ParsePayload(payload)
	gt.NoError(t, err)
	gt.NotNil(t, details)

	gt.Value(t, details.Repository).Equal("")
	gt.Value(t, details.PullRequestNumber == nil).Equal(true)
	gt.Value(t, details.Title).Equal("")
	gt.Value(t, details.Author).Equal("")
	gt.Value(t, details.Branch).Equal("")
}

func TestParsePayload_Comment(t *testing.T) {
	payload := decodePayload(t, `{
		"action": "created",
		"comment": {"body": "Looks good to me", "user": {"login": "reviewer"}},
		"pull_request": {"number": 7, "diff_url": "https://github.com/o/r/pull/7.diff"},
		"repository": {"full_name": "o/r"}
	}`)

	details, err := usecase.ParsePayload(payload)
	gt.NoError(t, err)
	gt.NotNil(t, details)

	gt.True(t, details.HasComment())
	gt.Value(t, *details.Comment).Equal("Looks good to me")
	gt.Value(t, *details.CommentAuthor).Equal("reviewer")
	gt.Value(t, details.GetDiffURL()).Equal("https://github.com/o/r/pull/7.diff")
	gt.Value(t, *details.PullRequestNumber).Equal(7)
}

func TestParsePayload_CommentWithoutPullRequest(t *testing.T) {
	payload := decodePayload(t, `{
		"action": "deleted",
		"comment": {"body": "oops", "user": {"login": "someone"}}
	}`)

	details, err := usecase.ParsePayload(payload)
	gt.NoError(t, err)
	gt.NotNil(t, details)
	gt.Value(t, details.DiffURL == nil).Equal(true)
	gt.Value(t, *details.CommentAuthor).Equal("someone")
}

func TestParsePayload_Ignored(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{
			name:    "closed action",
			payload: `{"action": "closed", "pull_request": {"diff_url": "https://github.com/o/r/pull/1.diff"}}`,
		},
		{
			name:    "submitted action",
			payload: `{"action": "submitted", "pull_request": {"diff_url": "https://github.com/o/r/pull/1.diff"}}`,
		},
		{
			name:    "missing action",
			payload: `{"pull_request": {"diff_url": "https://github.com/o/r/pull/1.diff"}}`,
		},
		{
			name:    "neither pull_request nor comment",
			payload: `{"action": "opened", "repository": {"full_name": "o/r"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := usecase.ParsePayload(decodePayload(t, tt.payload))
			gt.NoError(t, err)
			gt.Value(t, details == nil).Equal(true)
		})
	}

	t.Run("nil payload", func(t *testing.T) {
		details, err := usecase.ParsePayload(nil)
		gt.NoError(t, err)
		gt.Value(t, details == nil).Equal(true)
	})
}

func TestParsePayload_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		message string
	}{
		{
			name:    "opened without diff_url",
			payload: `{"action": "opened", "pull_request": {"number": 1}}`,
			message: "missing diff_url",
		},
		{
			name:    "synchronize with empty diff_url",
			payload: `{"action": "synchronize", "pull_request": {"diff_url": ""}}`,
			message: "missing diff_url",
		},
		{
			name:    "edited comment without pull request",
			payload: `{"action": "edited", "comment": {"body": "x"}}`,
			message: "missing diff_url",
		},
		{
			name:    "untrusted host",
			payload: `{"action": "opened", "pull_request": {"diff_url": "http://evil.example/x"}}`,
			message: "invalid diff_url",
		},
		{
			name:    "plain http github",
			payload: `{"action": "opened", "pull_request": {"diff_url": "http://github.com/o/r/pull/1.diff"}}`,
			message: "invalid diff_url",
		},
		{
			name:    "lookalike host",
			payload: `{"action": "opened", "pull_request": {"diff_url": "https://github.com.evil.example/o/r/pull/1.diff"}}`,
			message: "invalid diff_url",
		},
		{
			name:    "created with empty diff_url",
			payload: `{"action": "created", "comment": {"body": "x"}, "pull_request": {"diff_url": ""}}`,
			message: "invalid diff_url",
		},
		{
			name:    "created with untrusted diff_url",
			payload: `{"action": "created", "comment": {"body": "x"}, "pull_request": {"diff_url": "https://gitlab.com/x.diff"}}`,
			message: "invalid diff_url",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			details, err := usecase.ParsePayload(decodePayload(t, tt.payload))
			gt.Error(t, err)
			gt.Value(t, details == nil).Equal(true)
			gt.True(t, goerr.HasTag(err, types.ErrTagValidation))
			gt.String(t, err.Error()).Contains(tt.message)
		})
	}
}
