package model

// Action is the state transition named by a webhook payload
type Action string

const (
	ActionOpened      Action = "opened"
	ActionSynchronize Action = "synchronize"
	ActionCreated     Action = "created"
	ActionEdited      Action = "edited"
	ActionDeleted     Action = "deleted"
)

// IsAllowed reports whether the pipeline handles this action at all
func (a Action) IsAllowed() bool {
	switch a {
	case ActionOpened, ActionSynchronize, ActionCreated, ActionEdited, ActionDeleted:
		return true
	default:
		return false
	}
}

// ChangesContent reports whether the action implies new pull request content, which
// requires a diff URL
func (a Action) ChangesContent() bool {
	return a == ActionOpened || a == ActionSynchronize || a == ActionEdited
}

// IsCommentAction reports whether the action can describe a comment lifecycle event
func (a Action) IsCommentAction() bool {
	return a == ActionCreated || a == ActionEdited || a == ActionDeleted
}

// PullRequestDetails is the normalized view of a pull request webhook payload
type PullRequestDetails struct {
	Action            Action  `json:"action"`
	Repository        string  `json:"repository"`
	PullRequestNumber *int    `json:"pull_request_number"`
	PullRequestID     *int64  `json:"pr_id"`
	DiffURL           *string `json:"diff_url"`
	Title             string  `json:"title"`
	Author            string  `json:"author"`
	Branch            string  `json:"branch"`

	// Only set when the payload carries a comment sub-record
	Comment       *string `json:"comment,omitempty"`
	CommentAuthor *string `json:"comment_author,omitempty"`
}

// HasComment reports whether comment fields were extracted
func (d *PullRequestDetails) HasComment() bool {
	return d != nil && d.Comment != nil
}

// GetDiffURL returns the DiffURL field if it's non-nil, zero value otherwise
func (d *PullRequestDetails) GetDiffURL() string {
	if d == nil || d.DiffURL == nil {
		return ""
	}
	return *d.DiffURL
}
