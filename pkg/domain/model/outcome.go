package model

import "net/http"

// Outcome is one of CommentProcessed, DiffProcessed, Rejected or Failed
type Outcome interface {
	outcome()
}

// CommentProcessed is returned for comment events; no diff is fetched for them
type CommentProcessed struct {
	Message       string `json:"message"`
	Action        Action `json:"action"`
	CommentAuthor string `json:"comment_author"`
	CommentBody   string `json:"comment_body"`
}

// DiffProcessed is returned when a diff was fetched and analyzed
type DiffProcessed struct {
	Message       string              `json:"message"`
	PRDetails     *PullRequestDetails `json:"pr_details"`
	DiffContent   string              `json:"diff_content"`
	ReviewResults *AnalysisResult     `json:"review_results"`
}

// Rejected is returned for events the pipeline does not act on
type Rejected struct {
	Reason string `json:"error"`
}

// Failed is returned when processing an in-scope event went wrong
type Failed struct {
	ErrorMessage string              `json:"error"`
	PRDetails    *PullRequestDetails `json:"pr_details,omitempty"`
}

func (CommentProcessed) outcome() {}
func (DiffProcessed) outcome()    {}
func (Rejected) outcome()         {}
func (Failed) outcome()           {}

// Result pairs a processing outcome with the HTTP status code reported to the sender
type Result struct {
	Outcome    Outcome
	StatusCode int
}

// NewCommentProcessed builds a 200 result for a comment event
func NewCommentProcessed(action Action, author, body string) *Result {
	return &Result{
		Outcome: &CommentProcessed{
			Message:       "Comment processed",
			Action:        action,
			CommentAuthor: author,
			CommentBody:   body,
		},
		StatusCode: http.StatusOK,
	}
}

// NewDiffProcessed builds a 200 result for an analyzed diff
func NewDiffProcessed(details *PullRequestDetails, diff string, review *AnalysisResult) *Result {
	return &Result{
		Outcome: &DiffProcessed{
			Message:       "Pull request diff analyzed",
			PRDetails:     details,
			DiffContent:   diff,
			ReviewResults: review,
		},
		StatusCode: http.StatusOK,
	}
}

// NewRejected builds a 400 result
func NewRejected(reason string) *Result {
	return &Result{
		Outcome:    &Rejected{Reason: reason},
		StatusCode: http.StatusBadRequest,
	}
}

// NewFailed builds a 500 result. details may be nil.
func NewFailed(message string, details *PullRequestDetails) *Result {
	return &Result{
		Outcome:    &Failed{ErrorMessage: message, PRDetails: details},
		StatusCode: http.StatusInternalServerError,
	}
}
