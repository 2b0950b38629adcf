package types

import "github.com/m-mizutani/goerr/v2"

var (
	// ErrTagValidation marks malformed or missing required webhook payload fields
	ErrTagValidation = goerr.NewTag("validation")

	// ErrTagFetch marks failures while retrieving a pull request diff
	ErrTagFetch = goerr.NewTag("fetch")
)
