package types

// Version is the application version reported by the CLI and the health endpoint
var Version = "0.1.0"

// GitHubToken is a credential used for GitHub API requests. It has its own type so that
// the log redaction filter can recognize and mask it.
type GitHubToken string

// String returns the raw token value
func (t GitHubToken) String() string {
	return string(t)
}

// IsEmpty reports whether no token was configured
func (t GitHubToken) IsEmpty() bool {
	return t == ""
}
