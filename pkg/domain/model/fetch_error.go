package model

import "fmt"

// FetchError is returned when GitHub answers a diff request with a non-200 status
type FetchError struct {
	StatusCode int
	Reason     string
	URL        string
	Body       string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch diff: %d - %s", e.StatusCode, e.Reason)
}
