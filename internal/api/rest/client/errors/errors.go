// Package errors provides custom error types for the upstream catalog client.
package errors

import (
	"fmt"
)

type (
	FetchError struct {
		Err error
	}
	RateLimitError struct {
		WaitSeconds int
	}
)

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: could not fetch items from upstream", e.Err.Error())
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("upstream rate limit could not be resolved within %v seconds", e.WaitSeconds)
}
