// Package errors provides custom error types for the cache layer.
package errors

import (
	"fmt"
)

type (
	NotFoundError struct {
		Key string
	}
	ExecutionCacheError struct {
		Err error
	}
	EncodingCacheError struct {
		Err error
	}
)

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: cache entry was not found", e.Key)
}

func (e *ExecutionCacheError) Error() string {
	return fmt.Sprintf("%s: could not execute cache operation", e.Err.Error())
}

func (e *EncodingCacheError) Error() string {
	return fmt.Sprintf("%s: could not encode or decode cache entry", e.Err.Error())
}
