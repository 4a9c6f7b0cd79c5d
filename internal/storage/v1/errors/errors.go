// Package errors provides custom error types for the storage layer.
package errors

import (
	"fmt"
)

type (
	StatementPSQLError struct {
		Err error
	}
	ExecutionPSQLError struct {
		Err error
	}
	ScanningPSQLError struct {
		Err error
	}
	TransactionPSQLError struct {
		Err error
	}
	NotFoundError struct {
		Err error
	}
	AlreadyExistsError struct {
		Err error
		ID  string
	}
	VersionConflictError struct {
		ID      string
		Version int64
	}
	ContextTimeoutExceededError struct {
		Err error
	}
)

func (e *StatementPSQLError) Error() string {
	return fmt.Sprintf("%s: could not compile", e.Err.Error())
}

func (e *ExecutionPSQLError) Error() string {
	return fmt.Sprintf("%s: could not execute", e.Err.Error())
}

func (e *ScanningPSQLError) Error() string {
	return fmt.Sprintf("%s: could not scan", e.Err.Error())
}

func (e *TransactionPSQLError) Error() string {
	return fmt.Sprintf("%s: could not finalize transaction", e.Err.Error())
}

func (e *NotFoundError) Error() string {
	return "requested entry was not found"
}

func (e *AlreadyExistsError) Error() string {
	return fmt.Sprintf("%s: already exists", e.ID)
}

func (e *VersionConflictError) Error() string {
	return fmt.Sprintf("%s: version %v is stale", e.ID, e.Version)
}

func (e *ContextTimeoutExceededError) Error() string {
	return fmt.Sprintf("%s: context timeout exceeded", e.Err.Error())
}
