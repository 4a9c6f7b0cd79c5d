// Package errors provides custom error types for the processor service.
package errors

import (
	"fmt"
)

type (
	ServiceFoundNilArgument struct {
		Msg string
	}
	InsufficientFundsError struct {
		Balance string
		Price   string
	}
	ConcurrentModificationError struct {
		Attempts int
	}
	UpstreamUnavailableError struct {
		Err error
	}
	MoneyDecodingError struct {
		Err error
	}
)

func (e *ServiceFoundNilArgument) Error() string {
	return e.Msg
}

func (e *InsufficientFundsError) Error() string {
	return fmt.Sprintf("balance %s is insufficient for price %s", e.Balance, e.Price)
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("purchase was not applied after %v attempts due to concurrent balance modifications", e.Attempts)
}

func (e *UpstreamUnavailableError) Error() string {
	return fmt.Sprintf("%s: upstream catalog is unavailable", e.Err.Error())
}

func (e *MoneyDecodingError) Error() string {
	return fmt.Sprintf("%s: could not decode a persisted money value", e.Err.Error())
}
