package dapp

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is wrapped by every ValidationError
	ErrInvalidInput = errors.New("invalid input value")
	// ErrNetworkMismatch is returned when the wallet is on the wrong chain
	ErrNetworkMismatch = errors.New("wrong network")
	// ErrNotConnected is returned when no wallet session exists
	ErrNotConnected = errors.New("wallet not connected")
	// ErrNoAccount is returned when the session cannot sign
	ErrNoAccount = errors.New("no signing account")
	// ErrTransactionPending is returned while a submission is in flight
	ErrTransactionPending = errors.New("transaction already pending")
	// ErrUserRejected is the outcome of a declined signing prompt
	ErrUserRejected = errors.New("user rejected the request")
)

// ValidationError reports candidate text that is not a uint256
type ValidationError struct {
	Input  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidInput, e.Input, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// RemoteReadError marks a failed getValue call
type RemoteReadError struct {
	Err error
}

func (e *RemoteReadError) Error() string { return "read unavailable: " + e.Err.Error() }

func (e *RemoteReadError) Unwrap() error { return e.Err }

var errEmptyResult = errors.New("empty result")
