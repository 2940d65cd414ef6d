// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Backend errors.
	ErrBackendUnavailable = errors.New("classifier backend unavailable")
	ErrResponseInvalid    = errors.New("classifier response invalid")

	// Session log errors.
	ErrLogCorrupt = errors.New("session log corrupt")
	ErrNoSessions = errors.New("no completed sessions to undo")

	// Run errors. The only two conditions fatal to an organize run.
	ErrSourceNotFound = errors.New("source directory does not exist")
	ErrNotDirectory   = errors.New("source path is not a directory")
)

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
