// Copyright 2025 Digression Authors
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for comparison with errors.Is
var (
	ErrEmptyTrace     = errors.New("trace input is empty")
	ErrParseFailed    = errors.New("failed to parse stack trace")
	ErrConfigError    = errors.New("configuration error")
	ErrStoreFailed    = errors.New("history store operation failed")
	ErrEntryNotFound  = errors.New("history entry not found")
	ErrDaemonFailed   = errors.New("daemon startup failed")
	ErrInvalidRequest = errors.New("invalid request")
)

// Wrap functions for consistent error wrapping

func WrapParseFailed(msg string, err error) error {
	if err == nil {
		return fmt.Errorf("%w: %s", ErrParseFailed, msg)
	}
	return fmt.Errorf("%w: %s: %w", ErrParseFailed, msg, err)
}

func WrapConfigError(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrConfigError, msg, err)
}

func WrapStoreFailed(msg string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrStoreFailed, msg, err)
}

func WrapEntryNotFound(id int64) error {
	return fmt.Errorf("%w: id %d", ErrEntryNotFound, id)
}

func WrapDaemonFailed(err error) error {
	return fmt.Errorf("%w: %w", ErrDaemonFailed, err)
}

func WrapInvalidRequest(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, msg)
}
