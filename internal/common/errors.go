// Package common defines shared sentinel errors used across Draftpad
// components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks a record rejected by the schema validator.
	// During migration such records are dropped; on direct user writes the
	// error is surfaced.
	ErrValidation = errors.New("validation error")

	// ErrStorageUnavailable means the local store cannot be opened or
	// written. Fatal to the local-first guarantee, must reach the user.
	ErrStorageUnavailable = errors.New("local storage unavailable")

	// ErrRemoteUnavailable covers network failures, timeouts and non-2xx
	// responses from the remote service. Recoverable: the local copy stays
	// authoritative and usable.
	ErrRemoteUnavailable = errors.New("remote unavailable")

	// ErrLimitReached means the plan's document-count policy refused a
	// creation.
	ErrLimitReached = errors.New("document limit reached")
)
