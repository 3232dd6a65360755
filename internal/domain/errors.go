package domain

import "errors"

var (
	ErrNotFound  = errors.New("not found")
	ErrBadCursor = errors.New("invalid cursor")

	// ErrSourceUnavailable marks a supplier that returned no usable data this run.
	// Reconciliation continues without it.
	ErrSourceUnavailable = errors.New("source unavailable")
)
