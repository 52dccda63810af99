// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "errors"

// Domain error taxonomy. Repositories surface store errors unchanged; the
// service layer adds domain context (ownership checks producing ErrForbidden)
// and otherwise passes errors upward. No retries anywhere in the core.
var (
	// ErrNotFound is returned when a lookup by id or author yields nothing.
	ErrNotFound = errors.New("record not found")

	// ErrForbidden is returned when a delete is attempted by a non-owner.
	ErrForbidden = errors.New("requesting user does not own this record")

	// ErrInvalidOption is returned when a vote target is unrecognized.
	ErrInvalidOption = errors.New("invalid vote option")

	// ErrPreconditionFailed is returned when a conditional delete guard is
	// tripped by a concurrent replace.
	ErrPreconditionFailed = errors.New("store precondition failed")
)
