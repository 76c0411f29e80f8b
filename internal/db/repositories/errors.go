// Package repositories defines error types that are reused across multiple
// repositories. These sentinel values let higher layers such as services
// and handlers distinguish between failure scenarios without inspecting
// driver-specific errors.
package repositories

import "errors"

// ErrNotFound is returned when a referenced entity does not exist (or, for
// users, exists only as a soft-deleted row). Handlers translate this into
// an HTTP 404 response.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert would violate a uniqueness
// constraint, such as a duplicate license number, plate number, or
// (user, role) pair. Handlers translate this into an HTTP 409 response.
var ErrConflict = errors.New("conflict")

// ErrNoApplicableFee is returned when no fee row for a (category, level)
// pair is effective at the requested date. The resolver never substitutes
// a default amount; a configuration gap must surface loudly.
var ErrNoApplicableFee = errors.New("no applicable fee")

// ErrAmbiguousFee is returned when two fee rows for the same
// (category, level) share an effective date. Picking either arbitrarily
// would hide a data-entry error, so the lookup fails instead.
var ErrAmbiguousFee = errors.New("ambiguous fee configuration")

// ErrValidation is returned for malformed input rejected before it
// reaches the store.
var ErrValidation = errors.New("validation failed")
