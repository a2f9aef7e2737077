package services

import "errors"

// Error taxonomy surfaced by the approval services. Controllers map these to
// HTTP statuses: NotFound 404, Forbidden 403, Conflict 409, Validation 400.
var (
	ErrNotFound   = errors.New("record not found")
	ErrForbidden  = errors.New("actor is not the required approver")
	ErrConflict   = errors.New("submission is no longer pending")
	ErrValidation = errors.New("invalid request")
)
