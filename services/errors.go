package services

import "errors"

// Sentinel errors returned by the service layer. Handlers translate these to
// HTTP responses at the request boundary.
var (
	// ErrNotFound covers both missing rows and rows owned by another
	// consultancy; the two are deliberately indistinguishable to callers.
	ErrNotFound = errors.New("record not found")

	// ErrConflict signals a duplicate unique field (username, email).
	ErrConflict = errors.New("duplicate record")

	// ErrNotAConsultancy signals that the account has no consultancy record.
	ErrNotAConsultancy = errors.New("user is not a consultancy")

	// ErrInvalidCredentials signals a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidAccountType signals a login from a role that may not log in.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrCourseAlreadyLinked signals linking a course the caller already owns.
	ErrCourseAlreadyLinked = errors.New("course already linked")
)
