package services

import "errors"

// Domain errors surfaced to the HTTP layer. Handlers translate each into a
// flash message; none of them ever reaches the client as a raw error.
var (
	ErrUsernameTaken      = errors.New("username taken")
	ErrPasswordMismatch   = errors.New("password confirmation mismatch")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWrongPassword      = errors.New("wrong current password")
)
