package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors.
	ErrorInternal           = errors.New("internal error")
	ErrorUnauthorized       = errors.New("unauthorized")
	ErrorInvalidCredentials = errors.New("invalid username or password")
	ErrorValidation         = errors.New("validation error")

	// Nomination-specific errors.
	ErrMovieNotFound = errors.New("movie not found")

	// Session token errors.
	ErrInvalidToken = errors.New("invalid token")
)
