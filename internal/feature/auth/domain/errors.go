// Package domain defines domain-level errors for the auth feature.
package domain

import "errors"

// Domain errors for authentication operations.
var (
	// ErrUserAlreadyExists is returned on registration with an email that is already taken.
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrUserNotFound indicates that no user matches the given id or email.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned by login for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooLong is returned when the password exceeds bcrypt's 72-byte input limit.
	ErrPasswordTooLong = errors.New("password too long")
)
