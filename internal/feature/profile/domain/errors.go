// Package domain holds the profile feature's domain errors.
package domain

import "errors"

var (
	// ErrProfileNotFound is returned when the user has no profile.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrExperienceNotFound is returned when an experience id is not in the profile.
	ErrExperienceNotFound = errors.New("experience not found")

	// ErrProfileExists is returned when a new profile is inserted for a user
	// that already has one.
	ErrProfileExists = errors.New("profile already exists")
)
