// Package common defines shared constants and sentinel errors used across
// client layers of TripKeeper. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Lookup errors.
	ErrorNotFound = errors.New("not found")

	// Upload errors.
	ErrNotImage = errors.New("file is not an image")

	// Navigation errors.
	ErrInvalidTransition = errors.New("invalid view transition")
)
