package client

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
)

var (
	ErrUnavailable = errors.New("server unavailable")
	ErrNotFound    = common.ErrorNotFound
	ErrNotImage    = common.ErrNotImage
)

// APIError is returned for any non-2xx response.
type APIError struct {
	Status     int
	StatusText string

	upload bool
}

func (e *APIError) Error() string {
	if e.upload {
		return fmt.Sprintf("Photo upload failed: %d %s", e.Status, e.StatusText)
	}
	return fmt.Sprintf("API Error: %d %s", e.Status, e.StatusText)
}

// Is makes a 404 match ErrNotFound.
func (e *APIError) Is(target error) bool {
	return target == ErrNotFound && e.Status == 404
}

// NetworkError is returned when a request produced no response.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

func (e *NetworkError) Is(target error) bool {
	return target == ErrUnavailable
}
