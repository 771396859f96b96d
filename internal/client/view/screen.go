// Package view implements the navigation state machine of the client:
// which screen is active and which trip, if any, it is bound to.
package view

import "github.com/dmitrijs2005/tripkeeper/internal/client/models"

// Screen is one of Gallery, Detail, Create or Edit. Each screen carries
// exactly the entities it needs, so an Edit without a trip cannot exist.
type Screen interface {
	Name() string
	clone() Screen
}

// Gallery lists all trips. It binds nothing.
type Gallery struct{}

// Detail shows one trip with its photos.
type Detail struct {
	Trip models.Trip
}

// Create stages a new trip.
type Create struct {
	Form models.TripFormData
}

// Edit stages changes to an existing trip.
type Edit struct {
	Trip models.Trip
	Form models.TripFormData
}

func (Gallery) Name() string { return "gallery" }
func (Detail) Name() string  { return "detail" }
func (Create) Name() string  { return "create" }
func (Edit) Name() string    { return "edit" }

func (s Gallery) clone() Screen { return s }
func (s Detail) clone() Screen  { return Detail{Trip: s.Trip.Clone()} }
func (s Create) clone() Screen  { return s }
func (s Edit) clone() Screen    { return Edit{Trip: s.Trip.Clone(), Form: s.Form} }
