// Package common contains shared constants and sentinel errors used across
// TripKeeper components.
package common

// DefaultBaseURL is the backend address used when no other value is configured.
// It can be replaced at build time:
//
//	go build -ldflags "-X github.com/dmitrijs2005/tripkeeper/internal/common.DefaultBaseURL=https://api.example"
var DefaultBaseURL = "http://localhost:8080"

const (
	// TripsEndpoint is the collection path for trips.
	TripsEndpoint = "/api/trips"
	// PhotosEndpoint is the collection path for photos.
	PhotosEndpoint = "/api/photos"

	// ContentTypeJSON is sent with every JSON request body.
	ContentTypeJSON = "application/json"

	// DefaultPageSize is the number of photos requested per feed page.
	DefaultPageSize = 12

	// DefaultScrollThreshold is the distance from the content bottom edge
	// at which the photo feed requests the next page.
	DefaultScrollThreshold = 300

	// DefaultCountry prefills new trip drafts.
	DefaultCountry = "USA"
)
