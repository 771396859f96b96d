package client

import (
	"context"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
)

// Client maps each domain operation of the trips backend to exactly one
// HTTP request.
type Client interface {
	ListTrips(ctx context.Context) ([]models.Trip, error)
	GetTrip(ctx context.Context, id string) (*models.Trip, error)
	CreateTrip(ctx context.Context, form models.TripFormData) (*models.Trip, error)
	UpdateTrip(ctx context.Context, id string, patch models.TripPatch) (*models.Trip, error)
	DeleteTrip(ctx context.Context, id string) error

	UploadPhoto(ctx context.Context, tripID string, file models.PhotoFile) (*models.Photo, error)
	UpdatePhotoDescription(ctx context.Context, photoID string, description string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, photoID string) error
	ListPhotos(ctx context.Context, page, size int) (*models.PhotoPage, error)
}
