package services

import (
	"context"

	"github.com/dmitrijs2005/tripkeeper/internal/client/client"
	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/stretchr/testify/mock"
)

type mockClient struct {
	mock.Mock
}

var _ client.Client = (*mockClient)(nil)

func (m *mockClient) ListTrips(ctx context.Context) ([]models.Trip, error) {
	args := m.Called(ctx)
	trips, _ := args.Get(0).([]models.Trip)
	return trips, args.Error(1)
}

func (m *mockClient) GetTrip(ctx context.Context, id string) (*models.Trip, error) {
	args := m.Called(ctx, id)
	trip, _ := args.Get(0).(*models.Trip)
	return trip, args.Error(1)
}

func (m *mockClient) CreateTrip(ctx context.Context, form models.TripFormData) (*models.Trip, error) {
	args := m.Called(ctx, form)
	trip, _ := args.Get(0).(*models.Trip)
	return trip, args.Error(1)
}

func (m *mockClient) UpdateTrip(ctx context.Context, id string, patch models.TripPatch) (*models.Trip, error) {
	args := m.Called(ctx, id, patch)
	trip, _ := args.Get(0).(*models.Trip)
	return trip, args.Error(1)
}

func (m *mockClient) DeleteTrip(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockClient) UploadPhoto(ctx context.Context, tripID string, file models.PhotoFile) (*models.Photo, error) {
	args := m.Called(ctx, tripID, file)
	p, _ := args.Get(0).(*models.Photo)
	return p, args.Error(1)
}

func (m *mockClient) UpdatePhotoDescription(ctx context.Context, photoID string, description string) (*models.Photo, error) {
	args := m.Called(ctx, photoID, description)
	p, _ := args.Get(0).(*models.Photo)
	return p, args.Error(1)
}

func (m *mockClient) DeletePhoto(ctx context.Context, photoID string) error {
	return m.Called(ctx, photoID).Error(0)
}

func (m *mockClient) ListPhotos(ctx context.Context, page, size int) (*models.PhotoPage, error) {
	args := m.Called(ctx, page, size)
	p, _ := args.Get(0).(*models.PhotoPage)
	return p, args.Error(1)
}

func strptr(s string) *string { return &s }
