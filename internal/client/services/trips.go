package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/tripkeeper/internal/client/client"
	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
)

// TripState is a point-in-time copy of the store for rendering.
type TripState struct {
	Trips   []models.Trip
	Loading bool
	Error   string
}

// TripStore caches the trips known to the backend. Every mutation happens
// only after the server confirmed it.
type TripStore struct {
	api    client.Client
	logger logging.Logger

	mu       sync.RWMutex
	trips    []models.Trip
	inflight int
	lastErr  string
}

func NewTripStore(api client.Client, logger logging.Logger) *TripStore {
	if logger == nil {
		logger = logging.Nop()
	}
	return &TripStore{
		api:    api,
		logger: logger.With("component", "trips"),
		trips:  []models.Trip{},
	}
}

// begin clears the shared error and, for tracked operations, raises the
// loading counter. The returned func undoes the counter.
func (s *TripStore) begin(tracked bool) func() {
	s.mu.Lock()
	s.lastErr = ""
	if tracked {
		s.inflight++
	}
	s.mu.Unlock()

	return func() {
		if !tracked {
			return
		}
		s.mu.Lock()
		s.inflight--
		s.mu.Unlock()
	}
}

func (s *TripStore) fail(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.Canceled) {
		s.logger.Debug(ctx, "operation abandoned", "op", op)
		return err
	}

	s.mu.Lock()
	s.lastErr = err.Error()
	s.mu.Unlock()

	s.logger.Error(ctx, "operation failed", "op", op, "error", err)
	return err
}

// mutate swaps in a new slice built by fn from a shallow copy of the current one.
// fn must not modify nested photo slices in place.
func (s *TripStore) mutate(fn func(trips []models.Trip) []models.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trips = fn(slices.Clone(s.trips))
}

func indexOf(trips []models.Trip, id string) int {
	return slices.IndexFunc(trips, func(t models.Trip) bool { return t.ID == id })
}

// FetchAll replaces the cache with the server's list.
func (s *TripStore) FetchAll(ctx context.Context) error {
	done := s.begin(true)
	defer done()

	trips, err := s.api.ListTrips(ctx)
	if err != nil {
		return s.fail(ctx, "fetch", err)
	}

	next := make([]models.Trip, 0, len(trips))
	for _, t := range trips {
		next = append(next, t.Clone())
	}

	s.mu.Lock()
	s.trips = next
	s.mu.Unlock()

	s.logger.Info(ctx, "trips loaded", "count", len(next))
	return nil
}

// Create submits form and appends the server's trip. An invalid form fails
// without contacting the server.
func (s *TripStore) Create(ctx context.Context, form models.TripFormData) (*models.Trip, error) {
	done := s.begin(true)
	defer done()

	if err := form.Validate(); err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	trip, err := s.api.CreateTrip(ctx, form)
	if err != nil {
		return nil, s.fail(ctx, "create", err)
	}

	s.mutate(func(trips []models.Trip) []models.Trip {
		return append(trips, trip.Clone())
	})

	s.logger.Info(ctx, "trip created", "id", trip.ID, "name", trip.Name)
	out := trip.Clone()
	return &out, nil
}

// Update replaces the cached trip with the server's answer.
func (s *TripStore) Update(ctx context.Context, id string, patch models.TripPatch) (*models.Trip, error) {
	done := s.begin(true)
	defer done()

	trip, err := s.api.UpdateTrip(ctx, id, patch)
	if err != nil {
		return nil, s.fail(ctx, "update", err)
	}

	s.mutate(func(trips []models.Trip) []models.Trip {
		if i := indexOf(trips, id); i >= 0 {
			trips[i] = trip.Clone()
		}
		return trips
	})

	s.logger.Info(ctx, "trip updated", "id", id)
	out := trip.Clone()
	return &out, nil
}

func (s *TripStore) Delete(ctx context.Context, id string) error {
	done := s.begin(true)
	defer done()

	if err := s.api.DeleteTrip(ctx, id); err != nil {
		return s.fail(ctx, "delete", err)
	}

	s.mutate(func(trips []models.Trip) []models.Trip {
		return slices.DeleteFunc(trips, func(t models.Trip) bool { return t.ID == id })
	})

	s.logger.Info(ctx, "trip deleted", "id", id)
	return nil
}

// UploadPhoto uploads file and appends the resulting photo to the trip.
// Non-image files fail with ErrNotImage without contacting the server.
func (s *TripStore) UploadPhoto(ctx context.Context, tripID string, file models.PhotoFile) (*models.Photo, error) {
	done := s.begin(true)
	defer done()

	if !file.IsImage() {
		return nil, s.fail(ctx, "upload", fmt.Errorf("%s: %w", file.Name, client.ErrNotImage))
	}

	photo, err := s.api.UploadPhoto(ctx, tripID, file)
	if err != nil {
		return nil, s.fail(ctx, "upload", err)
	}

	s.mutate(func(trips []models.Trip) []models.Trip {
		if i := indexOf(trips, tripID); i >= 0 {
			t := trips[i]
			t.Photos = append(slices.Clone(t.Photos), photo.Clone())
			trips[i] = t
		}
		return trips
	})

	s.logger.Info(ctx, "photo uploaded", "trip", tripID, "photo", photo.ID, "file", file.Name)
	out := photo.Clone()
	return &out, nil
}

// UpdatePhotoDescription replaces the photo inside its trip with the server's answer.
func (s *TripStore) UpdatePhotoDescription(ctx context.Context, tripID, photoID, description string) (*models.Photo, error) {
	done := s.begin(false)
	defer done()

	photo, err := s.api.UpdatePhotoDescription(ctx, photoID, description)
	if err != nil {
		return nil, s.fail(ctx, "describe photo", err)
	}

	s.mutate(func(trips []models.Trip) []models.Trip {
		i := indexOf(trips, tripID)
		if i < 0 {
			return trips
		}
		t := trips[i]
		if j := t.FindPhoto(photoID); j >= 0 {
			t.Photos = slices.Clone(t.Photos)
			t.Photos[j] = photo.Clone()
			trips[i] = t
		}
		return trips
	})

	s.logger.Info(ctx, "photo described", "trip", tripID, "photo", photoID)
	out := photo.Clone()
	return &out, nil
}

func (s *TripStore) DeletePhoto(ctx context.Context, tripID, photoID string) error {
	done := s.begin(false)
	defer done()

	if err := s.api.DeletePhoto(ctx, photoID); err != nil {
		return s.fail(ctx, "delete photo", err)
	}

	s.mutate(func(trips []models.Trip) []models.Trip {
		i := indexOf(trips, tripID)
		if i < 0 {
			return trips
		}
		t := trips[i]
		t.Photos = slices.DeleteFunc(slices.Clone(t.Photos), func(p models.Photo) bool { return p.ID == photoID })
		trips[i] = t
		return trips
	})

	s.logger.Info(ctx, "photo deleted", "trip", tripID, "photo", photoID)
	return nil
}

// Trips returns a deep copy of the cached list in server order.
func (s *TripStore) Trips() []models.Trip {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTrips(s.trips)
}

// Get returns a copy of the cached trip with the given id.
func (s *TripStore) Get(id string) (models.Trip, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := indexOf(s.trips, id); i >= 0 {
		return s.trips[i].Clone(), true
	}
	return models.Trip{}, false
}

func (s *TripStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inflight > 0
}

// Err returns the message of the most recent failure, or "".
func (s *TripStore) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

func (s *TripStore) Snapshot() TripState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return TripState{
		Trips:   cloneTrips(s.trips),
		Loading: s.inflight > 0,
		Error:   s.lastErr,
	}
}

func cloneTrips(trips []models.Trip) []models.Trip {
	out := make([]models.Trip, len(trips))
	for i, t := range trips {
		out[i] = t.Clone()
	}
	return out
}
