package view

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidTransition = common.ErrInvalidTransition
	ErrNotFound          = common.ErrorNotFound

	// ErrScreenChanged is returned when the screen that issued a request
	// was left before the request finished.
	ErrScreenChanged = errors.New("screen changed while the request was running")

	ErrUnknownField = errors.New("unknown form field")
)

// maxParallelUploads bounds concurrent photo uploads from one command.
const maxParallelUploads = 4

// TripStore is the part of the trip cache the controller drives.
type TripStore interface {
	Get(id string) (models.Trip, bool)
	FetchAll(ctx context.Context) error
	Create(ctx context.Context, form models.TripFormData) (*models.Trip, error)
	Update(ctx context.Context, id string, patch models.TripPatch) (*models.Trip, error)
	Delete(ctx context.Context, id string) error
	UploadPhoto(ctx context.Context, tripID string, file models.PhotoFile) (*models.Photo, error)
	UpdatePhotoDescription(ctx context.Context, tripID, photoID, description string) (*models.Photo, error)
	DeletePhoto(ctx context.Context, tripID, photoID string) error
}

// Controller owns the active screen. Each screen gets its own context,
// cancelled when the screen is left, so requests of an abandoned screen
// are aborted and never move navigation.
type Controller struct {
	store  TripStore
	logger logging.Logger
	root   context.Context

	mu     sync.Mutex
	screen Screen
	ctx    context.Context
	cancel context.CancelFunc
	seq    uint64
}

// NewController starts on the gallery. Screen contexts derive from root.
func NewController(root context.Context, store TripStore, logger logging.Logger) *Controller {
	if logger == nil {
		logger = logging.Nop()
	}
	c := &Controller{
		store:  store,
		logger: logger.With("component", "view"),
		root:   root,
	}
	c.enterLocked(Gallery{})
	return c
}

// Screen returns a copy of the active screen.
func (c *Controller) Screen() Screen {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.screen.clone()
}

// Close cancels the active screen's context.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cancel()
}

func (c *Controller) enterLocked(s Screen) {
	if c.cancel != nil {
		c.cancel()
	}
	from := "none"
	if c.screen != nil {
		from = c.screen.Name()
	}
	c.screen = s
	c.ctx, c.cancel = context.WithCancel(c.root)
	c.seq++
	c.logger.Debug(c.root, "screen changed", "from", from, "to", s.Name())
}

// begin captures the active screen for an operation and returns a context
// that is cancelled when either ctx or the screen is done.
func (c *Controller) begin(ctx context.Context) (Screen, uint64, context.Context, context.CancelFunc) {
	c.mu.Lock()
	s, seq, screenCtx := c.screen.clone(), c.seq, c.ctx
	c.mu.Unlock()

	opCtx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(screenCtx, cancel)
	return s, seq, opCtx, func() {
		stop()
		cancel()
	}
}

// finish applies next if the screen identified by seq is still active.
func (c *Controller) finish(seq uint64, next func(cur Screen) Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		return ErrScreenChanged
	}
	c.enterLocked(next(c.screen))
	return nil
}

// update replaces the active screen in place without cancelling its context.
func (c *Controller) update(seq uint64, fn func(cur Screen) Screen) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.seq != seq {
		return ErrScreenChanged
	}
	c.screen = fn(c.screen)
	return nil
}

func (c *Controller) transition(allowed func(Screen) bool, target func(Screen) (Screen, error)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !allowed(c.screen) {
		return fmt.Errorf("%w from %s", ErrInvalidTransition, c.screen.Name())
	}
	next, err := target(c.screen)
	if err != nil {
		return err
	}
	c.enterLocked(next)
	return nil
}

func isGallery(s Screen) bool {
	_, ok := s.(Gallery)
	return ok
}

func isDetail(s Screen) bool {
	_, ok := s.(Detail)
	return ok
}

func isForm(s Screen) bool {
	switch s.(type) {
	case Create, Edit:
		return true
	}
	return false
}

// NewTrip opens a blank create form.
func (c *Controller) NewTrip() error {
	return c.transition(isGallery, func(Screen) (Screen, error) {
		return Create{Form: models.NewTripForm()}, nil
	})
}

// ShowTrip binds the cached trip and opens its detail screen.
func (c *Controller) ShowTrip(id string) error {
	return c.transition(isGallery, func(Screen) (Screen, error) {
		t, ok := c.store.Get(id)
		if !ok {
			return nil, fmt.Errorf("trip %s: %w", id, ErrNotFound)
		}
		return Detail{Trip: t}, nil
	})
}

// EditTrip binds the cached trip and opens a prefilled edit form.
func (c *Controller) EditTrip(id string) error {
	return c.transition(isGallery, func(Screen) (Screen, error) {
		t, ok := c.store.Get(id)
		if !ok {
			return nil, fmt.Errorf("trip %s: %w", id, ErrNotFound)
		}
		return Edit{Trip: t, Form: models.FormFromTrip(t)}, nil
	})
}

// Back leaves the detail screen.
func (c *Controller) Back() error {
	return c.transition(isDetail, func(Screen) (Screen, error) { return Gallery{}, nil })
}

// Cancel discards the active form.
func (c *Controller) Cancel() error {
	return c.transition(isForm, func(Screen) (Screen, error) { return Gallery{}, nil })
}

// SetField edits the active form.
func (c *Controller) SetField(field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch s := c.screen.(type) {
	case Create:
		if !s.Form.Set(field, value) {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		c.screen = s
	case Edit:
		if !s.Form.Set(field, value) {
			return fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		c.screen = s
	default:
		return fmt.Errorf("%w: no form on %s", ErrInvalidTransition, c.screen.Name())
	}
	return nil
}

// SubmitCreate validates the draft, creates the trip and returns to the gallery.
func (c *Controller) SubmitCreate(ctx context.Context) (*models.Trip, error) {
	s, seq, opCtx, done := c.begin(ctx)
	defer done()

	cs, ok := s.(Create)
	if !ok {
		return nil, fmt.Errorf("%w: submit create on %s", ErrInvalidTransition, s.Name())
	}
	if err := cs.Form.Validate(); err != nil {
		return nil, err
	}

	trip, err := c.store.Create(opCtx, cs.Form)
	if err != nil {
		return nil, err
	}
	if err := c.finish(seq, func(Screen) Screen { return Gallery{} }); err != nil {
		return trip, err
	}
	return trip, nil
}

// SubmitEdit validates the draft, saves it and returns to the gallery.
func (c *Controller) SubmitEdit(ctx context.Context) (*models.Trip, error) {
	s, seq, opCtx, done := c.begin(ctx)
	defer done()

	es, ok := s.(Edit)
	if !ok {
		return nil, fmt.Errorf("%w: submit edit on %s", ErrInvalidTransition, s.Name())
	}
	if err := es.Form.Validate(); err != nil {
		return nil, err
	}

	trip, err := c.store.Update(opCtx, es.Trip.ID, models.PatchFromForm(es.Form))
	if err != nil {
		return nil, err
	}
	if err := c.finish(seq, func(Screen) Screen { return Gallery{} }); err != nil {
		return trip, err
	}
	return trip, nil
}

// DeleteTrip deletes the trip being edited and returns to the gallery.
func (c *Controller) DeleteTrip(ctx context.Context) error {
	s, seq, opCtx, done := c.begin(ctx)
	defer done()

	es, ok := s.(Edit)
	if !ok {
		return fmt.Errorf("%w: delete on %s", ErrInvalidTransition, s.Name())
	}
	if err := c.store.Delete(opCtx, es.Trip.ID); err != nil {
		return err
	}
	return c.finish(seq, func(Screen) Screen { return Gallery{} })
}

// Refresh reloads all trips and rebinds the active screen's trip.
func (c *Controller) Refresh(ctx context.Context) error {
	_, seq, opCtx, done := c.begin(ctx)
	defer done()

	if err := c.store.FetchAll(opCtx); err != nil {
		return err
	}
	return c.refreshBound(seq)
}

func (c *Controller) refreshBound(seq uint64) error {
	return c.update(seq, func(cur Screen) Screen {
		switch s := cur.(type) {
		case Detail:
			if t, ok := c.store.Get(s.Trip.ID); ok {
				s.Trip = t
			}
			return s
		case Edit:
			if t, ok := c.store.Get(s.Trip.ID); ok {
				s.Trip = t
			}
			return s
		}
		return cur
	})
}

// UploadResult reports what happened to each file given to UploadPhotos.
type UploadResult struct {
	Uploaded []Upload
	Skipped  []string
	Failed   map[string]error
}

// Upload pairs a local file with the photo the backend created from it.
type Upload struct {
	File  models.PhotoFile
	Photo models.Photo
}

// UploadPhotos uploads the image files to the detail screen's trip. Files
// that are not images are skipped without a request. The returned error
// joins every upload failure.
func (c *Controller) UploadPhotos(ctx context.Context, files []models.PhotoFile) (UploadResult, error) {
	s, seq, opCtx, done := c.begin(ctx)
	defer done()

	res := UploadResult{Failed: map[string]error{}}

	ds, ok := s.(Detail)
	if !ok {
		return res, fmt.Errorf("%w: upload on %s", ErrInvalidTransition, s.Name())
	}

	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	g.SetLimit(maxParallelUploads)

	for _, f := range files {
		if !f.IsImage() {
			res.Skipped = append(res.Skipped, f.Name)
			continue
		}
		g.Go(func() error {
			p, err := c.store.UploadPhoto(opCtx, ds.Trip.ID, f)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				res.Failed[f.Name] = err
				errs = append(errs, fmt.Errorf("%s: %w", f.Name, err))
				return nil
			}
			res.Uploaded = append(res.Uploaded, Upload{File: f, Photo: *p})
			return nil
		})
	}
	_ = g.Wait()

	if len(res.Uploaded) > 0 {
		if err := c.refreshBound(seq); err != nil {
			errs = append(errs, err)
		}
	}
	return res, errors.Join(errs...)
}

// UpdatePhotoDescription captions a photo of the detail screen's trip.
func (c *Controller) UpdatePhotoDescription(ctx context.Context, photoID, description string) error {
	s, seq, opCtx, done := c.begin(ctx)
	defer done()

	ds, ok := s.(Detail)
	if !ok {
		return fmt.Errorf("%w: caption on %s", ErrInvalidTransition, s.Name())
	}
	if _, err := c.store.UpdatePhotoDescription(opCtx, ds.Trip.ID, photoID, description); err != nil {
		return err
	}
	return c.refreshBound(seq)
}

// DeletePhoto removes a photo from the detail screen's trip.
func (c *Controller) DeletePhoto(ctx context.Context, photoID string) error {
	s, seq, opCtx, done := c.begin(ctx)
	defer done()

	ds, ok := s.(Detail)
	if !ok {
		return fmt.Errorf("%w: delete photo on %s", ErrInvalidTransition, s.Name())
	}
	if err := c.store.DeletePhoto(opCtx, ds.Trip.ID, photoID); err != nil {
		return err
	}
	return c.refreshBound(seq)
}
