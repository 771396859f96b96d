package services

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
)

// PhotoLister is the part of the API client the feed needs.
type PhotoLister interface {
	ListPhotos(ctx context.Context, page, size int) (*models.PhotoPage, error)
}

// Viewport describes the scroll position of the feed container.
type Viewport struct {
	ScrollTop    float64
	ClientHeight float64
	ScrollHeight float64
}

// NearBottom reports whether the visible bottom edge is within threshold of the end.
func (v Viewport) NearBottom(threshold float64) bool {
	return v.ScrollTop+v.ClientHeight >= v.ScrollHeight-threshold
}

// FeedState is a point-in-time copy of the feed for rendering.
type FeedState struct {
	Photos   []models.Photo
	Page     int
	PageSize int
	HasMore  bool
	Loading  bool
	Error    string
	Selected *models.Photo
}

// PhotoFeed accumulates pages of the global photo feed and tracks the
// photo shown fullscreen.
type PhotoFeed struct {
	api       PhotoLister
	logger    logging.Logger
	pageSize  int
	threshold float64

	mu       sync.Mutex
	photos   []models.Photo
	page     int
	hasMore  bool
	loading  bool
	lastErr  string
	selected string
	gen      uint64
}

// NewPhotoFeed returns an unmounted feed. Non-positive pageSize and threshold
// fall back to the defaults.
func NewPhotoFeed(api PhotoLister, pageSize int, threshold float64, logger logging.Logger) *PhotoFeed {
	if pageSize <= 0 {
		pageSize = common.DefaultPageSize
	}
	if threshold <= 0 {
		threshold = common.DefaultScrollThreshold
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &PhotoFeed{
		api:       api,
		logger:    logger.With("component", "feed"),
		pageSize:  pageSize,
		threshold: threshold,
		photos:    []models.Photo{},
		hasMore:   true,
	}
}

// Reset returns the feed to its initial state. A request still in flight
// for the previous mount is discarded when it completes.
func (f *PhotoFeed) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.gen++
	f.photos = []models.Photo{}
	f.page = 0
	f.hasMore = true
	f.loading = false
	f.lastErr = ""
	f.selected = ""
}

// Mount resets the feed and loads the first page.
func (f *PhotoFeed) Mount(ctx context.Context) error {
	f.Reset()
	_, err := f.LoadNext(ctx)
	return err
}

// LoadNext fetches the next page unless a load is already running or the
// server reported the last page. It reports whether a request was made.
// Any failure stops further loading until the next mount.
func (f *PhotoFeed) LoadNext(ctx context.Context) (bool, error) {
	f.mu.Lock()
	if f.loading || !f.hasMore {
		f.mu.Unlock()
		return false, nil
	}
	f.loading = true
	page, gen := f.page, f.gen
	f.mu.Unlock()

	res, err := f.api.ListPhotos(ctx, page, f.pageSize)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.gen {
		f.logger.Debug(ctx, "stale page discarded", "page", page)
		return true, err
	}
	f.loading = false

	if err != nil {
		if errors.Is(err, context.Canceled) {
			f.logger.Debug(ctx, "page load abandoned", "page", page)
			return true, err
		}
		f.lastErr = err.Error()
		f.hasMore = false
		f.logger.Error(ctx, "page load failed", "page", page, "error", err)
		return true, err
	}

	for _, p := range res.Content {
		f.photos = append(f.photos, p.Clone())
	}
	f.page = page + 1
	f.hasMore = !res.Last
	f.lastErr = ""

	f.logger.Debug(ctx, "page loaded", "page", page, "count", len(res.Content), "last", res.Last)
	return true, nil
}

// OnScroll loads the next page when v is near the bottom.
func (f *PhotoFeed) OnScroll(ctx context.Context, v Viewport) (bool, error) {
	if !v.NearBottom(f.threshold) {
		return false, nil
	}
	return f.LoadNext(ctx)
}

// Open shows the loaded photo with the given id fullscreen.
func (f *PhotoFeed) Open(photoID string) (models.Photo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexLocked(photoID)
	if i < 0 {
		return models.Photo{}, false
	}
	f.selected = photoID
	return f.photos[i].Clone(), true
}

func (f *PhotoFeed) Close() {
	f.mu.Lock()
	f.selected = ""
	f.mu.Unlock()
}

func (f *PhotoFeed) Selected() (models.Photo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexLocked(f.selected)
	if i < 0 {
		return models.Photo{}, false
	}
	return f.photos[i].Clone(), true
}

// Next moves the fullscreen selection forward, wrapping to the first photo.
func (f *PhotoFeed) Next() (models.Photo, bool) {
	return f.step(1)
}

// Prev moves the fullscreen selection back, wrapping to the last photo.
func (f *PhotoFeed) Prev() (models.Photo, bool) {
	return f.step(-1)
}

func (f *PhotoFeed) step(d int) (models.Photo, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	i := f.indexLocked(f.selected)
	if i < 0 {
		return models.Photo{}, false
	}
	n := len(f.photos)
	j := ((i+d)%n + n) % n
	f.selected = f.photos[j].ID
	return f.photos[j].Clone(), true
}

func (f *PhotoFeed) indexLocked(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(f.photos, func(p models.Photo) bool { return p.ID == id })
}

func (f *PhotoFeed) Snapshot() FeedState {
	f.mu.Lock()
	defer f.mu.Unlock()

	st := FeedState{
		Photos:   make([]models.Photo, len(f.photos)),
		Page:     f.page,
		PageSize: f.pageSize,
		HasMore:  f.hasMore,
		Loading:  f.loading,
		Error:    f.lastErr,
	}
	for i, p := range f.photos {
		st.Photos[i] = p.Clone()
	}
	if i := f.indexLocked(f.selected); i >= 0 {
		sel := f.photos[i].Clone()
		st.Selected = &sel
	}
	return st
}
