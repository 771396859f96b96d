// Package fakeapi is an in-memory implementation of the trips REST backend.
// The client, the stores and the CLI are exercised against it through
// net/http/httptest, and cmd/fakeapi serves it for local development.
//
// Every route counts its calls and can be told to fail the next N requests
// with a given status code.
package fakeapi

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Route names accepted by Calls and FailNext.
const (
	RouteListTrips              = "listTrips"
	RouteGetTrip                = "getTrip"
	RouteCreateTrip             = "createTrip"
	RouteUpdateTrip             = "updateTrip"
	RouteDeleteTrip             = "deleteTrip"
	RouteUploadPhoto            = "uploadPhoto"
	RouteUpdatePhotoDescription = "updatePhotoDescription"
	RouteDeletePhoto            = "deletePhoto"
	RouteListPhotos             = "listPhotos"
)

// DefaultCoverImage is assigned to trips created without a cover image.
const DefaultCoverImage = "https://images.example.com/covers/default.jpg"

const maxUploadSize = 32 << 20

type failure struct {
	status int
	count  int
}

type Server struct {
	mu       sync.Mutex
	trips    []models.Trip
	feed     []models.Photo
	calls    map[string]int
	failures map[string]*failure
	router   chi.Router
}

func New() *Server {
	s := &Server{
		calls:    make(map[string]int),
		failures: make(map[string]*failure),
	}

	r := chi.NewRouter()
	r.Route("/api/trips", func(r chi.Router) {
		r.Get("/", s.route(RouteListTrips, s.listTrips))
		r.Post("/", s.route(RouteCreateTrip, s.createTrip))
		r.Get("/{id}", s.route(RouteGetTrip, s.getTrip))
		r.Put("/{id}", s.route(RouteUpdateTrip, s.updateTrip))
		r.Delete("/{id}", s.route(RouteDeleteTrip, s.deleteTrip))
	})
	r.Route("/api/photos", func(r chi.Router) {
		r.Get("/", s.route(RouteListPhotos, s.listPhotos))
		r.Post("/upload", s.route(RouteUploadPhoto, s.uploadPhoto))
		r.Put("/{id}/patch-detail", s.route(RouteUpdatePhotoDescription, s.updatePhotoDescription))
		r.Delete("/{id}", s.route(RouteDeletePhoto, s.deletePhoto))
	})
	s.router = r

	return s
}

// NewTestServer starts s on a local httptest server. The caller closes it.
func NewTestServer() (*Server, *httptest.Server) {
	s := New()
	return s, httptest.NewServer(s)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) route(name string, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[name]++
		f := s.failures[name]
		status := 0
		if f != nil && f.count > 0 {
			f.count--
			status = f.status
		}
		s.mu.Unlock()

		if status != 0 {
			http.Error(w, http.StatusText(status), status)
			return
		}
		h(w, r)
	}
}

// Calls returns how many requests hit the named route.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// TotalCalls returns the number of requests across all routes.
func (s *Server) TotalCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.calls {
		n += c
	}
	return n
}

// FailNext makes the next count requests to route answer with status.
func (s *Server) FailNext(route string, status, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures[route] = &failure{status: status, count: count}
}

// Seed stores trips as given. Their photos join the feed in order.
func (s *Server) Seed(trips ...models.Trip) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range trips {
		t = t.Clone()
		if t.Photos == nil {
			t.Photos = []models.Photo{}
		}
		s.trips = append(s.trips, t)
		s.feed = append(s.feed, t.Photos...)
	}
}

// SeedFeed appends n trip-less photos to the feed.
func (s *Server) SeedFeed(n int) []models.Photo {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := make([]models.Photo, 0, n)
	for i := 0; i < n; i++ {
		id := uuid.NewString()
		p := models.Photo{
			ID:        id,
			Filename:  fmt.Sprintf("photo-%d.jpg", len(s.feed)+1),
			PublicURL: "https://images.example.com/photos/" + id,
		}
		s.feed = append(s.feed, p)
		added = append(added, p)
	}
	return added
}

// Trips returns a copy of the server state in server order.
func (s *Server) Trips() []models.Trip {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Trip, len(s.trips))
	for i, t := range s.trips {
		out[i] = t.Clone()
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Server) findTrip(id string) int {
	for i, t := range s.trips {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) findFeedPhoto(id string) int {
	for i, p := range s.feed {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (s *Server) findPhoto(id string) (int, int) {
	for i, t := range s.trips {
		if j := t.FindPhoto(id); j >= 0 {
			return i, j
		}
	}
	return -1, -1
}

func (s *Server) listTrips(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Trips())
}

func (s *Server) getTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTrip(chi.URLParam(r, "id"))
	if i < 0 {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, s.trips[i])
}

func (s *Server) createTrip(w http.ResponseWriter, r *http.Request) {
	var form models.TripFormData
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	t := models.Trip{
		ID:          uuid.NewString(),
		Name:        form.Name,
		StartDate:   form.StartDate,
		EndDate:     form.EndDate,
		Location:    form.Location,
		Description: form.Description,
		CoverImage:  form.CoverImage,
		City:        form.City,
		State:       form.State,
		Country:     form.Country,
		Photos:      []models.Photo{},
	}
	if t.CoverImage == "" {
		t.CoverImage = DefaultCoverImage
	}

	s.mu.Lock()
	s.trips = append(s.trips, t)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) updateTrip(w http.ResponseWriter, r *http.Request) {
	var patch models.TripPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTrip(chi.URLParam(r, "id"))
	if i < 0 {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	s.trips[i] = patch.Apply(s.trips[i])
	writeJSON(w, http.StatusOK, s.trips[i])
}

func (s *Server) deleteTrip(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTrip(chi.URLParam(r, "id"))
	if i < 0 {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}
	for _, p := range s.trips[i].Photos {
		if j := s.findFeedPhoto(p.ID); j >= 0 {
			s.feed = append(s.feed[:j], s.feed[j+1:]...)
		}
	}
	s.trips = append(s.trips[:i], s.trips[i+1:]...)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) uploadPhoto(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "invalid multipart body", http.StatusBadRequest)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "missing file", http.StatusBadRequest)
		return
	}
	file.Close()

	if !strings.HasPrefix(header.Header.Get("Content-Type"), "image/") {
		http.Error(w, "only images are accepted", http.StatusUnsupportedMediaType)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.findTrip(r.FormValue("tripId"))
	if i < 0 {
		http.Error(w, "trip not found", http.StatusNotFound)
		return
	}

	id := uuid.NewString()
	p := models.Photo{
		ID:        id,
		Filename:  header.Filename,
		PublicURL: "https://images.example.com/photos/" + id + "/" + header.Filename,
	}
	s.trips[i].Photos = append(s.trips[i].Photos, p)
	if s.trips[i].Thumbnail == nil {
		th := p
		s.trips[i].Thumbnail = &th
	}
	s.feed = append(s.feed, p)

	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) updatePhotoDescription(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Description string `json:"description"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	ti, pi := s.findPhoto(id)
	fi := s.findFeedPhoto(id)
	if pi < 0 && fi < 0 {
		http.Error(w, "photo not found", http.StatusNotFound)
		return
	}

	var updated models.Photo
	if pi >= 0 {
		d := body.Description
		s.trips[ti].Photos[pi].Description = &d
		updated = s.trips[ti].Photos[pi]
	}
	if fi >= 0 {
		d := body.Description
		s.feed[fi].Description = &d
		updated = s.feed[fi]
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) deletePhoto(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := chi.URLParam(r, "id")
	ti, pi := s.findPhoto(id)
	fi := s.findFeedPhoto(id)
	if pi < 0 && fi < 0 {
		http.Error(w, "photo not found", http.StatusNotFound)
		return
	}
	if pi >= 0 {
		t := &s.trips[ti]
		t.Photos = append(t.Photos[:pi], t.Photos[pi+1:]...)
		if t.Thumbnail != nil && t.Thumbnail.ID == id {
			t.Thumbnail = nil
			if len(t.Photos) > 0 {
				th := t.Photos[0]
				t.Thumbnail = &th
			}
		}
	}
	if fi >= 0 {
		s.feed = append(s.feed[:fi], s.feed[fi+1:]...)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPhotos(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 0 {
		http.Error(w, "invalid page", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size <= 0 {
		http.Error(w, "invalid size", http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	total := len(s.feed)
	from := min(page*size, total)
	to := min(from+size, total)
	content := make([]models.Photo, to-from)
	copy(content, s.feed[from:to])
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.PhotoPage{Content: content, Last: to >= total})
}
