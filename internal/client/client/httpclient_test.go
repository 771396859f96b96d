package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n")

func imageFile(name string) models.PhotoFile {
	return models.PhotoFile{Name: name, ContentType: "image/png", Size: int64(len(pngHeader)), Data: pngHeader}
}

func newFakeBackend(t *testing.T) (*fakeapi.Server, *HTTPClient) {
	t.Helper()
	s, ts := fakeapi.NewTestServer()
	t.Cleanup(ts.Close)
	return s, NewHTTPClient(ts.URL, ts.Client(), nil)
}

func TestHTTPClient_TripRoundTrip(t *testing.T) {
	s, c := newFakeBackend(t)
	ctx := context.Background()

	form := models.NewTripForm()
	form.Name, form.StartDate, form.EndDate, form.Location = "Alps", "2024-06-01", "2024-06-05", "Zermatt"

	created, err := c.CreateTrip(ctx, form)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.NotEqual(t, form.DraftID, created.ID)
	assert.Equal(t, fakeapi.DefaultCoverImage, created.CoverImage)

	list, err := c.ListTrips(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	name := "Swiss Alps"
	updated, err := c.UpdateTrip(ctx, created.ID, models.TripPatch{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Swiss Alps", updated.Name)
	assert.Equal(t, "Zermatt", updated.Location)

	got, err := c.GetTrip(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *updated, *got)

	require.NoError(t, c.DeleteTrip(ctx, created.ID))
	assert.Empty(t, s.Trips())
}

func TestHTTPClient_PhotoRoundTrip(t *testing.T) {
	s, c := newFakeBackend(t)
	ctx := context.Background()
	s.Seed(models.Trip{ID: "t1", Name: "Alps"})

	photo, err := c.UploadPhoto(ctx, "t1", imageFile("summit.png"))
	require.NoError(t, err)
	assert.Equal(t, "summit.png", photo.Filename)
	assert.NotEmpty(t, photo.PublicURL)

	described, err := c.UpdatePhotoDescription(ctx, photo.ID, "at the top")
	require.NoError(t, err)
	assert.Equal(t, "at the top", described.Caption())

	page, err := c.ListPhotos(ctx, 0, 12)
	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.True(t, page.Last)

	require.NoError(t, c.DeletePhoto(ctx, photo.ID))
	assert.Empty(t, s.Trips()[0].Photos)
}

func TestHTTPClient_JSONHeadersAndPaths(t *testing.T) {
	type seen struct {
		method, path, contentType, body string
	}
	var got seen

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		got = seen{r.Method, r.URL.RequestURI(), r.Header.Get("Content-Type"), string(b)}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"p1","description":"x","filename":"f","publicUrl":"u"}`))
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL+"/", ts.Client(), nil)

	_, err := c.UpdatePhotoDescription(context.Background(), "p1", "x")
	require.NoError(t, err)
	assert.Equal(t, seen{http.MethodPut, "/api/photos/p1/patch-detail", "application/json", `{"description":"x"}`}, got)

	_, err = c.CreateTrip(context.Background(), models.TripFormData{DraftID: "draft-1", Name: "n"})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/trips", got.path)
	assert.Equal(t, "application/json", got.contentType)
	assert.NotContains(t, got.body, "draft-1")

	_, err = c.ListPhotos(context.Background(), 2, 12)
	require.NoError(t, err)
	assert.Equal(t, "/api/photos?page=2&size=12", got.path)
	assert.Empty(t, got.contentType)
}

func TestHTTPClient_UploadIsMultipart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/photos/upload", r.URL.Path)
		ct := r.Header.Get("Content-Type")
		assert.True(t, strings.HasPrefix(ct, "multipart/form-data; boundary="), ct)

		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		assert.Equal(t, "t1", r.FormValue("tripId"))

		f, h, err := r.FormFile("file")
		if !assert.NoError(t, err) {
			return
		}
		defer f.Close()
		assert.Equal(t, `quote"d.png`, h.Filename)
		assert.Equal(t, "image/png", h.Header.Get("Content-Type"))

		_ = json.NewEncoder(w).Encode(models.Photo{ID: "p1", Filename: h.Filename})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, ts.Client(), nil)
	p, err := c.UploadPhoto(context.Background(), "t1", imageFile(`quote"d.png`))
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestHTTPClient_UploadRejectsNonImageWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, ts.Client(), nil)
	_, err := c.UploadPhoto(context.Background(), "t1", models.PhotoFile{Name: "notes.txt", ContentType: "text/plain"})

	require.ErrorIs(t, err, ErrNotImage)
	assert.Zero(t, hits.Load())
}

func TestHTTPClient_APIErrors(t *testing.T) {
	s, c := newFakeBackend(t)
	ctx := context.Background()

	s.FailNext(fakeapi.RouteListTrips, http.StatusInternalServerError, 1)
	_, err := c.ListTrips(ctx)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "Internal Server Error", apiErr.StatusText)
	assert.Equal(t, "API Error: 500 Internal Server Error", err.Error())
	assert.NotErrorIs(t, err, ErrNotFound)

	s.Seed(models.Trip{ID: "t1"})
	s.FailNext(fakeapi.RouteUploadPhoto, http.StatusBadGateway, 1)
	_, err = c.UploadPhoto(ctx, "t1", imageFile("a.png"))
	assert.EqualError(t, err, "Photo upload failed: 502 Bad Gateway")
}

func TestHTTPClient_GetTripNotFound(t *testing.T) {
	s, c := newFakeBackend(t)
	ctx := context.Background()

	_, err := c.GetTrip(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)

	s.Seed(models.Trip{ID: "t1"})
	s.FailNext(fakeapi.RouteGetTrip, http.StatusInternalServerError, 1)
	_, err = c.GetTrip(ctx, "t1")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPClient_NetworkError(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	c := NewHTTPClient(url, nil, nil)
	_, err := c.ListTrips(context.Background())

	require.ErrorIs(t, err, ErrUnavailable)
	var netErr *NetworkError
	require.ErrorAs(t, err, &netErr)
	assert.Contains(t, err.Error(), "network error")
}

func TestHTTPClient_CancelledContextIsNotNetworkError(t *testing.T) {
	_, c := newFakeBackend(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ListTrips(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestHTTPClient_DeleteAcceptsEmptyOK(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, ts.Client(), nil)
	require.NoError(t, c.DeleteTrip(context.Background(), "t1"))
	require.NoError(t, c.DeletePhoto(context.Background(), "p1"))
}
