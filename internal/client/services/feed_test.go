package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/client/client"
	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/fakeapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func photos(prefix string, n int) []models.Photo {
	out := make([]models.Photo, n)
	for i := range out {
		out[i] = models.Photo{ID: fmt.Sprintf("%s%d", prefix, i), Filename: fmt.Sprintf("%s%d.jpg", prefix, i)}
	}
	return out
}

func ids(ps []models.Photo) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.ID
	}
	return out
}

func TestPhotoFeed_StopsAfterLastPage(t *testing.T) {
	m := new(mockClient)
	m.On("ListPhotos", mock.Anything, 0, 12).Return(&models.PhotoPage{Content: photos("a", 6), Last: false}, nil)
	m.On("ListPhotos", mock.Anything, 1, 12).Return(&models.PhotoPage{Content: photos("b", 6), Last: true}, nil)

	feed := NewPhotoFeed(m, 12, 300, nil)
	ctx := context.Background()

	require.NoError(t, feed.Mount(ctx))
	issued, err := feed.LoadNext(ctx)
	require.NoError(t, err)
	assert.True(t, issued)

	st := feed.Snapshot()
	assert.Len(t, st.Photos, 12)
	assert.False(t, st.HasMore)
	assert.Equal(t, 2, st.Page)

	issued, err = feed.LoadNext(ctx)
	require.NoError(t, err)
	assert.False(t, issued)
	m.AssertNumberOfCalls(t, "ListPhotos", 2)
}

func TestPhotoFeed_LoadNextWhileLoadingIsNoop(t *testing.T) {
	release := make(chan struct{})
	m := new(mockClient)
	m.On("ListPhotos", mock.Anything, 0, 12).
		Run(func(mock.Arguments) { <-release }).
		Return(&models.PhotoPage{Content: photos("a", 12)}, nil)

	feed := NewPhotoFeed(m, 0, 0, nil)
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := feed.LoadNext(ctx)
		done <- err
	}()

	require.Eventually(t, func() bool { return feed.Snapshot().Loading }, time.Second, time.Millisecond)

	issued, err := feed.LoadNext(ctx)
	require.NoError(t, err)
	assert.False(t, issued)

	close(release)
	require.NoError(t, <-done)
	m.AssertNumberOfCalls(t, "ListPhotos", 1)
	assert.Len(t, feed.Snapshot().Photos, 12)
}

func TestPhotoFeed_FailureHaltsLoading(t *testing.T) {
	m := new(mockClient)
	m.On("ListPhotos", mock.Anything, 0, 12).Return(&models.PhotoPage{Content: photos("a", 12)}, nil)
	m.On("ListPhotos", mock.Anything, 1, 12).Return(nil, &client.NetworkError{Err: errors.New("connection reset")})

	feed := NewPhotoFeed(m, 12, 300, nil)
	ctx := context.Background()
	require.NoError(t, feed.Mount(ctx))

	_, err := feed.LoadNext(ctx)
	require.ErrorIs(t, err, client.ErrUnavailable)

	st := feed.Snapshot()
	assert.False(t, st.HasMore)
	assert.False(t, st.Loading)
	assert.Contains(t, st.Error, "connection reset")
	assert.Len(t, st.Photos, 12)

	issued, err := feed.OnScroll(ctx, Viewport{ScrollTop: 10000, ClientHeight: 500, ScrollHeight: 1000})
	require.NoError(t, err)
	assert.False(t, issued)
	m.AssertNumberOfCalls(t, "ListPhotos", 2)
}

func TestPhotoFeed_CancelledLoadOnlyClearsLoading(t *testing.T) {
	m := new(mockClient)
	m.On("ListPhotos", mock.Anything, 0, 12).Return(nil, fmt.Errorf("GET /api/photos: %w", context.Canceled)).Once()

	feed := NewPhotoFeed(m, 12, 300, nil)
	_, err := feed.LoadNext(context.Background())
	require.ErrorIs(t, err, context.Canceled)

	st := feed.Snapshot()
	assert.True(t, st.HasMore)
	assert.False(t, st.Loading)
	assert.Empty(t, st.Error)
}

func TestPhotoFeed_OnScrollThreshold(t *testing.T) {
	m := new(mockClient)
	m.On("ListPhotos", mock.Anything, 0, 12).Return(&models.PhotoPage{Content: photos("a", 12)}, nil)

	feed := NewPhotoFeed(m, 12, 300, nil)
	ctx := context.Background()

	issued, err := feed.OnScroll(ctx, Viewport{ScrollTop: 199, ClientHeight: 500, ScrollHeight: 1000})
	require.NoError(t, err)
	assert.False(t, issued)

	issued, err = feed.OnScroll(ctx, Viewport{ScrollTop: 200, ClientHeight: 500, ScrollHeight: 1000})
	require.NoError(t, err)
	assert.True(t, issued)
	m.AssertNumberOfCalls(t, "ListPhotos", 1)
}

func TestPhotoFeed_ResetDiscardsStalePage(t *testing.T) {
	release := make(chan struct{})
	m := new(mockClient)
	m.On("ListPhotos", mock.Anything, 0, 12).
		Run(func(mock.Arguments) { <-release }).
		Return(&models.PhotoPage{Content: photos("old", 3)}, nil)

	feed := NewPhotoFeed(m, 12, 300, nil)
	done := make(chan struct{})
	go func() {
		_, _ = feed.LoadNext(context.Background())
		close(done)
	}()
	require.Eventually(t, func() bool { return feed.Snapshot().Loading }, time.Second, time.Millisecond)

	feed.Reset()
	close(release)
	<-done

	st := feed.Snapshot()
	assert.Empty(t, st.Photos)
	assert.Zero(t, st.Page)
	assert.False(t, st.Loading)
}

func TestPhotoFeed_FullscreenWraps(t *testing.T) {
	m := new(mockClient)
	m.On("ListPhotos", mock.Anything, 0, 12).Return(&models.PhotoPage{
		Content: []models.Photo{{ID: "A"}, {ID: "B"}, {ID: "C"}},
		Last:    true,
	}, nil)

	feed := NewPhotoFeed(m, 12, 300, nil)
	require.NoError(t, feed.Mount(context.Background()))

	_, ok := feed.Next()
	assert.False(t, ok, "nothing selected yet")

	p, ok := feed.Open("C")
	require.True(t, ok)
	assert.Equal(t, "C", p.ID)

	p, _ = feed.Next()
	assert.Equal(t, "A", p.ID)

	p, _ = feed.Prev()
	assert.Equal(t, "C", p.ID)

	_, _ = feed.Open("A")
	p, _ = feed.Prev()
	assert.Equal(t, "C", p.ID)

	feed.Close()
	_, ok = feed.Selected()
	assert.False(t, ok)

	_, ok = feed.Open("missing")
	assert.False(t, ok)
	m.AssertNumberOfCalls(t, "ListPhotos", 1)
}

func TestPhotoFeed_PagesThroughBackendInOrder(t *testing.T) {
	srv, ts := fakeapi.NewTestServer()
	defer ts.Close()
	seeded := srv.SeedFeed(30)

	feed := NewPhotoFeed(client.NewHTTPClient(ts.URL, ts.Client(), nil), 12, 300, nil)
	ctx := context.Background()
	require.NoError(t, feed.Mount(ctx))

	for {
		issued, err := feed.LoadNext(ctx)
		require.NoError(t, err)
		if !issued {
			break
		}
	}

	st := feed.Snapshot()
	assert.Equal(t, ids(seeded), ids(st.Photos))
	assert.Equal(t, 3, srv.Calls(fakeapi.RouteListPhotos))
}
