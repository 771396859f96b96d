package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/dmitrijs2005/tripkeeper/internal/client/client"
	"github.com/dmitrijs2005/tripkeeper/internal/client/config"
	"github.com/dmitrijs2005/tripkeeper/internal/client/services"
	"github.com/dmitrijs2005/tripkeeper/internal/client/view"
	"github.com/dmitrijs2005/tripkeeper/internal/logging"
)

// Section is the top-level area the user is in, like the two links of a
// navigation bar.
type Section string

const (
	SectionTrips  Section = "trips"
	SectionPhotos Section = "photos"
)

type App struct {
	config *config.Config
	logger logging.Logger

	store *services.TripStore
	feed  *services.PhotoFeed
	view  *view.Controller

	lines *bufio.Scanner
	out   io.Writer

	section   Section
	scrollTop float64
	rows      func() int
}

// NewApp wires the HTTP client, stores and view controller from c. Logs go
// to stderr so they do not mix with command output.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, os.Stderr)
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}

	api := client.NewHTTPClient(c.BaseURL, &http.Client{Timeout: c.RequestTimeout}, logger)
	return newApp(ctx, c, api, logger, os.Stdin, os.Stdout), nil
}

func newApp(ctx context.Context, c *config.Config, api client.Client, logger logging.Logger, in io.Reader, out io.Writer) *App {
	store := services.NewTripStore(api, logger)
	return &App{
		config:  c,
		logger:  logger,
		store:   store,
		feed:    services.NewPhotoFeed(api, c.PageSize, c.ScrollThreshold, logger),
		view:    view.NewController(ctx, store, logger),
		lines:   bufio.NewScanner(in),
		out:     out,
		section: SectionTrips,
		rows:    terminalRows,
	}
}

// Run loads the trips and serves commands until the user exits or input ends.
func (a *App) Run(ctx context.Context) {
	defer a.view.Close()

	a.logger.Info(ctx, "starting", "base_url", a.config.BaseURL)
	if isInteractive() {
		fmt.Fprintln(a.out, "Welcome to TripKeeper (type 'help' for commands)")
	}

	if err := a.view.Refresh(ctx); err != nil {
		fmt.Fprintln(a.out, "Error:", err)
	} else {
		a.render()
	}

	runREPL(ctx, a, a.status, a.lines)
}

// status is shown in the prompt.
func (a *App) status() string {
	if a.section == SectionPhotos {
		st := a.feed.Snapshot()
		if st.Selected != nil {
			return "photos: fullscreen"
		}
		return fmt.Sprintf("photos %d", len(st.Photos))
	}

	switch s := a.view.Screen().(type) {
	case view.Detail:
		return "detail: " + s.Trip.Name
	case view.Edit:
		return "edit: " + s.Trip.Name
	case view.Create:
		return "new trip"
	}
	return "gallery"
}

// render prints whatever the active section shows.
func (a *App) render() {
	if a.section == SectionPhotos {
		st := a.feed.Snapshot()
		if st.Selected != nil {
			renderPhoto(a.out, *st.Selected, st.Photos)
			return
		}
		first, last := a.window(len(st.Photos))
		renderFeed(a.out, st, first, last)
		return
	}

	switch s := a.view.Screen().(type) {
	case view.Gallery:
		renderGallery(a.out, a.store.Snapshot())
	case view.Detail:
		renderDetail(a.out, s.Trip)
	case view.Create:
		renderForm(a.out, "New trip", s.Form)
	case view.Edit:
		renderForm(a.out, "Edit trip", s.Form)
	}
}
