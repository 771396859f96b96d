package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/client/view"
	"github.com/dmitrijs2005/tripkeeper/internal/filex"
	"github.com/dustin/go-humanize"
)

var (
	ErrWrongSection = errors.New("not available here")
	ErrNoSuchItem   = errors.New("no such item")
)

// resolve maps a 1-based position or an id onto an id from ids.
func resolve(ref string, ids []string) (string, error) {
	ref = strings.TrimPrefix(ref, "#")
	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(ids) {
			return "", fmt.Errorf("%w: #%d", ErrNoSuchItem, n)
		}
		return ids[n-1], nil
	}
	for _, id := range ids {
		if id == ref {
			return id, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNoSuchItem, ref)
}

func tripIDs(trips []models.Trip) []string {
	ids := make([]string, len(trips))
	for i, t := range trips {
		ids[i] = t.ID
	}
	return ids
}

func photoIDs(photos []models.Photo) []string {
	ids := make([]string, len(photos))
	for i, p := range photos {
		ids[i] = p.ID
	}
	return ids
}

// leaveFeed unmounts the photo feed.
func (a *App) leaveFeed() {
	if a.section == SectionPhotos {
		a.feed.Reset()
		a.scrollTop = 0
		a.section = SectionTrips
	}
}

func (a *App) inTrips() error {
	if a.section != SectionTrips {
		return fmt.Errorf("%w: type 'trips' first", ErrWrongSection)
	}
	return nil
}

func (a *App) inFeed() error {
	if a.section != SectionPhotos {
		return fmt.Errorf("%w: type 'photos' first", ErrWrongSection)
	}
	return nil
}

func (a *App) detail() (view.Detail, error) {
	if err := a.inTrips(); err != nil {
		return view.Detail{}, err
	}
	d, ok := a.view.Screen().(view.Detail)
	if !ok {
		return view.Detail{}, fmt.Errorf("%w: open a trip with 'view' first", ErrWrongSection)
	}
	return d, nil
}

// List switches to the trips section and shows the active screen.
func (a *App) List(ctx context.Context) error {
	a.leaveFeed()
	a.render()
	return nil
}

func (a *App) New(ctx context.Context) error {
	if err := a.inTrips(); err != nil {
		return err
	}
	if err := a.view.NewTrip(); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) View(ctx context.Context, ref string) error {
	if err := a.inTrips(); err != nil {
		return err
	}
	id, err := resolve(ref, tripIDs(a.store.Trips()))
	if err != nil {
		return err
	}
	if err := a.view.ShowTrip(id); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) Edit(ctx context.Context, ref string) error {
	if err := a.inTrips(); err != nil {
		return err
	}
	id, err := resolve(ref, tripIDs(a.store.Trips()))
	if err != nil {
		return err
	}
	if err := a.view.EditTrip(id); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) Set(ctx context.Context, field, value string) error {
	if err := a.inTrips(); err != nil {
		return err
	}
	return a.view.SetField(field, value)
}

// Save submits the create or edit form.
func (a *App) Save(ctx context.Context) error {
	if err := a.inTrips(); err != nil {
		return err
	}

	var (
		trip *models.Trip
		err  error
	)
	switch a.view.Screen().(type) {
	case view.Create:
		trip, err = a.view.SubmitCreate(ctx)
	case view.Edit:
		trip, err = a.view.SubmitEdit(ctx)
	default:
		return fmt.Errorf("%w: nothing to save", ErrWrongSection)
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Saved %q.\n", trip.Name)
	a.render()
	return nil
}

// Delete removes the trip being edited after confirmation.
func (a *App) Delete(ctx context.Context) error {
	if err := a.inTrips(); err != nil {
		return err
	}
	e, ok := a.view.Screen().(view.Edit)
	if !ok {
		return fmt.Errorf("%w: open the trip with 'edit' first", ErrWrongSection)
	}

	yes, err := Confirm(a.lines, "Are you sure you want to delete this trip?", a.out)
	if err != nil {
		return err
	}
	if !yes {
		return nil
	}

	if err := a.view.DeleteTrip(ctx); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Deleted %q.\n", e.Trip.Name)
	a.render()
	return nil
}

// Back closes the fullscreen photo, leaves the feed, or leaves the active trip screen.
func (a *App) Back(ctx context.Context) error {
	if a.section == SectionPhotos {
		if _, ok := a.feed.Selected(); ok {
			return a.Close(ctx)
		}
		return a.List(ctx)
	}

	var err error
	switch a.view.Screen().(type) {
	case view.Detail:
		err = a.view.Back()
	default:
		err = a.view.Cancel()
	}
	if err != nil {
		return err
	}
	a.render()
	return nil
}

// Upload loads the files at paths and uploads the images among them.
func (a *App) Upload(ctx context.Context, paths []string) error {
	if _, err := a.detail(); err != nil {
		return err
	}

	files := make([]models.PhotoFile, 0, len(paths))
	for _, p := range paths {
		f, err := filex.LoadPhotoFile(p)
		if err != nil {
			fmt.Fprintln(a.out, "Skipped:", err)
			continue
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil
	}

	res, err := a.view.UploadPhotos(ctx, files)
	for _, name := range res.Skipped {
		fmt.Fprintf(a.out, "Skipped %s: not an image\n", name)
	}
	for _, u := range res.Uploaded {
		fmt.Fprintf(a.out, "Uploaded %s (%s)\n", u.File.Name, humanize.Bytes(uint64(u.File.Size)))
	}
	if len(res.Uploaded) > 0 {
		a.render()
	}
	return err
}

// Caption sets a photo description, prompting for it when text is empty.
func (a *App) Caption(ctx context.Context, ref, text string) error {
	d, err := a.detail()
	if err != nil {
		return err
	}
	id, err := resolve(ref, photoIDs(d.Trip.Photos))
	if err != nil {
		return err
	}

	if text == "" {
		p := d.Trip.Photos[d.Trip.FindPhoto(id)]
		text, err = GetSimpleText(a.lines, fmt.Sprintf("Caption for %s (currently %q)", p.Filename, p.Caption()), a.out)
		if err != nil {
			return err
		}
	}

	if err := a.view.UpdatePhotoDescription(ctx, id, text); err != nil {
		return err
	}
	a.render()
	return nil
}

func (a *App) RemovePhoto(ctx context.Context, ref string) error {
	d, err := a.detail()
	if err != nil {
		return err
	}
	id, err := resolve(ref, photoIDs(d.Trip.Photos))
	if err != nil {
		return err
	}
	if err := a.view.DeletePhoto(ctx, id); err != nil {
		return err
	}
	a.render()
	return nil
}

// Refresh reloads trips, or remounts the feed when it is open.
func (a *App) Refresh(ctx context.Context) error {
	if a.section == SectionPhotos {
		return a.Photos(ctx)
	}
	if err := a.view.Refresh(ctx); err != nil {
		return err
	}
	a.render()
	return nil
}

// Photos mounts the feed and shows its first screen.
func (a *App) Photos(ctx context.Context) error {
	a.section = SectionPhotos
	a.scrollTop = 0
	err := a.feed.Mount(ctx)
	a.render()
	return err
}

// More scrolls the feed by one screen and lets it load the next page when
// the window gets close to the end.
func (a *App) More(ctx context.Context) error {
	if err := a.inFeed(); err != nil {
		return err
	}

	st := a.feed.Snapshot()
	a.scrollDown(len(st.Photos))

	_, err := a.feed.OnScroll(ctx, a.viewport(len(st.Photos)))
	a.render()
	return err
}

func (a *App) Open(ctx context.Context, ref string) error {
	if err := a.inFeed(); err != nil {
		return err
	}
	id, err := resolve(ref, photoIDs(a.feed.Snapshot().Photos))
	if err != nil {
		return err
	}
	if _, ok := a.feed.Open(id); !ok {
		return fmt.Errorf("%w: %s", ErrNoSuchItem, ref)
	}
	a.render()
	return nil
}

func (a *App) Next(ctx context.Context) error {
	return a.step(a.feed.Next)
}

func (a *App) Prev(ctx context.Context) error {
	return a.step(a.feed.Prev)
}

func (a *App) step(move func() (models.Photo, bool)) error {
	if err := a.inFeed(); err != nil {
		return err
	}
	if _, ok := move(); !ok {
		return fmt.Errorf("%w: open a photo first", ErrWrongSection)
	}
	a.render()
	return nil
}

// Close leaves fullscreen.
func (a *App) Close(ctx context.Context) error {
	if err := a.inFeed(); err != nil {
		return err
	}
	a.feed.Close()
	a.render()
	return nil
}
