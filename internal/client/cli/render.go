package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/tripkeeper/internal/client/models"
	"github.com/dmitrijs2005/tripkeeper/internal/client/services"
	"github.com/dustin/go-humanize"
)

const isoDate = "2006-01-02"

// formatDate turns an ISO date into "Jun 1, 2024". Anything else is shown as is.
func formatDate(s string) string {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return s
	}
	return t.Format("Jan 2, 2006")
}

func photoCount(n int) string {
	if n == 1 {
		return "1 photo"
	}
	return humanize.Comma(int64(n)) + " photos"
}

func renderGallery(w io.Writer, st services.TripState) {
	switch {
	case st.Loading:
		fmt.Fprintln(w, "Loading trips...")
		return
	case st.Error != "":
		fmt.Fprintln(w, "Error:", st.Error)
		return
	case len(st.Trips) == 0:
		fmt.Fprintln(w, "No trips yet. Type 'new' to plan one.")
		return
	}

	fmt.Fprintf(w, "My Trips (%d)\n", len(st.Trips))
	for i, t := range st.Trips {
		fmt.Fprintf(w, "%3d. %s  [%s]\n", i+1, t.Name, t.ID)
		fmt.Fprintf(w, "     %s | %s - %s | %s\n",
			t.Location, formatDate(t.StartDate), formatDate(t.EndDate), photoCount(len(t.Photos)))
		if cover := coverURL(t); cover != "" {
			fmt.Fprintf(w, "     cover: %s\n", cover)
		}
	}
}

// coverURL is the thumbnail when the trip has one, otherwise its cover image.
func coverURL(t models.Trip) string {
	if t.Thumbnail != nil && t.Thumbnail.PublicURL != "" {
		return t.Thumbnail.PublicURL
	}
	return t.CoverImage
}

func renderDetail(w io.Writer, t models.Trip) {
	fmt.Fprintln(w, t.Name)
	fmt.Fprintln(w, strings.Repeat("=", len(t.Name)))
	fmt.Fprintf(w, "Location: %s\n", t.Location)
	if place := joinNonEmpty(", ", t.City, t.State, t.Country); place != "" {
		fmt.Fprintf(w, "Place:    %s\n", place)
	}
	fmt.Fprintf(w, "Dates:    %s - %s\n", formatDate(t.StartDate), formatDate(t.EndDate))
	if t.CoverImage != "" {
		fmt.Fprintf(w, "Cover:    %s\n", t.CoverImage)
	}
	if t.Description != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, t.Description)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Photos (%d)\n", len(t.Photos))
	if len(t.Photos) == 0 {
		fmt.Fprintln(w, "No photos yet. Upload some to capture your memories!")
		return
	}
	for i, p := range t.Photos {
		caption := p.Caption()
		if caption == "" {
			caption = "(no caption)"
		}
		fmt.Fprintf(w, "%3d. %s  %s  [%s]\n", i+1, p.Filename, caption, p.ID)
	}
}

func renderForm(w io.Writer, title string, f models.TripFormData) {
	required := map[string]bool{"name": true, "startDate": true, "endDate": true, "location": true}

	fmt.Fprintln(w, title)
	for _, field := range models.FormFields {
		mark := " "
		if required[field] {
			mark = "*"
		}
		fmt.Fprintf(w, " %s %-12s %s\n", mark, field, f.Get(field))
	}
	fmt.Fprintln(w, "Use 'set <field> <value>', then 'save' or 'cancel'.")
}

// renderFeed prints feed lines [first, last) and the feed footer.
func renderFeed(w io.Writer, st services.FeedState, first, last int) {
	if len(st.Photos) == 0 && !st.Loading && st.Error == "" {
		fmt.Fprintln(w, "No photos yet.")
	}
	for i := first; i < last; i++ {
		p := st.Photos[i]
		line := fmt.Sprintf("%4d. %s", i+1, p.Filename)
		if c := p.Caption(); c != "" {
			line += "  " + c
		}
		fmt.Fprintln(w, line)
	}

	switch {
	case st.Loading:
		fmt.Fprintln(w, "Loading more photos...")
	case st.Error != "":
		fmt.Fprintln(w, "Error:", st.Error)
	case !st.HasMore:
		fmt.Fprintf(w, "That's all %s.\n", photoCount(len(st.Photos)))
	default:
		fmt.Fprintf(w, "Showing %d-%d of %d loaded. Type 'more' to scroll.\n", min(first+1, last), last, len(st.Photos))
	}
}

// renderPhoto prints the fullscreen view of p within photos.
func renderPhoto(w io.Writer, p models.Photo, photos []models.Photo) {
	pos := 0
	for i := range photos {
		if photos[i].ID == p.ID {
			pos = i + 1
			break
		}
	}
	fmt.Fprintf(w, "[%d/%d] %s\n", pos, len(photos), p.Filename)
	if c := p.Caption(); c != "" {
		fmt.Fprintln(w, c)
	}
	fmt.Fprintln(w, p.PublicURL)
	fmt.Fprintln(w, "'next', 'prev' or 'close'")
}

func joinNonEmpty(sep string, parts ...string) string {
	var kept []string
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
