// Package models defines client-side data models used by the TripKeeper client.
package models

// Photo is an image asset record. The same entity appears inside a Trip and,
// without trip context, in the flat photo feed.
type Photo struct {
	ID          string  `json:"id"`
	Description *string `json:"description"`
	Filename    string  `json:"filename"`
	PublicURL   string  `json:"publicUrl"`
}

// Caption returns the description, or "" when the server sent null.
func (p Photo) Caption() string {
	if p.Description == nil {
		return ""
	}
	return *p.Description
}

// Trip is a named journey with an owned, upload-ordered list of photos.
// Dates are kept exactly as the server sends them (YYYY-MM-DD).
type Trip struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	Location    string  `json:"location"`
	Description string  `json:"description"`
	CoverImage  string  `json:"coverImage"`
	City        string  `json:"city"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	Photos      []Photo `json:"photos"`
	Thumbnail   *Photo  `json:"thumbnail,omitempty"`
}

// Clone returns a deep copy so cached trips can be handed out without aliasing.
func (t Trip) Clone() Trip {
	c := t
	if t.Photos != nil {
		c.Photos = make([]Photo, len(t.Photos))
		for i, p := range t.Photos {
			c.Photos[i] = p.Clone()
		}
	}
	if t.Thumbnail != nil {
		th := t.Thumbnail.Clone()
		c.Thumbnail = &th
	}
	return c
}

// FindPhoto returns the index of the photo with the given id, or -1.
func (t Trip) FindPhoto(id string) int {
	for i, p := range t.Photos {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a copy that does not share the description pointer.
func (p Photo) Clone() Photo {
	c := p
	if p.Description != nil {
		d := *p.Description
		c.Description = &d
	}
	return c
}

// PhotoPage is one page of the photo feed.
type PhotoPage struct {
	Content []Photo `json:"content"`
	Last    bool    `json:"last"`
}
