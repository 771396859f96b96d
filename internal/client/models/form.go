package models

import (
	"strings"

	"github.com/dmitrijs2005/tripkeeper/internal/common"
	"github.com/google/uuid"
)

// TripFormData stages the editable fields of a trip while a create or edit
// screen is open. DraftID identifies the draft locally and is never sent:
// the trip returned by the server replaces the draft entirely.
type TripFormData struct {
	DraftID     string `json:"-"`
	Name        string `json:"name"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Location    string `json:"location"`
	Description string `json:"description"`
	CoverImage  string `json:"coverImage"`
	City        string `json:"city"`
	State       string `json:"state"`
	Country     string `json:"country"`
}

// NewTripForm returns a blank create draft.
func NewTripForm() TripFormData {
	return TripFormData{DraftID: uuid.NewString(), Country: common.DefaultCountry}
}

// FormFromTrip returns an edit draft prefilled from t.
func FormFromTrip(t Trip) TripFormData {
	f := TripFormData{
		DraftID:     uuid.NewString(),
		Name:        t.Name,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		Location:    t.Location,
		Description: t.Description,
		CoverImage:  t.CoverImage,
		City:        t.City,
		State:       t.State,
		Country:     t.Country,
	}
	if f.Country == "" {
		f.Country = common.DefaultCountry
	}
	return f
}

// FormFields lists the settable field names in display order.
var FormFields = []string{"name", "startDate", "endDate", "location", "description", "coverImage", "city", "state", "country"}

// Set assigns a field by its JSON name. It reports false for unknown names.
func (f *TripFormData) Set(field, value string) bool {
	switch strings.ToLower(field) {
	case "name":
		f.Name = value
	case "startdate", "start":
		f.StartDate = value
	case "enddate", "end":
		f.EndDate = value
	case "location":
		f.Location = value
	case "description":
		f.Description = value
	case "coverimage", "cover":
		f.CoverImage = value
	case "city":
		f.City = value
	case "state":
		f.State = value
	case "country":
		f.Country = value
	default:
		return false
	}
	return true
}

// Get returns a field by its JSON name.
func (f TripFormData) Get(field string) string {
	switch strings.ToLower(field) {
	case "name":
		return f.Name
	case "startdate", "start":
		return f.StartDate
	case "enddate", "end":
		return f.EndDate
	case "location":
		return f.Location
	case "description":
		return f.Description
	case "coverimage", "cover":
		return f.CoverImage
	case "city":
		return f.City
	case "state":
		return f.State
	case "country":
		return f.Country
	}
	return ""
}

// Validate checks the fields required before a draft may be submitted.
func (f TripFormData) Validate() error {
	var missing []string
	required := []struct {
		name  string
		value string
	}{
		{"name", f.Name},
		{"startDate", f.StartDate},
		{"endDate", f.EndDate},
		{"location", f.Location},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing = append(missing, r.name)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Fields: missing}
	}
	return nil
}

// TripPatch is a partial trip update; nil fields are omitted from the payload.
type TripPatch struct {
	Name        *string `json:"name,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
	Location    *string `json:"location,omitempty"`
	Description *string `json:"description,omitempty"`
	CoverImage  *string `json:"coverImage,omitempty"`
	City        *string `json:"city,omitempty"`
	State       *string `json:"state,omitempty"`
	Country     *string `json:"country,omitempty"`
}

// PatchFromForm sets every editable field from f.
func PatchFromForm(f TripFormData) TripPatch {
	return TripPatch{
		Name:        &f.Name,
		StartDate:   &f.StartDate,
		EndDate:     &f.EndDate,
		Location:    &f.Location,
		Description: &f.Description,
		CoverImage:  &f.CoverImage,
		City:        &f.City,
		State:       &f.State,
		Country:     &f.Country,
	}
}

// Apply returns t with the non-nil patch fields applied.
func (p TripPatch) Apply(t Trip) Trip {
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&t.Name, p.Name)
	set(&t.StartDate, p.StartDate)
	set(&t.EndDate, p.EndDate)
	set(&t.Location, p.Location)
	set(&t.Description, p.Description)
	set(&t.CoverImage, p.CoverImage)
	set(&t.City, p.City)
	set(&t.State, p.State)
	set(&t.Country, p.Country)
	return t
}
