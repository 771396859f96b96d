package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestTrip_DecodesServerPayload(t *testing.T) {
	payload := `{
		"id": "t1", "name": "Alps", "startDate": "2024-06-01", "endDate": "2024-06-10",
		"location": "Zermatt", "description": "hiking", "coverImage": "http://img/c.jpg",
		"city": "Zermatt", "state": "VS", "country": "CH",
		"photos": [{"id": "p1", "description": null, "filename": "a.jpg", "publicUrl": "http://img/a.jpg"}],
		"thumbnail": {"id": "p1", "description": "cover", "filename": "a.jpg", "publicUrl": "http://img/a.jpg"}
	}`

	var trip Trip
	require.NoError(t, json.Unmarshal([]byte(payload), &trip))

	assert.Equal(t, "t1", trip.ID)
	assert.Equal(t, "2024-06-01", trip.StartDate)
	require.Len(t, trip.Photos, 1)
	assert.Nil(t, trip.Photos[0].Description)
	assert.Equal(t, "", trip.Photos[0].Caption())
	require.NotNil(t, trip.Thumbnail)
	assert.Equal(t, "cover", trip.Thumbnail.Caption())
}

func TestTrip_CloneIsDeep(t *testing.T) {
	orig := Trip{
		ID:        "t1",
		Photos:    []Photo{{ID: "p1", Description: strPtr("one")}},
		Thumbnail: &Photo{ID: "p1", Description: strPtr("one")},
	}
	c := orig.Clone()

	c.Photos[0].ID = "changed"
	*c.Photos[0].Description = "changed"
	c.Thumbnail.ID = "changed"

	assert.Equal(t, "p1", orig.Photos[0].ID)
	assert.Equal(t, "one", *orig.Photos[0].Description)
	assert.Equal(t, "p1", orig.Thumbnail.ID)
}

func TestTrip_FindPhoto(t *testing.T) {
	trip := Trip{Photos: []Photo{{ID: "a"}, {ID: "b"}}}
	assert.Equal(t, 1, trip.FindPhoto("b"))
	assert.Equal(t, -1, trip.FindPhoto("z"))
}

func TestTripFormData_Validate(t *testing.T) {
	valid := TripFormData{Name: "n", StartDate: "2024-01-01", EndDate: "2024-01-02", Location: "l"}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name    string
		mutate  func(f *TripFormData)
		missing []string
	}{
		{name: "empty name", mutate: func(f *TripFormData) { f.Name = "" }, missing: []string{"name"}},
		{name: "blank location", mutate: func(f *TripFormData) { f.Location = "   " }, missing: []string{"location"}},
		{name: "no dates", mutate: func(f *TripFormData) { f.StartDate, f.EndDate = "", "" }, missing: []string{"startDate", "endDate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := valid
			tt.mutate(&f)

			err := f.Validate()
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.missing, ve.Fields)
			assert.Contains(t, err.Error(), "please fill in all required fields")
		})
	}
}

func TestNewTripForm_Defaults(t *testing.T) {
	a, b := NewTripForm(), NewTripForm()
	assert.Equal(t, "USA", a.Country)
	assert.NotEmpty(t, a.DraftID)
	assert.NotEqual(t, a.DraftID, b.DraftID)
}

func TestFormFromTrip_Prefills(t *testing.T) {
	f := FormFromTrip(Trip{ID: "t1", Name: "Alps", Location: "Zermatt", Country: ""})
	assert.Equal(t, "Alps", f.Name)
	assert.Equal(t, "Zermatt", f.Location)
	assert.Equal(t, "USA", f.Country)
}

func TestTripFormData_DraftIDIsNotSerialized(t *testing.T) {
	f := NewTripForm()
	f.Name = "x"
	b, err := json.Marshal(f)
	require.NoError(t, err)
	assert.NotContains(t, string(b), f.DraftID)
	assert.Contains(t, string(b), `"name":"x"`)
}

func TestTripFormData_SetGet(t *testing.T) {
	var f TripFormData
	for _, field := range FormFields {
		require.True(t, f.Set(field, field+"-v"), field)
		assert.Equal(t, field+"-v", f.Get(field))
	}
	assert.False(t, f.Set("photos", "x"))
	assert.Equal(t, "", f.Get("photos"))
}

func TestTripPatch_JSONAndApply(t *testing.T) {
	name := "New"
	p := TripPatch{Name: &name}

	b, err := json.Marshal(p)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"New"}`, string(b))

	got := p.Apply(Trip{ID: "t1", Name: "Old", City: "Oslo"})
	assert.Equal(t, Trip{ID: "t1", Name: "New", City: "Oslo"}, got)

	full := PatchFromForm(TripFormData{Name: "A", City: "B"})
	b, err = json.Marshal(full)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"startDate":""`)
}

func TestPhotoFile_IsImage(t *testing.T) {
	assert.True(t, PhotoFile{ContentType: "image/png"}.IsImage())
	assert.True(t, PhotoFile{ContentType: "image/jpeg"}.IsImage())
	assert.False(t, PhotoFile{ContentType: "text/plain; charset=utf-8"}.IsImage())
	assert.False(t, PhotoFile{}.IsImage())
}
