package book

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/lepinkainen/bookdice/internal/googlebooks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedRand int

func (f fixedRand) IntN(n int) int {
	if int(f) >= n {
		return n - 1
	}
	return int(f)
}

func decodeResponse(t *testing.T, payload string) *googlebooks.VolumesResponse {
	t.Helper()
	var resp googlebooks.VolumesResponse
	require.NoError(t, json.Unmarshal([]byte(payload), &resp))
	return &resp
}

func TestShapeFullVolume(t *testing.T) {
	resp := decodeResponse(t, `{
		"totalItems": 812,
		"items": [{
			"volumeInfo": {
				"title": "Birds of the World",
				"authors": ["Les Beletsky", "Jon Fisher"],
				"publisher": "JHU Press",
				"publishedDate": "2006-09-01",
				"description": "An illustrated guide.",
				"categories": ["Nature", "Science"],
				"industryIdentifiers": [
					{"type": "ISBN_10", "identifier": "0801884721"},
					{"type": "ISBN_13", "identifier": "9780801884726"}
				],
				"imageLinks": {
					"smallThumbnail": "http://books.google.com/small?zoom=5",
					"thumbnail": "http://books.google.com/large?zoom=1"
				},
				"infoLink": "http://books.google.com/books?id=abc"
			}
		}]
	}`)

	record := Shape(resp, fixedRand(0))

	assert.Equal(t, "Birds of the World", record.Title)
	assert.Equal(t, []string{"Les Beletsky", "Jon Fisher"}, record.Authors)
	assert.Equal(t, "JHU Press", record.Publisher)
	assert.Equal(t, "2006-09-01", record.PublicationDate)
	assert.Equal(t, "An illustrated guide.", record.Description)
	assert.Equal(t, []string{"Nature", "Science"}, record.Categories)
	assert.Equal(t, "http://books.google.com/small?zoom=5", record.SmallThumbnail)
	assert.Equal(t, "http://books.google.com/large?zoom=1", record.LargeThumbnail)
	assert.Equal(t, "http://books.google.com/books?id=abc", record.InfoLink)
	require.NotNil(t, record.ISBN)
	assert.Equal(t, "9780801884726", *record.ISBN)
	assert.Equal(t, 812, record.TotalItems)

	assert.Equal(t, "Les Beletsky, Jon Fisher", record.AuthorList())
	assert.Equal(t, "Nature, Science", record.CategoryList())
	assert.Equal(t, "http://books.google.com/large?zoom=0", record.CoverURL())
	assert.False(t, record.Empty())
}

func TestShapeEmptyItems(t *testing.T) {
	for name, resp := range map[string]*googlebooks.VolumesResponse{
		"nil response": nil,
		"no items key": decodeResponse(t, `{"totalItems": 0}`),
		"empty items":  decodeResponse(t, `{"totalItems": 0, "items": []}`),
	} {
		t.Run(name, func(t *testing.T) {
			record := Shape(resp, fixedRand(0))

			assert.Empty(t, record.Title)
			assert.NotNil(t, record.Authors)
			assert.Empty(t, record.Authors)
			assert.NotNil(t, record.Categories)
			assert.Empty(t, record.Categories)
			assert.Nil(t, record.ISBN)
			assert.Empty(t, record.InfoLink)
			assert.True(t, record.Empty())
			assert.Equal(t, "unknown", record.ISBNOrUnknown())
		})
	}
}

func TestShapeMissingNestedObjects(t *testing.T) {
	resp := decodeResponse(t, `{"totalItems": 2, "items": [{"id": "x"}, {"volumeInfo": {"title": "Only Title"}}]}`)

	noInfo := Shape(resp, fixedRand(0))
	assert.Empty(t, noInfo.Title)
	assert.Equal(t, []string{}, noInfo.Authors)
	assert.Equal(t, 2, noInfo.TotalItems)

	onlyTitle := Shape(resp, fixedRand(1))
	assert.Equal(t, "Only Title", onlyTitle.Title)
	assert.Equal(t, []string{}, onlyTitle.Authors)
	assert.Equal(t, []string{}, onlyTitle.Categories)
	assert.Empty(t, onlyTitle.SmallThumbnail)
	assert.Empty(t, onlyTitle.LargeThumbnail)
	assert.Empty(t, onlyTitle.CoverURL())
	assert.Nil(t, onlyTitle.ISBN)
}

func TestShapePicksUsingRand(t *testing.T) {
	resp := decodeResponse(t, `{"totalItems": 3, "items": [
		{"volumeInfo": {"title": "First"}},
		{"volumeInfo": {"title": "Second"}},
		{"volumeInfo": {"title": "Third"}}
	]}`)

	assert.Equal(t, "First", Shape(resp, fixedRand(0)).Title)
	assert.Equal(t, "Second", Shape(resp, fixedRand(1)).Title)
	assert.Equal(t, "Third", Shape(resp, fixedRand(2)).Title)
}

func TestExtractISBN(t *testing.T) {
	tests := []struct {
		name string
		ids  []googlebooks.IndustryIdentifier
		want *string
	}{
		{
			name: "last entry is ISBN",
			ids: []googlebooks.IndustryIdentifier{
				{Type: "OTHER", Identifier: "X"},
				{Type: "ISBN_13", Identifier: "Y"},
			},
			want: ptr("Y"),
		},
		{
			name: "only non ISBN entry",
			ids:  []googlebooks.IndustryIdentifier{{Type: "OTHER", Identifier: "X"}},
			want: nil,
		},
		{
			name: "ISBN before non ISBN last entry",
			ids: []googlebooks.IndustryIdentifier{
				{Type: "ISBN_10", Identifier: "Y"},
				{Type: "ISSN", Identifier: "X"},
			},
			want: nil,
		},
		{
			name: "missing type",
			ids:  []googlebooks.IndustryIdentifier{{Identifier: "X"}},
			want: nil,
		},
		{name: "nil list", ids: nil, want: nil},
		{name: "empty list", ids: []googlebooks.IndustryIdentifier{}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractISBN(tt.ids))
		})
	}
}

func TestPlainDescription(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        string
	}{
		{name: "empty", description: "", want: ""},
		{name: "plain text", description: "  A field guide.  ", want: "A field guide."},
		{name: "inline markup", description: "A <b>bold</b> <i>claim</i>", want: "A bold claim"},
		{name: "entities", description: "Birds &amp; Bees", want: "Birds & Bees"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Record{Description: tt.description}.PlainDescription())
		})
	}
}

func TestPlainDescriptionParagraphs(t *testing.T) {
	got := Record{Description: "<p>One</p><p>Two<br>Three</p>"}.PlainDescription()

	assert.NotContains(t, got, "<")
	assert.Contains(t, got, "One")
	assert.Contains(t, got, "Two\nThree")
	assert.NotContains(t, got, "\n\n\n")
}

type stubSource struct {
	page *googlebooks.VolumesResponse
	err  error
}

func (s stubSource) RandomPage(context.Context, string) (*googlebooks.VolumesResponse, error) {
	return s.page, s.err
}

func TestPickerPick(t *testing.T) {
	page := decodeResponse(t, `{"totalItems": 5, "items": [{"volumeInfo": {"title": "Birds of the World"}}]}`)

	record, err := NewPicker(stubSource{page: page}, fixedRand(0)).Pick(context.Background(), "birds")
	require.NoError(t, err)
	assert.Equal(t, "Birds of the World", record.Title)
	assert.Equal(t, "unknown", record.ISBNOrUnknown())
}

func TestPickerPropagatesErrors(t *testing.T) {
	boom := errors.New("boom")

	record, err := NewPicker(stubSource{err: boom}, nil).Pick(context.Background(), "birds")
	require.ErrorIs(t, err, boom)
	assert.Nil(t, record)
}

func ptr(s string) *string { return &s }
