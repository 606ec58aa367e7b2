// Package book turns Google Books search results into display-ready records.
package book

import "strings"

// Record is the flattened projection of one search result.
// Empty strings mean the API did not provide the field.
// Authors and Categories are never nil once produced by Shape.
type Record struct {
	Title           string   `json:"title"`
	Authors         []string `json:"authors"`
	Description     string   `json:"description,omitempty"`
	Categories      []string `json:"categories"`
	Publisher       string   `json:"publisher,omitempty"`
	PublicationDate string   `json:"publicationDate,omitempty"`
	SmallThumbnail  string   `json:"smallThumbnail,omitempty"`
	LargeThumbnail  string   `json:"largeThumbnail,omitempty"`
	InfoLink        string   `json:"infoLink,omitempty"`
	ISBN            *string  `json:"isbn"`
	TotalItems      int      `json:"totalItemsForSearch"`
}

// ISBNOrUnknown returns the ISBN or "unknown" when there is none.
func (r Record) ISBNOrUnknown() string {
	if r.ISBN == nil || *r.ISBN == "" {
		return "unknown"
	}
	return *r.ISBN
}

// AuthorList joins the authors for display.
func (r Record) AuthorList() string {
	return strings.Join(r.Authors, ", ")
}

// CategoryList joins the categories for display.
func (r Record) CategoryList() string {
	return strings.Join(r.Categories, ", ")
}

// CoverURL returns the best available thumbnail, preferring the larger one.
// Google serves a bigger image when the zoom parameter is dropped to 0.
func (r Record) CoverURL() string {
	coverURL := r.LargeThumbnail
	if coverURL == "" {
		coverURL = r.SmallThumbnail
	}
	return strings.Replace(coverURL, "zoom=1", "zoom=0", 1)
}

// Empty reports whether the record was shaped from a page with no items.
func (r Record) Empty() bool {
	return r.Title == "" && len(r.Authors) == 0 && r.InfoLink == "" && r.ISBN == nil
}
