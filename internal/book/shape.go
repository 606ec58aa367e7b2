package book

import (
	"strings"

	"github.com/lepinkainen/bookdice/internal/googlebooks"
)

// Shape picks one item from resp uniformly at random and flattens it.
// It never fails: a nil response, an empty item list or missing nested
// objects all degrade to empty fields.
func Shape(resp *googlebooks.VolumesResponse, rng googlebooks.Rand) Record {
	if rng == nil {
		rng = googlebooks.DefaultRand
	}

	record := Record{
		Authors:    []string{},
		Categories: []string{},
	}
	if resp == nil {
		return record
	}
	record.TotalItems = resp.TotalItems

	if len(resp.Items) == 0 {
		return record
	}
	info := resp.Items[rng.IntN(len(resp.Items))].VolumeInfo
	if info == nil {
		return record
	}

	record.Title = deref(info.Title)
	record.Description = deref(info.Description)
	record.Publisher = deref(info.Publisher)
	record.PublicationDate = deref(info.PublishedDate)
	record.InfoLink = deref(info.InfoLink)
	record.ISBN = ExtractISBN(info.IndustryIdentifiers)

	if info.Authors != nil {
		record.Authors = info.Authors
	}
	if info.Categories != nil {
		record.Categories = info.Categories
	}
	if info.ImageLinks != nil {
		record.SmallThumbnail = deref(info.ImageLinks.SmallThumbnail)
		record.LargeThumbnail = deref(info.ImageLinks.Thumbnail)
	}

	return record
}

// ExtractISBN looks only at the last identifier and accepts it when its type
// mentions ISBN (ISBN_10, ISBN_13). Anything else yields nil.
func ExtractISBN(ids []googlebooks.IndustryIdentifier) *string {
	if len(ids) == 0 {
		return nil
	}
	last := ids[len(ids)-1]
	if !strings.Contains(last.Type, "ISBN") {
		return nil
	}
	isbn := last.Identifier
	return &isbn
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
