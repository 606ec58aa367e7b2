package googlebooks

// VolumesResponse matches the Google Books volumes search response.
// Only the fields bookdice reads are declared.
type VolumesResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is a single search result. VolumeInfo is nil when the API omits it.
type Volume struct {
	ID         string      `json:"id"`
	VolumeInfo *VolumeInfo `json:"volumeInfo"`
}

// VolumeInfo holds the bibliographic part of a volume. Pointer and slice
// fields are nil when the key is missing from the payload.
type VolumeInfo struct {
	Title               *string              `json:"title"`
	Authors             []string             `json:"authors"`
	Publisher           *string              `json:"publisher"`
	PublishedDate       *string              `json:"publishedDate"`
	Description         *string              `json:"description"`
	Categories          []string             `json:"categories"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	ImageLinks          *ImageLinks          `json:"imageLinks"`
	InfoLink            *string              `json:"infoLink"`
}

// IndustryIdentifier is any identifier the API knows for a volume
// (ISBN_10, ISBN_13, ISSN, OTHER).
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ImageLinks holds cover thumbnails.
type ImageLinks struct {
	SmallThumbnail *string `json:"smallThumbnail"`
	Thumbnail      *string `json:"thumbnail"`
}
