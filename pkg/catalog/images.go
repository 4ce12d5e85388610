package catalog

// Image is a single photo stored on the CDN. ImagePath is the CDN path or URL.
type Image struct {
	ID           string `json:"id" db:"id"`
	AlbumID      string `json:"album_id" db:"album_id"`
	ImagePath    string `json:"image_path" db:"image_path"`
	DisplayOrder int    `json:"display_order" db:"display_order"`
}
