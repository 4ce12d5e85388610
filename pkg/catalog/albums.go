package catalog

import (
	"time"

	"gopkg.in/guregu/null.v3"
)

// Album is a photo album as stored in the catalog source. Images is populated
// by the store in display order and is never read from an albums row.
type Album struct {
	ID                string      `json:"id" db:"id"`
	Title             string      `json:"title" db:"title"`
	Description       null.String `json:"description" db:"description"`
	Category          null.String `json:"category" db:"category"`
	Subcategory       null.String `json:"subcategory" db:"subcategory"`
	Published         bool        `json:"published" db:"published"`
	DisplayOrder      int         `json:"display_order" db:"display_order"`
	CoverImageMobile  null.String `json:"cover_image_mobile" db:"cover_image_mobile"`
	CoverImageDesktop null.String `json:"cover_image_desktop" db:"cover_image_desktop"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`
	Images            []Image     `json:"images" db:"-"`
}

type GetAlbumReq struct {
	AlbumID string
}

type GetAlbumRes struct {
	Album *Album `json:"album"`
}
