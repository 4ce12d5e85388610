package catalog

import "strings"

// DefaultCategory is the bucket for entries without a category.
const DefaultCategory = "outros"

// EntryImage is the public shape of an album image.
type EntryImage struct {
	ID        string `json:"id"`
	ImagePath string `json:"imagem"`
}

// Entry is the public shape of a published album.
type Entry struct {
	ID                string       `json:"id"`
	Title             string       `json:"titulo"`
	Description       string       `json:"descricao"`
	Category          string       `json:"categoria"`
	Subcategory       string       `json:"subcategoria"`
	CoverImageMobile  string       `json:"coverImageMobile"`
	CoverImageDesktop string       `json:"coverImageDesktop"`
	Images            []EntryImage `json:"imagens"`
}

// Catalog maps album titles to their public entries. Values returned by the
// cache are shared between callers and must not be modified.
type Catalog map[string]Entry

// CategoryIndex maps a category label to its entries in album display order.
type CategoryIndex map[string][]Entry

// NewEntry transforms an album into its public shape. Covers that were not set
// explicitly fall back to the first image.
func NewEntry(a Album) Entry {
	e := Entry{
		ID:                a.ID,
		Title:             a.Title,
		Description:       a.Description.String,
		Category:          a.Category.String,
		Subcategory:       a.Subcategory.String,
		CoverImageMobile:  a.CoverImageMobile.String,
		CoverImageDesktop: a.CoverImageDesktop.String,
		Images:            make([]EntryImage, 0, len(a.Images)),
	}
	for _, img := range a.Images {
		e.Images = append(e.Images, EntryImage{
			ID:        img.ID,
			ImagePath: img.ImagePath,
		})
	}

	if len(e.Images) > 0 {
		first := e.Images[0].ImagePath
		if e.CoverImageMobile == "" {
			e.CoverImageMobile = first
		}
		if e.CoverImageDesktop == "" {
			e.CoverImageDesktop = first
		}
	}
	return e
}

// BuildCategoryIndex groups entries by category, keeping their relative order.
// Entries without images are left out and a blank category becomes
// DefaultCategory.
func BuildCategoryIndex(entries []Entry) CategoryIndex {
	idx := make(CategoryIndex)
	for _, e := range entries {
		if len(e.Images) == 0 {
			continue
		}
		category := strings.TrimSpace(e.Category)
		if category == "" {
			category = DefaultCategory
		}
		idx[category] = append(idx[category], e)
	}
	return idx
}
