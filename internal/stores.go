package internal

import (
	"context"
	cl "portfolio/pkg/catalog"
)

// CatalogSource returns every published album with its images, both in
// display order.
type CatalogSource interface {
	ListPublishedAlbums(ctx context.Context) ([]cl.Album, error)
}

type AlbumStore interface {
	GetAlbum(ctx context.Context, id string) (cl.GetAlbumRes, error)
}

// CatalogCache serves the public catalog views. A non-nil error means the
// source could not be read; the returned value is still safe to render.
type CatalogCache interface {
	Catalog(ctx context.Context) (cl.Catalog, error)
	CategoryIndex(ctx context.Context) (cl.CategoryIndex, error)
	Invalidate()
}

// PathRevalidator drops downstream cached renders of the given routes.
type PathRevalidator interface {
	RevalidatePaths(ctx context.Context, paths []string) error
}
