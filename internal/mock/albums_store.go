package mock

import (
	"context"
	cl "portfolio/pkg/catalog"
)

// AlbumStore is a mock implementation of the AlbumStore interface.
type AlbumStore struct {
	GetAlbumFn func(ctx context.Context, id string) (cl.GetAlbumRes, error)
}

// GetAlbum proxies the request to the GetAlbumFn that's injected when
// the mock store is created.
func (s *AlbumStore) GetAlbum(ctx context.Context, id string) (cl.GetAlbumRes, error) {
	return s.GetAlbumFn(ctx, id)
}

// CatalogSource is a mock implementation of the CatalogSource interface.
type CatalogSource struct {
	ListPublishedAlbumsFn func(ctx context.Context) ([]cl.Album, error)
}

// ListPublishedAlbums proxies the request to the ListPublishedAlbumsFn that's
// injected when the mock source is created.
func (s *CatalogSource) ListPublishedAlbums(ctx context.Context) ([]cl.Album, error) {
	return s.ListPublishedAlbumsFn(ctx)
}
