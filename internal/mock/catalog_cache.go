package mock

import (
	"context"
	"portfolio/internal"
	cl "portfolio/pkg/catalog"
)

var _ internal.CatalogCache = (*CatalogCache)(nil)
var _ internal.PathRevalidator = (*PathRevalidator)(nil)

// CatalogCache is a mock implementation of the CatalogCache interface.
type CatalogCache struct {
	CatalogFn       func(ctx context.Context) (cl.Catalog, error)
	CategoryIndexFn func(ctx context.Context) (cl.CategoryIndex, error)
	InvalidateFn    func()
}

// Catalog calls the CatalogCache's CatalogFn.
func (c *CatalogCache) Catalog(ctx context.Context) (cl.Catalog, error) {
	return c.CatalogFn(ctx)
}

// CategoryIndex calls the CatalogCache's CategoryIndexFn.
func (c *CatalogCache) CategoryIndex(ctx context.Context) (cl.CategoryIndex, error) {
	return c.CategoryIndexFn(ctx)
}

// Invalidate calls the CatalogCache's InvalidateFn.
func (c *CatalogCache) Invalidate() {
	c.InvalidateFn()
}

// PathRevalidator is a mock implementation of the PathRevalidator interface.
type PathRevalidator struct {
	RevalidatePathsFn func(ctx context.Context, paths []string) error
}

// RevalidatePaths calls the PathRevalidator's RevalidatePathsFn.
func (r *PathRevalidator) RevalidatePaths(ctx context.Context, paths []string) error {
	return r.RevalidatePathsFn(ctx, paths)
}
