package http

import (
	"net/http"
	cl "portfolio/pkg/catalog"

	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// HeaderCatalogUnavailable is set on catalog responses served while the
// album source could not be reached.
const HeaderCatalogUnavailable = "X-Catalog-Unavailable"

type homeRes struct {
	Albums     cl.Catalog       `json:"albums"`
	Categories cl.CategoryIndex `json:"categories"`
}

// Catalog writes the public catalog, keyed by album title. A source outage
// is not an error for the client: it receives whatever view the cache
// returned, which is empty unless stale serving is enabled.
func (h *Handler) Catalog(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	res, err := h.Cache.Catalog(ctx)
	if err != nil {
		h.Logger.Error("[Catalog] error loading catalog",
			"request_id", reqID,
			"details", err.Error(),
		)
		w.Header().Set(HeaderCatalogUnavailable, "true")
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// Categories writes the catalog entries grouped by category.
func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	res, err := h.Cache.CategoryIndex(ctx)
	if err != nil {
		h.Logger.Error("[Categories] error loading category index",
			"request_id", reqID,
			"details", err.Error(),
		)
		w.Header().Set(HeaderCatalogUnavailable, "true")
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// Home writes both catalog views in one response. Both are read through the
// request memo, so the source is queried at most once.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	albums, err := h.Cache.Catalog(ctx)
	if err != nil {
		h.Logger.Error("[Home] error loading catalog",
			"request_id", reqID,
			"details", err.Error(),
		)
		w.Header().Set(HeaderCatalogUnavailable, "true")
	}
	categories, err := h.Cache.CategoryIndex(ctx)
	if err != nil {
		h.Logger.Error("[Home] error loading category index",
			"request_id", reqID,
			"details", err.Error(),
		)
		w.Header().Set(HeaderCatalogUnavailable, "true")
	}

	res := homeRes{
		Albums:     albums,
		Categories: categories,
	}
	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}
