package http

import (
	"net/http"
	"time"

	"portfolio/internal/cache"
	"portfolio/internal/stats"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
)

// Handler mounts all the handlers at the appropriate routes and adds any required middleware.
func (h *Handler) Handler() http.Handler {
	r := mux.NewRouter()

	r.Use(httputils.TimeoutMiddleware(1 * time.Minute))
	r.Use(httputils.RequestIDMiddleware)
	r.Use(httputils.RealIPMiddleware)
	r.Use(httputils.LimitReaderMiddleware(1 << 20))
	r.Use(httputils.LoggingMiddleware(h.Logger))
	r.Use(httputils.StatsRouteMiddleware(h.stats(), stats.HTTPRequestDuration, routeName))
	r.Use(httputils.RecoverMiddleware(h.Logger, httputils.InternalServerErrorHandler(h.Logger)))
	r.Use(httputils.MaxConnectionsMiddleware(5000, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(httputils.ConcurrentLimitMiddleware(250, httputils.ServiceUnavailableHandler(h.Logger)))
	r.Use(MemoMiddleware)

	r.MethodNotAllowedHandler = httputils.MethodNotAllowedHandler(h.Logger)
	r.NotFoundHandler = httputils.NotFoundHandler(h.Logger)

	versionHandler := httputils.VersionHandler(h.AppName, h.Version, h.Logger)
	r.Methods("GET").Path("/").Name("root").Handler(versionHandler)
	r.Methods("GET").Path("/version").Name("version").Handler(versionHandler)
	r.Methods("GET").Path("/metrics").Name("metrics").Handler(h.stats().Handler())
	if lh := h.Logger.Handler(); lh != nil {
		r.Methods("GET", "PUT").Path("/log-level").Name("log_level").Handler(lh)
	}

	v1 := r.PathPrefix("/v1").Subrouter()

	v1.Methods("GET").Path("/catalog").Name("catalog").HandlerFunc(h.Catalog)
	v1.Methods("GET").Path("/categories").Name("categories").HandlerFunc(h.Categories)
	v1.Methods("GET").Path("/home").Name("home").HandlerFunc(h.Home)
	v1.Methods("GET").Path("/album/{id}").Name("get_album").HandlerFunc(h.GetAlbum)
	v1.Methods("POST").Path("/revalidate").Name("revalidate").HandlerFunc(h.Revalidate)
	h.router = r
	return r
}

// MemoMiddleware gives every request its own cache read memo, so a handler
// reading the same catalog view twice queries it once.
func MemoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(cache.WithMemo(r.Context()))
		next.ServeHTTP(w, r)
	})
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil && route.GetName() != "" {
		return route.GetName()
	}
	return "unmatched"
}
