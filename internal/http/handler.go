package http

import (
	"time"

	"portfolio/internal"
	"portfolio/internal/stats"

	"github.com/gorilla/mux"
	"github.com/twitsprout/tools"
	"github.com/twitsprout/tools/clock"
)

type Handler struct {
	AppName     string
	Version     string
	router      *mux.Router
	Logger      tools.Logger
	Stats       tools.StatsClient
	Clock       clock.Clock
	AlbumStore  internal.AlbumStore
	Cache       internal.CatalogCache
	Revalidator internal.PathRevalidator

	// RevalidateSecret is the bearer token required by the revalidate
	// endpoint. An empty secret rejects every request.
	RevalidateSecret string
	// RevalidatePaths are the public routes whose downstream renders embed
	// catalog data.
	RevalidatePaths []string
}

func (h *Handler) stats() tools.StatsClient {
	if h.Stats == nil {
		return stats.Nop{}
	}
	return h.Stats
}

func (h *Handler) now() time.Time {
	if h.Clock == nil {
		return time.Now()
	}
	return h.Clock.Now()
}
