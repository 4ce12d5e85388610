package http

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"portfolio/internal/stats"
	cl "portfolio/pkg/catalog"

	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// Invalidation triggers, recorded as the metric label.
const (
	TriggerEndpoint = "endpoint"
	TriggerNotify   = "notify"
)

const bearerPrefix = "Bearer "

type revalidateRes struct {
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

type revalidateErrRes struct {
	Error string `json:"error"`
}

// Revalidate drops both catalog views and asks the downstream page cache to
// re-render the catalog routes. Calling it repeatedly is harmless.
func (h *Handler) Revalidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	if !h.authorized(r) {
		h.Logger.Warn("[Revalidate] rejected request",
			"request_id", reqID,
			"remote_addr", r.RemoteAddr,
			"details", cl.ErrUnauthorized.Error(),
		)
		_ = httputils.WriteJSON(w, v, revalidateErrRes{Error: "Unauthorized"}, http.StatusUnauthorized)
		return
	}

	if err := h.InvalidateCatalog(ctx, TriggerEndpoint); err != nil {
		h.Logger.Error("[Revalidate] error revalidating catalog",
			"request_id", reqID,
			"details", err.Error(),
		)
		_ = httputils.WriteJSON(w, v, revalidateErrRes{Error: "Error revalidating cache"}, http.StatusInternalServerError)
		return
	}

	res := revalidateRes{
		Success:   true,
		Message:   "Cache revalidated successfully",
		Timestamp: h.now().UTC(),
	}
	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

// InvalidateCatalog resets the catalog cache and revalidates the configured
// paths downstream. The cache is reset even when revalidation fails.
func (h *Handler) InvalidateCatalog(ctx context.Context, trigger string) error {
	h.Cache.Invalidate()
	h.stats().Count(stats.Invalidations, 1, []string{trigger})
	h.Logger.Info("catalog invalidated", "trigger", trigger)

	if h.Revalidator == nil || len(h.RevalidatePaths) == 0 {
		return nil
	}
	err := h.Revalidator.RevalidatePaths(ctx, h.RevalidatePaths)
	return errors.Wrap(err, "revalidate catalog paths")
}

// authorized reports whether the request carries the configured bearer token.
func (h *Handler) authorized(r *http.Request) bool {
	if h.RevalidateSecret == "" {
		return false
	}
	auth := r.Header.Get("Authorization")
	if len(auth) < len(bearerPrefix) || !strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
		return false
	}
	token := strings.TrimSpace(auth[len(bearerPrefix):])
	return subtle.ConstantTimeCompare([]byte(token), []byte(h.RevalidateSecret)) == 1
}
