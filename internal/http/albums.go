package http

import (
	"errors"
	"net/http"
	cl "portfolio/pkg/catalog"

	"github.com/gorilla/mux"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/requestid"
)

// GetAlbum get the details of a published album matching the album id
func (h *Handler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	v := r.URL.Query()
	reqID := requestid.Get(ctx)

	req, err := parseGetAlbumRequest(r)
	if err != nil {
		h.Logger.Error("[GetAlbum] error parsing request",
			"request_id", reqID,
			"details", err.Error())
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusBadRequest)
		return
	}

	res, err := h.AlbumStore.GetAlbum(ctx, req.AlbumID)
	if err != nil {
		if err == cl.ErrNotFound {
			h.Logger.Warn("[GetAlbum] no album found",
				"request_id", reqID,
				"album_id", req.AlbumID,
			)
			_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusNotFound)
			return
		}

		h.Logger.Error("[GetAlbum] error getting album",
			"request_id", reqID,
			"details", err.Error(),
		)
		_ = httputils.WriteJSONError(w, v, err.Error(), http.StatusInternalServerError)
		return
	}

	_ = httputils.WriteJSON(w, v, res, http.StatusOK)
}

func parseGetAlbumRequest(r *http.Request) (cl.GetAlbumReq, error) {
	var req cl.GetAlbumReq

	albumID := mux.Vars(r)["id"]
	if albumID == "-" || albumID == "" {
		return req, errors.New("[parseGetAlbumRequest] album id must be provided")
	}

	req = cl.GetAlbumReq{
		AlbumID: albumID,
	}
	return req, nil
}
