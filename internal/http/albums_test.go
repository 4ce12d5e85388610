package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"portfolio/internal/mock"
	cl "portfolio/pkg/catalog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
	httputils "github.com/twitsprout/tools/http"
	jsonutils "github.com/twitsprout/tools/json"
	tm "github.com/twitsprout/tools/mock"
	"gopkg.in/guregu/null.v3"
)

func TestGetAlbum(t *testing.T) {
	album := cl.Album{
		ID:        "1234",
		Title:     "Emicida",
		Category:  null.StringFrom("shows"),
		Published: true,
		CreatedAt: time.Date(2024, 5, 6, 20, 11, 4, 0, time.UTC),
		UpdatedAt: time.Date(2024, 5, 6, 20, 11, 4, 0, time.UTC),
		Images: []cl.Image{
			{ID: "i1", AlbumID: "1234", ImagePath: "emicida/1.jpg"},
		},
	}
	url := "/v1/album"
	table := []struct {
		label      string
		url        string
		getAlbumFn func(ctx context.Context, id string) (cl.GetAlbumRes, error)
		expCode    int
		expRes     interface{}
	}{
		{
			label:   "should fail if there's no album id provided",
			url:     url + "/",
			expCode: http.StatusNotFound,
			expRes: httputils.JSONErrRes{
				Error: httputils.JSONErr{
					Message: "http: not found",
				},
			},
		},
		{
			label:   "should fail if there's a dash album id provided",
			url:     url + "/-",
			expCode: http.StatusBadRequest,
			expRes: httputils.JSONErrRes{
				Error: httputils.JSONErr{
					Message: "[parseGetAlbumRequest] album id must be provided",
				},
			},
		},
		{
			label: "should fail if getAlbumFn fails",
			url:   url + "/1234",
			getAlbumFn: func(ctx context.Context, id string) (cl.GetAlbumRes, error) {
				return cl.GetAlbumRes{}, errors.New("internal server error")
			},
			expCode: http.StatusInternalServerError,
			expRes: httputils.JSONErrRes{
				Error: httputils.JSONErr{
					Message: "internal server error",
				},
			},
		},
		{
			label: "should fail if getAlbumFn finds no published album",
			url:   url + "/9999",
			getAlbumFn: func(ctx context.Context, id string) (cl.GetAlbumRes, error) {
				return cl.GetAlbumRes{}, cl.ErrNotFound
			},
			expCode: http.StatusNotFound,
			expRes: httputils.JSONErrRes{
				Error: httputils.JSONErr{
					Message: "not found",
				},
			},
		},
		{
			label: "should pass with valid album id",
			url:   url + "/1234",
			getAlbumFn: func(ctx context.Context, id string) (cl.GetAlbumRes, error) {
				if id != "1234" {
					return cl.GetAlbumRes{}, errors.Errorf("unexpected album id %q", id)
				}
				return cl.GetAlbumRes{
					Album: &album,
				}, nil
			},
			expCode: http.StatusOK,
			expRes: cl.GetAlbumRes{
				Album: &album,
			},
		},
	}
	for i := 0; i < len(table); i++ {
		ts := table[i]
		t.Run(ts.label, func(t *testing.T) {
			h := Handler{
				AlbumStore: &mock.AlbumStore{
					GetAlbumFn: ts.getAlbumFn,
				},
				Logger: tm.NopLogger,
			}
			h.Handler()
			wr := httptest.NewRecorder()
			req := httptest.NewRequest("GET", ts.url, nil)
			h.router.ServeHTTP(wr, req)
			if wr.Code != ts.expCode {
				var res httputils.JSONErrRes
				err := jsonutils.Decode(wr.Body, &res)
				if err != nil {
					t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
				}
				t.Fatalf("unexpected response code returned: %s %s", cmp.Diff(ts.expCode, wr.Code), res.Error.Message)
			}
			if wr.Code != 200 {
				var res httputils.JSONErrRes
				err := jsonutils.Decode(wr.Body, &res)
				if err != nil {
					t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
				}
				if !cmp.Equal(res, ts.expRes) {
					t.Fatalf("unexpected response returned: %s", cmp.Diff(res, ts.expRes))
				}
			} else {
				var res cl.GetAlbumRes
				err := jsonutils.Decode(wr.Body, &res)
				if err != nil {
					t.Fatalf("unexpected error returned from decoding response body: %s", err.Error())
				}
				if !cmp.Equal(res, ts.expRes) {
					t.Fatalf("unexpected response returned: %s", cmp.Diff(res, ts.expRes))
				}
			}
		})
	}
}
