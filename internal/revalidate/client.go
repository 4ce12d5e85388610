// Package revalidate asks the downstream page cache (frontend renderer or CDN)
// to drop its cached renders of catalog routes.
package revalidate

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"portfolio/internal"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/pkg/errors"
	"github.com/twitsprout/tools"
	httputils "github.com/twitsprout/tools/http"
	"github.com/twitsprout/tools/json"
)

var _ internal.PathRevalidator = (*Client)(nil)
var _ internal.PathRevalidator = Nop{}

// Client posts one revalidation request per path to a downstream endpoint.
type Client struct {
	url   string
	token string
	rc    *retryablehttp.Client
}

// Option modifies a setting when creating a new Client.
type Option func(*retryablehttp.Client)

// WithRetries sets the number of retries and the backoff bounds.
// Default: 3 retries between 200ms and 2s.
func WithRetries(max int, waitMin, waitMax time.Duration) Option {
	return func(rc *retryablehttp.Client) {
		rc.RetryMax = max
		rc.RetryWaitMin = waitMin
		rc.RetryWaitMax = waitMax
	}
}

// WithHTTPClient sets the underlying HTTP client.
// Default: a tools http client with a 10 second timeout.
func WithHTTPClient(c *http.Client) Option {
	return func(rc *retryablehttp.Client) {
		rc.HTTPClient = c
	}
}

// New returns a Client posting to url, authenticated with token when it is
// not empty.
func New(url, token string, logger tools.Logger, ops ...Option) *Client {
	rc := retryablehttp.NewClient()
	rc.HTTPClient = httputils.NewClient(httputils.WithTimeout(10 * time.Second))
	rc.Logger = logger
	rc.RetryMax = 3
	rc.RetryWaitMin = 200 * time.Millisecond
	rc.RetryWaitMax = 2 * time.Second
	for _, op := range ops {
		op(rc)
	}
	return &Client{url: url, token: token, rc: rc}
}

type revalidateReq struct {
	Path string `json:"path"`
}

// RevalidatePaths requests revalidation of every path, stopping at the first
// path that still fails after retries.
func (c *Client) RevalidatePaths(ctx context.Context, paths []string) error {
	for _, p := range paths {
		if err := c.revalidatePath(ctx, p); err != nil {
			return errors.Wrapf(err, "revalidate path %q", p)
		}
	}
	return nil
}

func (c *Client) revalidatePath(ctx context.Context, path string) error {
	var body bytes.Buffer
	if err := json.Encode(&body, revalidateReq{Path: path}, ""); err != nil {
		return errors.Wrap(err, "encode request body")
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.url, body.Bytes())
	if err != nil {
		return errors.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.rc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return errors.Errorf("unexpected status code %d", resp.StatusCode)
	}
	return nil
}

// Nop is used when no downstream page cache is configured.
type Nop struct{}

// RevalidatePaths does nothing.
func (Nop) RevalidatePaths(context.Context, []string) error { return nil }
