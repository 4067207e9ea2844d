// Package upstream implements the catalog source adapter: an HTTP client for
// the third-party product catalog API. It is the only layer that sees the
// upstream wire format; everything it returns is domain-shaped.
package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-faster/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/catalog-gateway/internal/catalog"
	"github.com/xenking/catalog-gateway/pkg/httpmiddleware"
)

// fetchConcurrency bounds parallel page fetches within a single FetchAll.
const fetchConcurrency = 4

// Config holds the upstream connection settings.
type Config struct {
	// BaseURL is the root of the upstream API, e.g. https://dummyjson.com.
	BaseURL string
	// Timeout bounds every single upstream request.
	Timeout time.Duration
	// PageSize is the limit parameter used for bulk fetches.
	PageSize int
}

// Compile-time check ensuring Client satisfies the catalog source contract.
var _ catalog.Source = (*Client)(nil)

// Client fetches catalog records over HTTP. Outbound requests are
// instrumented with otelhttp and bounded by the configured timeout.
type Client struct {
	cfg  Config
	http *http.Client
}

// NewClient constructs a Client for the given upstream.
func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 100
	}
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

// FetchAll returns the full catalog. When search is non-empty it is passed
// upstream as a server-side pre-filter; callers still apply their own filter
// to the result. Catalogs larger than one upstream page are assembled from
// concurrent page fetches, preserving upstream order.
func (c *Client) FetchAll(ctx context.Context, search string) ([]catalog.Product, error) {
	size := c.cfg.PageSize

	first, total, err := c.fetchPage(ctx, search, 0)
	if err != nil {
		return nil, err
	}
	if total <= len(first) {
		return first, nil
	}

	pages := (total + size - 1) / size
	chunks := make([][]catalog.Product, pages)
	chunks[0] = first

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fetchConcurrency)
	for i := 1; i < pages; i++ {
		g.Go(func() error {
			products, _, err := c.fetchPage(gctx, search, i*size)
			if err != nil {
				return errors.Wrapf(err, "page %d", i)
			}
			chunks[i] = products
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]catalog.Product, 0, total)
	for _, chunk := range chunks {
		out = append(out, chunk...)
	}
	return out, nil
}

// FetchByID returns a single record. A missing id maps to catalog.ErrNotFound;
// any other non-success status is a transport failure carrying the status for
// diagnostics.
func (c *Client) FetchByID(ctx context.Context, id int) (*catalog.Product, error) {
	body, status, err := c.get(ctx, fmt.Sprintf("%s/products/%d", c.cfg.BaseURL, id))
	if err != nil {
		return nil, err
	}
	switch {
	case status == http.StatusNotFound:
		return nil, errors.Wrapf(catalog.ErrNotFound, "product %d", id)
	case status != http.StatusOK:
		return nil, errors.Errorf("upstream status %d", status)
	}

	p, err := decodeProductPayload(body)
	if err != nil {
		return nil, errors.Wrapf(err, "decode product %d", id)
	}
	return p, nil
}

// Ping performs a minimal catalog fetch, for readiness probing.
func (c *Client) Ping(ctx context.Context) error {
	_, status, err := c.get(ctx, c.listURL("", 1, 0))
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return errors.Errorf("upstream status %d", status)
	}
	return nil
}

// fetchPage fetches one upstream page starting at skip and returns the
// mapped records together with the upstream total.
func (c *Client) fetchPage(ctx context.Context, search string, skip int) ([]catalog.Product, int, error) {
	body, status, err := c.get(ctx, c.listURL(search, c.cfg.PageSize, skip))
	if err != nil {
		return nil, 0, err
	}
	if status != http.StatusOK {
		return nil, 0, errors.Errorf("upstream status %d", status)
	}

	products, total, err := decodeListPayload(body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "decode list payload")
	}
	return products, total, nil
}

func (c *Client) listURL(search string, limit, skip int) string {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(limit))
	q.Set("skip", fmt.Sprint(skip))

	path := "/products"
	if search != "" {
		path = "/products/search"
		q.Set("q", search)
	}
	return c.cfg.BaseURL + path + "?" + q.Encode()
}

// get performs one timeout-bounded GET and returns the body and status.
// The inbound request id, when present, is propagated upstream.
func (c *Client) get(ctx context.Context, u string) ([]byte, int, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, 0, errors.Wrap(err, "build request")
	}
	if id := httpmiddleware.RequestIDFromContext(ctx); id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(err, "upstream request")
	}
	defer func() {
		_ = res.Body.Close()
	}()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, 0, errors.Wrap(err, "read upstream body")
	}
	return body, res.StatusCode, nil
}
