package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/reverie-spectrum/parameter"
	"github.com/lixenwraith/reverie-spectrum/spectrum"
)

// ErrStatus is returned for a non-2xx response
var ErrStatus = errors.New("unexpected status")

// Default endpoint paths relative to the API base URL
const (
	DefaultPointsPath = "/api/spectrum/dreamers"
	DefaultZonesPath  = "/api/spectrum/zones"

	maxBody = 16 << 20
)

// Source produces complete datasets
type Source interface {
	Fetch(ctx context.Context) (Snapshot, error)
}

// Client fetches datasets from the community HTTP JSON API
type Client struct {
	base       *url.URL
	http       *http.Client
	pointsPath string
	zonesPath  string
	log        logrus.FieldLogger
}

// ClientOption configures a Client
type ClientOption func(*Client)

// WithHTTPClient replaces the transport, default has FetchTimeout
func WithHTTPClient(h *http.Client) ClientOption {
	return func(c *Client) { c.http = h }
}

// WithTimeout bounds each request, including body read
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithPaths overrides the endpoint paths
func WithPaths(points, zones string) ClientOption {
	return func(c *Client) {
		c.pointsPath, c.zonesPath = points, zones
	}
}

// WithClientLogger sets the logger
func WithClientLogger(l logrus.FieldLogger) ClientOption {
	return func(c *Client) { c.log = l }
}

// NewClient creates a client for the API rooted at baseURL
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", baseURL)
	}

	c := &Client{
		base:       u,
		http:       &http.Client{Timeout: parameter.FetchTimeout},
		pointsPath: DefaultPointsPath,
		zonesPath:  DefaultZonesPath,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Fetch retrieves points and zones concurrently
// A missing zones endpoint (404) yields an empty zone list
func (c *Client) Fetch(ctx context.Context) (Snapshot, error) {
	var (
		points map[string]spectrum.PointInput
		zones  []spectrum.Zone
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		body, err := c.get(gctx, c.pointsPath)
		if err != nil {
			return fmt.Errorf("fetch points: %w", err)
		}
		points, err = DecodePoints(body, c.log)
		return err
	})
	g.Go(func() error {
		body, err := c.get(gctx, c.zonesPath)
		if errors.Is(err, errNotFound) {
			c.log.WithField("path", c.zonesPath).Debug("zones endpoint absent")
			return nil
		}
		if err != nil {
			return fmt.Errorf("fetch zones: %w", err)
		}
		zones, err = DecodeZones(body, c.log)
		return err
	})
	if err := g.Wait(); err != nil {
		return Snapshot{}, err
	}

	return Snapshot{Points: points, Zones: zones, FetchedAt: time.Now()}, nil
}

var errNotFound = fmt.Errorf("%w: 404", ErrStatus)

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("parse path %q: %w", path, err)
	}
	target := c.base.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, errNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d from %s", ErrStatus, resp.StatusCode, target.Path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	return body, nil
}
