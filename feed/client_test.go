package feed

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zonesJSON = `[{"type": "sphere", "name": "core", "center": {"x": 0, "y": 0, "z": 0}, "radius": 50}]`

func newAPI(t *testing.T, zones http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc(DefaultPointsPath, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pointsJSON))
	})
	if zones != nil {
		mux.HandleFunc(DefaultZonesPath, zones)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func newTestClient(t *testing.T, srv *httptest.Server, opts ...ClientOption) *Client {
	t.Helper()
	log, _ := test.NewNullLogger()
	opts = append([]ClientOption{WithHTTPClient(srv.Client()), WithClientLogger(log)}, opts...)
	c, err := NewClient(srv.URL, opts...)
	require.NoError(t, err)
	return c
}

func TestClientFetch(t *testing.T) {
	srv, hits := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(zonesJSON))
	})
	c := newTestClient(t, srv)

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Points, 3)
	require.Len(t, snap.Zones, 1)
	assert.Equal(t, "core", snap.Zones[0].Name)
	assert.Equal(t, int32(1), hits.Load())
}

func TestClientZonesMissing(t *testing.T) {
	srv, _ := newAPI(t, nil)
	c := newTestClient(t, srv)

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err, "a 404 on zones is an empty zone list")
	assert.Len(t, snap.Points, 3)
	assert.Empty(t, snap.Zones)
}

func TestClientStatusError(t *testing.T) {
	srv, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})
	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrStatus)
	assert.Contains(t, err.Error(), "502")
}

func TestClientPointsMissing(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrStatus, "points are required")
}

func TestClientMalformed(t *testing.T) {
	srv, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "a list"}`))
	})
	c := newTestClient(t, srv)

	_, err := c.Fetch(context.Background())
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestClientCustomPaths(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/people", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"did": "x"}]`))
	})
	mux.HandleFunc("/v2/regions", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv, WithPaths("/v2/people", "/v2/regions"))

	snap, err := c.Fetch(context.Background())
	require.NoError(t, err)
	assert.Contains(t, snap.Points, "x")
}

func TestClientContextCancel(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })
	c := newTestClient(t, srv)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := c.Fetch(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	log, _ := test.NewNullLogger()
	c, err := NewClient(srv.URL,
		WithHTTPClient(&http.Client{Transport: srv.Client().Transport}),
		WithTimeout(50*time.Millisecond),
		WithClientLogger(log),
	)
	require.NoError(t, err)

	_, err = c.Fetch(context.Background())
	var ne net.Error
	require.ErrorAs(t, err, &ne)
	assert.True(t, ne.Timeout())
}

func TestNewClientRejectsBadURL(t *testing.T) {
	for _, u := range []string{"ftp://example.com", "::nope", "example.com"} {
		_, err := NewClient(u)
		assert.Error(t, err, u)
	}
}
