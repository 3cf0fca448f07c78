package geocoder_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"agrilogistics/internal/adapters/out/geocoder"
	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string]ports.GeocodeResult
}

func (c *mapCache) Get(_ context.Context, address string) (ports.GeocodeResult, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.data[address]
	return r, ok, nil
}

func (c *mapCache) Set(_ context.Context, address string, result ports.GeocodeResult) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[address] = result
	return nil
}

func newClient(baseURL string, cache geocoder.Cache) *geocoder.Nominatim {
	cfg := geocoder.DefaultConfig()
	cfg.BaseURL = baseURL
	cfg.RequestsPerSecond = 1000
	cfg.Timeout = 2 * time.Second
	return geocoder.NewNominatim(cfg, cache, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestNominatim_Geocode(t *testing.T) {
	var gotQuery, gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		gotQuery = r.URL.Query().Get("q")
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		gotAgent = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, `[{"lat":"29.6857","lon":"76.9905","display_name":"Karnal, Haryana, India"}]`)
	}))
	defer server.Close()

	result, err := newClient(server.URL, nil).Geocode(t.Context(), " Karnal, Haryana ")

	require.NoError(t, err)
	assert.Equal(t, "Karnal, Haryana", gotQuery)
	assert.Equal(t, geocoder.DefaultUserAgent, gotAgent)
	assert.InDelta(t, 29.6857, result.Location.Lat(), 1e-9)
	assert.InDelta(t, 76.9905, result.Location.Lng(), 1e-9)
	assert.Equal(t, "Karnal, Haryana, India", result.DisplayName)
}

func TestNominatim_Geocode_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = io.WriteString(w, `[]`)
	}))
	defer server.Close()

	_, err := newClient(server.URL, nil).Geocode(t.Context(), "Atlantis")

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestNominatim_Geocode_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}},
		{"rate limited", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}},
		{"garbage body", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `<html>`)
		}},
		{"malformed coordinates", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = io.WriteString(w, `[{"lat":"north","lon":"76.99"}]`)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			_, err := newClient(server.URL, nil).Geocode(t.Context(), "Karnal")

			require.ErrorIs(t, err, ports.ErrUpstreamUnavailable)
		})
	}
}

func TestNominatim_Geocode_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	_, err := newClient(baseURL, nil).Geocode(t.Context(), "Karnal")

	require.ErrorIs(t, err, ports.ErrUpstreamUnavailable)
}

func TestNominatim_Geocode_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := newClient("http://127.0.0.1:1", nil).Geocode(ctx, "Karnal")

	require.ErrorIs(t, err, ports.ErrUpstreamUnavailable)
}

func TestNominatim_Geocode_EmptyAddress(t *testing.T) {
	_, err := newClient("http://127.0.0.1:1", nil).Geocode(t.Context(), "  ")

	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNominatim_Geocode_UsesCache(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = io.WriteString(w, `[{"lat":"28.7041","lon":"77.1025","display_name":"Delhi"}]`)
	}))
	defer server.Close()

	cache := &mapCache{data: map[string]ports.GeocodeResult{}}
	client := newClient(server.URL, cache)

	first, err := client.Geocode(t.Context(), "Delhi")
	require.NoError(t, err)
	second, err := client.Geocode(t.Context(), "Delhi")
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, first, second)

	seeded, err := kernel.NewLocation(1, 2)
	require.NoError(t, err)
	require.NoError(t, cache.Set(t.Context(), "Somewhere", ports.GeocodeResult{Location: seeded}))
	got, err := client.Geocode(t.Context(), "Somewhere")
	require.NoError(t, err)
	assert.True(t, got.Location.IsEqual(seeded))
	assert.Equal(t, int32(1), calls.Load())
}
