// Package geocoder resolves free-text addresses through the OpenStreetMap
// Nominatim search API. Requests are throttled to the public usage policy
// and successful lookups can be cached.
package geocoder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"agrilogistics/internal/core/domain/model/kernel"
	"agrilogistics/internal/core/ports"
	"agrilogistics/internal/pkg/errs"

	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "agrilogistics-allocation/1.0"
)

// Cache stores resolved addresses. Get reports a miss with ok == false.
type Cache interface {
	Get(ctx context.Context, address string) (result ports.GeocodeResult, ok bool, err error)
	Set(ctx context.Context, address string, result ports.GeocodeResult) error
}

type Config struct {
	BaseURL   string
	UserAgent string
	// RequestsPerSecond is the outbound rate; Nominatim allows one.
	RequestsPerSecond float64
	Timeout           time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL:           DefaultBaseURL,
		UserAgent:         DefaultUserAgent,
		RequestsPerSecond: 1,
		Timeout:           10 * time.Second,
	}
}

var _ ports.Geocoder = (*Nominatim)(nil)

type Nominatim struct {
	cfg     Config
	client  *http.Client
	limiter *rate.Limiter
	cache   Cache
	logger  *slog.Logger
}

// NewNominatim creates a client. cache may be nil.
func NewNominatim(cfg Config, cache Cache, logger *slog.Logger) *Nominatim {
	return &Nominatim{
		cfg:     cfg,
		client:  &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
		cache:   cache,
		logger:  logger.With("component", "nominatim"),
	}
}

type searchHit struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

// Geocode implements ports.Geocoder.
func (n *Nominatim) Geocode(ctx context.Context, address string) (ports.GeocodeResult, error) {
	address = strings.TrimSpace(address)
	if address == "" {
		return ports.GeocodeResult{}, errs.NewValueIsRequiredError("address")
	}

	if n.cache != nil {
		cached, ok, err := n.cache.Get(ctx, address)
		if err != nil {
			n.logger.WarnContext(ctx, "Geocode cache read failed", "error", err)
		} else if ok {
			return cached, nil
		}
	}

	result, err := n.search(ctx, address)
	if err != nil {
		return ports.GeocodeResult{}, err
	}

	if n.cache != nil {
		if err = n.cache.Set(ctx, address, result); err != nil {
			n.logger.WarnContext(ctx, "Geocode cache write failed", "error", err)
		}
	}
	return result, nil
}

func (n *Nominatim) search(ctx context.Context, address string) (ports.GeocodeResult, error) {
	if err := n.limiter.Wait(ctx); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("%w: rate limiter: %w", ports.ErrUpstreamUnavailable, err)
	}

	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.cfg.BaseURL+"/search?"+query.Encode(), nil)
	if err != nil {
		return ports.GeocodeResult{}, err
	}
	req.Header.Set("User-Agent", n.cfg.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("%w: nominatim: %w", ports.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.GeocodeResult{}, fmt.Errorf("%w: nominatim returned %s", ports.ErrUpstreamUnavailable, resp.Status)
	}

	var hits []searchHit
	if err = json.NewDecoder(resp.Body).Decode(&hits); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("%w: decode nominatim response: %w", ports.ErrUpstreamUnavailable, err)
	}
	if len(hits) == 0 {
		return ports.GeocodeResult{}, errs.NewObjectNotFoundError("address", address)
	}

	return hits[0].toResult()
}

func (h searchHit) toResult() (ports.GeocodeResult, error) {
	lat, latErr := strconv.ParseFloat(h.Lat, 64)
	lng, lngErr := strconv.ParseFloat(h.Lon, 64)
	if err := errors.Join(latErr, lngErr); err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("%w: malformed coordinates: %w", ports.ErrUpstreamUnavailable, err)
	}

	loc, err := kernel.NewLocation(lat, lng)
	if err != nil {
		return ports.GeocodeResult{}, fmt.Errorf("%w: %w", ports.ErrUpstreamUnavailable, err)
	}
	return ports.GeocodeResult{Location: loc, DisplayName: h.DisplayName}, nil
}
