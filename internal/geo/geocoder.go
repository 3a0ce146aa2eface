package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"MindTrace/pkg/errors"
	"MindTrace/pkg/metrics"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultBaseURL is the public Nominatim instance.
const DefaultBaseURL = "https://nominatim.openstreetmap.org"

const cacheSize = 256

// Geocoder resolves coordinates to a display address. Lookups are
// best-effort: callers treat any error as "no address". Results are
// LRU-cached with coordinates rounded to four decimals (~11m), since SOS
// retriggers from the same spot are common.
type Geocoder struct {
	baseURL string
	http    *http.Client
	cache   *lru.Cache[string, string]
	met     *metrics.Metrics
}

func New(baseURL string) *Geocoder {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	cache, _ := lru.New[string, string](cacheSize)
	return &Geocoder{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
		cache:   cache,
		met:     metrics.Global(),
	}
}

type reverseResponse struct {
	DisplayName string `json:"display_name"`
}

// ReverseLookup returns a human-readable address for the coordinates.
func (g *Geocoder) ReverseLookup(ctx context.Context, lat, lng float64) (string, error) {
	key := fmt.Sprintf("%.4f,%.4f", lat, lng)
	if addr, ok := g.cache.Get(key); ok {
		g.met.GeocodeCacheHit()
		return addr, nil
	}
	g.met.GeocodeLookup()

	q := url.Values{}
	q.Set("format", "jsonv2")
	q.Set("lat", fmt.Sprintf("%f", lat))
	q.Set("lon", fmt.Sprintf("%f", lng))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"/reverse?"+q.Encode(), nil)
	if err != nil {
		return "", errors.WrapCode(errors.CodeGeocoding, err, "create reverse geocode request")
	}
	req.Header.Set("User-Agent", "MindTrace-client")

	resp, err := g.http.Do(req)
	if err != nil {
		return "", errors.WrapCode(errors.CodeGeocoding, err, "reverse geocode request failed")
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", errors.WithCodef(errors.CodeGeocoding, "reverse geocode status %d", resp.StatusCode)
	}

	var out reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", errors.WrapCode(errors.CodeGeocoding, err, "decode reverse geocode response")
	}
	if out.DisplayName == "" {
		return "", errors.WithCode(errors.CodeGeocoding, "no address for coordinates")
	}

	g.cache.Add(key, out.DisplayName)
	return out.DisplayName, nil
}
