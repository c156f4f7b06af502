package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/lohith8088/UrbanFix-Backend/domain"
)

// NominatimGeocoder resolves street addresses through the OpenStreetMap
// Nominatim search API. Nominatim requires a User-Agent identifying the
// application.
type NominatimGeocoder struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

func NewNominatimGeocoder(baseURL, userAgent string) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = "https://nominatim.openstreetmap.org"
	}
	return &NominatimGeocoder{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *NominatimGeocoder) Geocode(ctx context.Context, address string) (*domain.Coordinates, error) {
	endpoint := fmt.Sprintf("%s/search?format=json&q=%s", g.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", g.userAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nominatim returned status %d", resp.StatusCode)
	}

	var results []struct {
		Lat string `json:"lat"`
		Lon string `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid latitude %q: %w", results[0].Lat, err)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid longitude %q: %w", results[0].Lon, err)
	}

	return &domain.Coordinates{Latitude: lat, Longitude: lon}, nil
}
