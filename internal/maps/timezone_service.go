package maps

import (
	"context"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// TimezoneService resolves coordinates to IANA timezone IDs via the
// Google Maps Time Zone API. Lots store the resolved ID; quoting never
// calls out here.
type TimezoneService struct {
	client *maps.Client
}

// NewTimezoneService creates a new TimezoneService with the given API key.
func NewTimezoneService(apiKey string) (*TimezoneService, error) {
	client, err := maps.NewClient(maps.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return &TimezoneService{client: client}, nil
}

// ResolveTimezone returns the IANA timezone ID for a coordinate pair.
func (s *TimezoneService) ResolveTimezone(ctx context.Context, lat, lng float64) (string, error) {
	r := &maps.TimezoneRequest{
		Location:  &maps.LatLng{Lat: lat, Lng: lng},
		Timestamp: time.Now(),
	}
	resp, err := s.client.Timezone(ctx, r)
	if err != nil {
		return "", fmt.Errorf("maps api error: %w", err)
	}
	if resp.TimeZoneID == "" {
		return "", fmt.Errorf("no timezone found for %f,%f", lat, lng)
	}
	return resp.TimeZoneID, nil
}
