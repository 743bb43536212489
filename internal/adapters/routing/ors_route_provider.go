package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/geo"
	"github.com/yismin/EV-charging-tunisia/internal/platform/obs"
)

// ORSRouteProvider implements ports.RouteProvider against the OpenRouteService
// directions API. It handles request signing, retry with backoff on transient
// failures, and decoding the GeoJSON response into a route polyline. Safe for
// concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
}

func NewORSRouteProvider(apiKey string) (*ORSRouteProvider, error) {
	if apiKey == "" {
		return nil, errors.New("new ors route provider: api key is empty")
	}
	return &ORSRouteProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
	}, nil
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"` // meters
				Duration float64 `json:"duration"` // seconds
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// GetRoute fetches the driving route between the two coordinates.
func (o *ORSRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate) (_ domain.RoutePolyline, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	if err := origin.Validate(); err != nil {
		return domain.RoutePolyline{}, fmt.Errorf("get route: origin: %w", err)
	}
	if err := destination.Validate(); err != nil {
		return domain.RoutePolyline{}, fmt.Errorf("get route: destination: %w", err)
	}

	payload, err := json.Marshal(directionsRequest{
		Coordinates: [][]float64{origin.LonLat(), destination.LonLat()},
	})
	if err != nil {
		return domain.RoutePolyline{}, fmt.Errorf("get route: encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return domain.RoutePolyline{}, providerErr(classify(err), fmt.Errorf("directions request: %w", err))
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.RoutePolyline{}, providerErr(domain.ProviderMalformedResponse, fmt.Errorf("decode directions response: %w", err))
	}

	route, err := buildPolyline(decoded)
	if err != nil {
		return domain.RoutePolyline{}, providerErr(domain.ProviderMalformedResponse, err)
	}
	return route, nil
}

// buildPolyline converts the GeoJSON geometry into legs between consecutive
// vertices. The provider reports road distance only in total, so per-leg
// distances scale the geometric spacing to match the summary, and durations
// follow distance proportionally.
func buildPolyline(decoded directionsResponse) (domain.RoutePolyline, error) {
	if len(decoded.Features) == 0 {
		return domain.RoutePolyline{}, errors.New("directions response has no features")
	}
	feature := decoded.Features[0]
	if len(feature.Geometry.Coordinates) < 2 {
		return domain.RoutePolyline{}, errors.New("directions geometry has fewer than two points")
	}

	points := make([]domain.Coordinate, 0, len(feature.Geometry.Coordinates))
	for _, pair := range feature.Geometry.Coordinates {
		if len(pair) < 2 {
			return domain.RoutePolyline{}, errors.New("directions geometry has a malformed coordinate pair")
		}
		points = append(points, domain.Coordinate{Lat: pair[1], Lon: pair[0]})
	}

	geomKm := make([]float64, len(points)-1)
	geomTotal := 0.0
	for i := 1; i < len(points); i++ {
		geomKm[i-1] = geo.DistanceKm(points[i-1], points[i])
		geomTotal += geomKm[i-1]
	}

	summaryKm := feature.Properties.Summary.Distance / 1000
	summaryMinutes := feature.Properties.Summary.Duration / 60

	scale := 1.0
	if geomTotal > 0 && summaryKm > 0 {
		scale = summaryKm / geomTotal
	}

	legs := make([]domain.RouteLeg, len(geomKm))
	for i, d := range geomKm {
		distKm := d * scale
		var durationMinutes float64
		if summaryKm > 0 {
			durationMinutes = summaryMinutes * distKm / summaryKm
		}
		legs[i] = domain.RouteLeg{
			From:            points[i],
			To:              points[i+1],
			DistanceKm:      distKm,
			DurationMinutes: durationMinutes,
		}
	}
	return domain.RoutePolyline{Legs: legs}, nil
}
