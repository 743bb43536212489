package routing

import (
	"context"
	"fmt"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// MockRoutePair fixes the polyline returned for one origin/destination pair.
type MockRoutePair struct {
	Origin      domain.Coordinate
	Destination domain.Coordinate
	Route       domain.RoutePolyline
}

// MockRouteProvider serves canned polylines for tests and offline runs.
type MockRouteProvider struct {
	routes map[string]domain.RoutePolyline
}

func NewMockRouteProvider(pairs []MockRoutePair) *MockRouteProvider {
	routes := make(map[string]domain.RoutePolyline, len(pairs))
	for _, p := range pairs {
		routes[pairKey(p.Origin, p.Destination)] = p.Route
	}
	return &MockRouteProvider{routes: routes}
}

func (m *MockRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate) (domain.RoutePolyline, error) {
	route, ok := m.routes[pairKey(origin, destination)]
	if !ok {
		return domain.RoutePolyline{}, &domain.ProviderError{
			Provider: "mock",
			Kind:     domain.ProviderUnavailable,
			Err:      fmt.Errorf("no canned route from %v to %v", origin, destination),
		}
	}
	return route, nil
}

func pairKey(a, b domain.Coordinate) string {
	return fmt.Sprintf("%.6f,%.6f|%.6f,%.6f", a.Lat, a.Lon, b.Lat, b.Lon)
}
