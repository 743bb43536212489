package ports

import (
	"context"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// Contract for retrieving drivable route geometry between two coordinates.
type RouteProvider interface {
	// GetRoute returns the route polyline from origin to destination.
	GetRoute(ctx context.Context, origin, destination domain.Coordinate) (domain.RoutePolyline, error)
}

// RouteCache stores provider polylines at the collaborator boundary so
// repeated plans over the same pair skip the upstream call.
type RouteCache interface {
	// Get returns the cached polyline and whether it was present.
	Get(ctx context.Context, origin, destination domain.Coordinate) (domain.RoutePolyline, bool, error)

	// Put stores the polyline for the pair.
	Put(ctx context.Context, origin, destination domain.Coordinate, route domain.RoutePolyline) error
}
