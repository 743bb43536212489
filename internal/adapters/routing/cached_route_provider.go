package routing

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/metrics"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// CachedRouteProvider consults the route cache before the wrapped provider.
// Cache failures degrade to an upstream call instead of failing the request.
type CachedRouteProvider struct {
	inner ports.RouteProvider
	cache ports.RouteCache
}

func NewCachedRouteProvider(inner ports.RouteProvider, cache ports.RouteCache) *CachedRouteProvider {
	return &CachedRouteProvider{inner: inner, cache: cache}
}

func (p *CachedRouteProvider) GetRoute(ctx context.Context, origin, destination domain.Coordinate) (domain.RoutePolyline, error) {
	route, ok, err := p.cache.Get(ctx, origin, destination)
	switch {
	case err != nil:
		metrics.RouteCacheLookups.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("route cache read failed")
	case ok:
		metrics.RouteCacheLookups.WithLabelValues("hit").Inc()
		return route, nil
	default:
		metrics.RouteCacheLookups.WithLabelValues("miss").Inc()
	}

	route, err = p.inner.GetRoute(ctx, origin, destination)
	if err != nil {
		return domain.RoutePolyline{}, err
	}

	if err := p.cache.Put(ctx, origin, destination, route); err != nil {
		log.Warn().Err(err).Msg("route cache write failed")
	}
	return route, nil
}
