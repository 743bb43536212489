package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yismin/EV-charging-tunisia/internal/api/handlers"
	"github.com/yismin/EV-charging-tunisia/internal/auth"
	"github.com/yismin/EV-charging-tunisia/internal/config"
	"github.com/yismin/EV-charging-tunisia/internal/metrics"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// RouterDeps bundles everything the HTTP surface needs. Handlers stay
// unaware of concrete adapters.
type RouterDeps struct {
	Chargers  ports.ChargerRepository
	Users     ports.UserRepository
	Reviews   ports.ReviewRepository
	Favorites ports.FavoriteRepository
	Trips     ports.TripRepository
	Routes    ports.RouteProvider
	Directory ports.ChargerDirectory
	Tokens    *auth.TokenIssuer
	Policy    config.PlannerPolicy
}

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root.
func NewRouter(deps RouterDeps) http.Handler {
	metrics.Register()

	mux := http.NewServeMux()

	authHandler := &handlers.AuthHandler{Users: deps.Users, Tokens: deps.Tokens}
	chargerHandler := &handlers.ChargerHandler{Repo: deps.Chargers, Policy: deps.Policy}
	reviewHandler := &handlers.ReviewHandler{Reviews: deps.Reviews, Chargers: deps.Chargers}
	favoriteHandler := &handlers.FavoriteHandler{Favorites: deps.Favorites, Chargers: deps.Chargers}
	userHandler := &handlers.UserHandler{Users: deps.Users, Policy: deps.Policy}
	tripHandler := &handlers.TripHandler{
		Trips:     deps.Trips,
		Users:     deps.Users,
		Routes:    deps.Routes,
		Directory: deps.Directory,
		Policy:    deps.Policy,
	}

	handle := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, h))
	}
	protected := func(pattern string, h http.HandlerFunc) {
		mux.Handle(pattern, instrument(pattern, authMiddleware(deps.Tokens, h)))
	}

	handle("GET /health", handlers.Health)
	mux.Handle("GET /metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	handle("POST /auth/register", authHandler.Register)
	handle("POST /auth/login", authHandler.Login)

	handle("GET /chargers", chargerHandler.List)
	handle("GET /chargers/search", chargerHandler.Search)
	handle("GET /chargers/nearby", chargerHandler.Nearby)
	handle("GET /chargers/{id}", chargerHandler.Get)

	handle("GET /chargers/{id}/reviews", reviewHandler.List)
	protected("POST /chargers/{id}/reviews", reviewHandler.Create)
	protected("POST /chargers/{id}/report", reviewHandler.Report)

	protected("GET /favorites", favoriteHandler.List)
	protected("POST /favorites/{id}", favoriteHandler.Add)
	protected("DELETE /favorites/{id}", favoriteHandler.Remove)

	protected("GET /users/me", userHandler.Me)
	protected("GET /users/me/vehicle", userHandler.GetVehicle)
	protected("PUT /users/me/vehicle", userHandler.PutVehicle)
	protected("GET /users/me/stats", userHandler.Stats)

	protected("POST /trips/plan", tripHandler.Plan)
	protected("GET /trips", tripHandler.History)

	return requestMiddleware(mux)
}
