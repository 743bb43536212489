package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/yismin/EV-charging-tunisia/internal/adapters/cache"
	"github.com/yismin/EV-charging-tunisia/internal/adapters/repositories"
	"github.com/yismin/EV-charging-tunisia/internal/adapters/routing"
	"github.com/yismin/EV-charging-tunisia/internal/api"
	"github.com/yismin/EV-charging-tunisia/internal/auth"
	"github.com/yismin/EV-charging-tunisia/internal/config"
	"github.com/yismin/EV-charging-tunisia/internal/platform/db"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// main is the application composition root. It wires concrete adapters
// (SQL storage, OpenRouteService, Redis) behind ports and starts the
// HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(level)
	} else {
		log.Warn().Str("level", cfg.LogLevel).Msg("unknown LOG_LEVEL, staying on info")
	}

	conn, err := db.Open(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("open database")
	}
	defer conn.Close()

	// Initialize schema and refresh the charger directory on startup so a
	// fresh checkout serves data immediately.
	if err := repositories.InitSchema(conn); err != nil {
		log.Fatal().Err(err).Msg("init schema")
	}
	if err := repositories.SeedFromJSON(context.Background(), conn, cfg.SeedPath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.SeedPath).Msg("seed chargers")
	}

	policy, err := config.LoadPolicy(cfg.PolicyPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load planner policy")
	}

	routes, closeCache, err := buildRouteProvider(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build route provider")
	}
	defer closeCache()

	chargerRepo := repositories.NewSQLChargerRepository(conn)
	router := api.NewRouter(api.RouterDeps{
		Chargers:  chargerRepo,
		Users:     repositories.NewSQLUserRepository(conn),
		Reviews:   repositories.NewSQLReviewRepository(conn),
		Favorites: repositories.NewSQLFavoriteRepository(conn),
		Trips:     repositories.NewSQLTripRepository(conn),
		Routes:    routes,
		Directory: chargerRepo,
		Tokens:    auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Policy:    policy,
	})

	// Write timeout leaves room for cold-cache trip planning, which may
	// wait on the routing provider.
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

// buildRouteProvider assembles the OpenRouteService client, wrapped in the
// Redis route cache when REDIS_URL is configured.
func buildRouteProvider(cfg *config.Config) (ports.RouteProvider, func(), error) {
	ors, err := routing.NewORSRouteProvider(cfg.ORSAPIKey)
	if err != nil {
		return nil, nil, err
	}
	if cfg.RedisURL == "" {
		return ors, func() {}, nil
	}

	routeCache, err := cache.NewRedisRouteCache(cfg.RedisURL, 24*time.Hour)
	if err != nil {
		return nil, nil, err
	}
	log.Info().Msg("redis route cache enabled")
	return routing.NewCachedRouteProvider(ors, routeCache), func() { _ = routeCache.Close() }, nil
}
