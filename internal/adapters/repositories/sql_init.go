package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// Initialize the database schema. Statements stick to the syntax both
// SQLite and PostgreSQL accept, so the same schema serves either driver.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createChargersQuery := `
	CREATE TABLE IF NOT EXISTS chargers (
		charger_id BIGINT PRIMARY KEY,
		name TEXT NOT NULL,
		city TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL,
		lon DOUBLE PRECISION NOT NULL,
		usage_type TEXT NOT NULL DEFAULT '',
		connectors TEXT NOT NULL DEFAULT '[]',
		status TEXT NOT NULL DEFAULT 'unknown'
	);
	`

	createUsersQuery := `
	CREATE TABLE IF NOT EXISTS users (
		user_id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'member',
		created_at TEXT NOT NULL
	);
	`

	createVehiclesQuery := `
	CREATE TABLE IF NOT EXISTS vehicles (
		user_id TEXT PRIMARY KEY REFERENCES users(user_id),
		connector TEXT NOT NULL,
		range_km DOUBLE PRECISION NOT NULL,
		charge_rate_km_per_min DOUBLE PRECISION NOT NULL DEFAULT 0
	);
	`

	createReviewsQuery := `
	CREATE TABLE IF NOT EXISTS reviews (
		review_id TEXT PRIMARY KEY,
		charger_id BIGINT NOT NULL REFERENCES chargers(charger_id),
		user_id TEXT NOT NULL REFERENCES users(user_id),
		rating INTEGER NOT NULL,
		comment TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		UNIQUE (user_id, charger_id)
	);
	`

	createReportsQuery := `
	CREATE TABLE IF NOT EXISTS reports (
		report_id TEXT PRIMARY KEY,
		charger_id BIGINT NOT NULL REFERENCES chargers(charger_id),
		user_id TEXT NOT NULL REFERENCES users(user_id),
		issue_type TEXT NOT NULL,
		description TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createFavoritesQuery := `
	CREATE TABLE IF NOT EXISTS favorites (
		user_id TEXT NOT NULL REFERENCES users(user_id),
		charger_id BIGINT NOT NULL REFERENCES chargers(charger_id),
		created_at TEXT NOT NULL,
		PRIMARY KEY (user_id, charger_id)
	);
	`

	createTripsQuery := `
	CREATE TABLE IF NOT EXISTS trips (
		trip_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL REFERENCES users(user_id),
		start_lat DOUBLE PRECISION NOT NULL,
		start_lon DOUBLE PRECISION NOT NULL,
		end_lat DOUBLE PRECISION NOT NULL,
		end_lon DOUBLE PRECISION NOT NULL,
		waypoints TEXT NOT NULL DEFAULT '[]',
		total_distance_km DOUBLE PRECISION NOT NULL,
		estimated_duration_min DOUBLE PRECISION NOT NULL,
		feasible INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	`

	createChargerCityIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_chargers_city ON chargers(city);
	`

	createChargerLocationIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_chargers_location ON chargers(lat, lon);
	`

	createReviewChargerIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_reviews_charger ON reviews(charger_id);
	`

	createReportChargerIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_reports_charger ON reports(charger_id);
	`

	createTripUserIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_trips_user_created ON trips(user_id, created_at);
	`

	statements := []string{
		createChargersQuery,
		createUsersQuery,
		createVehiclesQuery,
		createReviewsQuery,
		createReportsQuery,
		createFavoritesQuery,
		createTripsQuery,
		createChargerCityIndexQuery,
		createChargerLocationIndexQuery,
		createReviewChargerIndexQuery,
		createReportChargerIndexQuery,
		createTripUserIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type ChargerSeed struct {
	ID         int64    `json:"id"`
	Name       string   `json:"name"`
	City       string   `json:"city"`
	Latitude   float64  `json:"latitude"`
	Longitude  float64  `json:"longitude"`
	UsageType  string   `json:"usage_type"`
	Connectors []string `json:"connectors"`
	Status     string   `json:"status"`
}

// Populate the chargers table from a JSON seed file. Existing entries
// with the same id are refreshed, so re-seeding is safe.
func SeedFromJSON(ctx context.Context, db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed chargers: read %q: %w", jsonPath, err)
	}

	var data []ChargerSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed chargers: parse json: %w", err)
	}

	chargers := make([]*domain.Charger, 0, len(data))
	for i, item := range data {
		if item.ID <= 0 {
			return fmt.Errorf("seed chargers: invalid id at index %d: %d", i+1, item.ID)
		}

		name := strings.TrimSpace(item.Name)
		if name == "" {
			return fmt.Errorf("seed chargers: item at index %d: name cannot be empty", i+1)
		}

		loc := domain.Coordinate{Lat: item.Latitude, Lon: item.Longitude}
		if err := loc.Validate(); err != nil {
			return fmt.Errorf("seed chargers: item at index %d: %w", i+1, err)
		}

		status := domain.StatusUnknown
		if item.Status != "" {
			status, err = domain.ParseChargerStatus(item.Status)
			if err != nil {
				return fmt.Errorf("seed chargers: item at index %d: %w", i+1, err)
			}
		}

		connectors := make([]domain.ConnectorType, 0, len(item.Connectors))
		for _, raw := range item.Connectors {
			ct, err := domain.ParseConnectorType(raw)
			if err != nil {
				return fmt.Errorf("seed chargers: item at index %d: %w", i+1, err)
			}
			connectors = append(connectors, ct)
		}
		if len(connectors) == 0 {
			connectors = []domain.ConnectorType{domain.ConnectorType2}
		}

		chargers = append(chargers, &domain.Charger{
			ID:         item.ID,
			Name:       name,
			City:       strings.TrimSpace(item.City),
			Location:   loc,
			UsageType:  strings.TrimSpace(item.UsageType),
			Connectors: connectors,
			Status:     status,
		})
	}

	if err := NewSQLChargerRepository(db).UpsertChargers(ctx, chargers); err != nil {
		return fmt.Errorf("seed chargers: %w", err)
	}

	return nil
}
