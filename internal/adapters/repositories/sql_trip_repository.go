package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// SQL-backed implementation of the TripRepository port. Waypoints are
// stored as a JSON column; the history endpoint never filters on them.
type SQLTripRepository struct{ DB *sql.DB }

func NewSQLTripRepository(db *sql.DB) *SQLTripRepository {
	return &SQLTripRepository{DB: db}
}

func (s *SQLTripRepository) SaveTrip(ctx context.Context, t *domain.TripRecord) error {
	if s.DB == nil {
		return errors.New("trip repository: DB is nil")
	}

	waypoints := t.Waypoints
	if waypoints == nil {
		waypoints = []domain.TripWaypoint{}
	}
	payload, err := json.Marshal(waypoints)
	if err != nil {
		return fmt.Errorf("save trip: encode waypoints: %w", err)
	}

	feasible := 0
	if t.Feasible {
		feasible = 1
	}

	query := `
	INSERT INTO trips (
		trip_id,
		user_id,
		start_lat,
		start_lon,
		end_lat,
		end_lon,
		waypoints,
		total_distance_km,
		estimated_duration_min,
		feasible,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err = s.DB.ExecContext(ctx, query,
		t.ID, t.UserID, t.Start.Lat, t.Start.Lon, t.End.Lat, t.End.Lon,
		string(payload), t.TotalDistanceKm, t.EstimatedDurationMin, feasible, formatTime(t.CreatedAt))
	if err != nil {
		return fmt.Errorf("save trip: insert: %w", err)
	}

	return nil
}

// Return the user's trip history, newest first.
func (s *SQLTripRepository) ListUserTrips(ctx context.Context, userID string) ([]*domain.TripRecord, error) {
	if s.DB == nil {
		return nil, errors.New("trip repository: DB is nil")
	}

	query := `
	SELECT
		trip_id,
		user_id,
		start_lat,
		start_lon,
		end_lat,
		end_lon,
		waypoints,
		total_distance_km,
		estimated_duration_min,
		feasible,
		created_at
	FROM trips
	WHERE user_id = $1
	ORDER BY created_at DESC, trip_id;
	`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list trips: query trips table: %w", err)
	}
	defer rows.Close()

	trips := make([]*domain.TripRecord, 0, 16)
	for rows.Next() {
		var (
			t         domain.TripRecord
			waypoints string
			feasible  int
			created   string
		)
		err := rows.Scan(&t.ID, &t.UserID, &t.Start.Lat, &t.Start.Lon, &t.End.Lat, &t.End.Lon,
			&waypoints, &t.TotalDistanceKm, &t.EstimatedDurationMin, &feasible, &created)
		if err != nil {
			return nil, fmt.Errorf("list trips: scan row: %w", err)
		}
		if err := json.Unmarshal([]byte(waypoints), &t.Waypoints); err != nil {
			return nil, fmt.Errorf("list trips: trip %s: decode waypoints: %w", t.ID, err)
		}
		t.Feasible = feasible != 0
		if t.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("list trips: %w", err)
		}
		trips = append(trips, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list trips: row iteration: %w", err)
	}

	return trips, nil
}
