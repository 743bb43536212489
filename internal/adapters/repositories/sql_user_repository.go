package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// SQL-backed implementation of the UserRepository port.
type SQLUserRepository struct{ DB *sql.DB }

func NewSQLUserRepository(db *sql.DB) *SQLUserRepository {
	return &SQLUserRepository{DB: db}
}

// Store a new account. The email check and the insert are not atomic,
// so a racing duplicate surfaces as the UNIQUE constraint error instead
// of domain.ErrAlreadyExists.
func (s *SQLUserRepository) CreateUser(ctx context.Context, u *domain.User) error {
	if s.DB == nil {
		return errors.New("user repository: DB is nil")
	}

	email := strings.ToLower(strings.TrimSpace(u.Email))
	if email == "" {
		return fmt.Errorf("create user: %w: email must not be empty", domain.ErrInvalidInput)
	}

	var taken int
	err := s.DB.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM users WHERE email = $1", email).Scan(&taken)
	if err != nil {
		return fmt.Errorf("create user: check email: %w", err)
	}
	if taken > 0 {
		return fmt.Errorf("create user: %w: email already registered", domain.ErrAlreadyExists)
	}

	query := `
	INSERT INTO users (
		user_id,
		email,
		password_hash,
		role,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5);
	`
	_, err = s.DB.ExecContext(ctx, query, u.ID, email, u.PasswordHash, u.Role, formatTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("create user: insert: %w", err)
	}

	return nil
}

func (s *SQLUserRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUserBy(ctx, "user_id = $1", id)
}

func (s *SQLUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.getUserBy(ctx, "email = $1", strings.ToLower(strings.TrimSpace(email)))
}

func (s *SQLUserRepository) getUserBy(ctx context.Context, cond string, arg any) (*domain.User, error) {
	if s.DB == nil {
		return nil, errors.New("user repository: DB is nil")
	}

	query := `
	SELECT
		user_id,
		email,
		password_hash,
		role,
		created_at
	FROM users
	WHERE ` + cond

	var (
		u       domain.User
		created string
	)
	err := s.DB.QueryRowContext(ctx, query, arg).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get user: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get user: scan row: %w", err)
	}

	if u.CreatedAt, err = parseTime(created); err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}

	return &u, nil
}

// Store the user's single vehicle record, replacing any earlier one.
func (s *SQLUserRepository) UpsertVehicle(ctx context.Context, v *domain.Vehicle) error {
	if s.DB == nil {
		return errors.New("user repository: DB is nil")
	}

	query := `
	INSERT INTO vehicles (
		user_id,
		connector,
		range_km,
		charge_rate_km_per_min
	)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (user_id) DO UPDATE SET
		connector = excluded.connector,
		range_km = excluded.range_km,
		charge_rate_km_per_min = excluded.charge_rate_km_per_min;
	`
	_, err := s.DB.ExecContext(ctx, query, v.UserID, string(v.Connector), v.RangeKm, v.ChargeRateKmPerMin)
	if err != nil {
		return fmt.Errorf("upsert vehicle: %w", err)
	}

	return nil
}

func (s *SQLUserRepository) GetVehicle(ctx context.Context, userID string) (*domain.Vehicle, error) {
	if s.DB == nil {
		return nil, errors.New("user repository: DB is nil")
	}

	query := `
	SELECT
		user_id,
		connector,
		range_km,
		charge_rate_km_per_min
	FROM vehicles
	WHERE user_id = $1;
	`

	var (
		v         domain.Vehicle
		connector string
	)
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(&v.UserID, &connector, &v.RangeKm, &v.ChargeRateKmPerMin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get vehicle: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get vehicle: scan row: %w", err)
	}
	v.Connector = domain.ConnectorType(connector)

	return &v, nil
}

// Aggregate the user's activity counters. Distinct $N placeholders are
// required even for the same value, so the id is passed five times.
func (s *SQLUserRepository) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	if s.DB == nil {
		return nil, errors.New("user repository: DB is nil")
	}

	query := `
	SELECT
		(SELECT COUNT(*) FROM trips WHERE user_id = $1) AS trips,
		(SELECT COUNT(*) FROM reviews WHERE user_id = $2) AS reviews,
		(SELECT COUNT(*) FROM favorites WHERE user_id = $3) AS favorites,
		(SELECT COUNT(*) FROM reports WHERE user_id = $4) AS reports,
		(SELECT COALESCE(SUM(total_distance_km), 0) FROM trips WHERE user_id = $5) AS total_distance_km;
	`

	var stats domain.UserStats
	err := s.DB.QueryRowContext(ctx, query, userID, userID, userID, userID, userID).
		Scan(&stats.Trips, &stats.Reviews, &stats.Favorites, &stats.Reports, &stats.TotalDistanceKm)
	if err != nil {
		return nil, fmt.Errorf("get stats: scan row: %w", err)
	}

	return &stats, nil
}

// Timestamps are stored as RFC 3339 text so the column reads the same
// under both drivers.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", s, err)
	}
	return t, nil
}
