package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// SQL-backed implementation of the FavoriteRepository port.
type SQLFavoriteRepository struct{ DB *sql.DB }

func NewSQLFavoriteRepository(db *sql.DB) *SQLFavoriteRepository {
	return &SQLFavoriteRepository{DB: db}
}

// Save a charger to the user's favorites. Re-adding is a no-op.
func (s *SQLFavoriteRepository) AddFavorite(ctx context.Context, userID string, chargerID int64) error {
	if s.DB == nil {
		return errors.New("favorite repository: DB is nil")
	}

	query := `
	INSERT INTO favorites (
		user_id,
		charger_id,
		created_at
	)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id, charger_id) DO NOTHING;
	`
	_, err := s.DB.ExecContext(ctx, query, userID, chargerID, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}

	return nil
}

// Remove a charger from the user's favorites, failing with
// domain.ErrNotFound when it was never saved.
func (s *SQLFavoriteRepository) RemoveFavorite(ctx context.Context, userID string, chargerID int64) error {
	if s.DB == nil {
		return errors.New("favorite repository: DB is nil")
	}

	res, err := s.DB.ExecContext(ctx,
		"DELETE FROM favorites WHERE user_id = $1 AND charger_id = $2", userID, chargerID)
	if err != nil {
		return fmt.Errorf("remove favorite: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("remove favorite: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("remove favorite: charger %d: %w", chargerID, domain.ErrNotFound)
	}

	return nil
}

// Return the user's favorites with charger aggregates, oldest first.
func (s *SQLFavoriteRepository) ListFavorites(ctx context.Context, userID string) ([]*domain.ChargerSummary, error) {
	if s.DB == nil {
		return nil, errors.New("favorite repository: DB is nil")
	}

	query := "SELECT " + summaryColumns + summaryJoins + `
	JOIN favorites f ON f.charger_id = c.charger_id
	WHERE f.user_id = $1
	GROUP BY c.charger_id, f.created_at
	ORDER BY f.created_at, c.charger_id`

	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: query favorites table: %w", err)
	}
	defer rows.Close()

	summaries, err := collectSummaries(rows)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}

	return summaries, nil
}
