package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// SQL-backed implementation of the ReviewRepository port.
type SQLReviewRepository struct{ DB *sql.DB }

func NewSQLReviewRepository(db *sql.DB) *SQLReviewRepository {
	return &SQLReviewRepository{DB: db}
}

// Store the user's review of a charger. A resubmission replaces the
// earlier rating and comment but keeps the original review id.
func (s *SQLReviewRepository) UpsertReview(ctx context.Context, r *domain.Review) error {
	if s.DB == nil {
		return errors.New("review repository: DB is nil")
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("upsert review: %w", err)
	}

	query := `
	INSERT INTO reviews (
		review_id,
		charger_id,
		user_id,
		rating,
		comment,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (user_id, charger_id) DO UPDATE SET
		rating = excluded.rating,
		comment = excluded.comment,
		created_at = excluded.created_at;
	`
	_, err := s.DB.ExecContext(ctx, query,
		r.ID, r.ChargerID, r.UserID, r.Rating, r.Comment, formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("upsert review: %w", err)
	}

	return nil
}

// Return a charger's reviews, newest first.
func (s *SQLReviewRepository) ListChargerReviews(ctx context.Context, chargerID int64) ([]*domain.Review, error) {
	if s.DB == nil {
		return nil, errors.New("review repository: DB is nil")
	}

	query := `
	SELECT
		review_id,
		charger_id,
		user_id,
		rating,
		comment,
		created_at
	FROM reviews
	WHERE charger_id = $1
	ORDER BY created_at DESC, review_id;
	`

	rows, err := s.DB.QueryContext(ctx, query, chargerID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: query reviews table: %w", err)
	}
	defer rows.Close()

	reviews := make([]*domain.Review, 0, 16)
	for rows.Next() {
		var (
			r       domain.Review
			created string
		)
		err := rows.Scan(&r.ID, &r.ChargerID, &r.UserID, &r.Rating, &r.Comment, &created)
		if err != nil {
			return nil, fmt.Errorf("list reviews: scan row: %w", err)
		}
		if r.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("list reviews: %w", err)
		}
		reviews = append(reviews, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list reviews: row iteration: %w", err)
	}

	return reviews, nil
}

// Record a status report and move the charger to the reported condition
// in the same transaction. The latest report wins.
func (s *SQLReviewRepository) CreateReport(ctx context.Context, r *domain.StatusReport) error {
	if s.DB == nil {
		return errors.New("review repository: DB is nil")
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("create report: %w", err)
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("create report: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	insertQuery := `
	INSERT INTO reports (
		report_id,
		charger_id,
		user_id,
		issue_type,
		description,
		created_at
	)
	VALUES ($1, $2, $3, $4, $5, $6);
	`
	_, err = tx.ExecContext(ctx, insertQuery,
		r.ID, r.ChargerID, r.UserID, string(r.IssueType), r.Description, formatTime(r.CreatedAt))
	if err != nil {
		return fmt.Errorf("create report: insert: %w", err)
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE chargers SET status = $1 WHERE charger_id = $2", string(r.IssueType), r.ChargerID)
	if err != nil {
		return fmt.Errorf("create report: update charger status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create report: rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("create report: charger %d: %w", r.ChargerID, domain.ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create report: commit tx: %w", err)
	}

	return nil
}
