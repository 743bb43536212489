package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
	"github.com/yismin/EV-charging-tunisia/internal/ports"
)

// SQL-backed implementation of the ChargerRepository and ChargerDirectory
// ports. Placeholders use the $N form with each number appearing exactly
// once in ascending order, which both the pgx and sqlite drivers bind
// positionally.
type SQLChargerRepository struct{ DB *sql.DB }

func NewSQLChargerRepository(db *sql.DB) *SQLChargerRepository {
	return &SQLChargerRepository{DB: db}
}

const summaryColumns = `
	c.charger_id,
	c.name,
	c.city,
	c.lat,
	c.lon,
	c.usage_type,
	c.connectors,
	c.status,
	AVG(v.rating) AS avg_rating,
	COUNT(DISTINCT v.review_id) AS review_count,
	COUNT(DISTINCT p.report_id) AS report_count
`

const summaryJoins = `
	FROM chargers c
	LEFT JOIN reviews v ON v.charger_id = c.charger_id
	LEFT JOIN reports p ON p.charger_id = c.charger_id
`

// Return one page of charger summaries matching the filter, plus the
// total number of matches before pagination.
func (s *SQLChargerRepository) ListChargers(
	ctx context.Context,
	f ports.ChargerFilter,
) ([]*domain.ChargerSummary, int, error) {
	if s.DB == nil {
		return nil, 0, errors.New("charger repository: DB is nil")
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 20
	}
	skip := f.Skip
	if skip < 0 {
		skip = 0
	}

	// Only the clause structure is interpolated; all values remain
	// parameterized.
	var (
		conds []string
		args  []any
	)
	next := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.City != "" {
		conds = append(conds, "LOWER(c.city) = LOWER("+next(f.City)+")")
	}
	if f.UsageType != "" {
		conds = append(conds, "LOWER(c.usage_type) LIKE LOWER("+next("%"+f.UsageType+"%")+")")
	}
	if f.Connector != "" {
		// Connectors are stored as a JSON array of quoted names.
		conds = append(conds, "c.connectors LIKE "+next(`%"`+string(f.Connector)+`"%`))
	}
	if f.Status != "" {
		conds = append(conds, "c.status = "+next(string(f.Status)))
	}

	whereSQL := ""
	if len(conds) > 0 {
		whereSQL = " WHERE " + strings.Join(conds, " AND ")
	}

	countQuery := "SELECT COUNT(*) FROM chargers c" + whereSQL
	countArgs := slices.Clone(args)
	if f.MinRating > 0 {
		countArgs = append(countArgs, f.MinRating)
		countQuery = fmt.Sprintf(`
		SELECT COUNT(*) FROM (
			SELECT c.charger_id
			FROM chargers c
			LEFT JOIN reviews v ON v.charger_id = c.charger_id
			%s
			GROUP BY c.charger_id
			HAVING AVG(v.rating) >= $%d
		) matches`, whereSQL, len(countArgs))
	}

	var total int
	if err := s.DB.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("list chargers: count matches: %w", err)
	}

	havingSQL := ""
	if f.MinRating > 0 {
		args = append(args, f.MinRating)
		havingSQL = fmt.Sprintf(" HAVING AVG(v.rating) >= $%d", len(args))
	}
	args = append(args, limit)
	limitPH := fmt.Sprintf("$%d", len(args))
	args = append(args, skip)
	offsetPH := fmt.Sprintf("$%d", len(args))

	query := "SELECT " + summaryColumns + summaryJoins + whereSQL +
		" GROUP BY c.charger_id" + havingSQL +
		" ORDER BY c.charger_id LIMIT " + limitPH + " OFFSET " + offsetPH

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list chargers: query chargers table: %w", err)
	}
	defer rows.Close()

	summaries, err := collectSummaries(rows)
	if err != nil {
		return nil, 0, fmt.Errorf("list chargers: %w", err)
	}

	return summaries, total, nil
}

// Return one charger with its aggregates, or domain.ErrNotFound.
func (s *SQLChargerRepository) GetCharger(ctx context.Context, id int64) (*domain.ChargerSummary, error) {
	if s.DB == nil {
		return nil, errors.New("charger repository: DB is nil")
	}

	query := "SELECT " + summaryColumns + summaryJoins +
		" WHERE c.charger_id = $1 GROUP BY c.charger_id"

	row := s.DB.QueryRowContext(ctx, query, id)
	summary, err := scanSummary(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get charger %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get charger %d: %w", id, err)
	}

	return summary, nil
}

// Return every charger inside the bounding box with its aggregates.
func (s *SQLChargerRepository) SummariesInRegion(
	ctx context.Context,
	box domain.BoundingBox,
) ([]*domain.ChargerSummary, error) {
	if s.DB == nil {
		return nil, errors.New("charger repository: DB is nil")
	}

	query := "SELECT " + summaryColumns + summaryJoins + `
	WHERE c.lat BETWEEN $1 AND $2
		AND c.lon BETWEEN $3 AND $4
	GROUP BY c.charger_id
	ORDER BY c.charger_id`

	rows, err := s.DB.QueryContext(ctx, query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("summaries in region: query chargers table: %w", err)
	}
	defer rows.Close()

	summaries, err := collectSummaries(rows)
	if err != nil {
		return nil, fmt.Errorf("summaries in region: %w", err)
	}

	return summaries, nil
}

// Return every charger inside the bounding box, without aggregates. This
// is the lookup the trip planner runs per request.
func (s *SQLChargerRepository) ChargersInRegion(
	ctx context.Context,
	box domain.BoundingBox,
) ([]domain.Charger, error) {
	if s.DB == nil {
		return nil, errors.New("charger repository: DB is nil")
	}

	query := `
	SELECT
		charger_id,
		name,
		city,
		lat,
		lon,
		usage_type,
		connectors,
		status
	FROM chargers
	WHERE lat BETWEEN $1 AND $2
		AND lon BETWEEN $3 AND $4
	ORDER BY charger_id;
	`

	rows, err := s.DB.QueryContext(ctx, query, box.MinLat, box.MaxLat, box.MinLon, box.MaxLon)
	if err != nil {
		return nil, fmt.Errorf("chargers in region: query chargers table: %w", err)
	}
	defer rows.Close()

	chargers := make([]domain.Charger, 0, 32)
	for rows.Next() {
		var (
			c          domain.Charger
			connectors string
			status     string
		)
		err := rows.Scan(&c.ID, &c.Name, &c.City, &c.Location.Lat, &c.Location.Lon,
			&c.UsageType, &connectors, &status)
		if err != nil {
			return nil, fmt.Errorf("chargers in region: scan row: %w", err)
		}
		if c.Connectors, err = decodeConnectors(connectors); err != nil {
			return nil, fmt.Errorf("chargers in region: charger %d: %w", c.ID, err)
		}
		c.Status = domain.ChargerStatus(status)
		chargers = append(chargers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chargers in region: row iteration: %w", err)
	}

	return chargers, nil
}

// Insert or refresh directory entries by id.
func (s *SQLChargerRepository) UpsertChargers(ctx context.Context, chargers []*domain.Charger) error {
	if s.DB == nil {
		return errors.New("charger repository: DB is nil")
	}

	if len(chargers) == 0 {
		return nil
	}

	tx, err := s.DB.Begin()
	if err != nil {
		return fmt.Errorf("upsert chargers: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO chargers (
		charger_id,
		name,
		city,
		lat,
		lon,
		usage_type,
		connectors,
		status
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (charger_id) DO UPDATE SET
		name = excluded.name,
		city = excluded.city,
		lat = excluded.lat,
		lon = excluded.lon,
		usage_type = excluded.usage_type,
		connectors = excluded.connectors,
		status = excluded.status;
	`
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("upsert chargers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, c := range chargers {
		connectors, err := encodeConnectors(c.Connectors)
		if err != nil {
			return fmt.Errorf("upsert chargers: charger %d: %w", c.ID, err)
		}
		_, err = stmt.ExecContext(ctx, c.ID, c.Name, c.City, c.Location.Lat, c.Location.Lon,
			c.UsageType, connectors, string(c.Status))
		if err != nil {
			return fmt.Errorf("upsert chargers: insert charger_id=%d: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("upsert chargers: commit tx: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSummary(row rowScanner) (*domain.ChargerSummary, error) {
	var (
		sum        domain.ChargerSummary
		connectors string
		status     string
		avg        sql.NullFloat64
	)
	err := row.Scan(&sum.ID, &sum.Name, &sum.City, &sum.Location.Lat, &sum.Location.Lon,
		&sum.UsageType, &connectors, &status, &avg, &sum.ReviewCount, &sum.ReportCount)
	if err != nil {
		return nil, err
	}

	if sum.Connectors, err = decodeConnectors(connectors); err != nil {
		return nil, fmt.Errorf("charger %d: %w", sum.ID, err)
	}
	sum.Status = domain.ChargerStatus(status)
	if avg.Valid {
		sum.AvgRating = &avg.Float64
	}

	return &sum, nil
}

func collectSummaries(rows *sql.Rows) ([]*domain.ChargerSummary, error) {
	summaries := make([]*domain.ChargerSummary, 0, 32)
	for rows.Next() {
		sum, err := scanSummary(rows)
		if err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		summaries = append(summaries, sum)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration: %w", err)
	}
	return summaries, nil
}

func encodeConnectors(connectors []domain.ConnectorType) (string, error) {
	if len(connectors) == 0 {
		connectors = []domain.ConnectorType{}
	}
	bytes, err := json.Marshal(connectors)
	if err != nil {
		return "", fmt.Errorf("encode connectors: %w", err)
	}
	return string(bytes), nil
}

func decodeConnectors(payload string) ([]domain.ConnectorType, error) {
	var connectors []domain.ConnectorType
	if err := json.Unmarshal([]byte(payload), &connectors); err != nil {
		return nil, fmt.Errorf("decode connectors: %w", err)
	}
	return connectors, nil
}
