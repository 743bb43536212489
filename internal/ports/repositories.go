package ports

import (
	"context"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// ChargerFilter narrows directory listings. Zero values mean "any".
type ChargerFilter struct {
	City      string
	UsageType string
	Connector domain.ConnectorType
	Status    domain.ChargerStatus
	MinRating float64
	Skip      int
	Limit     int
}

// ChargerRepository is the persistence boundary for charging stations.
type ChargerRepository interface {
	// ListChargers returns one page of summaries plus the total match count.
	ListChargers(ctx context.Context, f ChargerFilter) ([]*domain.ChargerSummary, int, error)

	// GetCharger returns one charger or domain.ErrNotFound.
	GetCharger(ctx context.Context, id int64) (*domain.ChargerSummary, error)

	// SummariesInRegion returns every charger inside the box with aggregates.
	SummariesInRegion(ctx context.Context, box domain.BoundingBox) ([]*domain.ChargerSummary, error)

	// UpsertChargers inserts or refreshes directory entries by id.
	UpsertChargers(ctx context.Context, chargers []*domain.Charger) error
}

// UserRepository persists accounts, vehicles, and profile aggregates.
type UserRepository interface {
	// CreateUser stores a new account, failing with domain.ErrAlreadyExists
	// when the email is taken.
	CreateUser(ctx context.Context, u *domain.User) error

	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// UpsertVehicle stores the user's single vehicle record.
	UpsertVehicle(ctx context.Context, v *domain.Vehicle) error

	// GetVehicle returns the saved vehicle or domain.ErrNotFound.
	GetVehicle(ctx context.Context, userID string) (*domain.Vehicle, error)

	// GetStats aggregates the user's activity counters. CO2SavedKg is left
	// zero; the caller derives it from the distance total.
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
}

// ReviewRepository persists reviews and status reports.
type ReviewRepository interface {
	// UpsertReview stores the user's review of a charger, replacing any
	// earlier one.
	UpsertReview(ctx context.Context, r *domain.Review) error

	ListChargerReviews(ctx context.Context, chargerID int64) ([]*domain.Review, error)

	// CreateReport records the report and moves the charger to the reported
	// status in the same transaction.
	CreateReport(ctx context.Context, r *domain.StatusReport) error
}

// FavoriteRepository persists a user's saved chargers.
type FavoriteRepository interface {
	AddFavorite(ctx context.Context, userID string, chargerID int64) error
	RemoveFavorite(ctx context.Context, userID string, chargerID int64) error
	ListFavorites(ctx context.Context, userID string) ([]*domain.ChargerSummary, error)
}

// TripRepository persists planned trips.
type TripRepository interface {
	SaveTrip(ctx context.Context, t *domain.TripRecord) error
	ListUserTrips(ctx context.Context, userID string) ([]*domain.TripRecord, error)
}
