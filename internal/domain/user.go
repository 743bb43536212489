package domain

import (
	"fmt"
	"time"
)

// User is a registered account.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// Review is one user's rating of a charger. A user holds at most one review
// per charger; resubmitting replaces it.
type Review struct {
	ID        string
	UserID    string
	ChargerID int64
	Rating    int
	Comment   string
	CreatedAt time.Time
}

func (r Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5, got %d", ErrInvalidInput, r.Rating)
	}
	if len(r.Comment) > 500 {
		return fmt.Errorf("%w: comment must be at most 500 characters", ErrInvalidInput)
	}
	return nil
}

// StatusReport is a user-submitted observation about a charger's condition.
// The latest report wins: accepting one moves the charger to its issue type.
type StatusReport struct {
	ID          string
	UserID      string
	ChargerID   int64
	IssueType   ChargerStatus
	Description string
	CreatedAt   time.Time
}

func (r StatusReport) Validate() error {
	if _, err := ParseChargerStatus(string(r.IssueType)); err != nil {
		return err
	}
	if r.IssueType == StatusUnknown {
		return fmt.Errorf("%w: report issue type must name an observed condition", ErrInvalidInput)
	}
	if len(r.Description) == 0 || len(r.Description) > 500 {
		return fmt.Errorf("%w: report description must be 1 to 500 characters", ErrInvalidInput)
	}
	return nil
}

// UserStats aggregates a user's activity for the profile screen.
type UserStats struct {
	Trips           int
	Reviews         int
	Favorites       int
	Reports         int
	TotalDistanceKm float64
	CO2SavedKg      float64
}
