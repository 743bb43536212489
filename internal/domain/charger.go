package domain

import "fmt"

// ChargerStatus is the operational state of a charging station. The set is
// closed: parsing rejects anything outside it so new values cannot slip past
// the planner's availability filters unnoticed.
type ChargerStatus string

const (
	StatusWorking           ChargerStatus = "working"
	StatusBroken            ChargerStatus = "broken"
	StatusOccupied          ChargerStatus = "occupied"
	StatusUnderConstruction ChargerStatus = "under_construction"
	StatusUnknown           ChargerStatus = "unknown"
)

func ParseChargerStatus(s string) (ChargerStatus, error) {
	switch ChargerStatus(s) {
	case StatusWorking, StatusBroken, StatusOccupied, StatusUnderConstruction, StatusUnknown:
		return ChargerStatus(s), nil
	}
	return "", fmt.Errorf("%w: unknown charger status %q", ErrInvalidInput, s)
}

// Usable reports whether a charger in this status can serve as a planned stop.
func (s ChargerStatus) Usable() bool {
	switch s {
	case StatusWorking, StatusOccupied, StatusUnknown:
		return true
	}
	return false
}

// Flagged reports whether stopping here carries an availability risk the
// planner should avoid when an equally good alternative exists.
func (s ChargerStatus) Flagged() bool {
	return s == StatusOccupied || s == StatusUnknown
}

// ConnectorType is a charging plug standard.
type ConnectorType string

const (
	ConnectorType2   ConnectorType = "Type 2"
	ConnectorCCS     ConnectorType = "CCS"
	ConnectorCHAdeMO ConnectorType = "CHAdeMO"
	ConnectorType1   ConnectorType = "Type 1"
	ConnectorTesla   ConnectorType = "Tesla"
)

func ParseConnectorType(s string) (ConnectorType, error) {
	switch ConnectorType(s) {
	case ConnectorType2, ConnectorCCS, ConnectorCHAdeMO, ConnectorType1, ConnectorTesla:
		return ConnectorType(s), nil
	}
	return "", fmt.Errorf("%w: unknown connector type %q", ErrInvalidInput, s)
}

// Charger is a public charging station in the directory.
type Charger struct {
	ID         int64
	Name       string
	City       string
	Location   Coordinate
	UsageType  string
	Connectors []ConnectorType
	Status     ChargerStatus
}

// HasConnector reports whether the station offers the given plug standard.
func (c *Charger) HasConnector(t ConnectorType) bool {
	for _, ct := range c.Connectors {
		if ct == t {
			return true
		}
	}
	return false
}

// ChargerSummary pairs a charger with its community aggregates for directory
// listings. AvgRating is nil until the first review lands.
type ChargerSummary struct {
	Charger
	AvgRating   *float64
	ReviewCount int
	ReportCount int
}
