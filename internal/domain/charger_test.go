package domain

import (
	"errors"
	"testing"
)

func TestChargerStatusUsable(t *testing.T) {
	cases := []struct {
		status ChargerStatus
		want   bool
	}{
		{StatusWorking, true},
		{StatusOccupied, true},
		{StatusUnknown, true},
		{StatusBroken, false},
		{StatusUnderConstruction, false},
	}
	for _, tc := range cases {
		if got := tc.status.Usable(); got != tc.want {
			t.Errorf("Usable(%q) = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestChargerStatusFlagged(t *testing.T) {
	if !StatusOccupied.Flagged() {
		t.Error("occupied should be flagged")
	}
	if !StatusUnknown.Flagged() {
		t.Error("unknown should be flagged")
	}
	if StatusWorking.Flagged() {
		t.Error("working should not be flagged")
	}
}

func TestParseChargerStatusRejectsUnknownValues(t *testing.T) {
	if _, err := ParseChargerStatus("melted"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestHasConnector(t *testing.T) {
	c := Charger{Connectors: []ConnectorType{ConnectorType2, ConnectorCCS}}
	if !c.HasConnector(ConnectorCCS) {
		t.Error("expected CCS to match")
	}
	if c.HasConnector(ConnectorCHAdeMO) {
		t.Error("CHAdeMO should not match")
	}
}

func TestVehicleProfileValidate(t *testing.T) {
	valid := VehicleProfile{Connector: ConnectorType2, RangeKm: 250, ChargeRateKmPerMin: 3}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid profile rejected: %v", err)
	}

	cases := []VehicleProfile{
		{Connector: "USB-C", RangeKm: 250, ChargeRateKmPerMin: 3},
		{Connector: ConnectorType2, RangeKm: 0, ChargeRateKmPerMin: 3},
		{Connector: ConnectorType2, RangeKm: 250, ChargeRateKmPerMin: 0},
	}
	for i, v := range cases {
		if err := v.Validate(); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("case %d: expected ErrInvalidInput, got %v", i, err)
		}
	}
}

func TestVehicleProfileDefaultsChargeRate(t *testing.T) {
	v := Vehicle{UserID: "u1", Connector: ConnectorCCS, RangeKm: 300}

	p := v.Profile(2.5)
	if p.ChargeRateKmPerMin != 2.5 {
		t.Errorf("got rate %v, want policy default 2.5", p.ChargeRateKmPerMin)
	}

	v.ChargeRateKmPerMin = 4
	if got := v.Profile(2.5).ChargeRateKmPerMin; got != 4 {
		t.Errorf("got rate %v, want stored 4", got)
	}
}

func TestReviewValidate(t *testing.T) {
	ok := Review{Rating: 4, Comment: "fast and clean"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid review rejected: %v", err)
	}
	if err := (Review{Rating: 6}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("rating 6 should be rejected, got %v", err)
	}
	if err := (Review{Rating: 0}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("rating 0 should be rejected, got %v", err)
	}
}

func TestStatusReportValidate(t *testing.T) {
	ok := StatusReport{IssueType: StatusBroken, Description: "cable cut"}
	if err := ok.Validate(); err != nil {
		t.Fatalf("valid report rejected: %v", err)
	}
	if err := (StatusReport{IssueType: StatusUnknown, Description: "?"}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Error("unknown issue type should be rejected")
	}
	if err := (StatusReport{IssueType: StatusBroken, Description: ""}).Validate(); !errors.Is(err, ErrInvalidInput) {
		t.Error("empty description should be rejected")
	}
}
