package services

import (
	"errors"
	"testing"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

func testProfile(rangeKm, rate float64) domain.VehicleProfile {
	return domain.VehicleProfile{Connector: domain.ConnectorType2, RangeKm: rangeKm, ChargeRateKmPerMin: rate}
}

func TestRangeStateStartsFull(t *testing.T) {
	s := NewRangeState(testProfile(250, 3))
	if s.Remaining() != 250 || s.Capacity() != 250 {
		t.Fatalf("got remaining=%v capacity=%v, want 250/250", s.Remaining(), s.Capacity())
	}
}

func TestRangeStateConsume(t *testing.T) {
	s := NewRangeState(testProfile(100, 2))

	if err := s.Consume(60); err != nil {
		t.Fatalf("consume 60: %v", err)
	}
	if s.Remaining() != 40 {
		t.Fatalf("remaining = %v, want 40", s.Remaining())
	}

	// Consuming exactly the remaining range is allowed.
	if err := s.Consume(40); err != nil {
		t.Fatalf("consume remaining 40: %v", err)
	}
	if s.Remaining() != 0 {
		t.Fatalf("remaining = %v, want 0", s.Remaining())
	}
}

func TestRangeStateConsumeOverdraft(t *testing.T) {
	s := NewRangeState(testProfile(100, 2))

	err := s.Consume(100.5)
	if !errors.Is(err, domain.ErrRangeExceeded) {
		t.Fatalf("expected ErrRangeExceeded, got %v", err)
	}
	if s.Remaining() != 100 {
		t.Fatalf("failed consume must not mutate state, remaining = %v", s.Remaining())
	}

	if err := s.Consume(-1); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("negative distance should be ErrInvalidInput, got %v", err)
	}
}

func TestRangeStateChargeToFull(t *testing.T) {
	s := NewRangeState(testProfile(100, 2))
	if err := s.Consume(70); err != nil {
		t.Fatal(err)
	}

	minutes := s.ChargeToFull()
	if minutes != 35 {
		t.Fatalf("charge minutes = %v, want 35 (70 km at 2 km/min)", minutes)
	}
	if s.Remaining() != 100 {
		t.Fatalf("remaining = %v, want full 100", s.Remaining())
	}

	// Charging a full battery takes no time.
	if minutes := s.ChargeToFull(); minutes != 0 {
		t.Fatalf("charging a full battery took %v minutes, want 0", minutes)
	}
}

func TestRangeStateChargeByCapsAtCapacity(t *testing.T) {
	s := NewRangeState(testProfile(100, 2))
	if err := s.Consume(30); err != nil {
		t.Fatal(err)
	}

	minutes := s.ChargeBy(50)
	if minutes != 15 {
		t.Fatalf("charge minutes = %v, want 15 (30 km gained at 2 km/min)", minutes)
	}
	if s.Remaining() != 100 {
		t.Fatalf("remaining = %v, want capped at 100", s.Remaining())
	}

	if minutes := s.ChargeBy(0); minutes != 0 {
		t.Fatalf("zero charge took %v minutes", minutes)
	}
}
