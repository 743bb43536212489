package services

import (
	"fmt"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// RangeState tracks a vehicle's remaining driving range through one planning
// pass. All values are kilometers; remaining is clamped to [0, capacity] after
// every mutation to absorb floating-point drift.
type RangeState struct {
	remaining  float64
	capacity   float64
	chargeRate float64
}

// NewRangeState starts with a full battery, matching the planning assumption
// that trips begin fully charged.
func NewRangeState(v domain.VehicleProfile) *RangeState {
	return &RangeState{
		remaining:  v.RangeKm,
		capacity:   v.RangeKm,
		chargeRate: v.ChargeRateKmPerMin,
	}
}

func (s *RangeState) Remaining() float64 { return s.remaining }
func (s *RangeState) Capacity() float64  { return s.capacity }

// Consume spends range on a driven leg. A leg longer than the remaining range
// fails with domain.ErrRangeExceeded and leaves the state untouched.
func (s *RangeState) Consume(distanceKm float64) error {
	if distanceKm < 0 {
		return fmt.Errorf("%w: negative leg distance %v", domain.ErrInvalidInput, distanceKm)
	}
	if distanceKm > s.remaining {
		return fmt.Errorf("%w: leg of %.3f km exceeds remaining range %.3f km",
			domain.ErrRangeExceeded, distanceKm, s.remaining)
	}
	s.remaining -= distanceKm
	s.clamp()
	return nil
}

// ChargeToFull restores the full capacity and returns the minutes spent.
func (s *RangeState) ChargeToFull() float64 {
	minutes := (s.capacity - s.remaining) / s.chargeRate
	s.remaining = s.capacity
	s.clamp()
	return minutes
}

// ChargeBy adds km of range, capped at capacity, and returns the minutes
// spent charging what was actually gained.
func (s *RangeState) ChargeBy(km float64) float64 {
	if km <= 0 {
		return 0
	}
	gained := km
	if s.remaining+gained > s.capacity {
		gained = s.capacity - s.remaining
	}
	s.remaining += gained
	s.clamp()
	return gained / s.chargeRate
}

func (s *RangeState) clamp() {
	if s.remaining < 0 {
		s.remaining = 0
	}
	if s.remaining > s.capacity {
		s.remaining = s.capacity
	}
}
