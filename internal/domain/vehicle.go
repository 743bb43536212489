package domain

import "fmt"

// VehicleProfile describes the vehicle for one planning request. It is
// immutable for the duration of a plan.
type VehicleProfile struct {
	Connector ConnectorType

	// RangeKm is the driving range on a full charge.
	RangeKm float64

	// ChargeRateKmPerMin is the range gained per minute plugged in.
	ChargeRateKmPerMin float64
}

func (v VehicleProfile) Validate() error {
	if _, err := ParseConnectorType(string(v.Connector)); err != nil {
		return fmt.Errorf("vehicle: %w", err)
	}
	if v.RangeKm <= 0 {
		return fmt.Errorf("%w: vehicle range must be positive, got %v", ErrInvalidInput, v.RangeKm)
	}
	if v.ChargeRateKmPerMin <= 0 {
		return fmt.Errorf("%w: vehicle charge rate must be positive, got %v", ErrInvalidInput, v.ChargeRateKmPerMin)
	}
	return nil
}

// Vehicle is a user's saved vehicle record.
type Vehicle struct {
	UserID    string
	Connector ConnectorType
	RangeKm   float64

	// ChargeRateKmPerMin of zero means the user never set one; planning
	// substitutes the policy default.
	ChargeRateKmPerMin float64
}

// Profile builds the planning profile, filling in defaultChargeRate when the
// record carries none.
func (v Vehicle) Profile(defaultChargeRate float64) VehicleProfile {
	rate := v.ChargeRateKmPerMin
	if rate <= 0 {
		rate = defaultChargeRate
	}
	return VehicleProfile{
		Connector:          v.Connector,
		RangeKm:            v.RangeKm,
		ChargeRateKmPerMin: rate,
	}
}
