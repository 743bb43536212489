package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PlannerPolicy holds the tunable planning parameters. Deployments adjust
// them through the policy YAML file; every field has a working default.
type PlannerPolicy struct {
	CorridorWidthKm       float64 `yaml:"corridor_width_km"`
	ChargeStrategy        string  `yaml:"charge_strategy"`
	EmissionFactorKgPerKm float64 `yaml:"emission_factor_kg_per_km"`
	DefaultChargeRate     float64 `yaml:"default_charge_rate_km_per_min"`
	AverageSpeedKmh       float64 `yaml:"average_speed_kmh"`
	NearbyRadiusKm        float64 `yaml:"nearby_radius_km"`
}

// DefaultPolicy returns the built-in planning parameters.
func DefaultPolicy() PlannerPolicy {
	return PlannerPolicy{
		CorridorWidthKm:       10,
		ChargeStrategy:        "full",
		EmissionFactorKgPerKm: 0.12,
		DefaultChargeRate:     3.0,
		AverageSpeedKmh:       80,
		NearbyRadiusKm:        50,
	}
}

// LoadPolicy reads the policy file and fills gaps with defaults. A missing
// file is not an error; the defaults apply unchanged.
func LoadPolicy(path string) (PlannerPolicy, error) {
	policy := DefaultPolicy()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return policy, nil
	}
	if err != nil {
		return policy, fmt.Errorf("load policy: read %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &policy); err != nil {
		return policy, fmt.Errorf("load policy: parse %q: %w", path, err)
	}

	policy.fillDefaults()
	if err := policy.validate(); err != nil {
		return policy, fmt.Errorf("load policy: %q: %w", path, err)
	}
	return policy, nil
}

func (p *PlannerPolicy) fillDefaults() {
	d := DefaultPolicy()
	if p.CorridorWidthKm == 0 {
		p.CorridorWidthKm = d.CorridorWidthKm
	}
	if p.ChargeStrategy == "" {
		p.ChargeStrategy = d.ChargeStrategy
	}
	if p.EmissionFactorKgPerKm == 0 {
		p.EmissionFactorKgPerKm = d.EmissionFactorKgPerKm
	}
	if p.DefaultChargeRate == 0 {
		p.DefaultChargeRate = d.DefaultChargeRate
	}
	if p.AverageSpeedKmh == 0 {
		p.AverageSpeedKmh = d.AverageSpeedKmh
	}
	if p.NearbyRadiusKm == 0 {
		p.NearbyRadiusKm = d.NearbyRadiusKm
	}
}

func (p PlannerPolicy) validate() error {
	if p.CorridorWidthKm < 0 || p.EmissionFactorKgPerKm < 0 ||
		p.DefaultChargeRate < 0 || p.AverageSpeedKmh <= 0 || p.NearbyRadiusKm < 0 {
		return errors.New("policy values must not be negative")
	}
	if p.ChargeStrategy != "full" && p.ChargeStrategy != "next_leg" {
		return fmt.Errorf("charge_strategy must be full or next_leg, got %q", p.ChargeStrategy)
	}
	return nil
}
