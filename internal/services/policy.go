package services

// ChargePolicy selects how much range each planned stop restores.
type ChargePolicy string

const (
	// ChargeToFull restores the whole battery at every stop.
	ChargeToFull ChargePolicy = "full"

	// ChargeToNextLeg restores only what the drive to the next stop or the
	// destination needs. Stops get shorter; arrival margins drop to zero.
	ChargeToNextLeg ChargePolicy = "next_leg"
)

// PlanPolicy carries the tunables for one planning run.
type PlanPolicy struct {
	// CorridorWidthKm is the maximum lateral detour considered, measured from
	// the route polyline.
	CorridorWidthKm float64

	Charge ChargePolicy

	// EmissionFactorKgPerKm converts driven distance into the CO2 a comparable
	// combustion car would have emitted.
	EmissionFactorKgPerKm float64
}
