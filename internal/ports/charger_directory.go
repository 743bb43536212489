package ports

import (
	"context"

	"github.com/yismin/EV-charging-tunisia/internal/domain"
)

// ChargerDirectory lists charging stations inside a bounding region. Planning
// depends on this narrow read so it stays decoupled from the full repository.
type ChargerDirectory interface {
	ChargersInRegion(ctx context.Context, box domain.BoundingBox) ([]domain.Charger, error)
}
