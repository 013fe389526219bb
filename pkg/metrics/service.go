package metrics

import (
	"context"

	"github.com/google/uuid"
)

// Service computes fund performance metrics (IRR, TVPI, DPI, ...). The
// formulas live in an external collaborator; the query side only needs
// the resulting name -> value mapping and tolerates failure by
// answering without metrics.
type Service interface {
	CalculateAllMetrics(ctx context.Context, fundID uuid.UUID) (map[string]float64, error)
}
