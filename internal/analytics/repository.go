package analytics

import (
	"context"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

type Repository interface {
	// RecordEvent is idempotent on the event id.
	RecordEvent(ctx context.Context, e *model.BapEvent) error
	// DistinctBapCounts counts distinct buyer apps seen in the 30, 7 and 1 day windows ending at now.
	// An empty merchantID counts across the whole mall.
	DistinctBapCounts(ctx context.Context, merchantID string, now time.Time) (*model.DistinctBapCounts, error)
}
