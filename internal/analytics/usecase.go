package analytics

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

var ErrInvalidEvent = errors.New("invalid bap event")

type UseCase interface {
	RecordEvent(ctx context.Context, e *model.BapEvent) error
	DistinctBapCounts(ctx context.Context) (*model.DistinctBapCounts, error)
}
