package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/analytics"
	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type analyticsUseCase struct {
	repo   analytics.Repository
	logger logger.ZapLogger
	now    func() time.Time
}

func NewAnalyticsUseCase(repo analytics.Repository, log logger.ZapLogger) analytics.UseCase {
	return &analyticsUseCase{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

func (uc *analyticsUseCase) RecordEvent(ctx context.Context, e *model.BapEvent) error {
	e.BapID = strings.TrimSpace(e.BapID)
	if e.BapID == "" {
		return fmt.Errorf("%w: bap_id is required", analytics.ErrInvalidEvent)
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = uc.now().UTC()
	}
	if e.MerchantID != nil && *e.MerchantID == "" {
		e.MerchantID = nil
	}

	if err := uc.repo.RecordEvent(ctx, e); err != nil {
		return fmt.Errorf("record bap event: %w", err)
	}
	uc.logger.Debug("bap event recorded", zap.String("event_id", e.ID), zap.String("bap_id", e.BapID))
	return nil
}

func (uc *analyticsUseCase) DistinctBapCounts(ctx context.Context) (*model.DistinctBapCounts, error) {
	counts, err := uc.repo.DistinctBapCounts(ctx, auth.GetMerchantID(ctx), uc.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("count distinct baps: %w", err)
	}
	return counts, nil
}
