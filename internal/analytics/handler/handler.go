package handler

import (
	"errors"

	"github.com/fekuna/omnipos-mall-service/internal/analytics"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/response"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AnalyticsHandler struct {
	uc       analytics.UseCase
	notifier notify.Notifier
	logger   logger.ZapLogger
}

func NewAnalyticsHandler(uc analytics.UseCase, notifier notify.Notifier, log logger.ZapLogger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, notifier: notifier, logger: log}
}

func (h *AnalyticsHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/analytics/distinct-bap-counts", h.DistinctBapCounts)
}

func (h *AnalyticsHandler) DistinctBapCounts(c *gin.Context) {
	counts, err := h.uc.DistinctBapCounts(c.Request.Context())
	if err != nil {
		h.logger.Error("distinct bap counts failed", zap.Error(err))
		h.notifier.Notify(c.Request.Context(), notify.FromError(errors.New("could not load buyer app counts")))
		response.Internal(c, err)
		return
	}
	response.OK(c, counts)
}
