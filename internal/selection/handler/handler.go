package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/response"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/fekuna/omnipos-mall-service/internal/selection"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type SelectionHandler struct {
	uc       selection.UseCase
	notifier notify.Notifier
	logger   logger.ZapLogger
}

func NewSelectionHandler(uc selection.UseCase, notifier notify.Notifier, log logger.ZapLogger) *SelectionHandler {
	return &SelectionHandler{uc: uc, notifier: notifier, logger: log}
}

func (h *SelectionHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/selections", h.Create)
	rg.GET("/selections/:sid", h.Get)
	rg.DELETE("/selections/:sid", h.Discard)
	rg.POST("/selections/:sid/reset", h.Reset)
	rg.PUT("/selections/:sid/items/:pid", h.Select)
	rg.PATCH("/selections/:sid/items/:pid", h.UpdateDetail)
}

type createRequest struct {
	StoreID     string `json:"store_id"`
	SearchQuery string `json:"q"`
	PageSize    int    `json:"page_size"`
}

type selectRequest struct {
	Checked *bool `json:"checked" binding:"required"`
}

type detailRequest struct {
	Field string `json:"field" binding:"required"`
	Value string `json:"value"`
}

func (h *SelectionHandler) Create(c *gin.Context) {
	var req createRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, err)
			return
		}
	}

	sess, err := h.uc.Create(c.Request.Context(), &dto.ProductFilters{
		StoreID:     req.StoreID,
		SearchQuery: req.SearchQuery,
		PageSize:    req.PageSize,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Created(c, sess)
}

func (h *SelectionHandler) Get(c *gin.Context) {
	sess, err := h.uc.Get(c.Request.Context(), c.Param("sid"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, sess)
}

func (h *SelectionHandler) Select(c *gin.Context) {
	var req selectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	sess, err := h.uc.Select(c.Request.Context(), c.Param("sid"), c.Param("pid"), *req.Checked)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, sess)
}

func (h *SelectionHandler) UpdateDetail(c *gin.Context) {
	var req detailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	sess, err := h.uc.UpdateDetail(c.Request.Context(), c.Param("sid"), c.Param("pid"), req.Field, req.Value)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, sess)
}

func (h *SelectionHandler) Reset(c *gin.Context) {
	sess, err := h.uc.Reset(c.Request.Context(), c.Param("sid"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, sess)
}

func (h *SelectionHandler) Discard(c *gin.Context) {
	if err := h.uc.Discard(c.Request.Context(), c.Param("sid")); err != nil {
		h.fail(c, err)
		return
	}
	response.NoContent(c)
}

func (h *SelectionHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, selection.ErrSessionNotFound):
		response.NotFound(c, err)
	case errors.Is(err, selection.ErrUnknownField):
		response.Error(c, http.StatusUnprocessableEntity, "unknown_field", err)
	default:
		h.logger.Error("selection request failed", zap.String("session_id", c.Param("sid")), zap.Error(err))
		h.notifier.Notify(c.Request.Context(), notify.FromError(errors.New("selection could not be saved")))
		response.Internal(c, err)
	}
}
