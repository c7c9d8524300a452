package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/response"
	"github.com/fekuna/omnipos-mall-service/internal/store"
	"github.com/fekuna/omnipos-mall-service/internal/store/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StoreHandler struct {
	uc       store.UseCase
	notifier notify.Notifier
	logger   logger.ZapLogger
}

func NewStoreHandler(uc store.UseCase, notifier notify.Notifier, log logger.ZapLogger) *StoreHandler {
	return &StoreHandler{uc: uc, notifier: notifier, logger: log}
}

func (h *StoreHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/stores", h.ListStores)
	rg.POST("/stores", h.CreateStore)
	rg.GET("/stores/:id", h.GetStore)
	rg.PUT("/stores/:id", h.UpdateStore)
	rg.DELETE("/stores/:id", h.DeleteStore)
	rg.GET("/stores/:id/serviceable", h.CheckServiceable)
}

type listResponse struct {
	Stores     []model.Store `json:"stores"`
	TotalCount int           `json:"total_count"`
}

func (h *StoreHandler) CreateStore(c *gin.Context) {
	var input dto.CreateStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	input.MerchantID = auth.GetMerchantID(c.Request.Context())

	s, err := h.uc.CreateStore(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to create store", err)
		return
	}
	response.Created(c, s)
}

func (h *StoreHandler) GetStore(c *gin.Context) {
	s, err := h.uc.GetStore(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to get store", err)
		return
	}
	response.OK(c, s)
}

func (h *StoreHandler) ListStores(c *gin.Context) {
	filters := &dto.StoreFilters{
		MerchantID: auth.GetMerchantID(c.Request.Context()),
		Category:   c.Query("category"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "page_size", 20),
	}
	if v, err := strconv.ParseBool(c.Query("delivery_enabled")); err == nil {
		filters.DeliveryEnabled = &v
	}
	if v, err := strconv.ParseBool(c.Query("is_active")); err == nil {
		filters.IsActive = &v
	}

	stores, total, err := h.uc.ListStores(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "failed to list stores", err)
		return
	}
	response.OK(c, listResponse{Stores: stores, TotalCount: total})
}

func (h *StoreHandler) UpdateStore(c *gin.Context) {
	var input dto.UpdateStoreInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	input.ID = c.Param("id")
	input.MerchantID = auth.GetMerchantID(c.Request.Context())

	s, err := h.uc.UpdateStore(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to update store", err)
		return
	}
	response.OK(c, s)
}

func (h *StoreHandler) DeleteStore(c *gin.Context) {
	if err := h.uc.DeleteStore(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "failed to delete store", err)
		return
	}
	response.NoContent(c)
}

func (h *StoreHandler) CheckServiceable(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	if errLat != nil || errLng != nil {
		response.BadRequest(c, fmt.Errorf("%w: lat and lng query parameters are required", store.ErrInvalidPoint))
		return
	}

	res, err := h.uc.CheckServiceable(c.Request.Context(), c.Param("id"), model.Point{Lat: lat, Lng: lng})
	if err != nil {
		h.fail(c, "failed to check serviceability", err)
		return
	}
	response.OK(c, res)
}

func (h *StoreHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, store.ErrStoreNotFound):
		response.NotFound(c, err)
	case errors.Is(err, store.ErrInvalidGeofence), errors.Is(err, store.ErrInvalidPoint):
		response.Error(c, http.StatusUnprocessableEntity, "invalid_location", err)
	default:
		h.logger.Error(msg, zap.Error(err))
		h.notifier.Notify(c.Request.Context(), notify.FromError(errors.New(msg)))
		response.Internal(c, err)
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil || v <= 0 {
		return def
	}
	return v
}
