package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-mall-service/internal/customization"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/response"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CustomizationHandler struct {
	uc       customization.UseCase
	notifier notify.Notifier
	logger   logger.ZapLogger
}

func NewCustomizationHandler(uc customization.UseCase, notifier notify.Notifier, log logger.ZapLogger) *CustomizationHandler {
	return &CustomizationHandler{uc: uc, notifier: notifier, logger: log}
}

func (h *CustomizationHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/products/:id/customizations/tree", h.GetTree)
	rg.PUT("/products/:id/customization-groups", h.ReplaceGroups)
	rg.PUT("/products/:id/customizations", h.ReplaceCustomizations)
}

func (h *CustomizationHandler) GetTree(c *gin.Context) {
	tree, err := h.uc.GetTree(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, tree)
}

func (h *CustomizationHandler) ReplaceGroups(c *gin.Context) {
	var req struct {
		Groups []model.CustomizationGroup `json:"groups"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	if req.Groups == nil {
		req.Groups = []model.CustomizationGroup{}
	}

	tree, err := h.uc.ReplaceGroups(c.Request.Context(), c.Param("id"), req.Groups)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, tree)
}

func (h *CustomizationHandler) ReplaceCustomizations(c *gin.Context) {
	var req struct {
		Customizations []model.Customization `json:"customizations"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return
	}
	if req.Customizations == nil {
		req.Customizations = []model.Customization{}
	}

	tree, err := h.uc.ReplaceCustomizations(c.Request.Context(), c.Param("id"), req.Customizations)
	if err != nil {
		h.fail(c, err)
		return
	}
	response.OK(c, tree)
}

func (h *CustomizationHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		response.NotFound(c, err)
	case errors.Is(err, customization.ErrCustomizationCycle),
		errors.Is(err, customization.ErrInvalidGroup),
		errors.Is(err, customization.ErrInvalidCustomization):
		response.Error(c, http.StatusUnprocessableEntity, "invalid_customization", err)
	default:
		h.logger.Error("customization request failed", zap.String("product_id", c.Param("id")), zap.Error(err))
		h.notifier.Notify(c.Request.Context(), notify.FromError(errors.New("could not update customizations")))
		response.Internal(c, err)
	}
}
