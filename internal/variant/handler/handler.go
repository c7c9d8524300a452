package handler

import (
	"errors"
	"net/http"

	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/response"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/fekuna/omnipos-mall-service/internal/variant"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type VariantHandler struct {
	uc       variant.UseCase
	notifier notify.Notifier
	logger   logger.ZapLogger
}

func NewVariantHandler(uc variant.UseCase, notifier notify.Notifier, log logger.ZapLogger) *VariantHandler {
	return &VariantHandler{uc: uc, notifier: notifier, logger: log}
}

func (h *VariantHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/variants/fields", h.Fields)
	rg.POST("/variants/validate", h.Validate)
	rg.POST("/products/:id/variants", h.SaveVariants)
}

type recordsRequest struct {
	Records []variant.Record `json:"records" binding:"required"`
}

type validateResponse struct {
	IsValid bool               `json:"isValid"`
	Errors  []variant.ErrorMap `json:"errors"`
}

func (h *VariantHandler) Fields(c *gin.Context) {
	response.OK(c, gin.H{"fields": h.uc.Fields()})
}

func (h *VariantHandler) Validate(c *gin.Context) {
	req, ok := bindRecords(c)
	if !ok {
		return
	}
	valid, errs := h.uc.Validate(req.Records)
	response.OK(c, validateResponse{IsValid: valid, Errors: errs})
}

func (h *VariantHandler) SaveVariants(c *gin.Context) {
	req, ok := bindRecords(c)
	if !ok {
		return
	}

	created, err := h.uc.SaveVariants(c.Request.Context(), c.Param("id"), req.Records)
	if err != nil {
		var verr *variant.ValidationError
		switch {
		case errors.As(err, &verr):
			response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "validation_failed", verr.Error(),
				validateResponse{IsValid: false, Errors: verr.Errors})
		case errors.Is(err, product.ErrProductNotFound):
			response.NotFound(c, err)
		case errors.Is(err, product.ErrSKUExists):
			response.Error(c, http.StatusConflict, "conflict", err)
		default:
			h.logger.Error("failed to save variants", zap.String("product_id", c.Param("id")), zap.Error(err))
			h.notifier.Notify(c.Request.Context(), notify.FromError(errors.New("failed to save variants")))
			response.Internal(c, err)
		}
		return
	}
	response.Created(c, gin.H{"variants": created})
}

// bindRecords decodes the body and gives every record without a form key a fresh one.
func bindRecords(c *gin.Context) (*recordsRequest, bool) {
	var req recordsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err)
		return nil, false
	}
	for i := range req.Records {
		if req.Records[i].FormKey == uuid.Nil {
			req.Records[i].FormKey = uuid.New()
		}
		if req.Records[i].Data == nil {
			req.Records[i].Data = map[string]any{}
		}
	}
	return &req, true
}
