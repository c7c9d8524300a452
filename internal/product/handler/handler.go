package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/response"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc       product.UseCase
	notifier notify.Notifier
	logger   logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, notifier notify.Notifier, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:       uc,
		notifier: notifier,
		logger:   log,
	}
}

func (h *ProductHandler) Register(rg *gin.RouterGroup) {
	rg.GET("/products", h.ListProducts)
	rg.POST("/products", h.CreateProduct)
	rg.GET("/products/:id", h.GetProduct)
	rg.PUT("/products/:id", h.UpdateProduct)
	rg.DELETE("/products/:id", h.DeleteProduct)
	rg.GET("/products/:id/family", h.ListFamily)
}

func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var input dto.CreateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	input.MerchantID = auth.GetMerchantID(c.Request.Context())

	p, err := h.uc.CreateProduct(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to create product", err)
		return
	}
	response.Created(c, p)
}

func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to get product", err)
		return
	}
	if p.MerchantID != auth.GetMerchantID(c.Request.Context()) {
		response.NotFound(c, product.ErrProductNotFound)
		return
	}
	response.OK(c, p)
}

func (h *ProductHandler) ListProducts(c *gin.Context) {
	filters := &dto.ProductFilters{
		MerchantID:  auth.GetMerchantID(c.Request.Context()),
		StoreID:     c.Query("store_id"),
		SearchQuery: c.Query("q"),
		SortBy:      c.Query("sort_by"),
		SortOrder:   c.Query("sort_order"),
		Page:        queryInt(c, "page", 1),
		PageSize:    queryInt(c, "page_size", 20),
	}
	if c.Query("roots") == "true" {
		root := ""
		filters.ParentID = &root
	} else if parent := c.Query("parent_id"); parent != "" {
		filters.ParentID = &parent
	}
	if v := c.Query("is_active"); v != "" {
		b := v == "true"
		filters.IsActive = &b
	}

	products, count, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		h.fail(c, "failed to list products", err)
		return
	}
	response.OK(c, gin.H{
		"products":  products,
		"total":     count,
		"page":      filters.Page,
		"page_size": filters.PageSize,
	})
}

func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var input dto.UpdateProductInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.BadRequest(c, err)
		return
	}
	input.ID = c.Param("id")
	input.MerchantID = auth.GetMerchantID(c.Request.Context())

	p, err := h.uc.UpdateProduct(c.Request.Context(), &input)
	if err != nil {
		h.fail(c, "failed to update product", err)
		return
	}
	response.OK(c, p)
}

func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "failed to delete product", err)
		return
	}
	response.NoContent(c)
}

func (h *ProductHandler) ListFamily(c *gin.Context) {
	products, err := h.uc.ListFamily(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, "failed to list product family", err)
		return
	}
	response.OK(c, gin.H{"products": products})
}

func (h *ProductHandler) fail(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, product.ErrProductNotFound):
		response.NotFound(c, err)
	case errors.Is(err, product.ErrSKUExists):
		response.Error(c, http.StatusConflict, "conflict", err)
	default:
		h.logger.Error(msg, zap.Error(err))
		h.notifier.Notify(c.Request.Context(), notify.FromError(errors.New(msg)))
		response.Internal(c, err)
	}
}

func queryInt(c *gin.Context, key string, fallback int) int {
	if v, err := strconv.Atoi(c.Query(key)); err == nil && v > 0 {
		return v
	}
	return fallback
}
