package usecase

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/cache"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/search"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	indexName    = "products"
	listCacheTTL = 5 * time.Minute
)

const indexMapping = `{
	"mappings": {
		"properties": {
			"merchant_id": { "type": "keyword" },
			"store_id": { "type": "keyword" },
			"parent_id": { "type": "keyword" },
			"name": { "type": "text" },
			"description": { "type": "text" },
			"sku": { "type": "keyword" },
			"mrp": { "type": "double" },
			"selling_price": { "type": "double" },
			"created_at": { "type": "date" }
		}
	}
}`

// productIndex is the part of *search.Client the use case needs.
type productIndex interface {
	CreateIndex(ctx context.Context, name, mapping string) error
	Index(ctx context.Context, index, id string, doc any) error
	Search(ctx context.Context, index string, query map[string]any) (*search.SearchResult, error)
	Delete(ctx context.Context, index, id string) error
}

type productUseCase struct {
	repo   product.Repository
	cache  *cache.RedisClient
	es     productIndex
	logger logger.ZapLogger
}

// NewProductUseCase accepts nil cache and search clients; those features are skipped.
func NewProductUseCase(repo product.Repository, cache *cache.RedisClient, es *search.Client, log logger.ZapLogger) product.UseCase {
	uc := &productUseCase{
		repo:   repo,
		cache:  cache,
		logger: log,
	}
	if es != nil {
		uc.es = es
	}
	return uc
}

func (uc *productUseCase) CreateProduct(ctx context.Context, input *dto.CreateProductInput) (*model.Product, error) {
	unique, err := uc.repo.IsSKUUnique(ctx, input.MerchantID, input.SKU, "")
	if err != nil {
		return nil, err
	}
	if !unique {
		return nil, product.ErrSKUExists
	}

	p := newProduct(input, nil)
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

func newProduct(input *dto.CreateProductInput, parentID *string) *model.Product {
	now := time.Now()
	return &model.Product{
		BaseModel:     model.BaseModel{ID: uuid.New().String(), CreatedAt: now, UpdatedAt: now},
		MerchantID:    input.MerchantID,
		StoreID:       optional(input.StoreID),
		ParentID:      parentID,
		SKU:           input.SKU,
		Name:          input.Name,
		Description:   optional(input.Description),
		MRP:           input.MRP,
		SellingPrice:  input.SellingPrice,
		GSTPercentage: input.GSTPercentage,
		Quantity:      input.Quantity,
		Weight:        input.Weight,
		ImageURL:      optional(input.ImageURL),
		IsActive:      true,
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func (uc *productUseCase) GetProduct(ctx context.Context, id string) (*model.Product, error) {
	return uc.owned(ctx, id)
}

// owned loads a product visible to the caller. Another merchant's product reads as not found.
func (uc *productUseCase) owned(ctx context.Context, id string) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, product.ErrProductNotFound
	}
	if merchantID := auth.GetMerchantID(ctx); merchantID != "" && p.MerchantID != merchantID {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

type cachedList struct {
	Products []model.Product
	Count    int
}

func (uc *productUseCase) ListProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	cacheKey, err := uc.generateCacheKey(filters)
	if err == nil && uc.cache != nil {
		val, err := uc.cache.Client.Get(ctx, cacheKey).Result()
		if err == nil {
			var result cachedList
			if err := json.Unmarshal([]byte(val), &result); err == nil {
				return result.Products, result.Count, nil
			}
		}
	}

	if filters.SearchQuery != "" && uc.es != nil {
		products, total, err := uc.searchElastic(ctx, filters)
		if err == nil {
			return products, total, nil
		}
		uc.logger.Error("ES search failed, falling back to DB", zap.Error(err))
	}

	products, count, err := uc.repo.FindAll(ctx, filters)
	if err != nil {
		return nil, 0, err
	}

	if cacheKey != "" && uc.cache != nil {
		if data, err := json.Marshal(cachedList{Products: products, Count: count}); err == nil {
			if err := uc.cache.Client.Set(ctx, cacheKey, data, listCacheTTL).Err(); err != nil {
				uc.logger.Warn("failed to cache product list", zap.Error(err))
			}
		}
	}

	return products, count, nil
}

func (uc *productUseCase) searchElastic(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	must := []map[string]any{
		{
			"query_string": map[string]any{
				"query":  fmt.Sprintf("*%s*", filters.SearchQuery),
				"fields": []string{"name^3", "sku", "description"},
			},
		},
		{"term": map[string]any{"merchant_id": filters.MerchantID}},
	}
	if filters.StoreID != "" {
		must = append(must, map[string]any{"term": map[string]any{"store_id": filters.StoreID}})
	}

	q := map[string]any{
		"query": map[string]any{"bool": map[string]any{"must": must}},
	}
	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		q["from"] = (page - 1) * filters.PageSize
		q["size"] = filters.PageSize
	}

	res, err := uc.es.Search(ctx, indexName, q)
	if err != nil {
		return nil, 0, err
	}
	products := make([]model.Product, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var p model.Product
		if err := json.Unmarshal(hit.Source, &p); err == nil {
			products = append(products, p)
		}
	}
	return products, res.Hits.Total.Value, nil
}

func (uc *productUseCase) generateCacheKey(filters *dto.ProductFilters) (string, error) {
	data, err := json.Marshal(filters)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("products:list:%s:%x", filters.MerchantID, md5.Sum(data)), nil
}

func (uc *productUseCase) invalidateProductCache(ctx context.Context, merchantID string) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePattern(ctx, fmt.Sprintf("products:list:%s:*", merchantID)); err != nil {
		uc.logger.Warn("failed to invalidate product cache", zap.String("merchant_id", merchantID), zap.Error(err))
	}
}

func (uc *productUseCase) syncToElastic(ctx context.Context, products ...*model.Product) {
	if uc.es == nil {
		return
	}
	if err := uc.es.CreateIndex(ctx, indexName, indexMapping); err != nil {
		uc.logger.Warn("failed to ensure product index", zap.Error(err))
	}
	for _, p := range products {
		if err := uc.es.Index(ctx, indexName, p.ID, p); err != nil {
			uc.logger.Error("failed to index product", zap.String("product_id", p.ID), zap.Error(err))
		}
	}
}

func (uc *productUseCase) UpdateProduct(ctx context.Context, input *dto.UpdateProductInput) (*model.Product, error) {
	p, err := uc.repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.MerchantID != input.MerchantID {
		return nil, product.ErrProductNotFound
	}

	if p.SKU != input.SKU {
		unique, err := uc.repo.IsSKUUnique(ctx, input.MerchantID, input.SKU, p.ID)
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, product.ErrSKUExists
		}
	}

	p.StoreID = optional(input.StoreID)
	p.SKU = input.SKU
	p.Name = input.Name
	p.Description = optional(input.Description)
	p.MRP = input.MRP
	p.SellingPrice = input.SellingPrice
	p.GSTPercentage = input.GSTPercentage
	p.Quantity = input.Quantity
	p.Weight = input.Weight
	p.ImageURL = optional(input.ImageURL)
	p.IsActive = input.IsActive
	p.UpdatedAt = time.Now()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	go uc.syncToElastic(context.Background(), p)

	return p, nil
}

// DeleteProduct removes the product; deleting a root also removes its variants.
func (uc *productUseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.owned(ctx, id)
	if err != nil {
		return err
	}

	ids := []string{p.ID}
	if p.GroupKey() == p.ID && uc.es != nil {
		family, err := uc.repo.FindFamily(ctx, p.MerchantID, p.ID)
		if err != nil {
			return err
		}
		ids = ids[:0]
		for i := range family {
			ids = append(ids, family[i].ID)
		}
	}

	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}

	go uc.invalidateProductCache(context.Background(), p.MerchantID)
	go uc.removeFromElastic(context.Background(), ids...)

	return nil
}

func (uc *productUseCase) removeFromElastic(ctx context.Context, ids ...string) {
	if uc.es == nil {
		return
	}
	for _, id := range ids {
		if err := uc.es.Delete(ctx, indexName, id); err != nil {
			uc.logger.Error("failed to delete product from ES", zap.String("product_id", id), zap.Error(err))
		}
	}
}

// AddVariants creates every input as a child of parentID's root product. Variants of a variant are
// attached to the root so sibling sets stay one level deep.
func (uc *productUseCase) AddVariants(ctx context.Context, parentID string, inputs []*dto.CreateProductInput) ([]*model.Product, error) {
	parent, err := uc.owned(ctx, parentID)
	if err != nil {
		return nil, err
	}
	rootID := parent.GroupKey()
	if rootID != parent.ID {
		root, err := uc.repo.FindByID(ctx, rootID)
		if err != nil {
			return nil, err
		}
		if root != nil {
			parent = root
		}
	}

	seen := make(map[string]struct{}, len(inputs))
	variants := make([]*model.Product, 0, len(inputs))
	for _, in := range inputs {
		if _, dup := seen[in.SKU]; dup {
			return nil, fmt.Errorf("%w: %s", product.ErrSKUExists, in.SKU)
		}
		seen[in.SKU] = struct{}{}

		unique, err := uc.repo.IsSKUUnique(ctx, parent.MerchantID, in.SKU, "")
		if err != nil {
			return nil, err
		}
		if !unique {
			return nil, fmt.Errorf("%w: %s", product.ErrSKUExists, in.SKU)
		}

		in.MerchantID = parent.MerchantID
		if in.StoreID == "" && parent.StoreID != nil {
			in.StoreID = *parent.StoreID
		}
		if in.Name == "" {
			in.Name = parent.Name
		}
		root := rootID
		variants = append(variants, newProduct(in, &root))
	}

	if err := uc.repo.CreateMany(ctx, variants); err != nil {
		return nil, err
	}

	go uc.invalidateProductCache(context.Background(), parent.MerchantID)
	go uc.syncToElastic(context.Background(), variants...)

	return variants, nil
}

func (uc *productUseCase) ListFamily(ctx context.Context, id string) ([]model.Product, error) {
	p, err := uc.owned(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.repo.FindFamily(ctx, p.MerchantID, p.GroupKey())
}
