package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/gin-gonic/gin"
)

type fakeUseCase struct {
	product.UseCase
	products    map[string]*model.Product
	lastFilters *dto.ProductFilters
	listErr     error
}

func (f *fakeUseCase) CreateProduct(_ context.Context, in *dto.CreateProductInput) (*model.Product, error) {
	for _, p := range f.products {
		if p.SKU == in.SKU {
			return nil, product.ErrSKUExists
		}
	}
	p := &model.Product{BaseModel: model.BaseModel{ID: "p" + in.SKU}, MerchantID: in.MerchantID, SKU: in.SKU, Name: in.Name}
	f.products[p.ID] = p
	return p, nil
}

func (f *fakeUseCase) GetProduct(_ context.Context, id string) (*model.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, product.ErrProductNotFound
	}
	return p, nil
}

func (f *fakeUseCase) ListProducts(_ context.Context, filters *dto.ProductFilters) ([]model.Product, int, error) {
	f.lastFilters = filters
	if f.listErr != nil {
		return nil, 0, f.listErr
	}
	return []model.Product{}, 0, nil
}

type captured struct{ notices []notify.Notice }

func (c *captured) Notify(_ context.Context, n notify.Notice) { c.notices = append(c.notices, n) }

func newRouter(uc product.UseCase, n notify.Notifier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewProductHandler(uc, n, logger.Nop()).Register(r.Group("/api", auth.RequireMerchant()))
	return r
}

func do(r http.Handler, method, path, merchant, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(auth.MerchantHeader, merchant)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateProduct(t *testing.T) {
	uc := &fakeUseCase{products: map[string]*model.Product{}}
	r := newRouter(uc, &captured{})

	w := do(r, http.MethodPost, "/api/products", "m1", `{"sku":"TEE-1","name":"Tee","mrp":499}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status: got=%d body=%s", w.Code, w.Body.String())
	}
	var p model.Product
	_ = json.Unmarshal(w.Body.Bytes(), &p)
	if p.MerchantID != "m1" {
		t.Fatalf("merchant should come from the header, got %q", p.MerchantID)
	}

	if w := do(r, http.MethodPost, "/api/products", "m1", `{"sku":"TEE-1","name":"Tee again"}`); w.Code != http.StatusConflict {
		t.Fatalf("duplicate sku: status=%d", w.Code)
	}
	if w := do(r, http.MethodPost, "/api/products", "m1", `{"name":"No sku"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("missing sku: status=%d", w.Code)
	}
}

func TestGetProductHidesOtherMerchants(t *testing.T) {
	uc := &fakeUseCase{products: map[string]*model.Product{
		"p1": {BaseModel: model.BaseModel{ID: "p1"}, MerchantID: "m1"},
	}}
	r := newRouter(uc, &captured{})

	if w := do(r, http.MethodGet, "/api/products/p1", "m1", ""); w.Code != http.StatusOK {
		t.Fatalf("owner: status=%d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/products/p1", "m2", ""); w.Code != http.StatusNotFound {
		t.Fatalf("other merchant: status=%d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/products/nope", "m1", ""); w.Code != http.StatusNotFound {
		t.Fatalf("missing: status=%d", w.Code)
	}
}

func TestListProductsFilters(t *testing.T) {
	uc := &fakeUseCase{products: map[string]*model.Product{}}
	r := newRouter(uc, &captured{})

	if w := do(r, http.MethodGet, "/api/products?roots=true&q=tee&page=2&page_size=abc", "m1", ""); w.Code != http.StatusOK {
		t.Fatalf("status: got=%d", w.Code)
	}
	f := uc.lastFilters
	if f.MerchantID != "m1" || f.SearchQuery != "tee" || f.Page != 2 || f.PageSize != 20 {
		t.Fatalf("filters: %+v", f)
	}
	if f.ParentID == nil || *f.ParentID != "" {
		t.Fatal("roots=true should filter to root products")
	}
}

func TestListProductsFailureNotifies(t *testing.T) {
	uc := &fakeUseCase{products: map[string]*model.Product{}, listErr: errors.New("db down")}
	n := &captured{}
	r := newRouter(uc, n)

	if w := do(r, http.MethodGet, "/api/products", "m1", ""); w.Code != http.StatusInternalServerError {
		t.Fatalf("status: got=%d", w.Code)
	}
	if len(n.notices) != 1 || n.notices[0].Message != "failed to list products" {
		t.Fatalf("notices: %+v", n.notices)
	}
}
