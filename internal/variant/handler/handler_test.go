package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/fekuna/omnipos-mall-service/internal/variant/usecase"
	"github.com/gin-gonic/gin"
)

// fakeProducts implements only what the variant use case calls.
type fakeProducts struct {
	product.UseCase
	parentID string
	inputs   []*dto.CreateProductInput
}

func (f *fakeProducts) AddVariants(_ context.Context, parentID string, inputs []*dto.CreateProductInput) ([]*model.Product, error) {
	if parentID != "root" {
		return nil, product.ErrProductNotFound
	}
	f.parentID = parentID
	f.inputs = inputs
	out := make([]*model.Product, len(inputs))
	for i, in := range inputs {
		out[i] = &model.Product{SKU: in.SKU, MRP: in.MRP, SellingPrice: in.SellingPrice, Quantity: in.Quantity}
	}
	return out, nil
}

func newRouter(products *fakeProducts) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.Nop()
	h := NewVariantHandler(usecase.NewVariantUseCase(products, log), notify.NewLogNotifier(log), log)
	r := gin.New()
	h.Register(r.Group("/api"))
	return r
}

func post(r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestValidateEndpointReturnsPerRecordErrors(t *testing.T) {
	r := newRouter(&fakeProducts{})

	rec := post(r, "/api/variants/validate", map[string]any{
		"records": []map[string]any{
			{"data": map[string]any{"sku": "A", "price": "50.00", "purchasePrice": "75.00", "quantity": 1}},
		},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}

	var resp validateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.IsValid || len(resp.Errors) != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Errors[0]["purchasePrice"] != "Selling Price cannot be greater than MRP" {
		t.Fatalf("errors: %v", resp.Errors[0])
	}
}

func TestSaveVariants(t *testing.T) {
	products := &fakeProducts{}
	r := newRouter(products)

	rec := post(r, "/api/products/root/variants", map[string]any{
		"records": []map[string]any{
			{"data": map[string]any{"sku": "TEE-S", "price": "20", "purchasePrice": "18.50", "quantity": "4"}},
		},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if len(products.inputs) != 1 {
		t.Fatalf("inputs: got=%d", len(products.inputs))
	}
	in := products.inputs[0]
	if in.SKU != "TEE-S" || in.MRP != 20 || in.SellingPrice != 18.5 || in.Quantity != 4 {
		t.Fatalf("unexpected input: %+v", in)
	}
}

func TestSaveVariantsRejectsInvalidBatch(t *testing.T) {
	products := &fakeProducts{}
	r := newRouter(products)

	rec := post(r, "/api/products/root/variants", map[string]any{
		"records": []map[string]any{{"data": map[string]any{"sku": ""}}},
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if products.inputs != nil {
		t.Fatal("nothing should be saved for an invalid batch")
	}
}

func TestSaveVariantsUnknownProduct(t *testing.T) {
	r := newRouter(&fakeProducts{})

	rec := post(r, "/api/products/missing/variants", map[string]any{
		"records": []map[string]any{
			{"data": map[string]any{"sku": "X", "price": "2", "purchasePrice": "1", "quantity": 1}},
		},
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status: got=%d body=%s", rec.Code, rec.Body.String())
	}
}
