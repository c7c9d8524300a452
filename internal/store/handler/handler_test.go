package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/notify"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/store"
	"github.com/fekuna/omnipos-mall-service/internal/store/dto"
	"github.com/fekuna/omnipos-mall-service/internal/store/usecase"
	"github.com/gin-gonic/gin"
)

type memRepo struct {
	stores map[string]model.Store
}

func (r *memRepo) Create(_ context.Context, s *model.Store) error {
	r.stores[s.ID] = *s
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id string) (*model.Store, error) {
	s, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (r *memRepo) FindAll(_ context.Context, f *dto.StoreFilters) ([]model.Store, int, error) {
	var out []model.Store
	for _, s := range r.stores {
		if f.MerchantID == "" || s.MerchantID == f.MerchantID {
			out = append(out, s)
		}
	}
	return out, len(out), nil
}

func (r *memRepo) Update(_ context.Context, s *model.Store) error {
	r.stores[s.ID] = *s
	return nil
}

func (r *memRepo) Delete(_ context.Context, merchantID, id string) error {
	if s, ok := r.stores[id]; ok && s.MerchantID == merchantID {
		delete(r.stores, id)
	}
	return nil
}

func newRouter() (*gin.Engine, *memRepo) {
	gin.SetMode(gin.TestMode)
	repo := &memRepo{stores: map[string]model.Store{}}
	h := NewStoreHandler(usecase.NewStoreUseCase(repo, logger.Nop()), notify.NewLogNotifier(logger.Nop()), logger.Nop())

	r := gin.New()
	api := r.Group("/api")
	api.Use(auth.RequireMerchant())
	h.Register(api)
	return r, repo
}

func do(r http.Handler, method, path, merchant string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if merchant != "" {
		req.Header.Set(auth.MerchantHeader, merchant)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createStore(t *testing.T, r http.Handler) model.Store {
	t.Helper()
	w := do(r, http.MethodPost, "/api/stores", "m1", map[string]any{
		"name":             "Corner Bakery",
		"category":         "F&B",
		"delivery_enabled": true,
		"geofence": []map[string]float64{
			{"lat": 0, "lng": 0}, {"lat": 0, "lng": 1}, {"lat": 1, "lng": 1}, {"lat": 1, "lng": 0},
		},
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: status=%d body=%s", w.Code, w.Body.String())
	}
	var s model.Store
	if err := json.Unmarshal(w.Body.Bytes(), &s); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return s
}

func TestCreateAndServiceable(t *testing.T) {
	r, _ := newRouter()
	s := createStore(t, r)

	w := do(r, http.MethodGet, "/api/stores/"+s.ID+"/serviceable?lat=0.5&lng=0.5", "m1", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("serviceable: status=%d body=%s", w.Code, w.Body.String())
	}
	var res store.Serviceability
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if !res.Serviceable {
		t.Fatalf("expected serviceable: %+v", res)
	}

	w = do(r, http.MethodGet, "/api/stores/"+s.ID+"/serviceable?lat=5&lng=5", "m1", nil)
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Serviceable || res.Reason != "outside_geofence" {
		t.Fatalf("expected outside_geofence: %+v", res)
	}
}

func TestServiceableRequiresCoordinates(t *testing.T) {
	r, _ := newRouter()
	s := createStore(t, r)

	if w := do(r, http.MethodGet, "/api/stores/"+s.ID+"/serviceable?lat=abc", "m1", nil); w.Code != http.StatusBadRequest {
		t.Fatalf("missing lng: status=%d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/stores/"+s.ID+"/serviceable?lat=100&lng=0", "m1", nil); w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("out of range: status=%d", w.Code)
	}
}

func TestCreateRejectsBadGeofence(t *testing.T) {
	r, repo := newRouter()

	w := do(r, http.MethodPost, "/api/stores", "m1", map[string]any{
		"name":     "Kiosk",
		"category": "Retail",
		"geofence": []map[string]float64{{"lat": 0, "lng": 0}, {"lat": 1, "lng": 1}},
	})
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status: got=%d body=%s", w.Code, w.Body.String())
	}
	if len(repo.stores) != 0 {
		t.Fatal("invalid store must not be saved")
	}
}

func TestStoresScopedToMerchant(t *testing.T) {
	r, repo := newRouter()
	s := createStore(t, r)

	if w := do(r, http.MethodGet, "/api/stores/"+s.ID, "m2", nil); w.Code != http.StatusNotFound {
		t.Fatalf("other merchant get: status=%d", w.Code)
	}
	if w := do(r, http.MethodDelete, "/api/stores/"+s.ID, "m2", nil); w.Code != http.StatusNotFound {
		t.Fatalf("other merchant delete: status=%d", w.Code)
	}
	if w := do(r, http.MethodGet, "/api/stores", "", nil); w.Code != http.StatusUnauthorized {
		t.Fatalf("no merchant: status=%d", w.Code)
	}

	if w := do(r, http.MethodDelete, "/api/stores/"+s.ID, "m1", nil); w.Code != http.StatusNoContent {
		t.Fatalf("delete: status=%d", w.Code)
	}
	if len(repo.stores) != 0 {
		t.Fatal("store should be deleted")
	}
}

func TestUpdateStore(t *testing.T) {
	r, _ := newRouter()
	s := createStore(t, r)

	w := do(r, http.MethodPut, "/api/stores/"+s.ID, "m1", map[string]any{
		"name":             "Corner Bakery & Cafe",
		"category":         "F&B",
		"delivery_enabled": false,
		"is_active":        true,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update: status=%d body=%s", w.Code, w.Body.String())
	}

	w = do(r, http.MethodGet, "/api/stores/"+s.ID+"/serviceable?lat=0.5&lng=0.5", "m1", nil)
	var res store.Serviceability
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	if res.Serviceable || res.Reason != "delivery_disabled" {
		t.Fatalf("expected delivery_disabled: %+v", res)
	}
}
