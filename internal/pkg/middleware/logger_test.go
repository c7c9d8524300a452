package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggerRecordsRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zapcore.InfoLevel)

	r := gin.New()
	r.Use(Logger(logger.Wrap(zap.New(core))))
	api := r.Group("/api", auth.RequireMerchant())
	api.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, path := range []string{"/api/ok", "/api/boom"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(auth.MerchantHeader, "m1")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("entries: got=%d want=2", len(entries))
	}
	first := entries[0].ContextMap()
	if first["path"] != "/api/ok" || first["status"] != int64(200) || first["merchant_id"] != "m1" {
		t.Fatalf("first entry: %v", first)
	}
	if entries[1].Level != zapcore.ErrorLevel {
		t.Fatalf("5xx level: got=%v", entries[1].Level)
	}
}
