package auth

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"
)

const (
	MerchantHeader   = "X-Merchant-ID"
	merchantMetadata = "x-merchant-id"
)

type ctxKey struct{}

func WithMerchantID(ctx context.Context, merchantID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, merchantID)
}

// GetMerchantID reads the merchant set by middleware, falling back to incoming gRPC metadata.
func GetMerchantID(ctx context.Context) string {
	if val, ok := ctx.Value(ctxKey{}).(string); ok {
		return val
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if ok {
		if val := md.Get(merchantMetadata); len(val) > 0 {
			return val[0]
		}
	}
	return ""
}

// RequireMerchant rejects HTTP requests without a merchant header.
func RequireMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		merchantID := c.GetHeader(MerchantHeader)
		if merchantID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": gin.H{"message": "missing merchant", "code": "unauthorized"},
			})
			return
		}
		c.Request = c.Request.WithContext(WithMerchantID(c.Request.Context(), merchantID))
		c.Next()
	}
}

// OptionalMerchant scopes the request to the merchant header when one is sent.
func OptionalMerchant() gin.HandlerFunc {
	return func(c *gin.Context) {
		if merchantID := c.GetHeader(MerchantHeader); merchantID != "" {
			c.Request = c.Request.WithContext(WithMerchantID(c.Request.Context(), merchantID))
		}
		c.Next()
	}
}

// ContextInterceptor copies the merchant from gRPC metadata into the context.
func ContextInterceptor() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if val := md.Get(merchantMetadata); len(val) > 0 {
				ctx = WithMerchantID(ctx, val[0])
			}
		}
		return handler(ctx, req)
	}
}
