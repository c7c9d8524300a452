package selection

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
)

var (
	ErrSessionNotFound = errors.New("selection session not found")
	ErrUnknownField    = errors.New("unknown detail field")
)

type Store interface {
	Save(ctx context.Context, s *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type UseCase interface {
	Create(ctx context.Context, filters *dto.ProductFilters) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	Select(ctx context.Context, id, productID string, checked bool) (*Session, error)
	UpdateDetail(ctx context.Context, id, productID, field, value string) (*Session, error)
	Reset(ctx context.Context, id string) (*Session, error)
	Discard(ctx context.Context, id string) error
}
