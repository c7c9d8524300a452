package customization

import (
	"context"
	"errors"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

var (
	ErrInvalidGroup         = errors.New("invalid customization group")
	ErrInvalidCustomization = errors.New("invalid customization")
)

type Tree struct {
	ProductID string `json:"product_id"`
	Nodes     []Node `json:"nodes"`
}

type UseCase interface {
	GetTree(ctx context.Context, productID string) (*Tree, error)
	ReplaceGroups(ctx context.Context, productID string, groups []model.CustomizationGroup) (*Tree, error)
	ReplaceCustomizations(ctx context.Context, productID string, items []model.Customization) (*Tree, error)
}
