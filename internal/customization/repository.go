package customization

import (
	"context"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

type Repository interface {
	ListGroups(ctx context.Context, productID string) ([]model.CustomizationGroup, error)
	ListCustomizations(ctx context.Context, productID string) ([]model.Customization, error)
	// ReplaceGroups swaps the product's whole group set and drops customizations left without a parent.
	ReplaceGroups(ctx context.Context, productID string, groups []model.CustomizationGroup) error
	ReplaceCustomizations(ctx context.Context, productID string, items []model.Customization) error
}
