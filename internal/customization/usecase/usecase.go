package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/customization"
	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type customizationUseCase struct {
	repo     customization.Repository
	products product.UseCase
	logger   logger.ZapLogger
}

func NewCustomizationUseCase(repo customization.Repository, products product.UseCase, log logger.ZapLogger) customization.UseCase {
	return &customizationUseCase{
		repo:     repo,
		products: products,
		logger:   log,
	}
}

func (uc *customizationUseCase) GetTree(ctx context.Context, productID string) (*customization.Tree, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}
	return uc.buildTree(ctx, productID)
}

// ReplaceGroups swaps the entire group list. Partial updates are not supported: callers send the
// full list every time.
func (uc *customizationUseCase) ReplaceGroups(ctx context.Context, productID string, groups []model.CustomizationGroup) (*customization.Tree, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	now := time.Now()
	seen := make(map[string]bool, len(groups))
	for i := range groups {
		g := &groups[i]
		if strings.TrimSpace(g.Name) == "" {
			return nil, fmt.Errorf("%w: group %d has no name", customization.ErrInvalidGroup, i)
		}
		if g.Seq < 1 {
			return nil, fmt.Errorf("%w: group %q has seq %d", customization.ErrInvalidGroup, g.Name, g.Seq)
		}
		if g.MaxSelect > 0 && g.MinSelect > g.MaxSelect {
			return nil, fmt.Errorf("%w: group %q min_select above max_select", customization.ErrInvalidGroup, g.Name)
		}
		if g.ID == "" {
			g.ID = uuid.New().String()
		}
		if seen[g.ID] {
			return nil, fmt.Errorf("%w: duplicate group id %s", customization.ErrInvalidGroup, g.ID)
		}
		seen[g.ID] = true
		if g.CreatedAt.IsZero() {
			g.CreatedAt = now
		}
		g.UpdatedAt = now
	}

	items, err := uc.repo.ListCustomizations(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := customization.CheckAcyclic(groups, items); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceGroups(ctx, productID, groups); err != nil {
		return nil, err
	}
	uc.logger.Info("customization groups replaced", zap.String("product_id", productID), zap.Int("count", len(groups)))

	return uc.buildTree(ctx, productID)
}

func (uc *customizationUseCase) ReplaceCustomizations(ctx context.Context, productID string, items []model.Customization) (*customization.Tree, error) {
	if err := uc.ensureProduct(ctx, productID); err != nil {
		return nil, err
	}

	groups, err := uc.repo.ListGroups(ctx, productID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(groups))
	for _, g := range groups {
		known[g.ID] = true
	}

	now := time.Now()
	seen := make(map[string]bool, len(items))
	for i := range items {
		c := &items[i]
		if strings.TrimSpace(c.Name) == "" {
			return nil, fmt.Errorf("%w: customization %d has no name", customization.ErrInvalidCustomization, i)
		}
		if !known[c.Parent] {
			return nil, fmt.Errorf("%w: %q belongs to unknown group %q", customization.ErrInvalidCustomization, c.Name, c.Parent)
		}
		if c.Child != nil && *c.Child == "" {
			c.Child = nil
		}
		if c.Child != nil && !known[*c.Child] {
			return nil, fmt.Errorf("%w: %q unlocks unknown group %q", customization.ErrInvalidCustomization, c.Name, *c.Child)
		}
		if c.Price < 0 {
			return nil, fmt.Errorf("%w: %q has a negative price", customization.ErrInvalidCustomization, c.Name)
		}
		if c.ID == "" {
			c.ID = uuid.New().String()
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: duplicate customization id %s", customization.ErrInvalidCustomization, c.ID)
		}
		seen[c.ID] = true
		if c.CreatedAt.IsZero() {
			c.CreatedAt = now
		}
		c.UpdatedAt = now
	}

	if err := customization.CheckAcyclic(groups, items); err != nil {
		return nil, err
	}

	if err := uc.repo.ReplaceCustomizations(ctx, productID, items); err != nil {
		return nil, err
	}
	uc.logger.Info("customizations replaced", zap.String("product_id", productID), zap.Int("count", len(items)))

	return uc.buildTree(ctx, productID)
}

// buildTree always recomputes from the stored lists; nothing is cached between calls.
func (uc *customizationUseCase) buildTree(ctx context.Context, productID string) (*customization.Tree, error) {
	groups, err := uc.repo.ListGroups(ctx, productID)
	if err != nil {
		return nil, err
	}
	items, err := uc.repo.ListCustomizations(ctx, productID)
	if err != nil {
		return nil, err
	}
	nodes, err := customization.Traverse(groups, items)
	if err != nil {
		return nil, err
	}
	return &customization.Tree{ProductID: productID, Nodes: nodes}, nil
}

func (uc *customizationUseCase) ensureProduct(ctx context.Context, productID string) error {
	p, err := uc.products.GetProduct(ctx, productID)
	if err != nil {
		return err
	}
	if merchantID := auth.GetMerchantID(ctx); merchantID != "" && p.MerchantID != merchantID {
		return product.ErrProductNotFound
	}
	return nil
}
