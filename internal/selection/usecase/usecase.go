package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/fekuna/omnipos-mall-service/internal/auth"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/fekuna/omnipos-mall-service/internal/selection"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxSessionProducts = 500

type selectionUseCase struct {
	store    selection.Store
	products product.UseCase
	logger   logger.ZapLogger
}

func NewSelectionUseCase(store selection.Store, products product.UseCase, log logger.ZapLogger) selection.UseCase {
	return &selectionUseCase{
		store:    store,
		products: products,
		logger:   log,
	}
}

// Create snapshots the product list the screen shows; sibling groups are fixed for the session.
func (uc *selectionUseCase) Create(ctx context.Context, filters *dto.ProductFilters) (*selection.Session, error) {
	filters.MerchantID = auth.GetMerchantID(ctx)
	filters.Page = 1
	if filters.PageSize <= 0 || filters.PageSize > maxSessionProducts {
		filters.PageSize = maxSessionProducts
	}

	products, _, err := uc.products.ListProducts(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	now := time.Now().UTC()
	sess := &selection.Session{
		ID:         uuid.New().String(),
		MerchantID: filters.MerchantID,
		State:      selection.NewManager(selection.ItemsFromProducts(products)).Snapshot(),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	uc.logger.Debug("selection session created", zap.String("session_id", sess.ID), zap.Int("items", len(products)))
	return sess, nil
}

func (uc *selectionUseCase) Get(ctx context.Context, id string) (*selection.Session, error) {
	return uc.load(ctx, id)
}

func (uc *selectionUseCase) Select(ctx context.Context, id, productID string, checked bool) (*selection.Session, error) {
	return uc.mutate(ctx, id, func(m *selection.Manager) {
		m.Select(productID, checked)
	})
}

func (uc *selectionUseCase) UpdateDetail(ctx context.Context, id, productID, field, value string) (*selection.Session, error) {
	if field != selection.FieldGSTPercentage && field != selection.FieldSellingPrice {
		return nil, fmt.Errorf("%w: %s", selection.ErrUnknownField, field)
	}
	return uc.mutate(ctx, id, func(m *selection.Manager) {
		m.UpdateDetail(productID, field, value)
	})
}

func (uc *selectionUseCase) Reset(ctx context.Context, id string) (*selection.Session, error) {
	return uc.mutate(ctx, id, func(m *selection.Manager) {
		m.Reset()
	})
}

func (uc *selectionUseCase) Discard(ctx context.Context, id string) error {
	if _, err := uc.load(ctx, id); err != nil {
		return err
	}
	return uc.store.Delete(ctx, id)
}

// mutate is a read-modify-write against the store; concurrent writers to one session race and the
// last save wins.
func (uc *selectionUseCase) mutate(ctx context.Context, id string, fn func(m *selection.Manager)) (*selection.Session, error) {
	sess, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}

	m := selection.Restore(sess.State)
	fn(m)
	sess.State = m.Snapshot()
	sess.UpdatedAt = time.Now().UTC()

	if err := uc.store.Save(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (uc *selectionUseCase) load(ctx context.Context, id string) (*selection.Session, error) {
	sess, err := uc.store.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	if merchantID := auth.GetMerchantID(ctx); merchantID != "" && sess.MerchantID != merchantID {
		return nil, selection.ErrSessionNotFound
	}
	return sess, nil
}
