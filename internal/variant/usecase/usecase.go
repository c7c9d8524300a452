package usecase

import (
	"context"

	"github.com/fekuna/omnipos-mall-service/internal/model"
	"github.com/fekuna/omnipos-mall-service/internal/pkg/logger"
	"github.com/fekuna/omnipos-mall-service/internal/product"
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
	"github.com/fekuna/omnipos-mall-service/internal/variant"
	"go.uber.org/zap"
)

type variantUseCase struct {
	products product.UseCase
	fields   []variant.Field
	logger   logger.ZapLogger
}

func NewVariantUseCase(products product.UseCase, log logger.ZapLogger) variant.UseCase {
	return &variantUseCase{
		products: products,
		fields:   variant.DefaultFields(),
		logger:   log,
	}
}

func (uc *variantUseCase) Fields() []variant.Field {
	out := make([]variant.Field, len(uc.fields))
	copy(out, uc.fields)
	return out
}

func (uc *variantUseCase) Validate(records []variant.Record) (bool, []variant.ErrorMap) {
	return variant.Validate(records, uc.fields)
}

// SaveVariants validates the whole batch first; nothing is written unless every record passes.
func (uc *variantUseCase) SaveVariants(ctx context.Context, productID string, records []variant.Record) ([]*model.Product, error) {
	ok, errs := uc.Validate(records)
	if !ok {
		return nil, &variant.ValidationError{Errors: errs}
	}

	inputs := make([]*dto.CreateProductInput, len(records))
	for i, rec := range records {
		inputs[i] = variant.ToProductInput(rec)
	}

	created, err := uc.products.AddVariants(ctx, productID, inputs)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("variants saved", zap.String("product_id", productID), zap.Int("count", len(created)))
	return created, nil
}
