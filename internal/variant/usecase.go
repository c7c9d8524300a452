package variant

import (
	"context"
	"fmt"

	"github.com/fekuna/omnipos-mall-service/internal/model"
)

// ValidationError carries the per-record messages when a batch fails validation.
type ValidationError struct {
	Errors []ErrorMap
}

func (e *ValidationError) Error() string {
	invalid := 0
	for _, m := range e.Errors {
		if len(m) > 0 {
			invalid++
		}
	}
	return fmt.Sprintf("%d of %d variants are invalid", invalid, len(e.Errors))
}

type UseCase interface {
	Fields() []Field
	Validate(records []Record) (bool, []ErrorMap)
	SaveVariants(ctx context.Context, productID string, records []Record) ([]*model.Product, error)
}
