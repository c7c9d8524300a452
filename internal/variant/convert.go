package variant

import (
	"github.com/fekuna/omnipos-mall-service/internal/product/dto"
)

// ToProductInput maps a validated record onto a product input. Unknown keys are ignored.
func ToProductInput(rec Record) *dto.CreateProductInput {
	in := &dto.CreateProductInput{SKU: asText(rec.Data[FieldSKU])}
	if name, ok := rec.Data[FieldName].(string); ok {
		in.Name = name
	}
	if d, ok := asDecimal(rec.Data[FieldPrice]); ok {
		in.MRP = d.InexactFloat64()
	}
	if d, ok := asDecimal(rec.Data[FieldPurchasePrice]); ok {
		in.SellingPrice = d.InexactFloat64()
	}
	if d, ok := asDecimal(rec.Data[FieldQuantity]); ok {
		in.Quantity = int(d.IntPart())
	}
	if d, ok := asDecimal(rec.Data[FieldWeight]); ok {
		w := d.InexactFloat64()
		in.Weight = &w
	}
	return in
}
