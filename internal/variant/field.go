package variant

import "github.com/google/uuid"

type FieldType string

const (
	TypeText   FieldType = "text"
	TypeNumber FieldType = "number"
	TypeSelect FieldType = "select"
)

// Field describes one editable attribute of a product variant.
type Field struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Required       bool      `json:"required"`
	MaxLength      *int      `json:"maxLength,omitempty"`
	Min            *float64  `json:"min,omitempty"`
	Type           FieldType `json:"type"`
	ValueInDecimal bool      `json:"valueInDecimal,omitempty"`
}

// Record is one variant form. FormKey is stable for the life of the form and never reused.
type Record struct {
	FormKey uuid.UUID      `json:"formKey"`
	Data    map[string]any `json:"data"`
}

// ErrorMap maps field id to message for a single record.
type ErrorMap map[string]string

func NewRecord() Record {
	return Record{FormKey: uuid.New(), Data: map[string]any{}}
}

const (
	FieldPrice         = "price"
	FieldPurchasePrice = "purchasePrice"
	FieldQuantity      = "quantity"
	FieldSKU           = "sku"
	FieldWeight        = "weight"
	FieldName          = "name"
)

func intPtr(i int) *int { return &i }

func floatPtr(f float64) *float64 { return &f }

// DefaultFields is the schema the product screen edits for each variant.
func DefaultFields() []Field {
	return []Field{
		{ID: FieldName, Title: "Variant Name", Type: TypeText, MaxLength: intPtr(100)},
		{ID: FieldSKU, Title: "SKU", Required: true, Type: TypeText, MaxLength: intPtr(50)},
		{ID: FieldPrice, Title: "MRP", Required: true, Type: TypeNumber, ValueInDecimal: true},
		{ID: FieldPurchasePrice, Title: "Selling Price", Required: true, Type: TypeNumber, ValueInDecimal: true},
		{ID: FieldQuantity, Title: "Available Quantity", Required: true, Type: TypeNumber, Min: floatPtr(0)},
		{ID: FieldWeight, Title: "Weight", Type: TypeNumber, ValueInDecimal: true},
	}
}
