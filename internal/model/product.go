package model

// Product is either a base product or one of its variants. Variants point at the base product
// through ParentID; variants of the same base are siblings.
type Product struct {
	BaseModel
	MerchantID    string   `db:"merchant_id" json:"merchant_id"`
	StoreID       *string  `db:"store_id" json:"store_id"`
	ParentID      *string  `db:"parent_id" json:"parent_id"` // Nullable
	SKU           string   `db:"sku" json:"sku"`
	Name          string   `db:"name" json:"name"`
	Description   *string  `db:"description" json:"description"`
	MRP           float64  `db:"mrp" json:"mrp"`
	SellingPrice  float64  `db:"selling_price" json:"selling_price"`
	GSTPercentage *float64 `db:"gst_percentage" json:"gst_percentage"`
	Quantity      int      `db:"quantity" json:"quantity"`
	Weight        *float64 `db:"weight" json:"weight"`
	ImageURL      *string  `db:"image_url" json:"image_url"`
	IsActive      bool     `db:"is_active" json:"is_active"`
}

// GroupKey identifies the sibling set: the parent id, or the product's own id for a root.
func (p *Product) GroupKey() string {
	if p.ParentID != nil && *p.ParentID != "" {
		return *p.ParentID
	}
	return p.ID
}
