package dto

type ProductFilters struct {
	MerchantID  string
	StoreID     string
	ParentID    *string // "" lists root products only
	IsActive    *bool
	SearchQuery string // name or sku
	SortBy      string // name, price, created_at
	SortOrder   string // asc, desc
	Page        int
	PageSize    int
}

type CreateProductInput struct {
	MerchantID    string   `json:"-"`
	StoreID       string   `json:"store_id"`
	SKU           string   `json:"sku" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	MRP           float64  `json:"mrp"`
	SellingPrice  float64  `json:"selling_price"`
	GSTPercentage *float64 `json:"gst_percentage"`
	Quantity      int      `json:"quantity"`
	Weight        *float64 `json:"weight"`
	ImageURL      string   `json:"image_url"`
}

type UpdateProductInput struct {
	ID            string   `json:"-"`
	MerchantID    string   `json:"-"`
	StoreID       string   `json:"store_id"`
	SKU           string   `json:"sku" binding:"required"`
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	MRP           float64  `json:"mrp"`
	SellingPrice  float64  `json:"selling_price"`
	GSTPercentage *float64 `json:"gst_percentage"`
	Quantity      int      `json:"quantity"`
	Weight        *float64 `json:"weight"`
	ImageURL      string   `json:"image_url"`
	IsActive      bool     `json:"is_active"`
}
