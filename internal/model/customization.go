package model

type CustomizationGroup struct {
	BaseModel
	ProductID string `db:"product_id" json:"product_id"`
	Name      string `db:"name" json:"name"`
	Seq       int    `db:"seq" json:"seq"` // 1 marks a root group
	MinSelect int    `db:"min_select" json:"min_select"`
	MaxSelect int    `db:"max_select" json:"max_select"`
	Position  int    `db:"position" json:"-"`
}

type Customization struct {
	BaseModel
	ProductID string  `db:"product_id" json:"product_id"`
	Parent    string  `db:"parent_group_id" json:"parent"`
	Child     *string `db:"child_group_id" json:"child,omitempty"`
	Name      string  `db:"name" json:"name"`
	Price     float64 `db:"price" json:"price"`
	IsDefault bool    `db:"is_default" json:"is_default"`
	Position  int     `db:"position" json:"-"`
}
