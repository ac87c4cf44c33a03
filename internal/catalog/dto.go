package catalog

import "time"

// CreateProductRequest payload for admin product creation.
// swagger:model CreateProductRequest
type CreateProductRequest struct {
	Slug             string     `json:"slug"        example:"thinkpad-x1-carbon-g11"`
	Title            string     `json:"title"       example:"ThinkPad X1 Carbon Gen 11"`
	Brand            string     `json:"brand"       example:"Lenovo"`
	Model            string     `json:"model"       example:"X1 Carbon G11"`
	Description      string     `json:"description" example:"14in ultraportable, 32GB RAM"`
	Condition        string     `json:"condition"   example:"NEW"`
	Status           string     `json:"status"      example:"DRAFT"`
	PriceAmount      int64      `json:"price_amount" example:"24990000"`
	SalePriceAmount  *int64     `json:"sale_price_amount,omitempty"`
	SaleStart        *time.Time `json:"sale_start,omitempty"`
	SaleEnd          *time.Time `json:"sale_end,omitempty"`
	StockRemaining   int        `json:"stock_remaining" example:"10"`
	WarrantyMonths   int        `json:"warranty_months" example:"12"`
	ReturnPolicyDays int        `json:"return_policy_days" example:"14"`
	// Category slugs; every slug must already exist.
	Categories []string `json:"categories"`
}

// UpdateProductRequest payload for admin partial update. Nil fields keep the
// current value; empty strings on text fields do too.
// swagger:model UpdateProductRequest
type UpdateProductRequest struct {
	Title            string     `json:"title"`
	Brand            string     `json:"brand"`
	Model            string     `json:"model"`
	Description      string     `json:"description"`
	Condition        string     `json:"condition"`
	Status           string     `json:"status"`
	PriceAmount      *int64     `json:"price_amount,omitempty"`
	SalePriceAmount  *int64     `json:"sale_price_amount,omitempty"`
	SaleStart        *time.Time `json:"sale_start,omitempty"`
	SaleEnd          *time.Time `json:"sale_end,omitempty"`
	StockRemaining   *int       `json:"stock_remaining,omitempty"`
	WarrantyMonths   *int       `json:"warranty_months,omitempty"`
	ReturnPolicyDays *int       `json:"return_policy_days,omitempty"`
}

// ListResponse is the paginated shop listing.
// swagger:model ProductListResponse
type ListResponse struct {
	Category string    `json:"category,omitempty"`
	Sort     string    `json:"sort,omitempty"`
	Limit    int       `json:"limit"`
	Offset   int       `json:"offset"`
	Items    []Product `json:"items"`
}
