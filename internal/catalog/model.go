package catalog

import "time"

const (
	StatusDraft    = "DRAFT"
	StatusActive   = "ACTIVE"
	StatusArchived = "ARCHIVED"

	ConditionNew         = "NEW"
	ConditionRefurbished = "REFURBISHED"
)

type Product struct {
	ID          string `json:"id"`
	Slug        string `json:"slug"`
	Title       string `json:"title"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Description string `json:"description,omitempty"`
	Condition   string `json:"condition"`
	Status      string `json:"status"`
	// Amounts are integer minor currency units (KES cents).
	PriceAmount      int64      `json:"price_amount"`
	SalePriceAmount  *int64     `json:"sale_price_amount,omitempty"`
	SaleStart        *time.Time `json:"sale_start,omitempty"`
	SaleEnd          *time.Time `json:"sale_end,omitempty"`
	StockRemaining   int        `json:"stock_remaining"`
	SoldCount        int        `json:"sold_count"`
	WarrantyMonths   int        `json:"warranty_months"`
	ReturnPolicyDays int        `json:"return_policy_days"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

type Category struct {
	ID   string `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ValidStatus reports whether s is a known product status.
func ValidStatus(s string) bool {
	return s == StatusDraft || s == StatusActive || s == StatusArchived
}

// ValidCondition reports whether c is a known product condition.
func ValidCondition(c string) bool {
	return c == ConditionNew || c == ConditionRefurbished
}
