package cart

import (
	"time"

	"github.com/jkariuki/lapstore/internal/catalog"
)

// Cart is one per user, created lazily on the first add.
type Cart struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type Item struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cart_id"`
	ProductID string    `json:"product_id"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ItemDetail is a cart item joined with the live product row it references.
type ItemDetail struct {
	Item
	Product catalog.Product `json:"product"`
}

// Summary is the priced cart view returned to clients and consumed by
// checkout rendering.
type Summary struct {
	Items    []SummaryItem `json:"items"`
	Subtotal int64         `json:"subtotal"`
	Count    int           `json:"count"`
}

type SummaryItem struct {
	ID             string `json:"id"`
	ProductID      string `json:"product_id"`
	Slug           string `json:"slug"`
	Title          string `json:"title"`
	Quantity       int    `json:"quantity"`
	UnitPrice      int64  `json:"unit_price"`
	LineTotal      int64  `json:"line_total"`
	StockRemaining int    `json:"stock_remaining"`
}
