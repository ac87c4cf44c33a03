package order

import "time"

const (
	StatusPending    = "PENDING"
	StatusProcessing = "PROCESSING"
	StatusShipped    = "SHIPPED"
	StatusDelivered  = "DELIVERED"
	StatusCancelled  = "CANCELLED"

	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"

	Currency = "KES"
)

// Address is frozen into the order as JSONB.
type Address struct {
	Address1   string `json:"address1"`
	Address2   string `json:"address2,omitempty"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code,omitempty"`
}

// Order is immutable after placement except for status and payment_status.
type Order struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	Phone         string    `json:"phone"`
	Address       Address   `json:"address"`
	Subtotal      int64     `json:"subtotal"`
	Shipping      int64     `json:"shipping"`
	Total         int64     `json:"total"`
	Currency      string    `json:"currency"`
	Status        string    `json:"status"`
	PaymentStatus string    `json:"payment_status"`
	InternalNotes string    `json:"internal_notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Item snapshots the product title and effective price at placement time.
// Later catalog edits never touch these rows.
type Item struct {
	ID            string `json:"id"`
	OrderID       string `json:"order_id"`
	ProductID     string `json:"product_id"`
	TitleSnapshot string `json:"title_snapshot"`
	PriceSnapshot int64  `json:"price_snapshot"`
	Quantity      int    `json:"quantity"`
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}
