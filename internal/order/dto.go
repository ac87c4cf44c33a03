package order

import "strings"

// CheckoutForm is the checkout submission. Field names follow the checkout
// form inputs.
// swagger:model CheckoutForm
type CheckoutForm struct {
	FullName       string `json:"full_name" form:"fullName" validate:"required" example:"Jane Wanjiku"`
	Email          string `json:"email" form:"email" validate:"required,email" example:"jane@example.com"`
	Phone          string `json:"phone" form:"phone" validate:"required" example:"+254700000000"`
	Address1       string `json:"address1" form:"address1" validate:"required" example:"Riverside Drive 12"`
	Address2       string `json:"address2" form:"address2"`
	City           string `json:"city" form:"city" validate:"required" example:"Nairobi"`
	State          string `json:"state" form:"state"`
	Country        string `json:"country" form:"country" validate:"required" example:"KE"`
	PostalCode     string `json:"postal_code" form:"postalCode"`
	ShippingMethod string `json:"shipping_method" form:"shippingMethod" example:"standard"`
}

func (f *CheckoutForm) trim() {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Address1 = strings.TrimSpace(f.Address1)
	f.Address2 = strings.TrimSpace(f.Address2)
	f.City = strings.TrimSpace(f.City)
	f.State = strings.TrimSpace(f.State)
	f.Country = strings.TrimSpace(f.Country)
	f.PostalCode = strings.TrimSpace(f.PostalCode)
	f.ShippingMethod = strings.TrimSpace(f.ShippingMethod)
}

// UpdateStatusRequest payload for admin status transitions.
// swagger:model UpdateOrderStatusRequest
type UpdateStatusRequest struct {
	Status string `json:"status" example:"SHIPPED"`
}
