// Package order implements order placement: cart validation, stock
// re-checks, price snapshots and the atomic commit that keeps stock from
// being oversold.
package order

import (
	"context"
	"errors"
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jkariuki/lapstore/internal/cart"
	"github.com/jkariuki/lapstore/internal/pricing"
)

var (
	ErrEmptyCart         = errors.New("cart is empty")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidStatus     = errors.New("invalid order status")
)

const (
	ShippingStandard = "standard"
	ShippingExpress  = "express"

	freeShippingThreshold = 300000
	standardShippingFee   = 2500
	expressShippingFee    = 8000
)

// ValidationError carries per-field messages for a rejected checkout form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "checkout validation failed" }

// CartReader is the slice of the cart the workflow needs.
type CartReader interface {
	Items(ctx context.Context, userID string) ([]cart.ItemDetail, error)
}

type Service struct {
	repo     Repository
	carts    CartReader
	validate *validator.Validate
	now      func() time.Time
}

func NewService(repo Repository, carts CartReader) *Service {
	v := validator.New()
	// report errors under the form input names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("form"); name != "" {
			return name
		}
		return fld.Name
	})
	return &Service{repo: repo, carts: carts, validate: v, now: time.Now}
}

// ShippingFee returns the fee in minor units for a method and subtotal.
// Standard shipping is free once the subtotal crosses the threshold.
func ShippingFee(method string, subtotal int64) int64 {
	if method == ShippingExpress {
		return expressShippingFee
	}
	if subtotal >= freeShippingThreshold {
		return 0
	}
	return standardShippingFee
}

// Place turns the user's cart into a durable order.
//
// Preconditions run in order: form validation (no mutation on failure), a
// non-empty cart, and a stock pre-check against live product rows. The only
// mutating step is repo.Place, which re-enforces stock inside the
// transaction; a pre-check pass does not guarantee the commit succeeds when
// placements race.
func (s *Service) Place(ctx context.Context, userID string, form CheckoutForm) (*Order, error) {
	form.trim()
	if err := s.validate.Struct(form); err != nil {
		fields := map[string]string{}
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				msg := "Required"
				if fe.Tag() == "email" {
					msg = "Enter a valid email"
				}
				fields[fe.Field()] = msg
			}
		}
		return nil, &ValidationError{Fields: fields}
	}

	method := ShippingStandard
	if form.ShippingMethod == ShippingExpress {
		method = ShippingExpress
	}

	items, err := s.carts.Items(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	for i := range items {
		if items[i].Quantity > items[i].Product.StockRemaining {
			return nil, ErrInsufficientStock
		}
	}

	now := s.now()
	var subtotal int64
	lines := make([]Item, 0, len(items))
	for i := range items {
		it := &items[i]
		unit := pricing.EffectivePrice(&it.Product, now)
		subtotal += unit * int64(it.Quantity)
		lines = append(lines, Item{
			ID:            uuid.NewString(),
			ProductID:     it.ProductID,
			TitleSnapshot: it.Product.Title,
			PriceSnapshot: unit,
			Quantity:      it.Quantity,
		})
	}
	shipping := ShippingFee(method, subtotal)

	o := &Order{
		ID:            uuid.NewString(),
		UserID:        userID,
		CustomerName:  form.FullName,
		CustomerEmail: form.Email,
		Phone:         form.Phone,
		Address: Address{
			Address1:   form.Address1,
			Address2:   form.Address2,
			City:       form.City,
			State:      form.State,
			Country:    form.Country,
			PostalCode: form.PostalCode,
		},
		Subtotal:      subtotal,
		Shipping:      shipping,
		Total:         subtotal + shipping,
		Currency:      Currency,
		Status:        StatusPending,
		PaymentStatus: PaymentPending,
		InternalNotes: "Shipping: " + method,
	}
	if err := s.repo.Place(ctx, o, lines); err != nil {
		return nil, err
	}
	return o, nil
}

// UpdateStatus applies an admin status transition. Cancelling restocks the
// purchased quantities atomically.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) error {
	if !ValidStatus(status) {
		return ErrInvalidStatus
	}
	if status == StatusCancelled {
		return s.repo.CancelAndRestock(ctx, id)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

func (s *Service) MarkPaid(ctx context.Context, id string) error {
	return s.repo.SetPaymentStatus(ctx, id, PaymentPaid)
}

func (s *Service) Get(ctx context.Context, id string) (*Order, []Item, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListForUser(ctx context.Context, userID string, limit, offset int) ([]Order, error) {
	return s.repo.ListByUser(ctx, userID, limit, offset)
}
