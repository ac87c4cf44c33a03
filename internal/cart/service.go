package cart

import (
	"context"
	"errors"
	"time"

	"github.com/jkariuki/lapstore/internal/catalog"
	"github.com/jkariuki/lapstore/internal/pricing"
)

var (
	ErrOutOfStock   = errors.New("product out of stock")
	ErrExceedsStock = errors.New("quantity exceeds available stock")
)

// ProductGetter is the slice of the catalog the cart needs.
type ProductGetter interface {
	GetByID(ctx context.Context, id string) (*catalog.Product, error)
}

type Service struct {
	repo     Repository
	products ProductGetter
	now      func() time.Time
}

func NewService(repo Repository, products ProductGetter) *Service {
	return &Service{repo: repo, products: products, now: time.Now}
}

// Add puts quantity units of a product into the user's cart, creating the
// cart on first use. The requested quantity plus whatever is already in the
// cart must fit within live stock.
func (s *Service) Add(ctx context.Context, userID, productID string, quantity int) error {
	if quantity <= 0 {
		quantity = 1
	}
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if p.StockRemaining <= 0 {
		return ErrOutOfStock
	}
	existing, err := s.repo.ItemQuantity(ctx, userID, productID)
	if err != nil {
		return err
	}
	if existing+quantity > p.StockRemaining {
		return ErrExceedsStock
	}
	if _, err := s.repo.GetOrCreate(ctx, userID); err != nil {
		return err
	}
	return s.repo.UpsertItem(ctx, userID, productID, quantity)
}

// Update sets the exact quantity of a cart line; zero or less deletes it.
// Stock is deliberately not re-checked here — placement re-validates.
func (s *Service) Update(ctx context.Context, userID, itemID string, quantity int) error {
	if quantity <= 0 {
		return s.repo.DeleteItem(ctx, userID, itemID)
	}
	return s.repo.SetItemQuantity(ctx, userID, itemID, quantity)
}

func (s *Service) Remove(ctx context.Context, userID, itemID string) error {
	return s.repo.DeleteItem(ctx, userID, itemID)
}

func (s *Service) Count(ctx context.Context, userID string) (int, error) {
	return s.repo.Count(ctx, userID)
}

// Summary prices every line at the current effective price.
func (s *Service) Summary(ctx context.Context, userID string) (*Summary, error) {
	details, err := s.repo.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	sum := &Summary{Items: make([]SummaryItem, 0, len(details))}
	for i := range details {
		d := &details[i]
		unit := pricing.EffectivePrice(&d.Product, now)
		line := unit * int64(d.Quantity)
		sum.Items = append(sum.Items, SummaryItem{
			ID:             d.ID,
			ProductID:      d.ProductID,
			Slug:           d.Product.Slug,
			Title:          d.Product.Title,
			Quantity:       d.Quantity,
			UnitPrice:      unit,
			LineTotal:      line,
			StockRemaining: d.Product.StockRemaining,
		})
		sum.Subtotal += line
		sum.Count += d.Quantity
	}
	return sum, nil
}
