package cart

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jkariuki/lapstore/internal/catalog"
)

type fakeRepo struct {
	carts map[string]*Cart          // by user id
	items map[string]*ItemDetail    // by item id
	qty   map[string]map[string]int // user id -> product id -> quantity
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		carts: map[string]*Cart{},
		items: map[string]*ItemDetail{},
		qty:   map[string]map[string]int{},
	}
}

func (f *fakeRepo) GetOrCreate(_ context.Context, userID string) (*Cart, error) {
	if c, ok := f.carts[userID]; ok {
		return c, nil
	}
	c := &Cart{ID: "cart-" + userID, UserID: userID}
	f.carts[userID] = c
	return c, nil
}

func (f *fakeRepo) ItemQuantity(_ context.Context, userID, productID string) (int, error) {
	return f.qty[userID][productID], nil
}

func (f *fakeRepo) UpsertItem(_ context.Context, userID, productID string, quantity int) error {
	if f.qty[userID] == nil {
		f.qty[userID] = map[string]int{}
	}
	f.qty[userID][productID] += quantity
	return nil
}

func (f *fakeRepo) SetItemQuantity(_ context.Context, userID, itemID string, quantity int) error {
	d, ok := f.items[itemID]
	if !ok || d.CartID != "cart-"+userID {
		return ErrItemNotFound
	}
	d.Quantity = quantity
	return nil
}

func (f *fakeRepo) DeleteItem(_ context.Context, userID, itemID string) error {
	d, ok := f.items[itemID]
	if !ok || d.CartID != "cart-"+userID {
		return ErrItemNotFound
	}
	delete(f.items, itemID)
	return nil
}

func (f *fakeRepo) Items(_ context.Context, userID string) ([]ItemDetail, error) {
	var out []ItemDetail
	for _, d := range f.items {
		if d.CartID == "cart-"+userID {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (f *fakeRepo) Count(_ context.Context, userID string) (int, error) {
	n := 0
	for _, q := range f.qty[userID] {
		n += q
	}
	return n, nil
}

type fakeCatalog struct {
	products map[string]*catalog.Product
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*catalog.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, catalog.ErrNotFound
	}
	return p, nil
}

func newService(repo Repository, products map[string]*catalog.Product) *Service {
	return NewService(repo, &fakeCatalog{products: products})
}

func TestAddHappyPath(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, map[string]*catalog.Product{
		"p1": {ID: "p1", StockRemaining: 5},
	})

	require.NoError(t, svc.Add(context.Background(), "u1", "p1", 2))
	assert.Equal(t, 2, repo.qty["u1"]["p1"])

	// adding again increments the same line
	require.NoError(t, svc.Add(context.Background(), "u1", "p1", 3))
	assert.Equal(t, 5, repo.qty["u1"]["p1"])
}

func TestAddCoercesNonPositiveQuantity(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, map[string]*catalog.Product{
		"p1": {ID: "p1", StockRemaining: 5},
	})

	require.NoError(t, svc.Add(context.Background(), "u1", "p1", 0))
	assert.Equal(t, 1, repo.qty["u1"]["p1"])
}

func TestAddOutOfStock(t *testing.T) {
	svc := newService(newFakeRepo(), map[string]*catalog.Product{
		"p1": {ID: "p1", StockRemaining: 0},
	})

	err := svc.Add(context.Background(), "u1", "p1", 1)
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestAddExceedsStock(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo, map[string]*catalog.Product{
		"p1": {ID: "p1", StockRemaining: 3},
	})

	require.NoError(t, svc.Add(context.Background(), "u1", "p1", 2))
	err := svc.Add(context.Background(), "u1", "p1", 2)
	assert.ErrorIs(t, err, ErrExceedsStock)
	assert.Equal(t, 2, repo.qty["u1"]["p1"], "failed add must not change the cart")
}

func TestAddUnknownProduct(t *testing.T) {
	svc := newService(newFakeRepo(), map[string]*catalog.Product{})
	err := svc.Add(context.Background(), "u1", "nope", 1)
	assert.ErrorIs(t, err, catalog.ErrNotFound)
}

func TestUpdateDeletesAtZero(t *testing.T) {
	repo := newFakeRepo()
	repo.items["i1"] = &ItemDetail{Item: Item{ID: "i1", CartID: "cart-u1", Quantity: 2}}
	svc := newService(repo, nil)

	require.NoError(t, svc.Update(context.Background(), "u1", "i1", 0))
	_, ok := repo.items["i1"]
	assert.False(t, ok)
}

func TestUpdateSetsExactQuantityWithoutStockCheck(t *testing.T) {
	repo := newFakeRepo()
	repo.items["i1"] = &ItemDetail{
		Item:    Item{ID: "i1", CartID: "cart-u1", Quantity: 1},
		Product: catalog.Product{ID: "p1", StockRemaining: 2},
	}
	svc := newService(repo, nil)

	// 99 exceeds stock; update deliberately does not care, placement does
	require.NoError(t, svc.Update(context.Background(), "u1", "i1", 99))
	assert.Equal(t, 99, repo.items["i1"].Quantity)
}

func TestUpdateOtherUsersItem(t *testing.T) {
	repo := newFakeRepo()
	repo.items["i1"] = &ItemDetail{Item: Item{ID: "i1", CartID: "cart-u1", Quantity: 1}}
	svc := newService(repo, nil)

	err := svc.Update(context.Background(), "u2", "i1", 3)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.Equal(t, 1, repo.items["i1"].Quantity)
}

func TestRemoveOtherUsersItem(t *testing.T) {
	repo := newFakeRepo()
	repo.items["i1"] = &ItemDetail{Item: Item{ID: "i1", CartID: "cart-u1", Quantity: 1}}
	svc := newService(repo, nil)

	assert.ErrorIs(t, svc.Remove(context.Background(), "u2", "i1"), ErrItemNotFound)
	assert.NoError(t, svc.Remove(context.Background(), "u1", "i1"))
}

func TestSummaryUsesEffectivePrices(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	sale := int64(8000)
	start := now.Add(-time.Hour)
	end := now.Add(time.Hour)

	repo := newFakeRepo()
	repo.items["i1"] = &ItemDetail{
		Item: Item{ID: "i1", CartID: "cart-u1", ProductID: "p1", Quantity: 2},
		Product: catalog.Product{ID: "p1", Slug: "on-sale", Title: "On Sale",
			PriceAmount: 10000, SalePriceAmount: &sale, SaleStart: &start, SaleEnd: &end,
			StockRemaining: 9},
	}
	repo.items["i2"] = &ItemDetail{
		Item: Item{ID: "i2", CartID: "cart-u1", ProductID: "p2", Quantity: 1},
		Product: catalog.Product{ID: "p2", Slug: "full-price", Title: "Full Price",
			PriceAmount: 5000, StockRemaining: 3},
	}
	svc := newService(repo, nil)
	svc.now = func() time.Time { return now }

	sum, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2*8000+5000), sum.Subtotal)
	assert.Equal(t, 3, sum.Count)
	assert.Len(t, sum.Items, 2)
	for _, it := range sum.Items {
		if it.ProductID == "p1" {
			assert.Equal(t, int64(8000), it.UnitPrice)
			assert.Equal(t, int64(16000), it.LineTotal)
		}
	}
}
