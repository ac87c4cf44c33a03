package pricing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jkariuki/lapstore/internal/catalog"
)

func i64(v int64) *int64 { return &v }

func tp(t time.Time) *time.Time { return &t }

func TestEffectivePrice(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	yesterday := now.Add(-24 * time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	tests := []struct {
		name string
		p    catalog.Product
		want int64
	}{
		{
			name: "no sale price",
			p:    catalog.Product{PriceAmount: 100},
			want: 100,
		},
		{
			name: "sale with no window always applies",
			p:    catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80)},
			want: 80,
		},
		{
			name: "inside window",
			p: catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80),
				SaleStart: tp(yesterday), SaleEnd: tp(tomorrow)},
			want: 80,
		},
		{
			name: "after window end",
			p: catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80),
				SaleStart: tp(yesterday.Add(-48 * time.Hour)), SaleEnd: tp(yesterday)},
			want: 100,
		},
		{
			name: "before window start",
			p: catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80),
				SaleStart: tp(tomorrow), SaleEnd: tp(tomorrow.Add(48 * time.Hour))},
			want: 100,
		},
		{
			name: "window start boundary is inclusive",
			p: catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80),
				SaleStart: tp(now), SaleEnd: tp(tomorrow)},
			want: 80,
		},
		{
			name: "window end boundary is inclusive",
			p: catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80),
				SaleStart: tp(yesterday), SaleEnd: tp(now)},
			want: 80,
		},
		{
			name: "only start set is inactive",
			p: catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80),
				SaleStart: tp(yesterday)},
			want: 100,
		},
		{
			name: "only end set is inactive",
			p: catalog.Product{PriceAmount: 100, SalePriceAmount: i64(80),
				SaleEnd: tp(tomorrow)},
			want: 100,
		},
		{
			name: "zero sale price means no sale",
			p:    catalog.Product{PriceAmount: 100, SalePriceAmount: i64(0)},
			want: 100,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EffectivePrice(&tt.p, now))
		})
	}
}

func TestDisplay(t *testing.T) {
	assert.Equal(t, "2525.00", Display(252500))
	assert.Equal(t, "0.00", Display(0))
	assert.Equal(t, "0.05", Display(5))
	assert.Equal(t, "3500.00", Display(350000))
}
