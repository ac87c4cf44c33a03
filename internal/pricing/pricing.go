// Package pricing resolves the unit price actually charged for a product,
// applying any currently-active sale.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jkariuki/lapstore/internal/catalog"
)

// EffectivePrice returns the unit price in minor currency units at the given
// instant. A sale price with neither window bound set always applies; with
// both bounds set it applies only while start <= now <= end. A window with
// exactly one bound set is treated as inactive and the base price applies.
func EffectivePrice(p *catalog.Product, now time.Time) int64 {
	if p.SalePriceAmount != nil && *p.SalePriceAmount > 0 {
		hasStart := p.SaleStart != nil
		hasEnd := p.SaleEnd != nil

		if !hasStart && !hasEnd {
			return *p.SalePriceAmount
		}
		if hasStart && hasEnd && !now.Before(*p.SaleStart) && !now.After(*p.SaleEnd) {
			return *p.SalePriceAmount
		}
	}
	return p.PriceAmount
}

// Display renders a minor-unit amount as a plain decimal string,
// e.g. 252500 -> "2525.00".
func Display(amount int64) string {
	return decimal.New(amount, -2).StringFixed(2)
}
