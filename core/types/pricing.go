// Package types - Pricing types
package types

import (
	"github.com/shopspring/decimal"

	"service-basket/core/determinism"
)

// DiscountRule prices a service at Price instead of its basic price
// when every service in Requires is selected and the year matches.
type DiscountRule struct {
	// Requires lists the services that must all be in the selection
	Requires []Service `json:"requires"`

	// Year is the pricing year the rule applies to
	Year Year `json:"year"`

	// Price is the bundle price charged for the service
	Price decimal.Decimal `json:"price"`
}

// Matches reports whether the rule fires for the selection and year
func (d DiscountRule) Matches(sel Selection, year Year) bool {
	return d.Year == year && sel.ContainsAll(d.Requires)
}

// PriceRule is the complete pricing record of one service
type PriceRule struct {
	// Service is the service this rule prices
	Service Service `json:"service"`

	// Basic maps a pricing year to the undiscounted price
	Basic map[Year]decimal.Decimal `json:"basic"`

	// Discounts are the bundle prices available to the service
	Discounts []DiscountRule `json:"discounts,omitempty"`

	// Absorbs are treated as already priced once a discount fires
	Absorbs []Service `json:"absorbs,omitempty"`
}

// BasicPrice returns the undiscounted price for a year.
// Years without a tariff price at zero.
func (r PriceRule) BasicPrice(year Year) decimal.Decimal {
	if amount, ok := r.Basic[year]; ok {
		return amount
	}
	return decimal.Zero
}

// BestDiscount returns the lowest bundle price among the matching rules
func (r PriceRule) BestDiscount(sel Selection, year Year) (decimal.Decimal, bool) {
	var best decimal.Decimal
	found := false
	for _, d := range r.Discounts {
		if !d.Matches(sel, year) {
			continue
		}
		if !found || d.Price.LessThan(best) {
			best = d.Price
			found = true
		}
	}
	return best, found
}

// Years returns the years with a basic price, ascending
func (r PriceRule) Years() []Year {
	return determinism.SortedKeys(r.Basic)
}

// Price is an aggregate of base and discounted amounts
type Price struct {
	// BasePrice is the sum of undiscounted prices
	BasePrice decimal.Decimal `json:"basePrice"`

	// FinalPrice is the sum after discounts and absorption
	FinalPrice decimal.Decimal `json:"finalPrice"`
}

// NewPrice builds a price from two amounts
func NewPrice(base, final decimal.Decimal) Price {
	return Price{BasePrice: base, FinalPrice: final}
}

// Add returns the element-wise sum
func (p Price) Add(other Price) Price {
	return Price{
		BasePrice:  p.BasePrice.Add(other.BasePrice),
		FinalPrice: p.FinalPrice.Add(other.FinalPrice),
	}
}

// Savings is BasePrice minus FinalPrice
func (p Price) Savings() decimal.Decimal {
	return p.BasePrice.Sub(p.FinalPrice)
}

// Equal compares amounts numerically
func (p Price) Equal(other Price) bool {
	return p.BasePrice.Equal(other.BasePrice) && p.FinalPrice.Equal(other.FinalPrice)
}

// LineItem is the priced contribution of one selected service
type LineItem struct {
	Service    Service         `json:"service"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	FinalPrice decimal.Decimal `json:"finalPrice"`

	// Discounted is set when one of the service's bundle prices applied
	Discounted bool `json:"discounted,omitempty"`

	// AbsorbedBy names the service whose bundle already covers this one
	AbsorbedBy Service `json:"absorbedBy,omitempty"`
}

// Breakdown is the per-service result of one price computation
type Breakdown struct {
	Year      Year       `json:"year"`
	Selection Selection  `json:"selection"`
	Items     []LineItem `json:"items"`
	Total     Price      `json:"total"`
}

// Item returns the line item of a service
func (b *Breakdown) Item(svc Service) (LineItem, bool) {
	for _, item := range b.Items {
		if item.Service == svc {
			return item, true
		}
	}
	return LineItem{}, false
}
