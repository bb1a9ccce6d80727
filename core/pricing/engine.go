// Package pricing computes the price of a selection for a pricing year.
// Per-service rules are plain data; one evaluation loop prices them all.
package pricing

import (
	"github.com/shopspring/decimal"

	"service-basket/core/types"
)

// Engine prices selections against a fixed set of price rules.
// Rules are copied at construction; the engine is safe for concurrent use.
type Engine struct {
	rules map[types.Service]types.PriceRule
}

// NewEngine indexes rules by service. A later rule for the same service
// replaces an earlier one.
func NewEngine(rules []types.PriceRule) *Engine {
	e := &Engine{rules: make(map[types.Service]types.PriceRule, len(rules))}
	for _, r := range rules {
		e.rules[r.Service] = r
	}
	return e
}

// Rule returns the price rule of a service
func (e *Engine) Rule(s types.Service) (types.PriceRule, bool) {
	r, ok := e.rules[s]
	return r, ok
}

// Calculate returns the aggregate base and final price
func (e *Engine) Calculate(sel types.Selection, year types.Year) types.Price {
	return e.Breakdown(sel, year).Total
}

// Breakdown prices each selected service in selection order.
//
// A service whose discount fires marks its absorbed services as priced;
// when the loop reaches one of them it contributes its base price but
// no final price. The first-visited member of a bundle therefore carries
// the bundle price.
func (e *Engine) Breakdown(sel types.Selection, year types.Year) *types.Breakdown {
	b := &types.Breakdown{
		Year:      year,
		Selection: sel.Clone(),
		Items:     make([]types.LineItem, 0, len(sel)),
		Total:     types.NewPrice(decimal.Zero, decimal.Zero),
	}

	// service -> service that priced it
	priced := make(map[types.Service]types.Service, len(sel))

	for _, svc := range sel {
		by, seen := priced[svc]
		if seen && by == svc {
			// listed twice; already charged
			continue
		}

		rule := e.rules[svc]
		item := types.LineItem{
			Service:    svc,
			BasePrice:  rule.BasicPrice(year),
			FinalPrice: decimal.Zero,
		}

		if seen {
			item.AbsorbedBy = by
		} else {
			priced[svc] = svc
			item.FinalPrice = item.BasePrice

			if bundle, ok := rule.BestDiscount(sel, year); ok {
				item.FinalPrice = bundle
				item.Discounted = true
				for _, absorbed := range rule.Absorbs {
					if _, done := priced[absorbed]; !done {
						priced[absorbed] = svc
					}
				}
			}
		}

		b.Items = append(b.Items, item)
		b.Total = b.Total.Add(types.NewPrice(item.BasePrice, item.FinalPrice))
	}

	return b
}
