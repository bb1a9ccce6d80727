// Package catalog - Service catalog
// A catalog is the complete, immutable configuration of one offering:
// its services and pricing years plus the rules that gate and price them.
package catalog

import (
	"service-basket/core/determinism"
	"service-basket/core/graph"
	"service-basket/core/pricing"
	"service-basket/core/selection"
	"service-basket/core/types"
)

// Catalog is the configuration injected into the selection and price engines
type Catalog struct {
	// Name identifies the offering
	Name string `json:"name"`

	// Currency is a display label; amounts are never converted
	Currency string `json:"currency,omitempty"`

	// Years are the supported pricing years
	Years []types.Year `json:"years"`

	// Services are the bookable services, in display order
	Services []types.Service `json:"services"`

	// Dependencies are the prerequisite rules
	Dependencies []types.DependencyRule `json:"dependencies"`

	// Prices are the per-service price rules
	Prices []types.PriceRule `json:"prices"`
}

// Graph builds the dependency graph of the catalog
func (c *Catalog) Graph() *graph.DependencyGraph {
	return graph.NewDependencyGraph(c.Dependencies)
}

// SelectionEngine builds a selection engine over the catalog's rules
func (c *Catalog) SelectionEngine() *selection.Engine {
	return selection.NewEngine(c.Graph())
}

// PriceEngine builds a price engine over the catalog's price rules
func (c *Catalog) PriceEngine() *pricing.Engine {
	return pricing.NewEngine(c.Prices)
}

// HasService reports whether s is a catalog service
func (c *Catalog) HasService(s types.Service) bool {
	for _, v := range c.Services {
		if v == s {
			return true
		}
	}
	return false
}

// SupportsYear reports whether y is a configured pricing year
func (c *Catalog) SupportsYear(y types.Year) bool {
	for _, v := range c.Years {
		if v == y {
			return true
		}
	}
	return false
}

// PriceRule returns the price rule of a service
func (c *Catalog) PriceRule(s types.Service) (types.PriceRule, bool) {
	for _, r := range c.Prices {
		if r.Service == s {
			return r, true
		}
	}
	return types.PriceRule{}, false
}

// Digest is a short content hash; equal catalogs have equal digests
func (c *Catalog) Digest() string {
	h, err := determinism.HashJSON(c)
	if err != nil {
		return ""
	}
	return h.Short()
}

// Stats returns catalog statistics
func (c *Catalog) Stats() Stats {
	g := c.Graph()
	stats := Stats{
		Services: len(c.Services),
		Years:    len(c.Years),
	}
	for _, s := range c.Services {
		if g.IsConstrained(s) {
			stats.Constrained++
		}
	}
	for _, r := range c.Prices {
		stats.Discounts += len(r.Discounts)
		if len(r.Absorbs) > 0 {
			stats.Bundles++
		}
	}
	return stats
}

// Stats holds catalog statistics
type Stats struct {
	Services    int `json:"services"`
	Years       int `json:"years"`
	Constrained int `json:"constrained"`
	Discounts   int `json:"discounts"`
	Bundles     int `json:"bundles"`
}
