// Package catalog loads service catalogs from HCL, YAML and JSON files.
package catalog

import (
	"fmt"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"service-basket/core/catalog"
	"service-basket/core/types"
)

// document is the file-level shape shared by the YAML and JSON formats.
// Gating and absorption are declared on the service that owns them.
type document struct {
	Name     string        `json:"name" yaml:"name"`
	Currency string        `json:"currency,omitempty" yaml:"currency,omitempty"`
	Years    []int         `json:"years" yaml:"years"`
	Services []serviceDocs `json:"services" yaml:"services"`
}

type serviceDocs struct {
	Name      string        `json:"name" yaml:"name"`
	Gates     []string      `json:"gates,omitempty" yaml:"gates,omitempty"`
	Absorbs   []string      `json:"absorbs,omitempty" yaml:"absorbs,omitempty"`
	Prices    []priceDoc    `json:"prices" yaml:"prices"`
	Discounts []discountDoc `json:"discounts,omitempty" yaml:"discounts,omitempty"`
}

type priceDoc struct {
	Year   int    `json:"year" yaml:"year"`
	Amount amount `json:"amount" yaml:"amount"`
}

type discountDoc struct {
	Year   int      `json:"year" yaml:"year"`
	Amount amount   `json:"amount" yaml:"amount"`
	With   []string `json:"with" yaml:"with"`
}

// amount accepts numbers or quoted numbers in both formats
type amount struct {
	decimal.Decimal
}

// UnmarshalYAML implements yaml.Unmarshaler
func (a *amount) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: amount must be a scalar", node.Line)
	}
	d, err := decimal.NewFromString(node.Value)
	if err != nil {
		return fmt.Errorf("line %d: invalid amount %q: %w", node.Line, node.Value, err)
	}
	a.Decimal = d
	return nil
}

// MarshalYAML implements yaml.Marshaler; the literal digits are written unchanged.
func (a amount) MarshalYAML() (interface{}, error) {
	tag := "!!float"
	if a.Decimal.IsInteger() && a.Decimal.BigInt().IsInt64() {
		tag = "!!int"
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: a.Decimal.String()}, nil
}

// toCatalog converts the document into the core model.
// A service may list each year's basic price only once.
func (d *document) toCatalog() (*catalog.Catalog, error) {
	c := &catalog.Catalog{
		Name:     d.Name,
		Currency: d.Currency,
	}
	for _, y := range d.Years {
		c.Years = append(c.Years, types.Year(y))
	}

	for _, s := range d.Services {
		svc := types.Service(s.Name)
		c.Services = append(c.Services, svc)
		c.Dependencies = append(c.Dependencies, types.DependencyRule{Main: svc, Subs: services(s.Gates)})

		rule := types.PriceRule{
			Service: svc,
			Basic:   make(map[types.Year]decimal.Decimal, len(s.Prices)),
			Absorbs: services(s.Absorbs),
		}
		for _, p := range s.Prices {
			y := types.Year(p.Year)
			if prev, ok := rule.Basic[y]; ok {
				return nil, fmt.Errorf("service %s: duplicate price for %d (%s and %s)", s.Name, p.Year, prev, p.Amount.Decimal)
			}
			rule.Basic[y] = p.Amount.Decimal
		}
		for _, dd := range s.Discounts {
			rule.Discounts = append(rule.Discounts, types.DiscountRule{
				Requires: services(dd.With),
				Year:     types.Year(dd.Year),
				Price:    dd.Amount.Decimal,
			})
		}
		c.Prices = append(c.Prices, rule)
	}

	return c, nil
}

// fromCatalog builds the file shape of a catalog
func fromCatalog(c *catalog.Catalog) *document {
	d := &document{
		Name:     c.Name,
		Currency: c.Currency,
	}
	for _, y := range c.Years {
		d.Years = append(d.Years, int(y))
	}

	g := c.Graph()
	for _, svc := range c.Services {
		s := serviceDocs{
			Name:  string(svc),
			Gates: names(g.SubServicesOf(svc)),
		}
		if rule, ok := c.PriceRule(svc); ok {
			s.Absorbs = names(rule.Absorbs)
			for _, y := range rule.Years() {
				s.Prices = append(s.Prices, priceDoc{Year: int(y), Amount: amount{rule.Basic[y]}})
			}
			for _, dr := range rule.Discounts {
				s.Discounts = append(s.Discounts, discountDoc{
					Year:   int(dr.Year),
					Amount: amount{dr.Price},
					With:   names(dr.Requires),
				})
			}
		}
		d.Services = append(d.Services, s)
	}

	return d
}

func services(list []string) []types.Service {
	if len(list) == 0 {
		return nil
	}
	out := make([]types.Service, len(list))
	for i, s := range list {
		out[i] = types.Service(s)
	}
	return out
}

func names(list []types.Service) []string {
	if len(list) == 0 {
		return nil
	}
	out := make([]string, len(list))
	for i, s := range list {
		out[i] = string(s)
	}
	return out
}
