// Package catalog - Catalog validation
// The engines never fail on bad data; problems are caught here, at load time.
package catalog

import (
	stderrors "errors"
	"fmt"

	"service-basket/core/types"
	"service-basket/internal/errors"
)

// ValidationRule inspects a catalog and reports every problem it finds
type ValidationRule func(*Catalog) []error

// DefaultValidationRules returns the standard validation rules
func DefaultValidationRules() []ValidationRule {
	return []ValidationRule{
		validateUniqueServices,
		validateYears,
		validateDependencies,
		validatePriceRules,
	}
}

// Validate checks a catalog against validation rules
func (c *Catalog) Validate(rules []ValidationRule) []error {
	var problems []error
	for _, rule := range rules {
		problems = append(problems, rule(c)...)
	}
	return problems
}

// Check runs the default rules and joins the problems into one catalog error
func (c *Catalog) Check() error {
	problems := c.Validate(DefaultValidationRules())
	if len(problems) == 0 {
		return nil
	}
	return errors.Catalog(fmt.Sprintf("catalog %q has %d problems", c.Name, len(problems)), stderrors.Join(problems...)).
		WithContext("problems", len(problems))
}

// MustValidate panics if validation fails
func (c *Catalog) MustValidate() {
	if err := c.Check(); err != nil {
		panic(err.Error())
	}
}

func validateUniqueServices(c *Catalog) []error {
	var problems []error
	seen := make(map[types.Service]bool)
	for _, s := range c.Services {
		if s == "" {
			problems = append(problems, fmt.Errorf("empty service name"))
			continue
		}
		if seen[s] {
			problems = append(problems, fmt.Errorf("duplicate service %s", s))
		}
		seen[s] = true
	}
	return problems
}

func validateYears(c *Catalog) []error {
	var problems []error
	if len(c.Years) == 0 {
		problems = append(problems, fmt.Errorf("no pricing years configured"))
	}
	seen := make(map[types.Year]bool)
	for _, y := range c.Years {
		if seen[y] {
			problems = append(problems, fmt.Errorf("duplicate year %d", y))
		}
		seen[y] = true
	}
	return problems
}

func validateDependencies(c *Catalog) []error {
	var problems []error
	for _, rule := range c.Dependencies {
		if !c.HasService(rule.Main) {
			problems = append(problems, fmt.Errorf("dependency rule names unknown main service %s", rule.Main))
		}
		for _, sub := range rule.Subs {
			if sub == rule.Main {
				problems = append(problems, fmt.Errorf("service %s gates itself", sub))
				continue
			}
			if !c.HasService(sub) {
				problems = append(problems, fmt.Errorf("%s gates unknown service %s", rule.Main, sub))
			}
		}
	}
	return problems
}

func validatePriceRules(c *Catalog) []error {
	var problems []error
	seen := make(map[types.Service]bool)

	for _, r := range c.Prices {
		if !c.HasService(r.Service) {
			problems = append(problems, fmt.Errorf("price rule for unknown service %s", r.Service))
		}
		if seen[r.Service] {
			problems = append(problems, fmt.Errorf("duplicate price rule for %s", r.Service))
		}
		seen[r.Service] = true

		for year, amount := range r.Basic {
			if amount.IsNegative() {
				problems = append(problems, fmt.Errorf("%s: negative basic price %s for %d", r.Service, amount, year))
			}
			if !c.SupportsYear(year) {
				problems = append(problems, fmt.Errorf("%s: basic price for unconfigured year %d", r.Service, year))
			}
		}

		for _, d := range r.Discounts {
			if d.Price.IsNegative() {
				problems = append(problems, fmt.Errorf("%s: negative bundle price %s for %d", r.Service, d.Price, d.Year))
			}
			if !c.SupportsYear(d.Year) {
				problems = append(problems, fmt.Errorf("%s: discount for unconfigured year %d", r.Service, d.Year))
			}
			for _, req := range d.Requires {
				if !c.HasService(req) {
					problems = append(problems, fmt.Errorf("%s: discount requires unknown service %s", r.Service, req))
				}
			}
		}

		for _, a := range r.Absorbs {
			if a == r.Service {
				problems = append(problems, fmt.Errorf("%s absorbs itself", r.Service))
				continue
			}
			if !c.HasService(a) {
				problems = append(problems, fmt.Errorf("%s absorbs unknown service %s", r.Service, a))
			}
		}
	}

	return problems
}
