// Package output renders quotes and catalogs for humans and machines.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"

	"service-basket/core/catalog"
	"service-basket/core/diff"
	"service-basket/core/engine"
	"service-basket/core/types"
	"service-basket/core/ui"
	"service-basket/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// ParseFormat validates a format name
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCLI, FormatJSON:
		return Format(s), nil
	default:
		return "", errors.Newf(errors.TypeInput, "unknown output format: %q", s)
	}
}

// Options tune rendering
type Options struct {
	NoColor bool
}

// RenderQuote writes a quote in the requested format
func RenderQuote(w io.Writer, format Format, q *engine.Quote, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, q)
	case FormatCLI:
		renderQuoteCLI(ui.NewWriter(w, opts.NoColor), q)
		return nil
	default:
		return errors.NotSupported("output format " + string(format))
	}
}

// RenderCatalog writes a catalog overview in the requested format
func RenderCatalog(w io.Writer, format Format, c *catalog.Catalog, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, c)
	case FormatCLI:
		renderCatalogCLI(ui.NewWriter(w, opts.NoColor), c)
		return nil
	default:
		return errors.NotSupported("output format " + string(format))
	}
}

// RenderComparison writes two quotes and their diff
func RenderComparison(w io.Writer, format Format, cmp *engine.Comparison, opts Options) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, cmp)
	case FormatCLI:
		renderComparisonCLI(ui.NewWriter(w, opts.NoColor), cmp)
		return nil
	default:
		return errors.NotSupported("output format " + string(format))
	}
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderQuoteCLI(w *ui.Writer, q *engine.Quote) {
	for _, c := range q.Changes {
		if !c.Changed {
			w.Warning("%s had no effect", c.Action)
		}
		if len(c.Removed) > 0 {
			w.Info("%s also removed %v", c.Action, c.Removed)
		}
	}

	if len(q.Selection) == 0 {
		w.Info("No services selected.")
	} else {
		table := w.NewTable("SERVICE", "BASE", "FINAL", "NOTE")
		for _, item := range q.Breakdown.Items {
			table.AddRow(
				string(item.Service),
				money(item.BasePrice, q.Currency),
				money(item.FinalPrice, q.Currency),
				note(item),
			)
		}
		w.Println("")
		table.Render()
	}

	summary := w.NewQuoteSummary(fmt.Sprintf("Quote %s (%d)", q.Catalog, q.Year))
	summary.BasePrice = money(q.Price.BasePrice, q.Currency)
	summary.FinalPrice = money(q.Price.FinalPrice, q.Currency)
	if q.Savings().IsPositive() {
		summary.Savings = money(q.Savings(), q.Currency)
	}
	summary.Services = len(q.Selection)
	summary.Render()
}

func renderCatalogCLI(w *ui.Writer, c *catalog.Catalog) {
	g := c.Graph()
	w.Header(fmt.Sprintf("Catalog %s", c.Name))

	headers := []string{"SERVICE", "REQUIRES ONE OF"}
	for _, y := range c.Years {
		headers = append(headers, y.String())
	}
	table := w.NewTable(headers...)
	for _, s := range c.Services {
		mains := "-"
		if g.IsConstrained(s) {
			mains = fmt.Sprint(g.MainServicesOf(s))
		}
		row := []string{string(s), mains}
		rule, _ := c.PriceRule(s)
		for _, y := range c.Years {
			row = append(row, rule.BasicPrice(y).String())
		}
		table.AddRow(row...)
	}
	table.Render()

	w.Println("")
	w.SubHeader("Bundles")
	for _, rule := range c.Prices {
		for _, d := range rule.Discounts {
			w.Println("  %d  %-16s with %-32v %s", d.Year, rule.Service, d.Requires, money(d.Price, c.Currency))
		}
		if len(rule.Absorbs) > 0 {
			w.Println("       %-16s includes %v when discounted", rule.Service, rule.Absorbs)
		}
	}
}

func renderComparisonCLI(w *ui.Writer, cmp *engine.Comparison) {
	currency := cmp.After.Currency
	w.Header(fmt.Sprintf("Compare %v -> %v (%d)", cmp.Before.Selection, cmp.After.Selection, cmp.After.Year))

	table := w.NewTable("", "SERVICE", "BEFORE", "AFTER", "DELTA", "NOTE")
	for _, l := range cmp.Diff.Lines {
		table.AddRow(changeMark(l.ChangeType), string(l.Service),
			money(l.Before, currency), money(l.After, currency), signed(l.Delta, currency), l.Reason)
	}
	table.Render()

	w.Println("")
	w.Print("%s", cmp.Diff.Summary())
	w.Println("Total: %s -> %s", money(cmp.Diff.Before.FinalPrice, currency), money(cmp.Diff.After.FinalPrice, currency))
}

func changeMark(c diff.ChangeType) string {
	switch c {
	case diff.ChangeAdded:
		return "+"
	case diff.ChangeRemoved:
		return "-"
	case diff.ChangeModified:
		return "~"
	default:
		return " "
	}
}

func signed(d decimal.Decimal, currency string) string {
	if d.IsPositive() {
		return "+" + money(d, currency)
	}
	return money(d, currency)
}

func note(item types.LineItem) string {
	switch {
	case item.AbsorbedBy != "":
		return "included in " + string(item.AbsorbedBy)
	case item.Discounted:
		return "bundle price"
	default:
		return ""
	}
}

func money(d decimal.Decimal, currency string) string {
	s := d.StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
