// Package catalog - HCL catalog decoding
package catalog

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// hclFile is the root body of a .hcl catalog:
//
//	name  = "wedding"
//	years = [2020, 2021]
//
//	service "Photography" {
//	  gates   = ["TwoDayEvent"]
//	  absorbs = ["VideoRecording"]
//	  price {
//	    year   = 2020
//	    amount = 1700
//	  }
//	  discount {
//	    year   = 2020
//	    amount = 2200
//	    with   = ["VideoRecording"]
//	  }
//	}
type hclFile struct {
	Name     string       `hcl:"name,optional"`
	Currency string       `hcl:"currency,optional"`
	Years    []int        `hcl:"years"`
	Services []hclService `hcl:"service,block"`
}

type hclService struct {
	Name      string        `hcl:"name,label"`
	Gates     []string      `hcl:"gates,optional"`
	Absorbs   []string      `hcl:"absorbs,optional"`
	Prices    []hclPrice    `hcl:"price,block"`
	Discounts []hclDiscount `hcl:"discount,block"`
}

// Amounts decode as strings so decimals stay exact
type hclPrice struct {
	Year   int    `hcl:"year"`
	Amount string `hcl:"amount"`
}

type hclDiscount struct {
	Year   int      `hcl:"year"`
	Amount string   `hcl:"amount"`
	With   []string `hcl:"with"`
}

// decodeHCL parses src as an HCL catalog
func decodeHCL(src []byte, filename string) (*document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}

	var raw hclFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, diagnosticsError(diags)
	}

	doc := &document{
		Name:     raw.Name,
		Currency: raw.Currency,
		Years:    raw.Years,
	}
	for _, s := range raw.Services {
		sd := serviceDocs{
			Name:    s.Name,
			Gates:   s.Gates,
			Absorbs: s.Absorbs,
		}
		for _, p := range s.Prices {
			a, err := parseAmount(p.Amount)
			if err != nil {
				return nil, fmt.Errorf("service %s price %d: %w", s.Name, p.Year, err)
			}
			sd.Prices = append(sd.Prices, priceDoc{Year: p.Year, Amount: a})
		}
		for _, d := range s.Discounts {
			a, err := parseAmount(d.Amount)
			if err != nil {
				return nil, fmt.Errorf("service %s discount %d: %w", s.Name, d.Year, err)
			}
			sd.Discounts = append(sd.Discounts, discountDoc{Year: d.Year, Amount: a, With: d.With})
		}
		doc.Services = append(doc.Services, sd)
	}

	return doc, nil
}

// diagnosticsError flattens error diagnostics into one error with positions
func diagnosticsError(diags hcl.Diagnostics) error {
	var msgs []string
	for _, diag := range diags {
		if diag.Severity != hcl.DiagError {
			continue
		}
		msg := diag.Summary
		if diag.Detail != "" {
			msg += ": " + diag.Detail
		}
		if diag.Subject != nil {
			msg = fmt.Sprintf("%s:%d: %s", diag.Subject.Filename, diag.Subject.Start.Line, msg)
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}
