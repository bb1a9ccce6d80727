// Package diff compares two priced selections line by line.
package diff

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"service-basket/core/types"
)

// Result is the complete diff between two breakdowns
type Result struct {
	Before types.Price     `json:"before"`
	After  types.Price     `json:"after"`
	Delta  decimal.Decimal `json:"delta"`

	// Lines holds one entry per service present on either side, in
	// before-selection order followed by services only present after
	Lines []*Line `json:"lines"`

	AddedCount     int `json:"added"`
	RemovedCount   int `json:"removed"`
	ChangedCount   int `json:"changed"`
	UnchangedCount int `json:"unchanged"`
}

// Line describes how one service's contribution changed
type Line struct {
	Service    types.Service   `json:"service"`
	ChangeType ChangeType      `json:"change"`
	Before     decimal.Decimal `json:"before"`
	After      decimal.Decimal `json:"after"`
	Delta      decimal.Decimal `json:"delta"`

	// Reason is set when a bundle starts or stops covering the service
	Reason string `json:"reason,omitempty"`
}

// ChangeType indicates the type of change
type ChangeType int

const (
	ChangeAdded     ChangeType = iota // service selected
	ChangeRemoved                     // service deselected
	ChangeModified                    // final price changed
	ChangeUnchanged                   // no price change
)

// String returns the change type name
func (c ChangeType) String() string {
	switch c {
	case ChangeAdded:
		return "added"
	case ChangeRemoved:
		return "removed"
	case ChangeModified:
		return "modified"
	case ChangeUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// MarshalText encodes the change type by name
func (c ChangeType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// Diff computes the diff between before and after
func Diff(before, after *types.Breakdown) *Result {
	r := &Result{
		Before: before.Total,
		After:  after.Total,
		Delta:  after.Total.FinalPrice.Sub(before.Total.FinalPrice),
	}

	for _, b := range before.Items {
		a, ok := after.Item(b.Service)
		if !ok {
			r.add(&Line{
				Service:    b.Service,
				ChangeType: ChangeRemoved,
				Before:     b.FinalPrice,
				Delta:      b.FinalPrice.Neg(),
			})
			continue
		}
		line := &Line{
			Service: b.Service,
			Before:  b.FinalPrice,
			After:   a.FinalPrice,
			Delta:   a.FinalPrice.Sub(b.FinalPrice),
			Reason:  reason(b, a),
		}
		line.ChangeType = ChangeUnchanged
		if !line.Delta.IsZero() {
			line.ChangeType = ChangeModified
		}
		r.add(line)
	}

	for _, a := range after.Items {
		if _, ok := before.Item(a.Service); ok {
			continue
		}
		r.add(&Line{
			Service:    a.Service,
			ChangeType: ChangeAdded,
			After:      a.FinalPrice,
			Delta:      a.FinalPrice,
			Reason:     reason(types.LineItem{}, a),
		})
	}

	return r
}

func (r *Result) add(l *Line) {
	r.Lines = append(r.Lines, l)
	switch l.ChangeType {
	case ChangeAdded:
		r.AddedCount++
	case ChangeRemoved:
		r.RemovedCount++
	case ChangeModified:
		r.ChangedCount++
	default:
		r.UnchangedCount++
	}
}

func reason(before, after types.LineItem) string {
	switch {
	case after.AbsorbedBy != "" && before.AbsorbedBy != after.AbsorbedBy:
		return "now included in " + string(after.AbsorbedBy)
	case before.AbsorbedBy != "" && after.AbsorbedBy == "":
		return "no longer included in " + string(before.AbsorbedBy)
	case after.Discounted && !before.Discounted:
		return "bundle price applies"
	case before.Discounted && !after.Discounted:
		return "bundle price no longer applies"
	default:
		return ""
	}
}

// Summary provides a human-readable summary
func (r *Result) Summary() string {
	var summary string

	switch {
	case r.Delta.IsZero():
		summary = "No price change\n"
	case r.Delta.IsNegative():
		summary = "Price decreased by " + r.Delta.Neg().StringFixed(2) + "\n"
	default:
		summary = "Price increased by " + r.Delta.StringFixed(2) + "\n"
	}

	if r.AddedCount > 0 {
		summary += fmt.Sprintf("  + %d services added\n", r.AddedCount)
	}
	if r.RemovedCount > 0 {
		summary += fmt.Sprintf("  - %d services removed\n", r.RemovedCount)
	}
	if r.ChangedCount > 0 {
		summary += fmt.Sprintf("  ~ %d services repriced\n", r.ChangedCount)
	}

	return summary
}

// TopChanges returns the lines with the largest absolute price impact
func (r *Result) TopChanges(n int) []*Line {
	var changed []*Line
	for _, l := range r.Lines {
		if l.ChangeType != ChangeUnchanged {
			changed = append(changed, l)
		}
	}

	sort.SliceStable(changed, func(i, j int) bool {
		return changed[i].Delta.Abs().GreaterThan(changed[j].Delta.Abs())
	})

	n = max(0, min(n, len(changed)))
	return changed[:n]
}
