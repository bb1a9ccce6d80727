package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSelectionEqual(t *testing.T) {
	tests := []struct {
		a, b Selection
		want bool
	}{
		{nil, Selection{}, true},
		{Selection{"A", "B"}, Selection{"A", "B"}, true},
		{Selection{"A", "B"}, Selection{"B", "A"}, false},
		{Selection{"A"}, Selection{"A", "B"}, false},
	}
	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%v.Equal(%v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestSelectionContains(t *testing.T) {
	sel := Selection{"A", "B"}

	if !sel.ContainsAny([]Service{"X", "B"}) {
		t.Error("Expected ContainsAny to find B")
	}
	if sel.ContainsAny(nil) {
		t.Error("Expected ContainsAny(nil) to be false")
	}
	if !sel.ContainsAll(nil) {
		t.Error("Expected ContainsAll(nil) to be true")
	}
	if sel.ContainsAll([]Service{"A", "C"}) {
		t.Error("Expected ContainsAll to miss C")
	}
	if got := sel.String(); got != "[A, B]" {
		t.Errorf("Expected [A, B], got %s", got)
	}
}

func TestActionString(t *testing.T) {
	if got := Select("Photography").String(); got != "+Photography" {
		t.Errorf("Expected +Photography, got %s", got)
	}
	if got := Deselect("Photography").String(); got != "-Photography" {
		t.Errorf("Expected -Photography, got %s", got)
	}
}

func TestParseYear(t *testing.T) {
	y, err := ParseYear(" 2021 ")
	if err != nil || y != 2021 {
		t.Fatalf("ParseYear = %d, %v", y, err)
	}
	if _, err := ParseYear("twenty"); err == nil {
		t.Error("Expected error for non-numeric year")
	}
}

func TestBestDiscount(t *testing.T) {
	rule := PriceRule{
		Service: "S",
		Basic:   map[Year]decimal.Decimal{2021: decimal.NewFromInt(600), 2020: decimal.NewFromInt(500)},
		Discounts: []DiscountRule{
			{Requires: []Service{"A"}, Year: 2021, Price: decimal.NewFromInt(300)},
			{Requires: []Service{"B"}, Year: 2021, Price: decimal.NewFromInt(100)},
			{Requires: []Service{"A", "B"}, Year: 2020, Price: decimal.NewFromInt(50)},
		},
	}

	if _, ok := rule.BestDiscount(Selection{"S"}, 2021); ok {
		t.Error("Expected no discount without required services")
	}
	if price, ok := rule.BestDiscount(Selection{"S", "A"}, 2021); !ok || !price.Equal(decimal.NewFromInt(300)) {
		t.Errorf("Expected 300, got %s (%v)", price, ok)
	}
	if price, _ := rule.BestDiscount(Selection{"S", "A", "B"}, 2021); !price.Equal(decimal.NewFromInt(100)) {
		t.Errorf("Expected minimum 100, got %s", price)
	}
	if _, ok := rule.BestDiscount(Selection{"S", "A"}, 2020); ok {
		t.Error("Expected rule requiring A and B not to match A alone")
	}
	if years := rule.Years(); len(years) != 2 || years[0] != 2020 {
		t.Errorf("Expected sorted years [2020 2021], got %v", years)
	}
	if !rule.BasicPrice(1999).IsZero() {
		t.Error("Expected zero basic price for a missing year")
	}
}

func TestPriceSavings(t *testing.T) {
	p := NewPrice(decimal.NewFromInt(3600), decimal.NewFromInt(2300))
	if !p.Savings().Equal(decimal.NewFromInt(1300)) {
		t.Errorf("Expected savings 1300, got %s", p.Savings())
	}
	sum := p.Add(NewPrice(decimal.NewFromInt(400), decimal.NewFromInt(400)))
	if !sum.Equal(NewPrice(decimal.NewFromInt(4000), decimal.NewFromInt(2700))) {
		t.Errorf("Unexpected sum %+v", sum)
	}
}
