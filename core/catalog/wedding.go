// Package catalog - Wedding reference catalog
// Photography and video package priced for 2020-2022.
package catalog

import (
	"github.com/shopspring/decimal"

	"service-basket/core/types"
)

// Reference catalog services
const (
	Photography    types.Service = "Photography"
	VideoRecording types.Service = "VideoRecording"
	BlurayPackage  types.Service = "BlurayPackage"
	TwoDayEvent    types.Service = "TwoDayEvent"
	WeddingSession types.Service = "WeddingSession"
)

// Wedding returns a fresh copy of the reference wedding catalog
func Wedding() *Catalog {
	return &Catalog{
		Name:     "wedding",
		Currency: "PLN",
		Years:    []types.Year{2020, 2021, 2022},
		Services: []types.Service{Photography, VideoRecording, BlurayPackage, TwoDayEvent, WeddingSession},
		Dependencies: []types.DependencyRule{
			{Main: Photography, Subs: []types.Service{TwoDayEvent}},
			{Main: VideoRecording, Subs: []types.Service{BlurayPackage, TwoDayEvent}},
			{Main: BlurayPackage},
			{Main: TwoDayEvent},
			{Main: WeddingSession},
		},
		Prices: []types.PriceRule{
			{
				Service: Photography,
				Basic:   flat(map[types.Year]int64{2020: 1700, 2021: 1800, 2022: 1900}),
				Discounts: []types.DiscountRule{
					bundle(2020, 2200, VideoRecording),
					bundle(2021, 2300, VideoRecording),
					bundle(2022, 2500, VideoRecording),
				},
				Absorbs: []types.Service{VideoRecording},
			},
			{
				Service: VideoRecording,
				Basic:   flat(map[types.Year]int64{2020: 1700, 2021: 1800, 2022: 1900}),
				Discounts: []types.DiscountRule{
					bundle(2020, 2200, Photography),
					bundle(2021, 2300, Photography),
					bundle(2022, 2500, Photography),
				},
				Absorbs: []types.Service{Photography},
			},
			{
				Service: BlurayPackage,
				Basic:   flat(map[types.Year]int64{2020: 300, 2021: 300, 2022: 300}),
			},
			{
				Service: TwoDayEvent,
				Basic:   flat(map[types.Year]int64{2020: 400, 2021: 400, 2022: 400}),
			},
			{
				Service: WeddingSession,
				Basic:   flat(map[types.Year]int64{2020: 600, 2021: 600, 2022: 600}),
				Discounts: []types.DiscountRule{
					bundle(2020, 300, VideoRecording),
					bundle(2021, 300, VideoRecording),
					bundle(2022, 300, VideoRecording),
					bundle(2020, 300, Photography),
					bundle(2021, 300, Photography),
					bundle(2022, 0, Photography),
				},
			},
		},
	}
}

func flat(prices map[types.Year]int64) map[types.Year]decimal.Decimal {
	out := make(map[types.Year]decimal.Decimal, len(prices))
	for y, p := range prices {
		out[y] = decimal.NewFromInt(p)
	}
	return out
}

func bundle(year types.Year, price int64, requires ...types.Service) types.DiscountRule {
	return types.DiscountRule{
		Requires: requires,
		Year:     year,
		Price:    decimal.NewFromInt(price),
	}
}
