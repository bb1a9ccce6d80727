// Package bootstrap wires configuration into a ready quote engine.
package bootstrap

import (
	"context"

	"go.uber.org/zap"

	catalogfile "service-basket/adapters/catalog"
	"service-basket/core/catalog"
	"service-basket/core/engine"
	"service-basket/core/types"
	"service-basket/internal/config"
	"service-basket/internal/logging"
)

// LoadCatalog returns the configured catalog, or the built-in wedding catalog
// when no path is set.
func LoadCatalog(ctx context.Context, cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Catalog.Path == "" {
		c := catalog.Wedding()
		if err := c.Check(); err != nil {
			return nil, err
		}
		logging.Debug("using built-in catalog", zap.String("catalog", c.Name))
		return c, nil
	}
	return catalogfile.Load(ctx, cfg.Catalog.Path)
}

// NewEngine loads the catalog and builds the quote engine over it
func NewEngine(ctx context.Context, cfg *config.Config) (*engine.Engine, error) {
	c, err := LoadCatalog(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.Catalog.AllowUnsupportedYears {
		logging.Warn("years outside the catalog will be priced at zero",
			zap.String("catalog", c.Name),
			zap.Ints("years", yearsOf(c)))
	}
	return engine.New(c, engine.Config{
		AllowUnsupportedYears: cfg.Catalog.AllowUnsupportedYears,
	}), nil
}

// DefaultYear resolves the year used when a request names none:
// the configured default, else the latest catalog year.
func DefaultYear(cfg *config.Config, c *catalog.Catalog) types.Year {
	if cfg.Catalog.DefaultYear > 0 {
		return types.Year(cfg.Catalog.DefaultYear)
	}
	var latest types.Year
	for _, y := range c.Years {
		if y > latest {
			latest = y
		}
	}
	return latest
}

func yearsOf(c *catalog.Catalog) []int {
	years := make([]int, len(c.Years))
	for i, y := range c.Years {
		years[i] = int(y)
	}
	return years
}
