package bootstrap

import (
	"context"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"service-basket/core/catalog"
	"service-basket/core/engine"
	"service-basket/core/types"
	"service-basket/internal/config"
	"service-basket/internal/errors"
	"service-basket/internal/logging"
)

func init() {
	logging.UseNop()
}

func TestLoadCatalogBuiltIn(t *testing.T) {
	c, err := LoadCatalog(context.Background(), config.Default())
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if c.Name != "wedding" {
		t.Errorf("Expected built-in wedding catalog, got %s", c.Name)
	}
}

func TestLoadCatalogFromFile(t *testing.T) {
	cfg := config.Default()
	cfg.Catalog.Path = filepath.Join("..", "..", "adapters", "catalog", "testdata", "wedding.hcl")

	e, err := NewEngine(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if e.Catalog().Digest() == "" {
		t.Error("Expected a catalog digest")
	}

	cfg.Catalog.Path = "missing.hcl"
	if _, err := NewEngine(context.Background(), cfg); !errors.IsType(err, errors.TypeNotFound) {
		t.Errorf("Expected NOT_FOUND, got %v", err)
	}
}

func TestDefaultYear(t *testing.T) {
	cfg := config.Default()
	c := catalog.Wedding()

	if y := DefaultYear(cfg, c); y != 2022 {
		t.Errorf("Expected latest year 2022, got %d", y)
	}

	cfg.Catalog.DefaultYear = 2020
	if y := DefaultYear(cfg, c); y != 2020 {
		t.Errorf("Expected configured year 2020, got %d", y)
	}
}

func TestNewEngineWarnsOnUnsupportedYears(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	logging.Logger = zap.New(core)
	defer logging.UseNop()

	cfg := config.Default()
	if _, err := NewEngine(context.Background(), cfg); err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("Expected no warnings, got %d", logs.Len())
	}

	cfg.Catalog.AllowUnsupportedYears = true
	e, err := NewEngine(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if logs.FilterMessage("years outside the catalog will be priced at zero").Len() != 1 {
		t.Errorf("Expected one unsupported-years warning, got %v", logs.All())
	}

	q, err := e.Quote(context.Background(), engine.QuoteRequest{
		Selection: types.Selection{catalog.Photography},
		Year:      1999,
	})
	if err != nil {
		t.Fatalf("Quote failed: %v", err)
	}
	if !q.Price.FinalPrice.IsZero() {
		t.Errorf("Expected zero price for 1999, got %s", q.Price.FinalPrice)
	}
}
