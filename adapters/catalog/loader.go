// Package catalog - Catalog file loading
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"service-basket/core/catalog"
	"service-basket/internal/errors"
	"service-basket/internal/logging"
)

// Format is a catalog file format
type Format string

const (
	FormatHCL  Format = "hcl"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath infers the format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return FormatHCL, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", errors.Newf(errors.TypeNotSupported, "unsupported catalog file extension: %s", path)
	}
}

// Load reads, decodes and validates a catalog file
func Load(ctx context.Context, path string) (*catalog.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFound("catalog file", path)
		}
		return nil, errors.Internal("failed to read catalog file", err)
	}

	c, err := Decode(format, path, data)
	if err != nil {
		return nil, err
	}

	stats := c.Stats()
	logging.Info("catalog loaded",
		zap.String("path", path),
		zap.String("catalog", c.Name),
		zap.Int("services", stats.Services),
		zap.Int("years", stats.Years),
		zap.Int("discounts", stats.Discounts))
	return c, nil
}

// Decode parses data in the given format and validates the result
func Decode(format Format, name string, data []byte) (*catalog.Catalog, error) {
	var (
		doc *document
		err error
	)

	switch format {
	case FormatHCL:
		doc, err = decodeHCL(data, name)
	case FormatYAML:
		doc = &document{}
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(doc)
	case FormatJSON:
		doc = &document{}
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(doc)
	default:
		return nil, errors.NotSupported("catalog format " + string(format))
	}
	if err != nil {
		return nil, errors.Parsing(fmt.Sprintf("failed to decode %s catalog %s", format, name), err)
	}

	c, err := doc.toCatalog()
	if err != nil {
		return nil, errors.Parsing(fmt.Sprintf("invalid %s catalog %s", format, name), err)
	}
	if err := c.Check(); err != nil {
		return nil, err
	}
	return c, nil
}

// Export writes a catalog in YAML or JSON
func Export(w io.Writer, c *catalog.Catalog, format Format) error {
	doc := fromCatalog(c)
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	default:
		return errors.NotSupported("catalog export as " + string(format))
	}
}

func parseAmount(s string) (amount, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return amount{}, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return amount{d}, nil
}
