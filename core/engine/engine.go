// Package engine composes the selection and price engines of a catalog.
// CLI and HTTP are thin wrappers around this engine. Input is validated
// here; the core engines assume well-formed input.
package engine

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"service-basket/core/catalog"
	"service-basket/core/determinism"
	"service-basket/core/diff"
	"service-basket/core/pricing"
	"service-basket/core/selection"
	"service-basket/core/types"
	"service-basket/internal/errors"
	"service-basket/internal/logging"
)

// Config configures the quote engine
type Config struct {
	// AllowUnsupportedYears prices unknown years at zero instead of rejecting them
	AllowUnsupportedYears bool
}

// Engine is the entry point for selection updates and quotes
type Engine struct {
	catalog  *catalog.Catalog
	selector *selection.Engine
	pricer   *pricing.Engine
	config   Config
	digest   string
	logger   *zap.Logger
	now      func() time.Time
}

// New builds an engine over a validated catalog
func New(c *catalog.Catalog, cfg Config) *Engine {
	return &Engine{
		catalog:  c,
		selector: c.SelectionEngine(),
		pricer:   c.PriceEngine(),
		config:   cfg,
		digest:   c.Digest(),
		logger:   logging.Named("engine"),
		now:      time.Now,
	}
}

// Catalog returns the catalog the engine serves
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Change records the effect of one action
type Change struct {
	Action types.Action `json:"action"`

	// Changed is false when the action was a no-op
	Changed bool `json:"changed"`

	// Removed lists services dropped by a cascading deselect
	Removed []types.Service `json:"removed,omitempty"`
}

// ValidateServices rejects services the catalog does not define
func (e *Engine) ValidateServices(services ...types.Service) error {
	for _, s := range services {
		if !e.catalog.HasService(s) {
			return errors.UnknownService(string(s))
		}
	}
	return nil
}

// ValidateSelection rejects unknown services, duplicates and unmet prerequisites
func (e *Engine) ValidateSelection(sel types.Selection) error {
	if err := e.ValidateServices(sel...); err != nil {
		return err
	}
	if !e.selector.Valid(sel) {
		return errors.Input("selection has duplicates or unmet prerequisites").
			WithContext("selection", sel.String())
	}
	return nil
}

// ValidateAction rejects unknown action kinds and services
func (e *Engine) ValidateAction(a types.Action) error {
	if a.Kind != types.ActionSelect && a.Kind != types.ActionDeselect {
		return errors.Newf(errors.TypeInput, "unknown action type: %q", a.Kind)
	}
	return e.ValidateServices(a.Service)
}

// Apply runs actions in order and reports the effect of each.
// A rejected action aborts the whole sequence.
func (e *Engine) Apply(sel types.Selection, actions ...types.Action) (types.Selection, []Change, error) {
	if err := e.ValidateSelection(sel); err != nil {
		return nil, nil, err
	}
	for _, a := range actions {
		if err := e.ValidateAction(a); err != nil {
			return nil, nil, err
		}
	}

	changes := make([]Change, 0, len(actions))
	for _, a := range actions {
		next := e.selector.Apply(sel, a)
		change := Change{Action: a, Changed: !next.Equal(sel)}
		if a.Kind == types.ActionDeselect {
			for _, s := range sel {
				if s != a.Service && !next.Contains(s) {
					change.Removed = append(change.Removed, s)
				}
			}
		}
		if !change.Changed {
			e.logger.Debug("action had no effect",
				zap.String("action", string(a.Kind)),
				logging.Service(a.Service),
				logging.Selection(sel))
		}
		changes = append(changes, change)
		sel = next
	}

	if sel == nil {
		sel = types.Selection{}
	}
	return sel, changes, nil
}

// QuoteRequest asks for the price of a selection
type QuoteRequest struct {
	// Selection is the starting selection
	Selection types.Selection

	// Actions are applied to Selection before pricing
	Actions []types.Action

	// Year is the pricing year
	Year types.Year
}

// Quote is a priced selection
type Quote struct {
	ID        string           `json:"id"`
	InputHash string           `json:"inputHash"`
	Catalog   string           `json:"catalog"`
	Currency  string           `json:"currency,omitempty"`
	Year      types.Year       `json:"year"`
	Selection types.Selection  `json:"selection"`
	Changes   []Change         `json:"changes,omitempty"`
	Breakdown *types.Breakdown `json:"breakdown"`
	Price     types.Price      `json:"price"`
	CreatedAt time.Time        `json:"createdAt"`
}

// Savings is the discount granted on the quote
func (q *Quote) Savings() decimal.Decimal {
	return q.Price.Savings()
}

// Quote applies the request's actions and prices the result
func (e *Engine) Quote(ctx context.Context, req QuoteRequest) (*Quote, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if !e.catalog.SupportsYear(req.Year) {
		if !e.config.AllowUnsupportedYears {
			return nil, errors.UnsupportedYear(int(req.Year))
		}
		e.logger.Warn("pricing unsupported year at zero", logging.Year(req.Year))
	}

	sel, changes, err := e.Apply(req.Selection, req.Actions...)
	if err != nil {
		return nil, err
	}

	breakdown := e.pricer.Breakdown(sel, req.Year)
	q := &Quote{
		ID:        uuid.NewString(),
		InputHash: e.inputHash(req.Year, sel),
		Catalog:   e.catalog.Name,
		Currency:  e.catalog.Currency,
		Year:      req.Year,
		Selection: sel,
		Changes:   changes,
		Breakdown: breakdown,
		Price:     breakdown.Total,
		CreatedAt: e.now().UTC(),
	}

	e.logger.Info("quote computed",
		zap.String("quote_id", q.ID),
		zap.String("input_hash", q.InputHash),
		logging.Year(q.Year),
		logging.Selection(q.Selection),
		logging.Amount("base_price", q.Price.BasePrice),
		logging.Amount("final_price", q.Price.FinalPrice))

	return q, nil
}

// inputHash identifies the priced input: same catalog, year and selection
// order give the same hash
func (e *Engine) inputHash(year types.Year, sel types.Selection) string {
	parts := make([]string, 0, len(sel)+2)
	parts = append(parts, e.digest, year.String())
	for _, s := range sel {
		parts = append(parts, string(s))
	}
	return determinism.Fingerprint(parts...).Short()
}

// Compare quotes two selections for the same year and diffs them
func (e *Engine) Compare(ctx context.Context, before, after QuoteRequest) (*Comparison, error) {
	base, err := e.Quote(ctx, before)
	if err != nil {
		return nil, err
	}
	head, err := e.Quote(ctx, after)
	if err != nil {
		return nil, err
	}
	return &Comparison{
		Before: base,
		After:  head,
		Diff:   diff.Diff(base.Breakdown, head.Breakdown),
	}, nil
}

// Comparison holds two quotes and their line diff
type Comparison struct {
	Before *Quote       `json:"before"`
	After  *Quote       `json:"after"`
	Diff   *diff.Result `json:"diff"`
}

// Price is the bare computePrice operation, without validation
func (e *Engine) Price(sel types.Selection, year types.Year) types.Price {
	return e.pricer.Calculate(sel, year)
}

// Update is the bare updateSelection operation, without validation
func (e *Engine) Update(sel types.Selection, a types.Action) types.Selection {
	return e.selector.Apply(sel, a)
}
