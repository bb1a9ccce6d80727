// Package api - Request and response types
package api

import (
	"github.com/shopspring/decimal"

	"service-basket/core/engine"
	"service-basket/core/types"
)

// ActionRequest is one select or deselect step
type ActionRequest struct {
	Type    string `json:"type" binding:"required,action"`
	Service string `json:"service" binding:"required"`
}

// SelectionRequest applies actions to a selection
type SelectionRequest struct {
	Selection []string        `json:"selection"`
	Actions   []ActionRequest `json:"actions" binding:"dive"`
}

// QuoteRequest prices a selection after applying actions
type QuoteRequest struct {
	Selection []string        `json:"selection"`
	Actions   []ActionRequest `json:"actions" binding:"dive"`

	// Year defaults to the server's default year when zero
	Year int `json:"year" binding:"gte=0"`
}

// SelectionResponse is the outcome of a selection update
type SelectionResponse struct {
	Selection types.Selection `json:"selection"`
	Changes   []engine.Change `json:"changes"`
}

// CatalogResponse describes the served catalog
type CatalogResponse struct {
	Name     string            `json:"name"`
	Currency string            `json:"currency,omitempty"`
	Years    []types.Year      `json:"years"`
	Services []ServiceResponse `json:"services"`
}

// ServiceResponse describes one service with its gating and prices
type ServiceResponse struct {
	Name      types.Service              `json:"name"`
	Requires  []types.Service            `json:"requires,omitempty"`
	Gates     []types.Service            `json:"gates,omitempty"`
	Prices    map[string]decimal.Decimal `json:"prices"`
	Discounts []types.DiscountRule       `json:"discounts,omitempty"`
	Absorbs   []types.Service            `json:"absorbs,omitempty"`
}

// ErrorResponse wraps an API error
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody is the error payload
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func toSelection(names []string) types.Selection {
	sel := make(types.Selection, len(names))
	for i, n := range names {
		sel[i] = types.Service(n)
	}
	return sel
}

func toActions(reqs []ActionRequest) []types.Action {
	actions := make([]types.Action, len(reqs))
	for i, r := range reqs {
		actions[i] = types.Action{Kind: types.ActionKind(r.Type), Service: types.Service(r.Service)}
	}
	return actions
}
