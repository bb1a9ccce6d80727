// Package api - Selection comparison
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"service-basket/core/engine"
	"service-basket/core/types"
)

// DiffRequest is the request for POST /diff
type DiffRequest struct {
	Base DiffSide `json:"base"`
	Head DiffSide `json:"head"`

	// Year defaults to the server's default year when zero
	Year int `json:"year" binding:"gte=0"`
}

// DiffSide is one selection to compare
type DiffSide struct {
	Selection []string        `json:"selection"`
	Actions   []ActionRequest `json:"actions" binding:"dive"`
}

func (d DiffSide) quoteRequest(year types.Year) engine.QuoteRequest {
	return engine.QuoteRequest{
		Selection: toSelection(d.Selection),
		Actions:   toActions(d.Actions),
		Year:      year,
	}
}

// handleDiff handles POST /diff
func (s *Server) handleDiff(c *gin.Context) {
	var req DiffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	year := s.yearOrDefault(req.Year)
	cmp, err := s.engine.Compare(c.Request.Context(), req.Base.quoteRequest(year), req.Head.quoteRequest(year))
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveQuote(cmp.Before)
		s.metrics.ObserveQuote(cmp.After)
	}
	c.JSON(http.StatusOK, cmp)
}
