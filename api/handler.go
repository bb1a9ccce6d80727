// Package api - Route handlers
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"service-basket/core/engine"
	"service-basket/core/types"
	"service-basket/internal/errors"
)

// handleHealth handles GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleVersion handles GET /version
func (s *Server) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": s.opts.Version})
}

// handleCatalog handles GET /catalog
func (s *Server) handleCatalog(c *gin.Context) {
	cat := s.engine.Catalog()
	g := cat.Graph()

	resp := CatalogResponse{
		Name:     cat.Name,
		Currency: cat.Currency,
		Years:    cat.Years,
		Services: make([]ServiceResponse, 0, len(cat.Services)),
	}
	for _, svc := range cat.Services {
		sr := ServiceResponse{
			Name:     svc,
			Requires: g.MainServicesOf(svc),
			Gates:    g.SubServicesOf(svc),
			Prices:   make(map[string]decimal.Decimal),
		}
		if rule, ok := cat.PriceRule(svc); ok {
			for _, y := range rule.Years() {
				sr.Prices[y.String()] = rule.Basic[y]
			}
			sr.Discounts = rule.Discounts
			sr.Absorbs = rule.Absorbs
		}
		resp.Services = append(resp.Services, sr)
	}

	c.JSON(http.StatusOK, resp)
}

// handleSelection handles POST /selection
func (s *Server) handleSelection(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	sel, changes, err := s.engine.Apply(toSelection(req.Selection), toActions(req.Actions)...)
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, SelectionResponse{Selection: sel, Changes: changes})
}

// handleQuote handles POST /quote
func (s *Server) handleQuote(c *gin.Context) {
	var req QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	year := s.yearOrDefault(req.Year)
	q, err := s.engine.Quote(c.Request.Context(), engine.QuoteRequest{
		Selection: toSelection(req.Selection),
		Actions:   toActions(req.Actions),
		Year:      year,
	})
	if err != nil {
		s.writeEngineError(c, err)
		return
	}

	if s.metrics != nil {
		s.metrics.ObserveQuote(q)
	}
	c.Header("X-Quote-ID", q.ID)
	c.JSON(http.StatusOK, q)
}

func (s *Server) yearOrDefault(year int) types.Year {
	if year == 0 {
		return s.opts.DefaultYear
	}
	return types.Year(year)
}

// writeEngineError maps domain error types to HTTP status codes
func (s *Server) writeEngineError(c *gin.Context, err error) {
	errType := errors.TypeOf(err)

	status := http.StatusInternalServerError
	switch errType {
	case errors.TypeInput:
		status = http.StatusBadRequest
	case errors.TypeNotSupported:
		status = http.StatusUnprocessableEntity
	case errors.TypeNotFound:
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	s.writeError(c, status, string(errType), err.Error())
}

func (s *Server) writeError(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Error: ErrorBody{Code: code, Message: message},
	})
}
