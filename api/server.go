// Package api - Thin HTTP layer
// The API only binds input and renders engine results as JSON.
// It never performs selection or pricing logic itself.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"service-basket/core/engine"
	"service-basket/core/types"
	"service-basket/internal/logging"
)

// Options configure the server
type Options struct {
	// Version is reported by GET /version
	Version string

	// DefaultYear prices requests that name no year
	DefaultYear types.Year

	// Metrics enables GET /metrics and request timing
	Metrics bool
}

// Server is the API server
type Server struct {
	engine  *engine.Engine
	router  *gin.Engine
	metrics *Metrics
	opts    Options
	logger  *zap.Logger
}

// NewServer creates a new API server over a quote engine
func NewServer(e *engine.Engine, opts Options) *Server {
	registerValidators()

	s := &Server{
		engine: e,
		router: gin.New(),
		opts:   opts,
		logger: logging.Named("api"),
	}
	if opts.Metrics {
		s.metrics = NewMetrics()
	}

	s.router.Use(gin.Recovery(), s.requestLogger())
	if s.metrics != nil {
		s.router.Use(s.metrics.Middleware())
	}
	s.registerRoutes()
	return s
}

// registerRoutes registers all API routes
func (s *Server) registerRoutes() {
	s.router.GET("/health", s.handleHealth)
	s.router.GET("/version", s.handleVersion)
	s.router.GET("/catalog", s.handleCatalog)
	s.router.POST("/selection", s.handleSelection)
	s.router.POST("/quote", s.handleQuote)
	s.router.POST("/diff", s.handleDiff)

	if s.metrics != nil {
		s.router.GET("/metrics", s.metrics.Handler())
	}
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down api")
	return srv.Shutdown(shutdownCtx)
}

// requestLogger tags each request with an id and logs its outcome
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)

		c.Next()

		s.logger.Debug("request",
			zap.String("request_id", requestID),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)))
	}
}

// registerValidators installs the custom binding tags on gin's validator
func registerValidators() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("action", func(fl validator.FieldLevel) bool {
		switch types.ActionKind(fl.Field().String()) {
		case types.ActionSelect, types.ActionDeselect:
			return true
		default:
			return false
		}
	})
}

func init() {
	gin.SetMode(gin.ReleaseMode)
}
