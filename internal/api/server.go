package api

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pharosnegocios/imobcalc/internal/compare"
	"github.com/pharosnegocios/imobcalc/internal/config"
	"github.com/pharosnegocios/imobcalc/internal/rates"
	"github.com/pharosnegocios/imobcalc/internal/transform"
	"github.com/pharosnegocios/imobcalc/internal/valuation"
	"github.com/sirupsen/logrus"
)

// Options configures the HTTP API.
type Options struct {
	Rates        rates.Provider
	WeightPolicy valuation.WeightPolicy
	Logger       *logrus.Logger
	CORSOrigins  []string
	MaxBodyBytes int64
}

// Handler serves the API endpoints.
type Handler struct {
	logger    *logrus.Logger
	rates     rates.Provider
	policy    valuation.WeightPolicy
	parser    *config.InputParser
	compare   *compare.CompareEngine
	templates *transform.TemplateRegistry
}

// NewHandler builds a handler. Missing options get working defaults: a JSON
// logger on stdout, default reference rates and the permissive policy.
func NewHandler(opts Options) *Handler {
	logger := opts.Logger
	if logger == nil {
		logger = logrus.New()
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetOutput(os.Stdout)
	}
	provider := opts.Rates
	if provider == nil {
		provider = rates.NewFallbackProvider(nil, logger)
	}
	policy := opts.WeightPolicy
	if policy == "" {
		policy = valuation.PolicyPermissive
	}

	return &Handler{
		logger:    logger,
		rates:     provider,
		policy:    policy,
		parser:    config.NewInputParser(),
		compare:   compare.NewCompareEngine(nil),
		templates: transform.CreateBuiltInTemplates(),
	}
}

// NewRouter returns a gin engine with middleware and every route installed.
func NewRouter(opts Options) *gin.Engine {
	handler := NewHandler(opts)

	router := gin.New()
	router.Use(RequestID())
	router.Use(RequestLogger(handler.logger))
	router.Use(Recovery(handler.logger))
	if len(opts.CORSOrigins) > 0 {
		router.Use(CORS(opts.CORSOrigins))
	}
	router.Use(MaxBody(opts.MaxBodyBytes))

	SetupRoutes(router, handler)
	return router
}

// SetupRoutes registers the API endpoints on router.
func SetupRoutes(router *gin.Engine, handler *Handler) {
	router.GET("/healthz", handler.Health)

	api := router.Group("/api")
	{
		api.GET("/indices", handler.GetIndices)
		api.POST("/simulations", handler.Simulate)
		api.POST("/simulations/chart", handler.SimulateChart)
		api.POST("/simulations/records", handler.SimulateRecord)
		api.POST("/sensitivity", handler.Sensitivity)
		api.POST("/comparisons", handler.Compare)
		api.GET("/templates", handler.ListTemplates)
		api.POST("/breakeven", handler.BreakEven)
		api.POST("/valuations", handler.Valuate)
		api.POST("/comparables/normalize", handler.NormalizeComparables)
	}
}

// Serve runs the API on addr until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func Serve(ctx context.Context, addr string, router http.Handler, logger *logrus.Logger, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Starting server on %s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
