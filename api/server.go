package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/paw-chain/amm/app"
)

// Server exposes the AMM over HTTP.
type Server struct {
	router *gin.Engine
	app    *app.App
	config *Config
	logger log.Logger
	tracer trace.Tracer
}

// Config holds server configuration
type Config struct {
	ListenAddr      string
	RateLimitRPS    int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	// FaucetEnabled exposes POST /faucet, which credits arbitrary balances.
	FaucetEnabled bool

	// Tracer defaults to the global tracer provider.
	Tracer trace.Tracer
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:      "127.0.0.1:5050",
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		CORSOrigins:     []string{"http://localhost:3000"},
	}
}

// NewServer creates a new API server instance
func NewServer(application *app.App, config *Config) (*Server, error) {
	if application == nil {
		return nil, errors.New("api: nil app")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("api: rate limit must be positive, got %d", config.RateLimitRPS)
	}

	s := &Server{
		app:    application,
		config: config,
		logger: application.Logger().With("module", "api"),
		tracer: config.Tracer,
	}
	if s.tracer == nil {
		s.tracer = otel.Tracer("ammd/api")
	}
	s.setupRouter()
	return s, nil
}

func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Recovery first so panics in later middleware are caught.
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(TracingMiddleware(s.tracer))
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(CORSMiddleware(s.config.CORSOrigins))
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/health", s.healthCheck)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	s.registerRoutes()
}

func (s *Server) registerRoutes() {
	pools := s.router.Group("/pools")
	{
		pools.GET("", s.handleListPools)
		pools.POST("", s.handleCreatePool)
		pools.GET("/:asset_a/:asset_b", s.handleGetPool)
		pools.GET("/:asset_a/:asset_b/quote", s.handleQuoteSwap)
		pools.GET("/:asset_a/:asset_b/price", s.handleSpotPrice)
		pools.POST("/:asset_a/:asset_b/mint", s.handleAddLiquidity)
		pools.POST("/:asset_a/:asset_b/burn", s.handleRemoveLiquidity)
		pools.POST("/:asset_a/:asset_b/swap", s.handleSwap)
	}

	s.router.GET("/liquidity-tokens/:token", s.handlePoolByLiquidityToken)
	s.router.GET("/accounts/:account/balances/:asset", s.handleGetBalance)

	if s.config.FaucetEnabled {
		s.router.POST("/faucet", s.handleFaucet)
	}
}

// Router returns the HTTP handler.
func (s *Server) Router() http.Handler { return s.router }

func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"height":    s.app.LastHeight(),
		"timestamp": time.Now().Unix(),
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:           s.config.ListenAddr,
		Handler:        s.router,
		ReadTimeout:    s.config.ReadTimeout,
		WriteTimeout:   s.config.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting api server", "addr", s.config.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("api server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down api server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}
