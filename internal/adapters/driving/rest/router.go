// Package rest serves the menu ingestion and quiz HTTP API.
package rest

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/custodia-labs/menumem/internal/core/ports/driving"
	"github.com/custodia-labs/menumem/internal/logger"
)

// Errors returned when required ports are missing.
var (
	ErrMissingQuizService = errors.New("quiz service is required")
	ErrMissingMenuService = errors.New("menu service is required")
)

const shutdownTimeout = 10 * time.Second

// Ports aggregates the driving ports served over HTTP.
type Ports struct {
	Quiz driving.QuizService
	Menu driving.MenuService

	// Ingest is optional; ingestion routes answer 503 without it.
	Ingest driving.IngestService

	// LLMName and OCRName are reported by GET /health.
	LLMName string
	OCRName string
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Quiz == nil {
		return ErrMissingQuizService
	}
	if p.Menu == nil {
		return ErrMissingMenuService
	}
	return nil
}

// Options configures the router.
type Options struct {
	// AllowedOrigins lists CORS origins. Empty allows all.
	AllowedOrigins []string
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(ports *Ports, opts Options) (*gin.Engine, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	r := gin.New()
	r.Use(gin.LoggerWithWriter(logger.Writer()), gin.RecoveryWithWriter(logger.Writer()))
	r.Use(cors.New(corsConfig(opts.AllowedOrigins)))

	h := NewHandler(ports)

	r.GET("/health", h.Health())
	r.GET("/quiz", h.Quiz())
	r.GET("/categories", h.Categories())

	menu := r.Group("/menu")
	{
		menu.GET("", h.ListMenu())
		menu.POST("", h.AddDish())
		menu.POST("/parse-ai", h.ParseMenu())
		menu.POST("/upload", h.Upload())
		menu.POST("/ocr-google", h.RecognizeText())
		menu.POST("/:id/ingredients", h.LinkIngredients())
	}

	ingredients := r.Group("/ingredients")
	{
		ingredients.GET("", h.ListIngredients())
		ingredients.POST("", h.AddIngredient())
	}

	return r, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

// Server runs the HTTP API until its context is cancelled.
type Server struct {
	httpServer *http.Server
}

// NewServer creates a server listening on addr.
func NewServer(addr string, handler http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Run blocks until ctx is cancelled or the listener fails. In-flight
// requests get shutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP API listening on %s", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}
