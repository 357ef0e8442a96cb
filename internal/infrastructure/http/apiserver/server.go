// Package apiserver provides a pure JSON API HTTP server implementation
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mealsmith/v2/internal/infrastructure/config"
	"github.com/mealsmith/v2/internal/infrastructure/http/handlers"
	"github.com/mealsmith/v2/internal/infrastructure/http/middleware"
	"github.com/mealsmith/v2/internal/ports/inbound"
)

// APIServer is the JSON API HTTP server for the plan engine
type APIServer struct {
	config         *config.Config
	logger         *zap.Logger
	server         *http.Server
	router         *chi.Mux
	plannerService inbound.PlannerService
	openAPIHandler *OpenAPIHandler
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	plannerService inbound.PlannerService,
) *APIServer {
	server := &APIServer{
		config:         cfg,
		logger:         log,
		plannerService: plannerService,
		openAPIHandler: NewOpenAPIHandler(log),
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      server.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return server
}

// setupRoutes configures pure JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	// Global middleware for API
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	r.Use(middleware.CORS())

	// API-specific middleware
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())

	// Health check endpoint
	r.Get("/health", s.handleHealthCheck)

	// OpenAPI documentation endpoints
	r.Get("/api/v1/openapi.yaml", s.openAPIHandler.ServeOpenAPISpec)
	r.Get("/api/v1/docs", s.openAPIHandler.ServeSwaggerUI)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	planH := handlers.NewPlanAPIHandlers(s.plannerService, s.logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthenticateAPI(s.config.Auth.JWTSecret))
		r.Post("/plan", planH.HandlePlan)
	})
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("address", s.server.Addr),
		zap.String("mode", "API-only"),
	)

	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealthCheck provides health check endpoint
func (s *APIServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	fmt.Fprintf(w, `{"status":"healthy","service":"mealsmith-api","version":"%s","timestamp":%d}`,
		s.config.App.Version, time.Now().Unix())
}
