// Package server provides the HTTP server for the recommendation API
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/cocinero/v1/internal/infrastructure/config"
	"github.com/cocinero/v1/internal/infrastructure/http/handlers"
)

// Server represents the HTTP server
type Server struct {
	config   *config.Config
	logger   *zap.Logger
	router   *chi.Mux
	server   *http.Server
	handlers *handlers.APIHandlers
}

// NewServer creates a new HTTP server instance
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	apiHandlers *handlers.APIHandlers,
) *Server {
	s := &Server{
		config:   cfg,
		logger:   logger.Named("http"),
		handlers: apiHandlers,
	}

	s.router = s.setupRouter()

	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:           s.router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		MaxHeaderBytes:    1 << 20,
		ReadHeaderTimeout: cfg.Server.ReadTimeout,
	}

	return s
}

// setupRouter configures the HTTP router with middleware and routes
func (s *Server) setupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Compress(5))

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIRoutes(r)
	})

	return r
}

// setupAPIRoutes configures REST API routes
func (s *Server) setupAPIRoutes(r chi.Router) {
	h := s.handlers

	r.Get("/health", h.HealthCheck)

	r.Route("/substitutions", func(r chi.Router) {
		r.Post("/search", h.SearchSubstitutions)
		r.Post("/best", h.BestSubstitute)
		r.Post("/amount", h.ConvertAmount)
	})

	r.Route("/adaptations", func(r chi.Router) {
		r.Post("/search", h.SearchAdaptations)
		r.Post("/best", h.BestAdaptation)
	})

	r.Route("/preferences", func(r chi.Router) {
		r.Post("/usage", h.RecordUsage)
		r.Get("/{originalID}", h.GetPreferred)
	})

	r.Route("/recipes", func(r chi.Router) {
		r.Post("/adapt", h.AdaptRecipe)
		r.Route("/{recipeID}/variants", func(r chi.Router) {
			r.Get("/", h.ListVariants)
			r.Post("/", h.CreateVariant)
			r.Post("/{variantID}/apply", h.ApplyVariant)
		})
	})

	r.Route("/variants", func(r chi.Router) {
		r.Get("/{variantID}/summary", h.GetVariantSummary)
		r.Delete("/{variantID}", h.DeleteVariant)
	})

	r.Route("/knowledge", func(r chi.Router) {
		r.Post("/", h.AddKnowledge)
		r.Get("/relevant", h.GetRelevantKnowledge)
		r.Get("/digest", h.GetKnowledgeDigest)
		r.Get("/profile", h.GetKnowledgeProfile)
		r.Put("/{entryID}/confidence", h.UpdateKnowledgeConfidence)
	})

	r.Route("/history", func(r chi.Router) {
		r.Post("/", h.RecordSession)
		r.Get("/{recipeID}", h.GetRecipeHistory)
	})

	r.Route("/plans", func(r chi.Router) {
		r.Post("/questionnaire", h.GenerateFromQuestionnaire)
		r.Post("/generate", h.GeneratePlan)
		r.Get("/active", h.GetActivePlan)
	})

	r.Route("/profile", func(r chi.Router) {
		r.Get("/", h.GetProfile)
		r.Put("/", h.SaveProfile)
	})

	r.Route("/inventory", func(r chi.Router) {
		r.Get("/", h.ListInventory)
		r.Put("/{ingredientID}", h.SaveInventoryItem)
		r.Delete("/{ingredientID}", h.DeleteInventoryItem)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		zap.String("address", s.server.Addr),
		zap.String("environment", s.config.App.Environment),
	)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// requestLogger logs one line per request with latency and status
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			requestID := chimiddleware.GetReqID(r.Context())
			start := time.Now()

			defer func() {
				logger.Info("Request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("latency", time.Since(start)),
					zap.String("request_id", requestID),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
