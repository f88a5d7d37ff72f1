// Package server provides the HTTP REST API for the readiness and
// prediction engine.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/config"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/inference"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/registry"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/scoring"
	"github.com/Ganesh-0509/Campus-Sync-Edge-Ai/internal/store"
)

// Config holds server wiring
type Config struct {
	Addr      string
	Log       *zap.Logger
	Scorer    *scoring.Scorer
	Skills    config.SkillDictionary
	Store     store.RecordStore
	Registry  *registry.Registry
	Predictor *inference.Predictor // nil when no trained version is served
}

// Server represents the HTTP server
type Server struct {
	httpServer *http.Server
	log        *zap.Logger
	scorer     *scoring.Scorer
	skills     config.SkillDictionary
	store      store.RecordStore
	registry   *registry.Registry
	validate   *validator.Validate

	mu        sync.RWMutex
	predictor *inference.Predictor
}

// New creates a new server instance
func New(cfg Config) *Server {
	s := &Server{
		log:       cfg.Log,
		scorer:    cfg.Scorer,
		skills:    cfg.Skills,
		store:     cfg.Store,
		registry:  cfg.Registry,
		validate:  validator.New(),
		predictor: cfg.Predictor,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /predict", s.handlePredict)

	mux.HandleFunc("POST /analyze", s.handleAnalyze)
	mux.HandleFunc("GET /roles", s.handleListRoles)

	mux.HandleFunc("POST /ml/predict-role", s.handlePredictRole)
	mux.HandleFunc("POST /ml/project-score", s.handleProjectScore)
	mux.HandleFunc("GET /ml/skill-impact", s.handleSkillImpact)
	mux.HandleFunc("POST /ml/recompute-model", s.handleRecomputeModel)
	mux.HandleFunc("GET /ml/status", s.handleMLStatus)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.withLogging(s.withCORS(mux)),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// Handler exposes the routed handler for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// SetPredictor swaps the served model. Passing nil unloads it.
func (s *Server) SetPredictor(p *inference.Predictor) {
	s.mu.Lock()
	s.predictor = p
	s.mu.Unlock()
}

func (s *Server) currentPredictor() *inference.Predictor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.predictor
}

// Start begins listening for requests and blocks until shutdown
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	s.log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging logs each request with latency
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Duration("latency", time.Since(start)))
	})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("encode response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// handleError maps a typed error to its HTTP status
func (s *Server) handleError(w http.ResponseWriter, err error) {
	s.errorResponse(w, HTTPStatus(err), err.Error())
}
