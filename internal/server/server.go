// Package server provides the HTTP REST API for the resume tailor.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/umukozihr/resume-tailor/internal/artifacts"
	"github.com/umukozihr/resume-tailor/internal/bundle"
	"github.com/umukozihr/resume-tailor/internal/config"
	"github.com/umukozihr/resume-tailor/internal/db"
	"github.com/umukozihr/resume-tailor/internal/generation"
	"github.com/umukozihr/resume-tailor/internal/history"
	"github.com/umukozihr/resume-tailor/internal/ingestion"
	"github.com/umukozihr/resume-tailor/internal/llm"
	"github.com/umukozihr/resume-tailor/internal/memstore"
	"github.com/umukozihr/resume-tailor/internal/profile"
	"github.com/umukozihr/resume-tailor/internal/server/middleware"
	"github.com/umukozihr/resume-tailor/internal/server/ratelimit"
	"github.com/umukozihr/resume-tailor/internal/tailoring"
)

// backingStore is the persistence surface the server needs. Both the
// PostgreSQL layer and the in-memory dev store satisfy it.
type backingStore interface {
	profile.Repo
	history.Store
	UserStore
}

// Server represents the HTTP server
type Server struct {
	httpServer   *http.Server
	db           *db.DB
	rateLimiter  *ratelimit.Limiter
	jwtService   *JWTService
	userService  *UserService
	authHandler  *AuthHandler
	profiles     *profile.Store
	ingester     *ingestion.Ingester
	orchestrator *generation.Orchestrator
	ledger       *history.Ledger
	llmClient    llm.Client
}

// Config holds server configuration
type Config struct {
	Port         int
	DatabaseURL  string
	APIKey       string
	ArtifactsDir string
	UseBrowser   bool
}

// New creates a new server instance. When DatabaseURL is empty the server
// runs on an in-memory store; state is lost on restart.
func New(cfg Config) (*Server, error) {
	s := &Server{}

	var store backingStore
	if cfg.DatabaseURL != "" {
		database, err := db.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.Migrate(context.Background()); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		s.db = database
		store = database
	} else {
		log.Println("DATABASE_URL not set, using in-memory store")
		store = memstore.New()
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(store, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.profiles = profile.NewStore(store)
	s.ingester = ingestion.New()
	if cfg.UseBrowser {
		s.ingester.FetchOptions = &ingestion.FetchOptions{UseBrowser: true}
	}

	artifactStore, err := artifacts.NewStore(cfg.ArtifactsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create artifact store: %w", err)
	}

	llmClient, err := llm.NewClient(context.Background(), llm.DefaultConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	s.llmClient = llmClient

	generator := tailoring.NewGenerator(llmClient, artifactStore)
	bundler := bundle.New(artifactStore)

	// The recorder and the request-facing ledger share the same store; the
	// orchestrator only needs the Record half, so the submitter can point
	// back at the orchestrator without a cycle.
	recorder := history.NewLedger(store, nil, nil)
	s.orchestrator = generation.NewOrchestrator(generator, bundler, recorder, generation.Options{})
	s.ledger = history.NewLedger(store, s.orchestrator, s.profiles)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes(artifactStore)))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // Long timeout for generation runs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes assembles the request multiplexer. Everything except health,
// signup, login and the artifact files requires a bearer token.
func (s *Server) routes(artifactStore *artifacts.Store) http.Handler {
	requireAuth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())
	authed := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/signup", s.authHandler.Signup)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	mux.Handle("GET /profile", authed(s.handleGetProfile))
	mux.Handle("PUT /profile", authed(s.handleUpdateProfile))
	mux.Handle("GET /me/completeness", authed(s.handleCompleteness))
	mux.Handle("POST /profile/profile", authed(s.handleSaveProfileLegacy))

	mux.Handle("POST /generate/generate", authed(s.handleGenerate))
	mux.Handle("GET /generate/status/{run_id}", authed(s.handleRunStatus))
	mux.Handle("POST /jd/fetch", authed(s.handleFetchJD))

	mux.Handle("GET /history", authed(s.handleListHistory))
	mux.Handle("POST /history/{run_id}/regenerate", authed(s.handleRegenerate))

	// Generated .tex sources and zip bundles are plain files on disk.
	mux.Handle("GET "+artifacts.BasePath+"/", http.StripPrefix(artifacts.BasePath+"/",
		http.FileServer(http.Dir(artifactStore.Dir()))))

	return mux
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.llmClient != nil {
		s.llmClient.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	log.Println("Server stopped")
	return nil
}

// Handler returns the fully wired handler, for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		if !allowed {
			s.setRateLimitHeaders(w, info)
			s.rateLimitResponse(w, info)
			return
		}

		s.setRateLimitHeaders(w, info)
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier from the request.
// For MVP, this uses the IP address from RemoteAddr.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		response["retry_after"] = int(info.RetryAfter.Seconds())
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
