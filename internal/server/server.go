// Package server provides the HTTP REST API for the job board.
package server

import (
	"context"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/job-board/internal/config"
	"github.com/jonathan/job-board/internal/db"
	"github.com/jonathan/job-board/internal/notify"
	"github.com/jonathan/job-board/internal/server/middleware"
	"github.com/jonathan/job-board/internal/server/ratelimit"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          *db.DB
	rateLimiter *ratelimit.Limiter
	redisStore  *ratelimit.RedisStore
	jwtService  *JWTService
	userService *UserService
	notifier    *notify.Mailer
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	// Connect to database
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	s := &Server{
		db: database,
	}

	// Initialize rate limiter: Redis-backed when configured, in-process
	// otherwise.
	var store ratelimit.Store
	if cfg.RedisURL != "" {
		redisStore, err := ratelimit.NewRedisStore(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis rate limit store: %w", err)
		}
		s.redisStore = redisStore
		store = redisStore
	} else {
		log.Println("[server] REDIS_URL not set, using in-process rate limiting")
		store = ratelimit.NewMemoryStore()
	}
	s.rateLimiter = ratelimit.NewLimiter(store, ratelimit.Config{
		Enabled: true,
		Limit:   cfg.RateLimit,
		Window:  time.Duration(cfg.RateLimitWindow) * time.Second,
	})

	// Initialize authentication services
	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)

	s.notifier = notify.NewMailer(notify.Config{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.MailFrom,
	})

	// Create HTTP server
	s.httpServer = &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the ServeMux with per-route auth requirements.
func (s *Server) routes() http.Handler {
	requireAuth := middleware.RequireAuth(s.jwtService)
	optionalAuth := middleware.OptionalAuth(s.jwtService)

	authed := func(h http.HandlerFunc) http.Handler { return requireAuth(h) }
	public := func(h http.HandlerFunc) http.Handler { return optionalAuth(h) }

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)

	// Authentication
	mux.HandleFunc("POST /auth/register", s.handleRegister)
	mux.HandleFunc("POST /auth/login", s.handleLogin)
	mux.Handle("PUT /auth/password", authed(s.handleUpdatePassword))

	// Jobs: listing and detail are public but show more to the owning
	// poster and admins, so they run the optional auth middleware.
	mux.Handle("GET /jobs", public(s.handleListJobs))
	mux.Handle("GET /jobs/{id}", public(s.handleGetJob))
	mux.Handle("POST /jobs", authed(s.handleCreateJob))
	mux.Handle("PUT /jobs/{id}", authed(s.handleUpdateJob))
	mux.Handle("DELETE /jobs/{id}", authed(s.handleDeleteJob))

	// Applications
	mux.Handle("POST /jobs/{id}/applications", authed(s.handleCreateApplication))
	mux.Handle("GET /applications", authed(s.handleListApplications))
	mux.Handle("GET /applications/{id}", authed(s.handleGetApplication))
	mux.Handle("PATCH /applications/{id}/status", authed(s.handleUpdateApplicationStatus))

	// Users
	mux.Handle("GET /users", authed(s.handleListUsers))
	mux.Handle("GET /users/{id}", authed(s.handleGetUser))
	mux.Handle("PUT /users/{id}", authed(s.handleUpdateUser))

	// Categories
	mux.HandleFunc("GET /categories", s.handleListCategories)
	mux.Handle("POST /categories", authed(s.handleCreateCategory))
	mux.Handle("DELETE /categories/{id}", authed(s.handleDeleteCategory))

	return mux
}

// DB exposes the repository for wiring background jobs in main.
func (s *Server) DB() *db.DB {
	return s.db
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

	if s.redisStore != nil {
		if err := s.redisStore.Close(); err != nil {
			log.Printf("Error closing redis store: %v", err)
		}
	}

	s.db.Close()
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
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
		// Health checks bypass the limiter.
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		clientID := s.extractClientID(r)
		allowed, info := s.rateLimiter.Allow(r.Context(), clientID)

		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

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

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is only safe
// behind a trusted proxy and is not consulted here.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// If parsing fails, use the whole RemoteAddr
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

// rateLimitResponse writes a 429 Too Many Requests response.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, map[string]any{
		"status": false,
		"error": errorBody{
			Kind:    "TOO_MANY_REQUESTS",
			Message: "rate limit exceeded, please try again later",
		},
	})
}
