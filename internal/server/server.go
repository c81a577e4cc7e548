package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/joblify/joblify/internal/billing"
	"github.com/joblify/joblify/internal/config"
	"github.com/joblify/joblify/internal/db"
	"github.com/joblify/joblify/internal/extract"
	"github.com/joblify/joblify/internal/llm"
	"github.com/joblify/joblify/internal/scoring"
	"github.com/joblify/joblify/internal/server/middleware"
	"github.com/joblify/joblify/internal/server/ratelimit"
)

// Store is the persistence surface the HTTP handlers depend on.
// *db.DB satisfies it; tests use fakes.
type Store interface {
	CreateJob(ctx context.Context, p db.CreateJobParams) (uuid.UUID, error)
	GetJob(ctx context.Context, jobID uuid.UUID) (*db.Job, error)
	ListJobsByOwner(ctx context.Context, ownerID uuid.UUID) ([]db.Job, error)
	UpdateJob(ctx context.Context, jobID uuid.UUID, p db.UpdateJobParams) error
	DeleteJob(ctx context.Context, jobID uuid.UUID) error

	CreateApplicant(ctx context.Context, p db.CreateApplicantParams) (uuid.UUID, error)
	GetApplicant(ctx context.Context, applicantID uuid.UUID) (*db.Applicant, error)
	ListApplicantsByJob(ctx context.Context, jobID uuid.UUID) ([]db.Applicant, error)
	SetScore(ctx context.Context, applicantID uuid.UUID, score json.RawMessage) error

	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*db.Profile, error)
}

// Config holds server configuration.
type Config struct {
	Port                int
	StripeWebhookSecret string
}

// Deps are the externally constructed collaborators. Lifecycles are owned
// by the process entry point, not by the server.
type Deps struct {
	Store         Store
	UserStore     DBClient
	LLM           llm.Client
	StripeBackend billing.Backend
	Logger        *zap.Logger
}

// Server represents the HTTP server.
type Server struct {
	httpServer  *http.Server
	store       Store
	scorer      *scoring.Scorer
	extractor   *extract.Extractor
	relay       *billing.Relay
	checkout    *billing.Checkout
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
	rateLimiter *ratelimit.Limiter
	validator   *validator.Validate
	log         *zap.Logger
}

// New creates a new server instance from injected dependencies.
func New(cfg Config, deps Deps) (*Server, error) {
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	scorer, err := scoring.NewScorer(deps.LLM, log.Named("scoring"))
	if err != nil {
		return nil, fmt.Errorf("failed to create scorer: %w", err)
	}

	s := &Server{
		store:     deps.Store,
		scorer:    scorer,
		extractor: extract.NewExtractor(deps.LLM, log.Named("extract")),
		validator: validator.New(),
		log:       log,
	}

	// billing.Store and CustomerStore are satisfied by the same db handle
	// as the handler Store in production.
	billingStore, ok := deps.Store.(interface {
		billing.Store
		billing.CustomerStore
	})
	if !ok {
		return nil, fmt.Errorf("store does not support billing operations")
	}
	s.relay = billing.NewRelay(deps.StripeBackend, billingStore, cfg.StripeWebhookSecret, log.Named("billing"))
	s.checkout = billing.NewCheckout(deps.StripeBackend, billingStore, log.Named("billing"))

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(deps.UserStore, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.DefaultConfig())

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withLogging(s.withCORS(s.routes())),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // scoring calls can take several seconds
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes builds the request router.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()
	auth := middleware.AuthMiddleware(s.jwtService.AsTokenValidator())

	mux.HandleFunc("GET /health", s.handleHealth)

	// Auth
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)
	mux.Handle("PUT /auth/password", auth(http.HandlerFunc(s.handleUpdatePassword)))
	mux.Handle("GET /me", auth(http.HandlerFunc(s.handleMe)))

	// Jobs (recruiter)
	mux.Handle("POST /jobs", auth(http.HandlerFunc(s.handleCreateJob)))
	mux.Handle("GET /jobs", auth(http.HandlerFunc(s.handleListJobs)))
	mux.Handle("GET /jobs/{id}", auth(http.HandlerFunc(s.handleGetJob)))
	mux.Handle("PUT /jobs/{id}", auth(http.HandlerFunc(s.handleUpdateJob)))
	mux.Handle("DELETE /jobs/{id}", auth(http.HandlerFunc(s.handleDeleteJob)))

	// Applicants (recruiter)
	mux.Handle("GET /jobs/{id}/applicants", auth(http.HandlerFunc(s.handleListApplicants)))
	mux.Handle("POST /jobs/{id}/rescore", auth(http.HandlerFunc(s.handleRescoreJob)))
	mux.Handle("GET /applicants/{id}", auth(http.HandlerFunc(s.handleGetApplicant)))

	// Public application intake (rate limited)
	mux.HandleFunc("GET /apply/{job_id}", s.handlePublicJob)
	mux.Handle("POST /apply/{job_id}", s.withRateLimit(http.HandlerFunc(s.handleApply)))

	// Standalone scoring/extraction operations
	mux.Handle("POST /score", auth(http.HandlerFunc(s.handleScore)))
	mux.Handle("POST /extract", auth(http.HandlerFunc(s.handleExtract)))

	// Billing
	mux.Handle("POST /billing/checkout", auth(http.HandlerFunc(s.handleCheckout)))
	mux.HandleFunc("POST /billing/webhook", s.handleWebhook)

	return mux
}

// Start begins listening for requests and blocks until shutdown.
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

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	s.log.Info("server stopped")
	return nil
}

// withCORS adds CORS headers.
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote", r.RemoteAddr),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

// withRateLimit limits submissions per client IP on the public intake route.
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID)
		s.setRateLimitHeaders(w, info)

		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// handleHealth returns server health status.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleUpdatePassword routes the password update to the auth handler with
// the authenticated user's ID.
func (s *Server) handleUpdatePassword(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	s.authHandler.UpdatePassword(w, r, userID)
}

// jsonResponse writes a JSON response.
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Error("failed to encode JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response.
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// extractClientID extracts the client identifier (IP) from the request.
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

// rateLimitResponse writes a 429 Too Many Requests response.
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

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
