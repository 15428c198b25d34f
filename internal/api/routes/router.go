package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"Tether/internal/api/handlers/auth"
	"Tether/internal/api/middleware"
	"Tether/internal/core/comments"
	"Tether/internal/core/interactions"
	"Tether/internal/core/messages"
	"Tether/internal/core/posts"
	"Tether/internal/core/reactions"
	"Tether/internal/core/users"
)

// Services bundles the domain services exposed over HTTP
type Services struct {
	Users        users.Service
	Posts        posts.Service
	Comments     comments.Service
	Reactions    reactions.Service
	Interactions interactions.Service
	Messages     messages.Service
}

// Tokens issues and verifies access tokens
type Tokens interface {
	auth.TokenIssuer
	middleware.TokenVerifier
}

// RouterConfig carries the transport settings of the router
type RouterConfig struct {
	Logger         *slog.Logger
	RateLimiter    *middleware.RateLimiter
	AuthLimiter    *middleware.RateLimiter
	CORSOrigins    []string
	RequestTimeout time.Duration
}

// NewRouter assembles the HTTP API: shared middleware, /health and every resource under /api/v1
func NewRouter(cfg RouterConfig, services Services, tokens Tokens) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(requestLogger(cfg.Logger))
	r.Use(chiMiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(cfg.RequestTimeout))
	}
	if len(cfg.CORSOrigins) > 0 {
		r.Use(corsMiddleware(cfg.CORSOrigins))
	}
	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	authMiddleware := middleware.NewAuthMiddleware(tokens, cfg.Logger)

	r.Route("/api/v1", func(r chi.Router) {
		RegisterAuthRoutes(r, services.Users, tokens, cfg.AuthLimiter)
		RegisterUserRoutes(r, services.Users, services.Posts, authMiddleware)
		RegisterPostRoutes(r, services.Posts, services.Comments, services.Reactions, authMiddleware)
		RegisterCommentRoutes(r, services.Comments, authMiddleware)
		RegisterReactionRoutes(r, services.Reactions, authMiddleware)
		RegisterInteractionRoutes(r, services.Interactions, authMiddleware)
		RegisterMessageRoutes(r, services.Messages, authMiddleware)
	})

	return r
}

// corsMiddleware creates a CORS middleware for the given allowed origins
func corsMiddleware(allowedOrigins []string) func(next http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{
			"Accept",
			"Authorization",
			"Content-Type",
		},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300, // 5 minutes
	})
}

// requestLogger logs one structured line per request
func requestLogger(logger *slog.Logger) func(next http.Handler) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info("request",
				slog.String("request_id", chiMiddleware.GetReqID(r.Context())),
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.Status()),
				slog.Int("bytes", ww.BytesWritten()),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}
