package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/herald/pkg/domain/interfaces"
)

// DefaultUpdateLimit is the default size limit of an inbound issue update
const DefaultUpdateLimit int64 = 1 << 20

type config struct {
	addr         string
	updateSecret string
	updateLimit  int64
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// WithUpdateSecret sets the secret used to verify inbound issue updates.
// Verification is disabled when empty.
func WithUpdateSecret(secret string) Option {
	return func(c *config) {
		c.updateSecret = secret
	}
}

// WithUpdateLimit sets the maximum accepted body size of an issue update
func WithUpdateLimit(limit int64) Option {
	return func(c *config) {
		if limit > 0 {
			c.updateLimit = limit
		}
	}
}

// Server receives issue updates from the tracker
type Server struct {
	*http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	ctx context.Context,
	notifyUC interfaces.NotifyUseCase,
	opts ...Option,
) (*Server, error) {
	cfg := &config{
		addr:        "localhost:8080",
		updateLimit: DefaultUpdateLimit,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	updateHandler := NewUpdateHandler(cfg.updateSecret, notifyUC)
	updateHandler.limit = cfg.updateLimit

	return &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           newRouter(ctx, updateHandler),
			ReadHeaderTimeout: 15 * time.Second,
		},
	}, nil
}

func newRouter(ctx context.Context, updateHandler *UpdateHandler) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	router.Get("/health", handleHealth)

	// Host-facing trigger
	router.Route("/hooks/youtrack", func(r chi.Router) {
		r.Post("/issue", updateHandler.Handle)
		r.Get("/requirements", handleRequirements)
	})

	return router
}
