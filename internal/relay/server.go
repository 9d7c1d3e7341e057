// Package relay serves the completion gateway: it accepts a role-tagged
// message list over HTTP, forwards it to the configured provider and
// answers with a chat-completion style body. It lets clients talk to a
// model without holding an API key.
package relay

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"

	"github.com/abhisek/langbuddy/internal/llm"
)

// ShutdownTimeout bounds graceful shutdown.
const ShutdownTimeout = 10 * time.Second

// Config controls sampling defaults and the middleware stack.
type Config struct {
	CORSOrigins string
	RateLimit   int // requests per minute per IP, 0 disables

	// MaxTokens and Temperature apply when the request does not set them.
	MaxTokens   int
	Temperature float64
}

// Server is the relay HTTP server.
type Server struct {
	app      *fiber.App
	provider llm.Provider
	cfg      Config
	log      logrus.FieldLogger
	validate *Validator
}

// New builds the relay. provider may be nil, in which case chat requests
// fail with 500 until one is configured.
func New(provider llm.Provider, cfg Config, log logrus.FieldLogger) *Server {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 800
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.8
	}

	s := &Server{
		provider: provider,
		cfg:      cfg,
		log:      log.WithField("component", "relay"),
		validate: NewValidator(),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "langbuddy relay",
		ErrorHandler:          errorHandler(s.log),
		DisableStartupMessage: true,
	})

	s.app.Use(recover.New())
	s.app.Use(requestLogger(s.log))
	s.app.Use(corsMiddleware(cfg.CORSOrigins))

	s.app.Get("/healthz", s.healthz)

	api := s.app.Group("/api")
	if cfg.RateLimit > 0 {
		api.Use(rateLimiter(cfg.RateLimit))
	}
	api.Post("/chat", s.chat)
	api.All("/chat", methodNotAllowed)

	return s
}

// App exposes the fiber app, mainly for app.Test.
func (s *Server) App() *fiber.App {
	return s.app
}

// Run listens on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- s.app.Listen(addr)
	}()
	s.log.WithField("addr", addr).Info("Relay listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("Shutting down relay")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.app.ShutdownWithContext(shutdownCtx)
}
