// Package server wires the webhook pipeline and the small admin API onto an
// HTTP router.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/shoptext/shoptext/internal/config"
	"github.com/shoptext/shoptext/internal/sms"
	"github.com/shoptext/shoptext/internal/template"
	"github.com/shoptext/shoptext/internal/webhook"
)

// TemplateStore is the per-shop template persistence the server depends on.
type TemplateStore interface {
	template.Source
	Put(ctx context.Context, shopDomain string, t template.ShopTemplates) error
	Delete(ctx context.Context, shopDomain string) error
}

// Server is the shoptext HTTP server.
type Server struct {
	cfg       *config.Config
	router    *chi.Mux
	http      *http.Server
	logger    *slog.Logger
	templates TemplateStore
	sender    sms.Sender
	gateway   *sms.TermiiClient // nil when the real gateway is not configured
	startTime time.Time
}

// New creates a Server with middleware and routes configured. gateway may be
// nil (log backend or missing credentials); the sender-id endpoint then
// reports the gateway as unconfigured.
func New(cfg *config.Config, logger *slog.Logger, templates TemplateStore, sender sms.Sender, gateway *sms.TermiiClient) *Server {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	s := &Server{
		cfg:       cfg,
		router:    r,
		logger:    logger,
		templates: templates,
		sender:    sender,
		gateway:   gateway,
		startTime: time.Now(),
	}

	wh := webhook.NewHandler(webhook.Config{
		WebhookSecret:      cfg.Shopify.WebhookSecret,
		SenderID:           cfg.Termii.SenderID,
		Channel:            sms.Channel(cfg.Termii.Channel),
		DefaultCountryCode: cfg.Termii.DefaultCountryCode,
	}, templates, sender, logger)

	r.Get("/health", s.handleHealth)

	r.Route("/webhooks", func(r chi.Router) {
		r.Post("/orders/create", wh.OrderCreate)
		r.Post("/orders/fulfilled", wh.OrderFulfilled)
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/shops/{shop}/templates", func(r chi.Router) {
			r.Get("/", s.handleGetTemplates)
			r.Put("/", s.handlePutTemplates)
			r.Delete("/", s.handleDeleteTemplates)
		})
		r.Post("/test/sms", s.handleTestSend)
		r.Get("/sender-ids", s.handleSenderIDs)
	})

	return s
}

// Router exposes the chi router, mainly for tests.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start begins listening. Blocks until Shutdown or a listener error.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.Address(),
		Handler: s.router,
	}

	s.logger.Info("server starting", "address", s.cfg.Address())
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// StartWithReady is Start, signaling on ready once the listener is bound.
func (s *Server) StartWithReady(ready chan<- struct{}) error {
	s.http = &http.Server{
		Addr:    s.cfg.Address(),
		Handler: s.router,
	}

	ln, err := net.Listen("tcp", s.cfg.Address())
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	s.logger.Info("server starting", "address", s.cfg.Address())
	close(ready)

	if err := s.http.Serve(ln); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests within the configured timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	timeout := time.Duration(s.cfg.Server.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	s.logger.Info("shutting down server", "timeout", timeout)
	return s.http.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","uptime_seconds":%d}`, int(time.Since(s.startTime).Seconds()))
}
