// Package httpapi serves the admin reporting API: JSON report views, CSV
// exports and admin authentication.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	"github.com/akademia/backoffice-manager/internal/apisrv/auth"
	"github.com/akademia/backoffice-manager/internal/dependency"
)

// Config is the configuration for the http server
type Config struct {
	Port            string   `mapstructure:"port"`
	Address         string   `mapstructure:"address"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	RateLimit       int      `mapstructure:"rate_limit"`
	RateLimitWindow string   `mapstructure:"rate_limit_window"`
}

// Pinger reports database connectivity for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server is the http server
type Server struct {
	hs      *http.Server
	c       *Config
	reports dependency.Reports
	auth    *auth.Server
	db      Pinger
	done    chan struct{}
}

// New creates a new server
func New(config *Config, reports dependency.Reports, authSrv *auth.Server, db Pinger) *Server {
	return &Server{
		c:       config,
		reports: reports,
		auth:    authSrv,
		db:      db,
		done:    make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.c.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Authorization"},
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))
	r.Use(render.SetContentType(render.ContentTypeJSON))

	rateWindow, err := time.ParseDuration(s.c.RateLimitWindow)
	if err != nil || rateWindow <= 0 {
		rateWindow = 15 * time.Second
	}
	rateLimit := s.c.RateLimit
	if rateLimit <= 0 {
		rateLimit = 30
	}
	r.Use(httprate.Limit(
		rateLimit,
		rateWindow,
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.auth.WithAuth)

			r.Post("/auth/change-password", s.handleChangePassword)

			r.Route("/reports", func(r chi.Router) {
				r.Get("/filters", s.handleFilterOptions)
				r.Get("/sales", s.handleSalesReport)
				r.Get("/sales/export", s.handleSalesExport)
				r.Get("/sales/orders", s.handleOrderList)
				r.Get("/notifications", s.handleNotificationReport)
				r.Get("/notifications/export", s.handleNotificationExport)
				r.Get("/packages", s.handlePackageReport)
				r.Get("/packages/export", s.handlePackageExport)
				r.Get("/enrollments", s.handleEnrollmentReport)
				r.Get("/enrollments/export", s.handleEnrollmentExport)
			})
		})
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)

	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    listenerAddr,
		Handler: s.router(),
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("backoffice-manager listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		cancel()
		close(s.done)
	}()

	return nil
}

// Stop shuts the server down draining in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			slog.Default().ErrorContext(r.Context(), "health check db ping failed",
				slog.String("err", err.Error()),
			)
			http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
