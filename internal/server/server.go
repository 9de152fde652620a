// Package server wires the HTTP stack together: router, middleware, and the
// route table. It is the composition root; every dependency (store, services,
// handlers, token service) is assembled in New and nowhere else. main.go only
// reads configuration and calls Start.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/campus-bookings/internal/auth"
	"github.com/sakif/campus-bookings/internal/handler"
	"github.com/sakif/campus-bookings/internal/middleware"
	sqliteRepo "github.com/sakif/campus-bookings/internal/repository/sqlite"
	"github.com/sakif/campus-bookings/internal/service"
)

// Config holds server configuration, loaded from the environment by main.
type Config struct {
	Port      int
	DBPath    string
	JWTSecret string

	// AuthRPS and AuthBurst bound how fast one IP may hit /register and
	// /login. Zero values fall back to the defaults below.
	AuthRPS   float64
	AuthBurst int
}

const (
	defaultAuthRPS   = 1.0
	defaultAuthBurst = 5
)

// Server owns the router and the resources behind it. The database connection
// is held here so graceful shutdown can close it after in-flight requests
// drain.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain:
//
//	sqlite.DB → repositories (interfaces) → services → handlers → routes
//
// Each layer receives only the layer beneath it; handlers never see the
// database and services never see HTTP.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and the route table.
//
//	POST /register                    → create account
//	POST /login                       → verify credentials, issue JWT
//	GET  /me                          → account behind the token (auth required)
//	GET  /professors                  → list professor accounts
//	GET  /professors/{id}             → single professor
//	POST /availability                → professor publishes a slot
//	GET  /availability/{professorId}  → slots with booking state
//	POST /appointments                → student books a slot
//	GET  /appointments/{userId}       → student's appointments
//
// Middleware order matters: RealIP must run before the rate limiter so the
// limiter keys on the real client address, and the logger wraps everything
// that follows it.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	accountService := service.NewAccountService(s.db, passwords, s.logger)
	directoryService := service.NewDirectoryService(s.db, s.logger)
	availabilityService := service.NewAvailabilityService(s.db, s.db, s.db, s.logger)
	bookingService := service.NewBookingService(s.db, s.db, s.logger)

	accountHandler := handler.NewAccountHandler(accountService, tokens, s.logger)
	directoryHandler := handler.NewDirectoryHandler(directoryService, s.logger)
	availabilityHandler := handler.NewAvailabilityHandler(availabilityService, s.logger)
	bookingHandler := handler.NewBookingHandler(bookingService, s.logger)

	rps, burst := s.config.AuthRPS, s.config.AuthBurst
	if rps <= 0 {
		rps = defaultAuthRPS
	}
	if burst <= 0 {
		burst = defaultAuthBurst
	}
	authLimiter := middleware.NewRateLimiter(rps, burst)

	// Credential endpoints are rate limited per IP; bcrypt makes each attempt
	// expensive, so they must not be free to hammer.
	s.router.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(authLimiter))
		r.Post("/register", accountHandler.HandleRegister)
		r.Post("/login", accountHandler.HandleLogin)
	})

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))
		r.Get("/me", accountHandler.HandleMe)
	})

	s.router.Get("/professors", directoryHandler.HandleList)
	s.router.Get("/professors/{id}", directoryHandler.HandleGet)

	s.router.Post("/availability", availabilityHandler.HandlePublish)
	s.router.Get("/availability/{professorId}", availabilityHandler.HandleList)

	s.router.Post("/appointments", bookingHandler.HandleBook)
	s.router.Get("/appointments/{userId}", bookingHandler.HandleListForStudent)

	return nil
}

// Handler exposes the assembled router, mainly for tests that drive the full
// stack through httptest without a listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the server's resources without serving. Start handles this
// itself; Close exists for callers that used Handler directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, give in-flight requests 30 seconds
// to finish, close the database (flushes the WAL and releases the file lock).
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
