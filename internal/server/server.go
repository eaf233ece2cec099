// Package server exposes the ProMed HTTP surface: public pages, signup
// and login, and the session-guarded medicine CRUD routes.
package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/promedhq/promed/internal/apperrors"
	"github.com/promedhq/promed/internal/config"
	"github.com/promedhq/promed/internal/domain"
	"github.com/promedhq/promed/internal/logger"
)

// Server wires the services to the HTTP routes.
type Server struct {
	cfg       *config.Config
	users     domain.UserService
	medicines domain.MedicineService
	sessions  domain.SessionStore
	errs      *apperrors.Handler
}

// New creates the HTTP server facade.
func New(cfg *config.Config, users domain.UserService, medicines domain.MedicineService, sessions domain.SessionStore) *Server {
	return &Server{
		cfg:       cfg,
		users:     users,
		medicines: medicines,
		sessions:  sessions,
		errs:      apperrors.NewHandler(logger.WithFields("component", "server")),
	}
}

// Routes builds the request multiplexer.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Public pages
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /about_us", s.handleAbout)
	mux.HandleFunc("GET /qr-scan", s.handleQRScan)

	// QR images and assets
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir("static"))))

	// Authentication
	mux.HandleFunc("GET /signup", s.handleSignupPage)
	mux.HandleFunc("POST /signup", s.handleSignup)
	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.requireSession(s.handleLogout))

	// Medicines
	mux.HandleFunc("GET /add-medicine", s.requireSession(s.handleAddMedicinePage))
	mux.HandleFunc("POST /add-medicine", s.requireSession(s.handleAddMedicine))
	mux.HandleFunc("GET /medicines", s.requireSession(s.handleListMedicines))
	mux.HandleFunc("GET /medicine/{id}", s.requireSession(s.handleMedicineDetail))
	mux.HandleFunc("POST /medicine/{id}/delete", s.requireSession(s.handleDeleteMedicine))

	return mux
}

// Start serves HTTP until ctx is cancelled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:         ":" + s.cfg.Port,
		Handler:      s.Routes(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
