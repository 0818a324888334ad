// Package web is the HTTP transport: routing, content negotiation and the
// authorization gate in front of the record operations. Handlers stay
// thin; validation and persistence live in the services layer.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"motoreg/internal/logging"
	"motoreg/internal/server/services"
	"motoreg/internal/server/sessions"
)

type Server struct {
	address       string
	logger        logging.Logger
	users         *services.UserService
	motorcycles   *services.MotorcycleService
	sessions      sessions.Store
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewServer(address string, logger logging.Logger, users *services.UserService,
	motorcycles *services.MotorcycleService, sess sessions.Store, secretKey string) *Server {
	return &Server{
		address:       address,
		logger:        logger.With("module", "http_server"),
		users:         users,
		motorcycles:   motorcycles,
		sessions:      sess,
		jwtSecret:     []byte(secretKey),
		tokenValidity: users.TokenValidity(),
	}
}

// Handler builds the route table. Separate from Run so tests can drive
// the server through httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /login", s.handleLoginPage)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("GET /logout", s.handleLogout)
	mux.HandleFunc("GET /register", s.handleRegisterPage)
	mux.HandleFunc("POST /register", s.handleRegister)

	mux.HandleFunc("GET /motorcycles", s.requireAuth(s.handleList))
	mux.HandleFunc("POST /motorcycles", s.requireAuth(s.handleCreate))
	mux.HandleFunc("GET /motorcycles/new", s.requireAuth(s.handleNewForm))
	mux.HandleFunc("GET /motorcycles/{id}", s.requireAuth(s.handleGet))
	mux.HandleFunc("PUT /motorcycles/{id}", s.requireAuth(s.handleUpdate))
	mux.HandleFunc("DELETE /motorcycles/{id}", s.requireAuth(s.handleDelete))
	mux.HandleFunc("GET /motorcycles/{id}/edit", s.requireAuth(s.handleEditForm))

	// Form fallbacks: browsers can only send GET and POST.
	mux.HandleFunc("POST /motorcycles/{id}", s.requireAuth(s.handleUpdate))
	mux.HandleFunc("POST /motorcycles/{id}/delete", s.requireAuth(s.handleDelete))

	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/motorcycles", http.StatusSeeOther)
	})

	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{Addr: s.address, Handler: s.Handler()}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
