package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/chris/grafik/internal/db"
	appLog "github.com/chris/grafik/internal/log"
	"github.com/chris/grafik/internal/schedule"
)

// Server exposes the schedule over a JSON API. The event and person routes
// follow the original backend; /events/view and /reminders/upcoming serve the
// derived views.
type Server struct {
	store         db.Store
	upcomingLimit int
	mux           *http.ServeMux
}

// Option configures a Server
type Option func(*Server)

// WithUpcomingLimit sets the default size of /reminders/upcoming
func WithUpcomingLimit(n int) Option {
	return func(s *Server) {
		s.upcomingLimit = n
	}
}

// NewServer constructs a new Server
func NewServer(store db.Store, opts ...Option) *Server {
	s := &Server{
		store:         store,
		upcomingLimit: schedule.DefaultUpcomingLimit,
		mux:           http.NewServeMux(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerRoutes()
	return s
}

// Handler returns the API with CORS headers applied to every response
func (s *Server) Handler() http.Handler {
	return corsMiddleware(s.mux)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("GET /events", s.handleListEvents)
	s.mux.HandleFunc("POST /events", s.handleCreateEvent)
	s.mux.HandleFunc("PUT /events", s.handleUpdateEvent)
	s.mux.HandleFunc("DELETE /events", s.handleDeleteEvent)
	s.mux.HandleFunc("GET /events/view", s.handleView)

	s.mux.HandleFunc("GET /persons", s.handleListPersons)
	s.mux.HandleFunc("POST /persons", s.handleCreatePerson)
	s.mux.HandleFunc("DELETE /persons", s.handleDeletePerson)

	s.mux.HandleFunc("GET /reminders/upcoming", s.handleUpcoming)

	// The original deployment served the same API under /schedule
	s.mux.Handle("/schedule/", http.StripPrefix("/schedule", s.mux))

	s.mux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "Endpoint not found")
	})
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Content-Type, X-User-Id")
		h.Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}

// writeStoreError maps a domain or storage error to a status code
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case schedule.IsInvalidInput(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, schedule.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		appLog.Error("request failed", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func parseID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id: " + strconv.Quote(raw))
	}
	return id, nil
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
