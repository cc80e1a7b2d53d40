// Package health serves the GET /health endpoint reporting the group binding.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// GroupReader is the store query the endpoint needs.
type GroupReader interface {
	GetGroupID(ctx context.Context) (int64, bool, error)
}

// Response is the JSON body of /health. GroupID is null until a group is bound.
type Response struct {
	OK      bool    `json:"ok"`
	GroupID *string `json:"group_id"`
	Error   string  `json:"error,omitempty"`
}

const storeTimeout = 5 * time.Second

// Server is the HTTP listener of the health endpoint.
type Server struct {
	srv    *http.Server
	logger *slog.Logger
}

// New creates a Server listening on addr.
func New(addr string, groups GroupReader, logger *slog.Logger) *Server {
	log := logger.With("component", "health_server")
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(groups, log),
			ReadHeaderTimeout: 10 * time.Second,
		},
		logger: log,
	}
}

// NewRouter returns the router with the single GET /health route.
func NewRouter(groups GroupReader, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), storeTimeout)
		defer cancel()

		id, bound, err := groups.GetGroupID(ctx)
		if err != nil {
			logger.ErrorContext(ctx, "Health check failed to read group binding", "error", err,
				"request_id", middleware.GetReqID(r.Context()))
			writeJSON(w, http.StatusServiceUnavailable, Response{OK: false, Error: "store unavailable"})
			return
		}

		resp := Response{OK: true}
		if bound {
			s := strconv.FormatInt(id, 10)
			resp.GroupID = &s
		}
		writeJSON(w, http.StatusOK, resp)
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, body Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// Start listens until Shutdown is called. It returns nil after a clean shutdown.
func (s *Server) Start() error {
	s.logger.Info("Health server listening", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
