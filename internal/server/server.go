// Package server exposes the algorithm catalog and headless runs over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/san-kum/algoviz/internal/catalog"
	"github.com/san-kum/algoviz/internal/trace"
)

// Server serves the catalog and runs jobs one at a time.
type Server struct {
	reg   *catalog.Registry
	store *trace.Store
	log   *slog.Logger

	// runs are serialized; each one drives its own controller but shares
	// the store directory.
	runMu sync.Mutex
}

// New builds a Server. store may be nil, in which case runs are not kept.
func New(reg *catalog.Registry, store *trace.Store, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{reg: reg, store: store, log: log}
}

func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", healthzHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/algorithms", s.listAlgorithmsHandler)
		r.Get("/algorithms/{category}/{algorithm}", s.describeHandler)
		r.Get("/code/{language}/{algorithm}", s.codeHandler)
		r.Get("/presets/{category}", s.presetsHandler)

		r.Post("/runs", s.createRunHandler)
		r.Get("/runs", s.listRunsHandler)
		r.Get("/runs/{id}", s.getRunHandler)
		r.Get("/runs/{id}/counters.svg", s.countersSVGHandler)
		r.Get("/runs/{id}/final.svg", s.finalSVGHandler)
	})
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.log.Debug("http request",
			"method", r.Method, "path", r.URL.Path, "status", ww.Status(),
			"elapsed", time.Since(start), "request_id", middleware.GetReqID(r.Context()))
	})
}

// Run listens on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server started", "addr", addr)
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("listen and serve: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown server: %w", err)
		}
		s.log.Info("server stopped")
		return nil
	case err := <-errCh:
		if err != nil {
			return err
		}
		s.log.Info("server stopped")
		return nil
	}
}

func healthzHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode JSON response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
