// Package server implements the ruleflow HTTP API.
//
// The API exposes the same pipeline as the CLI:
//
//	POST /v1/compile?format=mermaid|dag|dot|svg|png
//	    body: flat JSON deck ({"Q1": "...", ..., "logic": "..."})
//	GET  /healthz
//
// Each compilation request runs through a fresh pipeline invocation, so the
// server is safe for concurrent use.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/ruleflow/ruleflow/pkg/deck"
	rferrors "github.com/ruleflow/ruleflow/pkg/errors"
	"github.com/ruleflow/ruleflow/pkg/pipeline"
)

// maxDeckBytes bounds the request body size.
const maxDeckBytes = 1 << 20

// Server serves the compile API.
type Server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

// New creates a server around a pipeline runner.
func New(runner *pipeline.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{runner: runner, logger: logger}
}

// Handler returns the chi router for the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(s.requestLogger)
	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/compile", s.handleCompile)
	return r
}

// ListenAndServe runs the API until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	s.logger.Info("listening", "addr", addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) handleCompile(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxDeckBytes))
	if err != nil {
		s.writeError(w, r, rferrors.Wrap(rferrors.ErrCodeInvalidDeck, err, "read request body"))
		return
	}

	d, err := deck.ParseJSON(body)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	opts := pipeline.Options{
		Format:   r.URL.Query().Get("format"),
		NoFactor: r.URL.Query().Get("factor") == "false",
		Logger:   s.logger,
	}
	if opts.Format == "" {
		opts.Format = pipeline.DefaultFormat
	}

	result, err := s.runner.Execute(r.Context(), d, opts)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", contentType(opts.Format))
	_, _ = w.Write(result.Artifact)
}

// writeError maps structured error codes onto HTTP statuses.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	code := rferrors.GetCode(err)
	switch code {
	case rferrors.ErrCodeInvalidDeck, rferrors.ErrCodeInvalidLogic, rferrors.ErrCodeInvalidFormat:
		status = http.StatusBadRequest
	case rferrors.ErrCodeNotFound:
		status = http.StatusNotFound
	case "":
		code = rferrors.ErrCodeInternal
	}

	s.logger.Error("request failed", "path", r.URL.Path, "status", status, "err", err)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":  string(code),
		"error": rferrors.UserMessage(err),
	})
}

// requestLogger tags every request with an id and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		s.logger.Debug("request",
			"id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start))
	})
}

// statusRecorder captures the response status for logging.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// contentType maps an output format to its MIME type.
func contentType(format string) string {
	switch format {
	case pipeline.FormatDAG:
		return "application/json"
	case pipeline.FormatSVG:
		return "image/svg+xml"
	case pipeline.FormatPNG:
		return "image/png"
	default:
		return "text/plain; charset=utf-8"
	}
}

// ErrServerClosed re-exports http.ErrServerClosed for callers that treat a
// clean shutdown as success.
var ErrServerClosed = http.ErrServerClosed

// IsClosed reports whether err is the normal shutdown error.
func IsClosed(err error) bool { return errors.Is(err, http.ErrServerClosed) }
