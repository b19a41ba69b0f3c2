// Package server exposes sequence generation over HTTP with Prometheus
// metrics, request IDs and hardened response headers.
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/agbru/fibseq/internal/errors"
	"github.com/agbru/fibseq/internal/format"
	"github.com/agbru/fibseq/internal/logging"
	"github.com/agbru/fibseq/internal/orchestration"
	"github.com/agbru/fibseq/internal/sequence"
)

const (
	// RequestIDHeader carries the per-request correlation ID.
	RequestIDHeader = "X-Request-ID"

	defaultN          = 10
	shutdownTimeout   = 10 * time.Second
	readHeaderTimeout = 5 * time.Second
	writeTimeoutSlack = 2 * time.Minute
)

// DefaultMaxN caps n when Config.MaxN is unset. Response size grows
// quadratically with n: about 2.6 MB of digits at 5000 terms.
const DefaultMaxN = 5_000

// Config holds the server settings derived from the application config.
type Config struct {
	Addr    string
	MaxN    int
	Timeout time.Duration
	// Algo is the default generator selection when a request omits it.
	Algo     string
	Security SecurityConfig
}

// Server serves /sequence, /health and /metrics.
type Server struct {
	cfg     Config
	factory *sequence.Factory
	metrics *Metrics
	logger  logging.Logger
	started time.Time
}

// New builds a Server. A nil logger is replaced by the default zerolog logger.
func New(cfg Config, factory *sequence.Factory, logger logging.Logger) *Server {
	if logger == nil {
		logger = logging.NewDefaultLogger()
	}
	if cfg.MaxN <= 0 {
		cfg.MaxN = DefaultMaxN
	}
	return &Server{
		cfg:     cfg,
		factory: factory,
		metrics: NewMetrics(),
		logger:  logger,
		started: time.Now(),
	}
}

// Handler returns the fully wrapped request router.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/sequence", s.wrap("/sequence", s.handleSequence))
	mux.HandleFunc("/health", s.wrap("/health", s.handleHealth))
	mux.HandleFunc("/metrics", s.wrap("/metrics", s.handleMetrics))
	return mux
}

func (s *Server) wrap(path string, h http.HandlerFunc) http.HandlerFunc {
	return s.requestIDMiddleware(SecurityMiddleware(s.cfg.Security, s.metricsMiddleware(path, h)))
}

// ListenAndServe serves until ctx is canceled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return apperrors.WrapError(err, "listen on %s", s.cfg.Addr)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      s.cfg.Timeout + writeTimeoutSlack,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", logging.String("addr", ln.Addr().String()))
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return apperrors.WrapError(err, "shutdown")
		}
		return nil
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)
		next(w, r)
	}
}

func (s *Server) metricsMiddleware(path string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next(rec, r)
		s.metrics.RecordRequest(path, rec.status)
		s.logger.Debug("request served",
			logging.String("path", path),
			logging.Int("status", rec.status),
			logging.Duration("elapsed", time.Since(start)),
			logging.String("request_id", w.Header().Get(RequestIDHeader)),
		)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintf(w, `{"status":"ok","uptime_seconds":%d}`+"\n", int(time.Since(s.started).Seconds()))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// parseN reads the n query parameter, rejecting negative, non-integer and
// over-limit values.
func (s *Server) parseN(raw string) (int, error) {
	if raw == "" {
		return defaultN, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, apperrors.NewValidationError("n", "not an integer: %q", raw)
	}
	if n < 0 {
		return 0, apperrors.NewValidationError("n", "must be >= 0, got %d", n)
	}
	if n > s.cfg.MaxN {
		return 0, apperrors.NewValidationError("n", "must be <= %d, got %d", s.cfg.MaxN, n)
	}
	return n, nil
}

func (s *Server) handleSequence(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	q := r.URL.Query()
	n, err := s.parseN(q.Get("n"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	outFormat := q.Get("format")
	if outFormat == "" {
		outFormat = format.JSON
	}
	if !format.IsValid(outFormat) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q", outFormat))
		return
	}
	algo := q.Get("algo")
	if algo == "" {
		algo = s.cfg.Algo
	}
	gens, err := orchestration.GetGeneratorsToRun(algo, n, s.factory)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()
	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	results := orchestration.ExecuteGenerations(ctx, gens, n, orchestration.NullProgressReporter{}, io.Discard)
	for _, res := range results {
		if res.Err == nil {
			s.metrics.RecordGeneration(res.Name, res.Duration)
		}
	}

	var body, diag bytes.Buffer
	opts := orchestration.PresentationOptions{N: n, Format: outFormat, Quiet: true}
	code := orchestration.AnalyzeResults(results, opts, httpPresenter{}, &body, &diag)
	if code != apperrors.ExitSuccess {
		s.logger.Error("sequence request failed", errors.New(diag.String()),
			logging.Int("n", n), logging.String("algo", algo))
		writeError(w, statusForExitCode(code), diag.String())
		return
	}

	s.metrics.AddTerms(n)
	w.Header().Set("Content-Type", contentType(outFormat))
	_, _ = body.WriteTo(w)
}

// httpPresenter renders the winning sequence as a response body.
type httpPresenter struct{}

func (httpPresenter) PresentComparisonTable([]orchestration.GenerationResult, io.Writer) {}

func (httpPresenter) PresentSequence(res orchestration.GenerationResult, opts orchestration.PresentationOptions, out io.Writer) error {
	text, err := format.Format(opts.Format, res.Sequence)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(out, text)
	return err
}

func (httpPresenter) HandleError(err error, _ time.Duration, out io.Writer) int {
	fmt.Fprint(out, err.Error())
	if errors.Is(err, sequence.ErrOverflow) {
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitCodeFor(err)
}

func statusForExitCode(code int) int {
	switch code {
	case apperrors.ExitErrorConfig:
		return http.StatusBadRequest
	case apperrors.ExitErrorTimeout:
		return http.StatusGatewayTimeout
	case apperrors.ExitErrorCanceled:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func contentType(name string) string {
	switch name {
	case format.JSON:
		return "application/json"
	case format.YAML:
		return "application/yaml"
	default:
		return "text/plain; charset=utf-8"
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(errorResponse{Error: strings.TrimSpace(msg)})
}
