package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/animation"
	"github.com/matzehuels/chartkit/pkg/buildinfo"
	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart"
	cerrors "github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/interaction"
	pkgio "github.com/matzehuels/chartkit/pkg/io"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/series"
)

const (
	defaultAddr        = "localhost:8080"
	defaultRedisPrefix = "chartkit:"

	// maxBodyBytes bounds request bodies.
	maxBodyBytes = 1 << 20

	shutdownTimeout = 5 * time.Second
)

// serveCommand creates the serve command for the geometry preview server.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		prefix   string
		noCache  bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve chart geometry over HTTP",
		Long: `Serve chart geometry over HTTP.

Endpoints:
  POST /v1/geometry   definition in the body (JSON, or TOML with ?format=toml or
                      Content-Type: application/toml); returns geometry JSON
  POST /v1/resolve    {"definition": {...}, "event": {"kind": "pointer-move", "x": 120}}
                      returns the active index, tooltip anchor and entries
  GET  /healthz       liveness check

Geometry is cached in the local file cache, or in Redis with --redis.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redisURL, prefix, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")
	cmd.Flags().StringVar(&redisURL, "redis", "", "Redis URL for a shared cache (redis://host:port/db)")
	cmd.Flags().StringVar(&prefix, "redis-prefix", defaultRedisPrefix, "key prefix in Redis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe starts the server and blocks until ctx is cancelled.
func (c *CLI) runServe(ctx context.Context, addr, redisURL, prefix string, noCache bool) error {
	runner, backend, err := c.newServeRunner(ctx, redisURL, prefix, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:              addr,
		Handler:           newServer(runner, c.Logger).routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	printSuccess("Serving chart geometry on %s", StyleLink.Render("http://"+addr))
	printKeyValue("Cache", backend)
	printKeyValue("Measurer", runner.MeasurerName)

	select {
	case err := <-errc:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// newServeRunner builds the server's runner and describes its cache
// backend.
func (c *CLI) newServeRunner(ctx context.Context, redisURL, prefix string, noCache bool) (*pipeline.Runner, string, error) {
	m, err := newMeasurer(c.measurer)
	if err != nil {
		return nil, "", err
	}

	var (
		store   cache.Cache
		keyer   cache.Keyer
		backend string
	)
	switch {
	case noCache:
		store, backend = cache.NewNullCache(), "disabled"
	case redisURL != "":
		rc, err := cache.NewRedisCache(ctx, redisURL)
		if err != nil {
			return nil, "", err
		}
		store, keyer, backend = rc, cache.NewScopedKeyer(nil, prefix), "redis"
	default:
		store, err = newCache(false)
		if err != nil {
			return nil, "", err
		}
		backend = "file"
	}

	runner := pipeline.NewRunner(store, keyer, c.Logger)
	runner.SetMeasurer(c.measurer, m)
	return runner, backend, nil
}

// =============================================================================
// HTTP Server
// =============================================================================

type server struct {
	runner *pipeline.Runner
	logger *log.Logger
}

func newServer(runner *pipeline.Runner, logger *log.Logger) *server {
	return &server{runner: runner, logger: logger}
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/geometry", s.handleGeometry)
		r.Post("/resolve", s.handleResolve)
	})
	return r
}

// requestLogger attaches a request-scoped logger to the context and logs
// each request once it completes.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		l := s.logger.With("request_id", middleware.GetReqID(r.Context()))
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), l)))

		l.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start))
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *server) handleGeometry(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Definition: body,
		Format:     requestFormat(r),
		Name:       "request",
		Refresh:    r.URL.Query().Get("refresh") == "true",
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	status := "miss"
	if result.CacheHit {
		status = "hit"
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Chartkit-Cache", status)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.JSON)
}

// resolveRequest asks which data index an event selects.
type resolveRequest struct {
	Definition json.RawMessage `json:"definition"`
	Event      struct {
		Kind  string  `json:"kind"`
		X     float64 `json:"x"`
		Y     float64 `json:"y"`
		Index int     `json:"index"`
	} `json:"event"`
}

type resolveResponse struct {
	Position   interaction.Position  `json:"position"`
	Entries    []series.TooltipEntry `json:"entries,omitempty"`
	CrosshairX *float64              `json:"crosshair_x,omitempty"`
}

func (s *server) handleResolve(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var req resolveRequest
	if err := json.Unmarshal(body, &req); err != nil {
		s.writeError(w, r, cerrors.Wrap(cerrors.ErrCodeInvalidInput, err, "decode request"))
		return
	}
	kind, err := interaction.ParseEventKind(req.Event.Kind)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	def, err := pkgio.ReadJSON(bytes.NewReader(req.Definition))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	ev := interaction.Event{Kind: kind, X: req.Event.X, Y: req.Event.Y, Index: req.Event.Index}

	resp, err := s.resolve(def, ev)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// resolve lays out def and applies one event to it.
func (s *server) resolve(def *pkgio.Definition, ev interaction.Event) (*resolveResponse, error) {
	if def.Kind == pkgio.KindBar {
		g, err := chart.ComputeBar(def.BarInput(s.runner.Measurer))
		if err != nil {
			return nil, err
		}
		resp := &resolveResponse{Position: g.Resolver.Resolve(ev)}
		if resp.Position.Valid {
			resp.Entries = g.Tooltip(resp.Position.ActiveIndex)
		}
		return resp, nil
	}

	inst := chart.NewInstance(animation.WithEnabled(false))
	defer inst.Close()
	if _, err := inst.Update(def.LineInput(s.runner.Measurer)); err != nil {
		return nil, err
	}
	resp := &resolveResponse{Position: inst.Handle(ev)}
	if tip, ok := inst.Tooltip(); ok {
		resp.Entries = tip.Entries
	}
	if x, ok := inst.CrosshairX(); ok {
		resp.CrosshairX = &x
	}
	return resp, nil
}

// =============================================================================
// Helpers
// =============================================================================

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, err
	}
	if len(body) == 0 {
		return nil, cerrors.New(cerrors.ErrCodeInvalidInput, "empty request body")
	}
	return body, nil
}

// requestFormat picks the definition format from ?format= or the content
// type, defaulting to JSON.
func requestFormat(r *http.Request) string {
	if f := r.URL.Query().Get("format"); f != "" {
		return strings.ToLower(f)
	}
	if strings.Contains(r.Header.Get("Content-Type"), "toml") {
		return pkgio.FormatTOML
	}
	return pkgio.FormatJSON
}

type errorResponse struct {
	Error string       `json:"error"`
	Code  cerrors.Code `json:"code,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge):
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "request body too large"})
	case cerrors.IsCallerError(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: cerrors.UserMessage(err), Code: cerrors.GetCode(err)})
	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads the response.
	default:
		loggerFromContext(r.Context()).Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error", Code: cerrors.ErrCodeInternal})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
