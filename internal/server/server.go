// Package server exposes path tracing over HTTP.
//
// Endpoints:
//
//	POST /trace        one route (from/to or waypoints) over an inline field
//	POST /trace/batch  independent routes over one field, searched in parallel
//	GET  /metrics      Prometheus exposition
//	GET  /healthz      liveness
package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/katalvlaran/pathtrace/astar"
	"github.com/katalvlaran/pathtrace/field"
	"github.com/katalvlaran/pathtrace/gridpath"
	"github.com/katalvlaran/pathtrace/internal/config"
	"github.com/katalvlaran/pathtrace/internal/metrics"
	"github.com/katalvlaran/pathtrace/internal/render"
)

// ErrBadRequest marks client errors (malformed body, missing field source).
var ErrBadRequest = errors.New("server: bad request")

// FieldSource is the obstacle field of a request: either inline rows or a
// PNG/JPEG/GIF image (base64 in JSON). Image settings override the config.
type FieldSource struct {
	Rows      [][]float64 `json:"rows,omitempty"`
	Image     []byte      `json:"image,omitempty"`
	Invert    *bool       `json:"invert,omitempty"`
	Threshold *float64    `json:"threshold,omitempty"`
}

// TraceRequest is the body of POST /trace. Either From/To or at least two
// Waypoints must be set.
type TraceRequest struct {
	FieldSource
	From      *gridpath.Point  `json:"from,omitempty"`
	To        *gridpath.Point  `json:"to,omitempty"`
	Waypoints []gridpath.Point `json:"waypoints,omitempty"`
	// Overlay asks for a rendered PNG of the route in the response.
	Overlay bool `json:"overlay,omitempty"`
}

// TraceResponse is the body of a successful POST /trace.
type TraceResponse struct {
	Route   gridpath.Route `json:"route"`
	Overlay []byte         `json:"overlay,omitempty"`
}

// BatchRequest is the body of POST /trace/batch.
type BatchRequest struct {
	FieldSource
	Pairs []gridpath.Request `json:"pairs"`
}

// BatchResult is one entry of BatchResponse, in request order.
type BatchResult struct {
	From   gridpath.Point  `json:"from"`
	To     gridpath.Point  `json:"to"`
	Route  *gridpath.Route `json:"route,omitempty"`
	Result string          `json:"result"`
	Error  string          `json:"error,omitempty"`
}

// BatchResponse is the body of a successful POST /trace/batch.
type BatchResponse struct {
	Results []BatchResult `json:"results"`
}

type errorResponse struct {
	Error  string `json:"error"`
	Result string `json:"result,omitempty"`
}

// Server handles trace requests with one configuration.
type Server struct {
	cfg      config.Config
	logger   *slog.Logger
	recorder *metrics.Recorder
	gatherer prometheus.Gatherer
}

// New builds a Server whose collectors are registered with reg, which also
// backs /metrics. A nil logger discards.
func New(cfg config.Config, logger *slog.Logger, reg *prometheus.Registry) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Server{
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "server")),
		recorder: metrics.New(reg),
		gatherer: reg,
	}
}

// Handler returns the routed endpoints.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /trace", s.handleTrace)
	mux.HandleFunc("POST /trace/batch", s.handleBatch)
	mux.Handle("GET /metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return mux
}

// ListenAndServe serves on cfg.Server.Addr until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", slog.String("addr", srv.Addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		s.logger.Info("stopped")
		return nil
	}
}

func (s *Server) handleTrace(w http.ResponseWriter, r *http.Request) {
	var req TraceRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	f, err := s.field(req.FieldSource)
	if err != nil {
		s.fail(w, err)
		return
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()
	opts := s.options(ctx)

	op := "trace"
	start := time.Now()
	var route gridpath.Route
	switch {
	case len(req.Waypoints) > 0:
		op = "waypoints"
		route, err = gridpath.TraceWaypoints(f, req.Waypoints, opts...)
	case req.From != nil && req.To != nil:
		route, err = gridpath.FindPath(f, *req.From, *req.To, opts...)
	default:
		s.fail(w, fmt.Errorf("%w: need from and to, or waypoints", ErrBadRequest))
		return
	}
	s.recorder.Observe(op, route, err, time.Since(start))
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := TraceResponse{Route: route}
	if req.Overlay {
		var buf bytes.Buffer
		ro := render.DefaultOptions()
		ro.Scale = s.overlayScale(f)
		if err := render.EncodePNG(&buf, f, []gridpath.Route{route}, ro); err != nil {
			s.fail(w, err)
			return
		}
		resp.Overlay = buf.Bytes()
	}
	s.logger.Debug("traced",
		slog.String("op", op),
		slog.Float64("cost", route.Cost),
		slog.Int("expanded", route.Expanded))
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req BatchRequest
	if err := s.decode(w, r, &req); err != nil {
		s.fail(w, err)
		return
	}
	if len(req.Pairs) == 0 {
		s.fail(w, fmt.Errorf("%w: no pairs", ErrBadRequest))
		return
	}
	f, err := s.field(req.FieldSource)
	if err != nil {
		s.fail(w, err)
		return
	}

	ctx, cancel := s.searchContext(r.Context())
	defer cancel()

	start := time.Now()
	outs, err := gridpath.FindPaths(ctx, f, req.Pairs, s.cfg.GridOptions(s.logger)...)
	s.recorder.ObserveBatch("batch", outs, time.Since(start))
	if err != nil {
		s.fail(w, err)
		return
	}

	resp := BatchResponse{Results: make([]BatchResult, len(outs))}
	for i, o := range outs {
		res := BatchResult{From: o.Request.From, To: o.Request.To, Result: metrics.Classify(o.Err)}
		if o.Err != nil {
			res.Error = o.Err.Error()
		} else {
			route := o.Route
			res.Route = &route
		}
		resp.Results[i] = res
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) error {
	if s.cfg.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: decode body: %w", ErrBadRequest, err)
	}

	return nil
}

func (s *Server) field(src FieldSource) (*field.Field, error) {
	switch {
	case len(src.Rows) > 0 && len(src.Image) > 0:
		return nil, fmt.Errorf("%w: rows and image are exclusive", ErrBadRequest)
	case len(src.Rows) > 0:
		if err := field.CheckSize(len(src.Rows[0]), len(src.Rows), s.cfg.Server.MaxPixels); err != nil {
			return nil, err
		}
		f, err := field.FromRows(src.Rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		return f, nil
	case len(src.Image) > 0:
		opts := s.cfg.ImageOptions()
		opts.MaxPixels = s.cfg.Server.MaxPixels
		if src.Invert != nil {
			opts.Invert = *src.Invert
		}
		if src.Threshold != nil {
			opts.Threshold = *src.Threshold
		}
		f, err := field.Decode(bytes.NewReader(src.Image), opts)
		switch {
		case errors.Is(err, field.ErrTooLarge):
			return nil, err
		case err != nil:
			return nil, fmt.Errorf("%w: %w", ErrBadRequest, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf("%w: rows or image required", ErrBadRequest)
	}
}

// overlayScale shrinks the overlay cell size until the canvas fits MaxPixels.
func (s *Server) overlayScale(f *field.Field) int {
	scale := render.DefaultOptions().Scale
	for scale > 1 && field.CheckSize(f.Width()*scale, f.Height()*scale, s.cfg.Server.MaxPixels) != nil {
		scale--
	}

	return scale
}

func (s *Server) searchContext(parent context.Context) (context.Context, context.CancelFunc) {
	// Validated at load time; a zero timeout means none.
	if d, _ := s.cfg.Timeout(); d > 0 {
		return context.WithTimeout(parent, d)
	}

	return context.WithCancel(parent)
}

func (s *Server) options(ctx context.Context) []gridpath.Option {
	return append(s.cfg.GridOptions(s.logger), gridpath.WithSearchOptions(astar.WithContext(ctx)))
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", slog.Any("err", err))
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Result: metrics.Classify(err)})
}

func statusOf(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.As(err, &tooLarge), errors.Is(err, field.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrBadRequest), errors.Is(err, gridpath.ErrTooFewWaypoints):
		return http.StatusBadRequest
	case errors.Is(err, astar.ErrNoPath), errors.Is(err, astar.ErrStartOutside), errors.Is(err, astar.ErrExpansionLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
