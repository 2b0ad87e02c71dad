package main

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/multiwatch/multiwatch-go/cmd/multiwatch-web/api"
	"github.com/multiwatch/multiwatch-go/pkg/collection"
	"github.com/multiwatch/multiwatch-go/pkg/metrics"
	"github.com/multiwatch/multiwatch-go/pkg/runloop"
	"github.com/multiwatch/multiwatch-go/pkg/timefmt"
)

//go:embed static/*
var staticFiles embed.FS

// maxBodyBytes bounds request bodies; every request is a few short strings.
const maxBodyBytes = 4 << 10

// ServerConfig holds configuration for the HTTP server.
type ServerConfig struct {
	Addr    string
	Version string

	// Engine configures the stopwatch collection. Frames defaults to a
	// TimerFrames at Interval; Render and Metrics are set by the server.
	Engine   collection.Config
	Interval time.Duration

	// Metrics, when set, is fed by the engine and served on /metrics.
	Metrics *metrics.Metrics

	// Browse enables GET /api/v1/peers.
	Browse api.BrowseFunc

	// Instance is this server's announced name, hidden from the peer list.
	Instance string

	// OnCount, when set, is called with the number of stopwatches at start
	// and whenever it changes. It runs inside the engine executor.
	OnCount func(n int)

	Logger *slog.Logger
}

// Server is the HTTP front end. Requests, frame callbacks and the SSE hub all
// reach the collection through one serial executor.
type Server struct {
	config ServerConfig
	router chi.Router
	server *http.Server
	logger *slog.Logger

	exec *runloop.Serial
	c    *collection.Collection
	hub  *hub

	// done ends the event streams on shutdown.
	done      chan struct{}
	closeOnce sync.Once

	// view is the latest rendered state; guarded by exec.
	view api.View
	// count is the last stopwatch count passed to OnCount; guarded by exec.
	count int
}

// NewServer creates the server and restores the stopwatches.
func NewServer(cfg ServerConfig) (*Server, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config: cfg,
		logger: logger,
		exec:   &runloop.Serial{},
		hub:    newHub(),
		done:   make(chan struct{}),
		count:  -1,
	}

	engine := cfg.Engine
	if engine.Frames == nil {
		engine.Frames = runloop.NewTimerFrames(cfg.Interval, s.exec)
	}
	if cfg.Metrics != nil {
		engine.Metrics = cfg.Metrics
	}
	engine.Render = s.render

	s.exec.Do(func() {
		s.c = collection.New(engine)
		s.c.Init()
	})

	s.router = s.routes()
	s.server = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// routes sets up all HTTP routes.
func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/stopwatches", s.handleList)
		r.Post("/stopwatches", s.handleAdd)
		r.Route("/stopwatches/{id}", func(r chi.Router) {
			r.Delete("/", s.handleRemove)
			r.Post("/toggle", s.handleToggle)
			r.Post("/reset", s.handleReset)
			r.Put("/name", s.handleRename)
			r.Post("/focus", s.handleFocus)
			r.Put("/draft", s.handleDraft)
			r.Post("/blur", s.handleBlur)
			r.Put("/time", s.handleTime)
		})

		r.Post("/prompt/{action}", s.handlePrompt)
		r.Post("/lifecycle/{event}", s.handleLifecycle)
		r.Get("/events", s.handleEvents)
		r.Get("/peers", s.handlePeers)
	})

	if s.config.Metrics != nil {
		r.Handle("/metrics", s.config.Metrics.Handler())
	}

	r.Get("/*", s.handleStatic)
	return r
}

// render is the collection's Render hook; it runs inside exec.
func (s *Server) render(v collection.View) {
	s.view = api.FromView(v)
	s.hub.publish(s.view)

	if s.config.OnCount != nil && s.view.Total != s.count {
		s.count = s.view.Total
		s.config.OnCount(s.count)
	}
}

// dispatch applies msg and returns the resulting view.
func (s *Server) dispatch(msg collection.Message) (api.View, error) {
	var (
		v   api.View
		err error
	)
	s.exec.Do(func() {
		err = s.c.Dispatch(msg)
		v = s.view
	})
	return v, err
}

func (s *Server) currentView() api.View {
	var v api.View
	s.exec.Do(func() {
		v = s.view
	})
	return v
}

// apply dispatches msg and writes the view, or the error with its status.
func (s *Server) apply(w http.ResponseWriter, msg collection.Message, okStatus int) {
	v, err := s.dispatch(msg)
	if err != nil {
		writeError(w, err, &v)
		return
	}
	writeJSON(w, okStatus, v)
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	version := s.config.Version
	if version == "" {
		version = "dev"
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": version,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.currentView())
}

func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	var req api.AddRequest
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}

	var preset time.Duration
	if req.Time != "" {
		d, err := timefmt.ParseDuration(req.Time)
		if err != nil {
			writeError(w, err, nil)
			return
		}
		preset = d
	}
	s.apply(w, collection.AddTimer{Name: req.Name, Preset: preset}, http.StatusCreated)
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	s.apply(w, collection.ToggleTimer{ID: chi.URLParam(r, "id")}, http.StatusOK)
}

// handleReset opens the confirmation prompt; the reset itself happens when
// the prompt is confirmed.
func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.apply(w, collection.ResetTimer{ID: chi.URLParam(r, "id")}, http.StatusAccepted)
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	s.apply(w, collection.RemoveTimer{ID: chi.URLParam(r, "id")}, http.StatusAccepted)
}

func (s *Server) handleRename(w http.ResponseWriter, r *http.Request) {
	var req api.RenameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.apply(w, collection.RenameTimer{ID: chi.URLParam(r, "id"), Name: req.Name}, http.StatusOK)
}

func (s *Server) handleFocus(w http.ResponseWriter, r *http.Request) {
	s.apply(w, collection.FocusTimeInput{ID: chi.URLParam(r, "id")}, http.StatusOK)
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	var req api.DraftRequest
	if !decodeBody(w, r, &req) {
		return
	}
	s.apply(w, collection.EditTimeInput{ID: chi.URLParam(r, "id"), Draft: req.Draft}, http.StatusOK)
}

func (s *Server) handleBlur(w http.ResponseWriter, r *http.Request) {
	s.apply(w, collection.BlurTimeInput{ID: chi.URLParam(r, "id")}, http.StatusOK)
}

func (s *Server) handleTime(w http.ResponseWriter, r *http.Request) {
	var req api.TimeRequest
	if r.ContentLength != 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}
	s.apply(w, collection.ApplyTime{ID: chi.URLParam(r, "id"), Text: req.Text}, http.StatusOK)
}

func (s *Server) handlePrompt(w http.ResponseWriter, r *http.Request) {
	var msg collection.Message
	switch chi.URLParam(r, "action") {
	case "confirm":
		msg = collection.ConfirmPrompt{}
	case "cancel":
		msg = collection.CancelPrompt{}
	case "dismiss":
		msg = collection.DismissPrompt{}
	case "escape":
		msg = collection.EscapePressed{}
	default:
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "unknown prompt action"})
		return
	}
	s.apply(w, msg, http.StatusOK)
}

// handleLifecycle saves on page hide and unload. Browsers send these with
// navigator.sendBeacon, which ignores the response.
func (s *Server) handleLifecycle(w http.ResponseWriter, r *http.Request) {
	var msg collection.Message
	switch chi.URLParam(r, "event") {
	case "hidden":
		msg = collection.PageHidden{}
	case "unload":
		msg = collection.Unload{}
	default:
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "unknown lifecycle event"})
		return
	}
	if _, err := s.dispatch(msg); err != nil {
		writeError(w, err, nil)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleEvents streams every rendered view as a server-sent event.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	ch := s.hub.subscribe()
	defer s.hub.unsubscribe(ch)

	if err := writeEvent(w, s.currentView()); err != nil {
		return
	}
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case <-s.done:
			return
		case v := <-ch:
			if err := writeEvent(w, v); err != nil {
				s.logger.Debug("event stream closed", "error", err)
				return
			}
			flusher.Flush()
		}
	}
}

func writeEvent(w http.ResponseWriter, v api.View) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "event: view\ndata: %s\n\n", data)
	return err
}

// handlePeers lists other multiwatch instances on the local network.
func (s *Server) handlePeers(w http.ResponseWriter, r *http.Request) {
	if s.config.Browse == nil {
		writeJSON(w, http.StatusNotFound, api.ErrorResponse{Error: "peer discovery disabled"})
		return
	}

	resp, err := api.DiscoverPeers(r.Context(), s.config.Browse, r.URL.Query().Get("timeout"), s.config.Instance)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleStatic serves the embedded page.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	filePath := chi.URLParam(r, "*")
	if filePath == "" {
		filePath = "index.html"
	}
	if f, err := staticFS.Open(filePath); err != nil {
		filePath = "index.html"
	} else {
		f.Close()
	}

	http.ServeFileFS(w, r, staticFS, filePath)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()))
	})
}

// Handler returns the root handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.server.ListenAndServe()
}

// Shutdown ends the event streams, stops accepting requests, then saves and
// stops the engine.
func (s *Server) Shutdown(ctx context.Context) error {
	s.closeOnce.Do(func() { close(s.done) })
	err := s.server.Shutdown(ctx)
	s.Close()
	return err
}

// Close saves the stopwatches and stops the redraw loop.
func (s *Server) Close() {
	s.closeOnce.Do(func() { close(s.done) })
	s.exec.Do(func() {
		s.c.Dispatch(collection.Unload{})
		s.c.Stop()
	})
}

// StopwatchCount returns the number of stopwatches.
func (s *Server) StopwatchCount() int {
	var n int
	s.exec.Do(func() {
		n = s.c.Len()
	})
	return n
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return false
	}
	return true
}

// writeError maps engine errors onto HTTP statuses.
func writeError(w http.ResponseWriter, err error, v *api.View) {
	resp := api.ErrorResponse{Error: err.Error(), View: v}
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, collection.ErrUnknownTimer):
		status = http.StatusNotFound
	case errors.Is(err, timefmt.ErrInvalidDuration):
		status = http.StatusUnprocessableEntity
		resp.Hint = timefmt.Hint
	case errors.Is(err, collection.ErrUnknownMessage):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, resp)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
