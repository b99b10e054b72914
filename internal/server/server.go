// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server runs the local review loop: it serves the rendered triage
// dashboard, an analysis form, and the active themes, and accepts completed
// analyses on POST /save. Localhost only; nothing here is meant to face a
// network.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/pdiddy/signal-triage/internal/analysis"
	"github.com/pdiddy/signal-triage/internal/themes"
	"github.com/pdiddy/signal-triage/pkg/types"
)

//go:embed analyze.html
var analyzePage []byte

// Config locates the files the server reads and writes.
type Config struct {
	// Addr is the listen address, e.g. "127.0.0.1:5050".
	Addr string

	// TriagePath is the rendered dashboard served at /.
	TriagePath string

	// ThemesPath is the YAML theme configuration served (as JSON) at /themes.
	ThemesPath string

	// LogPath is the analysis log appended to by /save.
	LogPath string
}

// Server wires the review routes over a chi mux.
type Server struct {
	cfg      Config
	log      zerolog.Logger
	validate *validator.Validate
	mux      *chi.Mux
	srv      *http.Server
}

// New builds the server and mounts its routes.
func New(cfg Config, log zerolog.Logger) *Server {
	s := &Server{
		cfg:      cfg,
		log:      log,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		mux:      chi.NewRouter(),
	}
	s.mux.Use(noStore)
	s.mux.Get("/", s.handleHome)
	s.mux.Get("/analyze", s.handleAnalyze)
	s.mux.Get("/themes", s.handleThemes)
	s.mux.Get("/api/analyses", s.handleAnalyses)
	s.mux.Post("/save", s.handleSave)

	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the mux for tests.
func (s *Server) Handler() http.Handler { return s.mux }

// Run starts the server and blocks until ctx is cancelled or the listener
// fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.cfg.Addr).Msg("review server listening")
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.srv.Shutdown(shutCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// noStore disables caching on every route: the dashboard and log are
// regenerated between requests and a stale copy defeats the review loop.
func noStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.cfg.TriagePath)
	if err != nil {
		if os.IsNotExist(err) {
			http.Error(w, "no dashboard yet; run the triage command first", http.StatusNotFound)
			return
		}
		s.log.Error().Err(err).Msg("reading dashboard")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(data)
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(analyzePage)
}

func (s *Server) handleThemes(w http.ResponseWriter, r *http.Request) {
	ts, err := themes.Load(s.cfg.ThemesPath)
	if err != nil {
		s.log.Error().Err(err).Msg("loading themes")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "themes file unreadable"})
		return
	}
	if ts == nil {
		// Missing file reads as an empty set, not null.
		ts = []types.Theme{}
	}
	writeJSON(w, http.StatusOK, themes.File{ActiveThemes: ts})
}

func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	entries, err := analysis.Read(s.cfg.LogPath)
	if err != nil {
		s.log.Error().Err(err).Msg("reading analysis log")
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "analysis log unreadable"})
		return
	}
	if entries == nil {
		entries = []analysis.Entry{}
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, saveResult{OK: false, Error: "could not read request body"})
		return
	}

	// Unknown keys are tolerated (an evolving form should not brick saves),
	// with one exception: triage_decision belongs to the triage output, and an
	// analysis entry carrying one is a client mixing up the two schemas.
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResult{OK: false, Error: "invalid JSON: payload must be a JSON object"})
		return
	}
	if _, ok := raw["triage_decision"]; ok {
		writeJSON(w, http.StatusBadRequest, saveResult{OK: false, Error: `unexpected field: "triage_decision"`})
		return
	}

	var e analysis.Entry
	if err := json.Unmarshal(body, &e); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResult{OK: false, Error: "invalid JSON: payload must be a JSON object"})
		return
	}

	if err := s.validate.Struct(e); err != nil {
		writeJSON(w, http.StatusBadRequest, saveResult{OK: false, Error: validationError(err)})
		return
	}

	e.ServerReceivedAt = time.Now().UTC().Format(time.RFC3339)
	if err := analysis.Append(s.cfg.LogPath, e); err != nil {
		s.log.Error().Err(err).Msg("appending analysis entry")
		writeJSON(w, http.StatusInternalServerError, saveResult{OK: false, Error: "could not write analysis log"})
		return
	}

	s.log.Info().Str("title", e.Title).Str("action", e.Action).Msg("analysis saved")
	writeJSON(w, http.StatusOK, saveResult{OK: true})
}

type saveResult struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// validationError renders validator failures with the field's json name and,
// for enum fields, the allowed values.
func validationError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "invalid payload"
	}

	var missing, bad []string
	for _, fe := range verrs {
		name := jsonName(fe.Field())
		switch fe.Tag() {
		case "required":
			missing = append(missing, name)
		case "oneof":
			bad = append(bad, fmt.Sprintf("%s: allowed values are %s", name, strings.Join(strings.Fields(fe.Param()), ", ")))
		default:
			bad = append(bad, fmt.Sprintf("%s: failed %s", name, fe.Tag()))
		}
	}

	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "Missing keys: "+strings.Join(missing, ", "))
	}
	parts = append(parts, bad...)
	return strings.Join(parts, "; ")
}

var fieldJSONNames = map[string]string{
	"Title":          "title",
	"Source":         "source",
	"Category":       "category",
	"SignalStrength": "signal_strength",
	"TimeHorizon":    "time_horizon",
	"Action":         "action",
	"Confidence":     "confidence",
}

func jsonName(structField string) string {
	if n, ok := fieldJSONNames[structField]; ok {
		return n
	}
	return structField
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
