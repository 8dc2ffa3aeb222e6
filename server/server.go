// Package server provides the browser front-end for the image studio: a
// single-page prompt UI backed by a JSON state API, with one workflow session
// per browser.
package server

import (
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/promptstudio/promptstudio"
)

//go:embed templates/*.html
var templateFS embed.FS

// Server wires browser sessions to the image service.
type Server struct {
	cfg      *Config
	svc      promptstudio.ImageService
	storage  promptstudio.Storage // optional export backend
	sessions *sessionRegistry
	tmpl     *template.Template
	logger   *slog.Logger
}

// New creates a Server. storage may be nil, in which case export is disabled.
func New(cfg *Config, svc promptstudio.ImageService, storage promptstudio.Storage, logger *slog.Logger) (*Server, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		cfg:     cfg,
		svc:     svc,
		storage: storage,
		tmpl:    tmpl,
		logger:  logger,
	}
	s.sessions = newSessionRegistry(s.newSessionEntry)
	return s, nil
}

// newSessionEntry builds the workflow session for one browser, with logging
// and journaling attached.
func (s *Server) newSessionEntry(id string) *sessionEntry {
	var j *journal
	if s.cfg.DownloadDir != "" {
		var err error
		j, err = newJournal(s.cfg.DownloadDir, id)
		if err != nil {
			s.logger.Warn("journal disabled", "session_id", id, "error", err.Error())
			j = nil
		}
	}

	logger := s.logger.With("session_id", id)
	observer := func(ev promptstudio.Event) {
		if j == nil {
			return
		}
		if err := j.record(ev); err != nil {
			logger.Warn("journal write failed", "error", err.Error())
		}
	}

	sess := promptstudio.NewSession(s.svc,
		promptstudio.WithLogger(logger),
		promptstudio.WithObserver(observer),
	)
	return &sessionEntry{
		session:  sess,
		journal:  j,
		lastSeen: time.Now(),
	}
}

// Handler returns the server's route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("POST /api/edit", s.handleEdit)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("POST /api/export", s.handleExport)
	mux.HandleFunc("GET /download/{role}", s.handleDownload)
	return mux
}

// Run starts the HTTP server and blocks.
func (s *Server) Run() error {
	addr := s.cfg.Addr()
	s.logger.Info("server starting", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}
