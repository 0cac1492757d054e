package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/daniyyer/kindle-dash/internal/config"
	"github.com/daniyyer/kindle-dash/internal/logger"
	"github.com/daniyyer/kindle-dash/internal/news"
	"github.com/daniyyer/kindle-dash/internal/pipeline"
	"github.com/daniyyer/kindle-dash/internal/qweather"
	"github.com/daniyyer/kindle-dash/internal/raster"
	"github.com/daniyyer/kindle-dash/internal/render"
	"github.com/daniyyer/kindle-dash/internal/storage"
)

// Server wires the pipeline behind the HTTP endpoints the display device
// and the operator poll.
type Server struct {
	cfg      *config.Config
	pipeline *pipeline.Pipeline
	sink     storage.Client
	httpSrv  *http.Server
	log      *logger.Logger
}

// New assembles the full pipeline from configuration and wraps it in a
// server. Credential and template problems surface here, at startup, not
// per request.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	client, err := qweather.NewClient(cfg)
	if err != nil {
		return nil, err
	}

	renderer, err := render.NewRenderer()
	if err != nil {
		return nil, err
	}

	sink, err := storage.NewClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// A remote sink gets the local directory as a one-shot write fallback
	var fallback storage.Client
	if cfg.RemoteSink() {
		fallback, err = storage.NewLocalClient(cfg.LocalDir)
		if err != nil {
			sink.Close()
			return nil, err
		}
	}

	p := pipeline.New(
		qweather.NewFetcher(client, cfg),
		news.NewAggregator(cfg),
		renderer,
		raster.New(cfg),
		sink,
		fallback,
		cfg.GCSObjectKey,
	)

	s := &Server{
		cfg:      cfg,
		pipeline: p,
		sink:     sink,
		log:      logger.WithComponent("server"),
	}
	s.httpSrv = &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s.routes(),
	}
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/dashboard.png", s.handleDashboard)
	mux.HandleFunc("/preview", s.handlePreview)
	return mux
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	s.log.Infof("listening on :%s", s.cfg.Port)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and releases the sink.
func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	err := s.httpSrv.Shutdown(shutdownCtx)
	if closeErr := s.sink.Close(); err == nil {
		err = closeErr
	}
	return err
}
