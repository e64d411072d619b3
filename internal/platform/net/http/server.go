package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"time"

	"judolguard/internal/platform/config"
	"judolguard/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownGrace     = 10 * time.Second
)

// Server owns the chi mux and the listener. API_PORT picks the address, default :4000
type Server struct {
	mux *chi.Mux
	srv *stdhttp.Server
}

func NewServer(cfg config.Conf) *Server {
	m := chi.NewRouter()
	return &Server{mux: m, srv: &stdhttp.Server{
		Addr:              cfg.MayString("API_PORT", ":4000"),
		Handler:           m,
		ReadHeaderTimeout: readHeaderTimeout,
	}}
}

func (s *Server) Router() Router { return AdaptChi(s.mux) }
func (s *Server) Addr() string   { return s.srv.Addr }

// Run serves until ctx ends, then drains in-flight requests for up to shutdownGrace
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	log.Info().Str("addr", s.srv.Addr).Msg("http listening")

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
		return err
	}
	return nil
}
