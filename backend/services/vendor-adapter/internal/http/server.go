package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const shutdownGrace = 10 * time.Second

// Server serves the adapter API and drains in-flight dispatches on shutdown.
type Server struct {
	server   *http.Server
	listener net.Listener
	logger   *zap.Logger
}

// NewServer applies middlewares outermost-first around handler. writeTimeout
// must cover one vendor call plus one catalog write.
func NewServer(addr string, handler http.Handler, logger *zap.Logger, writeTimeout time.Duration, middlewares ...func(http.Handler) http.Handler) *Server {
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}
	return &Server{
		server: &http.Server{
			Addr:              addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       60 * time.Second,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
		logger: logger,
	}
}

// Listen binds the configured address. Run calls it when needed.
func (s *Server) Listen() error {
	if s.listener != nil {
		return nil
	}
	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.listener = ln
	return nil
}

// Addr is the bound address once Listen succeeded, the configured one before.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.server.Addr
}

// Run serves until ctx ends, then waits up to shutdownGrace for open requests.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Listen(); err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("vendor adapter listening", zap.String("addr", s.Addr()))
		errCh <- s.server.Serve(s.listener)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("draining vendor adapter", zap.Duration("grace", shutdownGrace))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
