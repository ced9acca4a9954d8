package web

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

import (
	"context"
	"net/http"
	"time"
)

// Server is the HTTP front of the application.
type Server struct {
	httpServer *http.Server
}

// NewServer builds a server for a configuration. The execute endpoints may
// legitimately run for the configured sandbox timeout, so the write timeout
// leaves headroom above it.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil {
		cfg = Default()
	}
	api, err := NewAPI(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		httpServer: &http.Server{
			Addr:         cfg.Port,
			Handler:      NewMux(api),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: cfg.Limits.Timeout + 10*time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}, nil
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	tracer().Infof("listening on %s", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops the server, waiting for in-flight requests up to the
// context's deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	tracer().Infof("shutting down")
	return s.httpServer.Shutdown(ctx)
}
