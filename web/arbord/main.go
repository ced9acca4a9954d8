package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"

	"github.com/npillmayer/arbor/web"
)

/*
License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/

// main() starts the HTTP application and runs it until SIGINT or SIGTERM,
// then drains in-flight requests before exiting.
func main() {
	// set up logging
	gtrace.SyntaxTracer = gologadapter.New()
	tracer().SetTraceLevel(tracing.LevelInfo)
	cfg, err := web.Load() // parses flags, reads .env and environment
	if err != nil {
		tracer().Errorf("configuration: %v", err)
		os.Exit(1)
	}
	if lvl := os.Getenv("ARBOR_TRACE"); lvl != "" {
		tracer().SetTraceLevel(tracing.TraceLevelFromString(lvl))
	}
	srv, err := web.NewServer(cfg)
	if err != nil {
		tracer().Errorf("setup: %v", err)
		os.Exit(1)
	}
	//
	// serve until a shutdown signal arrives
	errch := make(chan error, 1)
	go func() {
		errch <- srv.Start()
	}()
	sigch := make(chan os.Signal, 1)
	signal.Notify(sigch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-errch:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			tracer().Errorf("server: %v", err)
			os.Exit(1)
		}
	case sig := <-sigch:
		tracer().Infof("received %v, shutting down", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			tracer().Errorf("shutdown: %v", err)
			os.Exit(1)
		}
	}
	tracer().Infof("good bye")
}
