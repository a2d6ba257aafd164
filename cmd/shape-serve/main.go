// Command shape-serve runs a static file server speaking HTTP/1.1 over
// plain TCP. It is configured by a TOML file, see internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/shapestone/shape-serve/internal/config"
	"github.com/shapestone/shape-serve/internal/server"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to the TOML configuration file")
	flag.Parse()

	if configPath == "" {
		fmt.Fprintln(os.Stderr, "usage: shape-serve -config <file>")
		os.Exit(1)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := newLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	srv := server.New(cfg.Server, log)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigs
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn().Err(err).Msg("shutdown incomplete")
		}
	}()

	if err := srv.ListenAndServe(); err != nil {
		log.Error().Err(err).Msg("server failed")
		os.Exit(2)
	}
}

// newLogger builds the process logger: JSON lines appended to the
// configured file, or a console writer on stderr when no file is set.
func newLogger(cfg config.LogConfig) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("log: level %q: %w", cfg.Level, err)
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Logger{}, fmt.Errorf("log: open %s: %w", cfg.File, err)
		}
		out = f
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger(), nil
}
