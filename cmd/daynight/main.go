// Package main renders day/night maps of the Earth to PNG files.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/daynight/internal/config"
	"github.com/Faultbox/daynight/internal/logger"
	"github.com/Faultbox/daynight/internal/output"
	"github.com/Faultbox/daynight/internal/render"
	"github.com/Faultbox/daynight/pkg/solar"
)

var (
	flagOnce        = flag.Bool("once", false, "Render a single frame and exit")
	flagAt          = flag.String("at", "", "Render for this RFC 3339 instant instead of now (implies -once)")
	flagTimestamped = flag.Bool("timestamped", false, "Keep every frame instead of overwriting")
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== daynight ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("render failed", zap.Error(err))
		os.Exit(1)
	}
	logger.Info("stopped")
}

func run(ctx context.Context, cfg *config.Config) error {
	textures, err := loadTextures(cfg)
	if err != nil {
		return err
	}

	renderer := render.New(
		render.WithLogger(logger.Named("render")),
		render.WithWorkers(cfg.Render.Workers),
	)
	writer := output.NewWriter(cfg.Render.OutputDir, cfg.Render.Prefix, *flagTimestamped, logger.Named("output"))

	if *flagAt != "" {
		at, err := time.Parse(time.RFC3339, *flagAt)
		if err != nil {
			return fmt.Errorf("parsing -at: %w", err)
		}
		return renderOnce(ctx, cfg, renderer, writer, textures, at)
	}
	if *flagOnce {
		return renderOnce(ctx, cfg, renderer, writer, textures, time.Now())
	}

	ticker := time.NewTicker(cfg.Render.Interval)
	defer ticker.Stop()
	for {
		if err := renderOnce(ctx, cfg, renderer, writer, textures, time.Now()); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func renderOnce(ctx context.Context, cfg *config.Config, r *render.Renderer, w *output.Writer, tex render.Textures, at time.Time) error {
	req, err := cfg.Request(solar.FromTime(at))
	if err != nil {
		return err
	}
	req.Textures = tex

	frame, err := r.Render(ctx, req)
	if err != nil {
		return err
	}
	paths, err := w.WriteFrame(frame)
	if err != nil {
		return err
	}

	logger.Info("frame written",
		zap.Time("at", at.UTC()),
		zap.String("mode", cfg.Render.Mode),
		zap.Strings("files", paths),
		zap.Float64("subsolar_lat", frame.Subsolar.Lat),
		zap.Float64("subsolar_lon", frame.Subsolar.Lon),
		zap.Duration("elapsed", frame.Elapsed),
	)
	return nil
}
