// Command scorekeep compiles a season snapshot into league standings.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tribeline/scorekeep/internal/adapters/snapshot"
	app "github.com/tribeline/scorekeep/internal/app"
	"github.com/tribeline/scorekeep/internal/config"
	"github.com/tribeline/scorekeep/internal/domain/types"
	"github.com/tribeline/scorekeep/pkg/logger"
	"github.com/tribeline/scorekeep/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
)

func main() {
	// Initialize logging
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	// Optionally expose the Prometheus registry.
	if cfg.MetricsAddr != "" {
		go serveMetrics(ctx, log, cfg.MetricsAddr)
	}

	season, err := snapshot.Load(ctx, cfg.Snapshot)
	if err != nil {
		log.Error(ctx, "failed to load season snapshot", logger.String("path", cfg.Snapshot), logger.Error(err))
		return
	}

	svc := app.New(
		app.WithLogger(log),
		app.WithSurvivalCap(cfg.SurvivalCap),
		app.WithBasePointOverrides(cfg.BasePoints),
	)
	result, err := svc.CompileSeason(ctx, season)
	if err != nil {
		log.Error(ctx, "compilation failed", logger.Error(err))
		return
	}

	printStandings("MEMBERS", app.MemberStandings(result.Scores))
	printStandings("CASTAWAYS", app.CastawayStandings(result.Scores))
	printStandings("TRIBES", app.TribeStandings(result.Scores))

	streaks, err := json.Marshal(result.CurrentStreaks)
	if err == nil {
		fmt.Printf("\ncurrent streaks: %s\n", streaks)
	}
}

// printStandings writes one standings block to stdout.
func printStandings(title string, rows []types.Standing) {
	fmt.Printf("\n%s\n", title)
	for _, row := range rows {
		fmt.Printf("%3d. #%-4d %8.1f\n", row.Rank, row.ID, row.Total)
	}
}

// serveMetrics exposes the Prometheus registry until the context ends.
func serveMetrics(ctx context.Context, log logger.Logger, addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	log.Info(ctx, "serving metrics", logger.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error(ctx, "metrics server failed", logger.Error(err))
	}
}
