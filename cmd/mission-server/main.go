// Command mission-server runs the Artemis II mission clock and serves
// the REST API, websocket telemetry stream, and Prometheus metrics.
package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/Yuvraajb/artemis2/core"
	"github.com/Yuvraajb/artemis2/internal/api"
	"github.com/Yuvraajb/artemis2/internal/config"
	"github.com/Yuvraajb/artemis2/internal/logging"
	"github.com/Yuvraajb/artemis2/internal/observability"
	"github.com/Yuvraajb/artemis2/internal/sim"
	"github.com/Yuvraajb/artemis2/timectrl"
)

func main() {
	configPath := flag.String("config", "", "Path to an optional YAML config file")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewFromEnv().Error(ctx, "failed to load configuration", logging.String("error", err.Error()))
		os.Exit(1)
	}
	log := logging.New(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	collector, err := observability.NewMissionCollector(nil)
	if err != nil {
		log.Error(ctx, "failed to initialise metrics collector", logging.String("error", err.Error()))
		os.Exit(1)
	}

	shutdownTracing, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "failed to initialise tracing", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdownTracing, log)

	metricsSrv := serveMetrics(cfg.MetricsAddr, collector, log)

	milestones := loadMilestones(log, cfg.MilestonesPath)

	clock := timectrl.NewMissionClock(cfg.StartMET, cfg.Tick, cfg.TimeScale, timectrl.RealTime)
	driver := sim.NewDriver(clock, log,
		sim.WithCollector(collector),
		sim.WithMilestones(milestones),
		sim.WithMilestonePauses(cfg.PauseOnMilestones),
	)

	server := api.NewServer(driver, clock, log,
		api.WithCollector(collector),
		api.WithMilestones(milestones),
		api.WithStreamLimits(cfg.StreamRateHz, cfg.StreamMaxClients),
	)

	httpSrv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: server.Handler(),
	}
	go func() {
		log.Info(ctx, "starting mission API server", logging.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "mission API server exited", logging.String("error", err.Error()))
		}
	}()

	stop := make(chan struct{})
	clockDone := clock.Start(stop)
	log.Info(ctx, "mission clock running",
		logging.Float64("start_met", cfg.StartMET),
		logging.Float64("time_scale", cfg.TimeScale),
	)

	stopCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	select {
	case <-stopCtx.Done():
		log.Info(ctx, "shutting down mission server")
		close(stop)
		<-clockDone
	case <-clockDone:
		log.Info(ctx, "mission complete",
			logging.Float64("met", clock.MET()),
			logging.Float64("duration", core.TotalMissionDuration),
		)
		// Keep serving the final state until interrupted.
		<-stopCtx.Done()
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	_ = httpSrv.Shutdown(shutdownCtx)
	if metricsSrv != nil {
		_ = metricsSrv.Shutdown(shutdownCtx)
	}
}

func serveMetrics(addr string, collector *observability.MissionCollector, log logging.Logger) *http.Server {
	if collector == nil {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", collector.Handler())

	srv := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Warn(context.Background(), "metrics server exited", logging.String("error", err.Error()))
		}
	}()

	log.Info(context.Background(), "serving Prometheus metrics", logging.String("addr", addr))
	return srv
}

func loadMilestones(log logging.Logger, path string) []core.Milestone {
	if path == "" {
		return core.Milestones()
	}

	f, err := os.Open(path)
	if err != nil {
		log.Warn(context.Background(), "falling back to built-in milestones",
			logging.String("path", path), logging.String("error", err.Error()))
		return core.Milestones()
	}
	defer f.Close()

	list, err := core.LoadMilestones(f)
	if err != nil {
		log.Warn(context.Background(), "failed to parse milestone file, using built-ins",
			logging.String("path", path), logging.String("error", err.Error()))
		return core.Milestones()
	}

	log.Info(context.Background(), "loaded milestone overrides",
		logging.String("path", path),
		logging.Int("count", len(list)),
	)
	return list
}
