// Command trainer-engine runs the challenge verification and
// progress-tracking engine with its admin API, live WebSocket
// monitor, and optional solve sinks.
package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"digital.vasic.trainer/pkg/api"
	"digital.vasic.trainer/pkg/config"
	"digital.vasic.trainer/pkg/engine"
	"digital.vasic.trainer/pkg/hint"
	"digital.vasic.trainer/pkg/logging"
	"digital.vasic.trainer/pkg/metrics"
	"digital.vasic.trainer/pkg/monitor"
	"digital.vasic.trainer/pkg/scenario"
	"digital.vasic.trainer/pkg/sink"
	"digital.vasic.trainer/pkg/solve"
)

func main() {
	configPath := flag.String(
		"config", "", "path to YAML config file",
	)
	flag.Parse()

	if err := run(*configPath); err != nil {
		logging.NewConsoleLogger(false).Error(
			"engine exited", logging.ErrorField(err),
		)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := buildLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Close()

	registry, err := scenario.LoadRegistry(cfg.Catalog.Path)
	if err != nil {
		return err
	}
	logger.Info("catalog loaded",
		logging.IntField("scenarios", registry.Count()),
		logging.StringField("profile", cfg.Profile.Name),
	)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	solveSink, err := buildSink(ctx, cfg, logger)
	if err != nil {
		return err
	}

	engineMetrics := metrics.NewPrometheusMetrics()

	eng := engine.New(
		registry,
		solve.StaticProfile{Profile: &cfg.Profile},
		engine.Config{
			HintSchedule: hint.Schedule{
				AttemptsPerHint: cfg.Hints.AttemptsPerHint,
				UnlockInterval:  cfg.Hints.UnlockInterval,
			},
			AntiCheatWindow: cfg.AntiCheat.WindowSize,
			BroadcastBuffer: cfg.Broadcast.BufferSize,
		},
		engine.WithSink(solveSink),
		engine.WithMetrics(engineMetrics),
		engine.WithLogger(logger),
	)
	defer eng.Close()

	hub := monitor.NewHub(logger)
	dashboard := monitor.NewDashboard(eng)
	server := api.NewServer(
		eng, hub, dashboard, engineMetrics.Handler(), logger,
	)

	httpServer := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: server.Router(),
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		hub.Run(gctx, eng.Subscribe())
		return nil
	})

	g.Go(func() error {
		logger.Info("admin server listening",
			logging.StringField("addr", cfg.Server.Addr()),
		)
		err := httpServer.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(
			context.Background(), 10*time.Second,
		)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	eng.Start()

	err = g.Wait()
	logger.Info("engine stopped")
	return err
}

func buildLogger(cfg config.LogConfig) (logging.Logger, error) {
	console := logging.NewConsoleLogger(cfg.Verbose)
	if cfg.JSONPath == "" {
		return console, nil
	}

	level := logging.LevelInfo
	if cfg.Verbose {
		level = logging.LevelDebug
	}
	jsonLogger, err := logging.NewJSONLogger(
		logging.JSONLoggerConfig{
			OutputPath: cfg.JSONPath,
			Level:      level,
		},
	)
	if err != nil {
		return nil, err
	}
	return logging.NewMultiLogger(console, jsonLogger), nil
}

func buildSink(
	ctx context.Context,
	cfg *config.Config,
	logger logging.Logger,
) (sink.Sink, error) {
	var sinks []sink.Sink

	if cfg.Redis.Enabled {
		rs, err := sink.NewRedisSink(
			ctx, cfg.Redis.Address,
			cfg.Redis.Password, cfg.Redis.DB,
		)
		if err != nil {
			return nil, err
		}
		logger.Info("redis solve sink enabled",
			logging.StringField("addr", cfg.Redis.Address),
		)
		sinks = append(sinks, rs)
	}

	if cfg.Postgres.Enabled {
		ps, err := sink.NewPostgresSink(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info("postgres solve sink enabled")
		sinks = append(sinks, ps)
	}

	switch len(sinks) {
	case 0:
		return sink.NoopSink{}, nil
	case 1:
		return sinks[0], nil
	default:
		return sink.NewMultiSink(sinks...), nil
	}
}
