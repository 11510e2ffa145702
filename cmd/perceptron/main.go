package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/drakos74/perceptron/infra/config"
	"github.com/drakos74/perceptron/internal/metrics"
	"github.com/drakos74/perceptron/internal/server"
	"github.com/drakos74/perceptron/internal/trainer"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
}

func main() {

	var (
		configPath string
		logLevel   string
		headless   bool
		debug      bool
		overrides  config.Overrides
	)

	flag.StringVar(&configPath, "config", "", "path to a json config file (default infra/config/perceptron.json)")
	flag.StringVar(&logLevel, "log-level", "info", "log level")
	flag.BoolVar(&headless, "headless", false, "train once and print a report instead of serving")
	flag.BoolVar(&debug, "debug", false, "log request payloads")
	flag.Float64Var(&overrides.LearningRate, "learning-rate", 0, "learning rate")
	flag.StringVar(&overrides.Activation, "activation", "", "activation function: step, sigmoid, tanh or relu")
	flag.IntVar(&overrides.Iterations, "iterations", 0, "epochs per training session")
	flag.Int64Var(&overrides.Seed, "seed", 0, "random seed (0 for a time based one)")
	flag.IntVar(&overrides.FrameMS, "frame-ms", 0, "milliseconds between training frames")
	flag.IntVar(&overrides.Port, "port", 0, "http port")
	flag.IntVar(&overrides.Trees, "trees", 0, "trees of the reference random forest")
	flag.Parse()

	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", logLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	cfg := loadConfig(configPath)
	cfg.ApplyOverrides(overrides)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	tr, err := trainer.New(cfg.Settings(), cfg.Rand())
	if err != nil {
		log.Fatal().Err(err).Msg("could not create trainer")
	}

	if headless {
		if err := run(tr, cfg, os.Stdout); err != nil {
			log.Fatal().Err(err).Msg("training failed")
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := serve(ctx, tr, cfg, debug); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		cfg := config.Default()
		config.MustLoad(config.Key, cfg)
		return cfg
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("could not load config")
	}
	return cfg
}

func serve(ctx context.Context, tr *trainer.Trainer, cfg *config.Config, debug bool) error {
	registry := prometheus.NewRegistry()
	m := metrics.New()
	if err := m.Register(registry); err != nil {
		return err
	}
	tr.Observe(m)

	controller := trainer.NewController(tr, trainer.NewFrameScheduler(cfg.FrameInterval()))
	go func() {
		if err := controller.Run(ctx); err != nil {
			log.Error().Err(err).Msg("controller failed")
		}
	}()

	srv := server.NewServer("perceptron", cfg.Port)
	if debug {
		srv.Debug()
	}
	return srv.
		Training(controller).
		Mount("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{})).
		Run(ctx)
}
