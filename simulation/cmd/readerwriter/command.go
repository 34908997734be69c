//go:build !solution

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"gitlab.com/slon/readerwriter/diagnostics"
	"gitlab.com/slon/readerwriter/eventlog"
	"gitlab.com/slon/readerwriter/library"
	"gitlab.com/slon/readerwriter/metrics"
	"gitlab.com/slon/readerwriter/simulation"
)

type options struct {
	configPath string
	capacity   int
	logLevel   string
	httpAddr   string
	duration   time.Duration
}

func newRootCommand() *cobra.Command {
	var opts options

	cmd := &cobra.Command{
		Use:   "readerwriter [readers] [writers] [rest-ms]",
		Short: "Run readers and writers against a fair library guard",
		Long: `Starts the given number of readers and writers (10 and 3 by default) that
keep visiting a shared library. Up to --capacity readers may be inside at once,
a writer is always alone. Runs until interrupted or until --duration elapses.`,
		Args:         cobra.MaximumNArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "path to a .yaml config")
	flags.IntVar(&opts.capacity, "capacity", library.DefaultCapacity, "maximum number of readers inside")
	flags.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	flags.StringVar(&opts.httpAddr, "http-addr", "", "address of the diagnostics server, disabled if empty")
	flags.DurationVar(&opts.duration, "duration", 0, "stop after this long, 0 runs until interrupted")

	return cmd
}

func run(cmd *cobra.Command, args []string, opts options) error {
	settings := simulation.DefaultSettings()

	// Приоритет: флаги, затем конфиг, затем значения по умолчанию
	if opts.configPath != "" {
		config, err := simulation.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
		if settings, err = config.Apply(settings); err != nil {
			return err
		}
		if config.LogLevel != "" && !cmd.Flags().Changed("log-level") {
			opts.logLevel = config.LogLevel
		}
		if config.HTTPAddr != "" && !cmd.Flags().Changed("http-addr") {
			opts.httpAddr = config.HTTPAddr
		}
	}
	if cmd.Flags().Changed("capacity") {
		settings.Capacity = opts.capacity
	}

	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	runID, err := uuid.NewV4()
	if err != nil {
		return fmt.Errorf("generate run id: %w", err)
	}
	logger = logger.With(zap.Stringer("run", runID))

	settings = simulation.ParseArgs(args, settings, logger)
	if err := settings.Validate(); err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	collector, err := metrics.New(reg)
	if err != nil {
		return err
	}
	events := eventlog.New(logger, nil)
	lib, err := library.New(settings.Capacity,
		library.WithObserver(events),
		library.WithObserver(collector),
	)
	if err != nil {
		return err
	}
	events.Attach(lib)

	logger.Info("starting library simulation",
		zap.Int("readers", settings.Readers),
		zap.Int("writers", settings.Writers),
		zap.Int("capacity", settings.Capacity),
		zap.Duration("rest", settings.Rest),
	)

	ctx := cmd.Context()
	if opts.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.duration)
		defer cancel()
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return simulation.Run(ctx, lib, settings, clockwork.NewRealClock())
	})
	if opts.httpAddr != "" {
		router := diagnostics.NewRouter(lib, reg, logger)
		g.Go(func() error {
			return diagnostics.ListenAndServe(ctx, opts.httpAddr, router, logger)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Error("simulation failed", zap.Error(err))
		return err
	}

	snap := lib.Snapshot()
	logger.Info("simulation stopped",
		zap.Strings("inside", snap.Inside),
		zap.Strings("waiting", snap.Waiting),
	)
	return nil
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	return config.Build()
}
