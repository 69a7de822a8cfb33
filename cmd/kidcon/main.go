// Command kidcon captures kid-control device counters from a Mikrotik
// appliance into hour-bucketed log files and a SQLite sample store.
//
// Modes:
//
//	kidcon                       capture on an interval until interrupted
//	kidcon --once                run a single capture batch and exit
//	kidcon --ingest < router.log ingest forwarded appliance log lines
//	kidcon --print <device>      dump a device's stored history
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"github.com/crimson-sun/kidcon/internal/bucket"
	"github.com/crimson-sun/kidcon/internal/clock"
	"github.com/crimson-sun/kidcon/internal/config"
	"github.com/crimson-sun/kidcon/internal/logging"
	"github.com/crimson-sun/kidcon/internal/pipeline"
	"github.com/crimson-sun/kidcon/internal/registry"
	"github.com/crimson-sun/kidcon/internal/report"
	"github.com/crimson-sun/kidcon/internal/sink/bucketfile"
	"github.com/crimson-sun/kidcon/internal/sink/multi"
	"github.com/crimson-sun/kidcon/internal/sink/sample"
	"github.com/crimson-sun/kidcon/internal/sink/stdout"
	"github.com/crimson-sun/kidcon/internal/store"

	// Register registry provider implementations.
	_ "github.com/crimson-sun/kidcon/internal/registry/memory"
	_ "github.com/crimson-sun/kidcon/internal/registry/routeros"
)

func main() {
	var (
		configPath = pflag.String("config", "", "YAML config file")
		dbPath     = pflag.String("db", "", "SQLite database for samples (overrides config)")
		logDir     = pflag.String("log-dir", "", "directory for hour-bucket log files (overrides config)")
		devices    = pflag.StringSlice("devices", nil, "device names to track (overrides config)")
		provider   = pflag.String("provider", "", "registry provider (overrides config)")
		interval   = pflag.Duration("interval", 0, "capture interval (overrides config)")
		once       = pflag.Bool("once", false, "run one capture batch and exit")
		ingest     = pflag.Bool("ingest", false, "ingest appliance log lines from stdin")
		printName  = pflag.String("print", "", "print stored history for the named device")
		jsonLogs   = pflag.Bool("json-logs", false, "emit diagnostics as JSON")
	)
	pflag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "kidcon: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *logDir != "" {
		cfg.LogDir = *logDir
	}
	if len(*devices) > 0 {
		cfg.Devices = *devices
	}
	if *provider != "" {
		cfg.Provider = *provider
	}
	if *interval > 0 {
		cfg.Interval = config.Duration(*interval)
	}

	logger := logging.Init(*jsonLogs, logging.ParseLevel(cfg.LogLevel))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("shutting down", "signal", sig.String())
		cancel()
	}()

	var exitErr error
	switch {
	case *printName != "":
		exitErr = runPrint(ctx, cfg, *printName, logger)
	case *ingest:
		exitErr = runIngest(ctx, cfg, logger)
	default:
		exitErr = runCapture(ctx, cfg, *once, logger)
	}
	if exitErr != nil && !errors.Is(exitErr, context.Canceled) {
		logger.Error("fatal", "error", exitErr)
		os.Exit(1)
	}
}

// runPrint dumps the stored history of one device, one
// "timestamp bytes_up bytes_down" line per sample.
func runPrint(ctx context.Context, cfg config.Config, name string, logger *slog.Logger) error {
	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	samples, err := st.History(ctx, name)
	if err != nil {
		return err
	}
	for _, s := range samples {
		fmt.Printf("%s %s %s\n",
			s.Time.UTC().Format(time.RFC3339),
			strconv.FormatFloat(s.BytesUp, 'f', -1, 64),
			strconv.FormatFloat(s.BytesDown, 'f', -1, 64),
		)
	}
	return nil
}

// runIngest parses forwarded appliance log lines from stdin into the
// sample store.
func runIngest(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	_, err = pipeline.Ingest(ctx, os.Stdin, st, clock.Real(), logger)
	return err
}

// runCapture queries the registry for every tracked device, routes the
// report lines to stdout, the hour-bucket log, and the sample store,
// then resets the appliance counters.
func runCapture(ctx context.Context, cfg config.Config, once bool, logger *slog.Logger) error {
	if len(cfg.Devices) == 0 {
		return fmt.Errorf("no devices configured (set devices in the config file or --devices)")
	}

	ctor, err := registry.Get(cfg.Provider)
	if err != nil {
		return err
	}
	reg, err := ctor(registry.Config{
		Host:     cfg.Router.Host,
		Port:     cfg.Router.Port,
		Username: cfg.Router.Username,
		Password: cfg.Router.Password,
		KeyFile:  cfg.Router.KeyFile,
		Timeout:  cfg.Router.Timeout.Duration(),
	})
	if err != nil {
		return err
	}
	if closer, ok := reg.(interface{ Close() error }); ok {
		defer closer.Close()
	}

	if err := os.MkdirAll(cfg.LogDir, 0755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	st, err := store.Open(cfg.DBPath, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	c := clock.Real()
	reporter := report.NewReporter(reg, c, logger)
	collector := report.NewCollector(reporter, reg, cfg.Devices, logger)

	out := multi.New(
		stdout.New(),
		bucketfile.New(bucket.New(cfg.LogDir, bucket.WithClock(c))),
		sample.New(st, c),
	)

	p := pipeline.New(collector, out, c, logger)
	defer p.Close()

	logger.Info("kidcon starting",
		"provider", cfg.Provider,
		"devices", len(cfg.Devices),
		"log_dir", cfg.LogDir,
		"db", cfg.DBPath,
	)

	if once {
		return p.Capture(ctx)
	}
	return p.Run(ctx, cfg.Interval.Duration())
}
