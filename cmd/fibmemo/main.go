package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	internal "github.com/ZanzyTHEbar/fibmemo/fibmemo"
	"github.com/ZanzyTHEbar/fibmemo/fibmemo/config"
	"github.com/ZanzyTHEbar/fibmemo/fibmemo/logging"
	"github.com/ZanzyTHEbar/fibmemo/fibmemo/metrics"
	"github.com/ZanzyTHEbar/fibmemo/fibmemo/sequence"
	"github.com/ZanzyTHEbar/fibmemo/fibmemo/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/pflag"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "%s: %v\n", internal.DefaultAppName, err)
		os.Exit(1)
	}
}

// run executes one session. Results go to stdout and logs to stderr.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	flags := pflag.NewFlagSet(internal.DefaultAppName, pflag.ContinueOnError)
	flags.SetOutput(stderr)
	configPath := flags.String("config", "", "path to config file")
	flags.Int("from", internal.DefaultFrom, "first index to query")
	flags.Int("to", internal.DefaultTo, "last index to query, inclusive")
	flags.String("arithmetic", internal.DefaultArithmetic, "term representation: checked or big")
	flags.String("strategy", internal.DefaultStrategy, "evaluation strategy: recursive or iterative")
	flags.Bool("interactive", false, "read indices from stdin, one per line")
	flags.String("log-level", internal.DefaultLogLevel, "log level")
	flags.String("log-format", internal.DefaultLogFormat, "log format: console or json")
	flags.String("metrics-addr", "", "serve Prometheus metrics on this address")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.LoadConfig(*configPath, flags)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging, stderr)
	if err != nil {
		return err
	}

	factory := sequence.NewFactory(&cfg.Sequence, logger)
	if cfg.Metrics.Enabled || cfg.Metrics.Addr != "" {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector())
		factory.WithMetrics(reg, cfg.Metrics.Namespace)

		if cfg.Metrics.Addr != "" {
			srv := metrics.NewServer(cfg.Metrics.Addr, reg, logger)
			if err := srv.Listen(); err != nil {
				return err
			}
			srv.StartAsync()
			defer func() {
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Stop(shutdownCtx); err != nil {
					logger.Warn().Err(err).Msg("Failed to stop metrics server")
				}
			}()
		}
	}

	querier, err := factory.CreateQuerier()
	if err != nil {
		return err
	}

	s := session.New(querier, logger)
	logger.Debug().
		Str("session", s.ID.String()).
		Str("arithmetic", cfg.Sequence.Arithmetic).
		Str("strategy", cfg.Sequence.Strategy).
		Msg("Session started")

	if cfg.Driver.Interactive {
		err = s.Interactive(ctx, stdin, stdout)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return s.Sweep(stdout, cfg.Driver.From, cfg.Driver.To)
}
