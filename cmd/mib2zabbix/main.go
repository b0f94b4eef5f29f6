// Command mib2zabbix converts the OBJECT-TYPE definitions of a MIB file into
// a Zabbix 5.0 template export.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/config"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/converter"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/lgr"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/metrics"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/watch"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/zabbix"
)

const (
	exitOK    = 0
	exitError = 1
)

type groupsFlag []string

func (f *groupsFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *groupsFlag) Set(value string) error {
	*f = append(*f, zabbix.ParseGroups(value)...)
	return nil
}

func (f *groupsFlag) Type() string {
	return "groups"
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("mib2zabbix", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		flags      config.Config
		groups     groupsFlag
		configFile string
		help       bool
	)
	fs.StringVarP(&flags.Output, "output", "o", "", "Output file (default: standard output)")
	fs.StringVarP(&flags.TemplateName, "template-name", "t", "", "Template name (default: MIB file name without extension)")
	fs.VarP(&groups, "group", "g", "Template groups, comma-separated (default: "+zabbix.DefaultGroup+")")
	fs.BoolVarP(&flags.Verbose, "verbose", "v", false, "Print progress messages")
	fs.StringVarP(&flags.Format, "format", "f", "", "Output format: json or yaml (default: from output extension, else json)")
	fs.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	fs.StringVar(&flags.OutDir, "out-dir", "", "Write one template per MIB file into this directory")
	fs.StringVar(&flags.Watch, "watch", "", "Regenerate changed templates on this cron schedule")
	fs.StringVar(&flags.MetricsFile, "metrics-file", "", "Write conversion metrics in Prometheus textfile format")
	fs.BoolVarP(&help, "help", "h", false, "Show help")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: mib2zabbix [options] <mib_file> [mib_file ...]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		fs.Usage()
		return exitError
	}
	if help {
		fs.SetOutput(stdout)
		fmt.Fprintln(stdout, "Usage: mib2zabbix [options] <mib_file> [mib_file ...]")
		fs.PrintDefaults()
		return exitOK
	}
	flags.Groups = groups
	flags.Input = fs.Args()

	cfg := flags
	if configFile != "" {
		fromFile, err := config.LoadFile(configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
		cfg = config.Merge(fromFile, flags)
	}

	if err := cfg.Validate(); err != nil {
		switch {
		case errors.Is(err, config.ErrNoInput):
			fs.Usage()
		default:
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return exitError
	}

	logger, err := lgr.New(cfg.Verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	defer logger.Sync()

	var m *metrics.Metrics
	if cfg.MetricsFile != "" {
		m = metrics.New()
	}

	conv, err := converter.New(cfg, logger, m)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	conv.SetOutput(stdout)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := conv.Run(ctx); err != nil {
		logger.Error("conversion failed", zap.Error(err))
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitError
	}
	writeMetrics(logger, m, cfg.MetricsFile)

	if cfg.Watch != "" {
		if err := watchInputs(ctx, logger, conv, m, cfg); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitError
		}
	}

	logger.Info("done")
	return exitOK
}

func watchInputs(ctx context.Context, logger *zap.Logger, conv *converter.Converter, m *metrics.Metrics, cfg config.Config) error {
	tracker := watch.NewTracker(cfg.Input)
	scheduler, err := watch.NewScheduler(cfg.Watch, func() {
		changed := tracker.Changed()
		if len(changed) == 0 {
			return
		}
		logger.Info("MIB files changed", zap.Strings("mibs", changed))
		if err := conv.RunPaths(changed); err != nil {
			logger.Error("regeneration failed", zap.Error(err))
			return
		}
		writeMetrics(logger, m, cfg.MetricsFile)
	})
	if err != nil {
		return err
	}

	logger.Info("watching MIB files", zap.String("schedule", cfg.Watch), zap.Int("files", len(cfg.Input)))
	scheduler.Start()
	<-ctx.Done()
	scheduler.Stop()
	logger.Info("watch stopped")
	return nil
}

func writeMetrics(logger *zap.Logger, m *metrics.Metrics, path string) {
	if m == nil || path == "" {
		return
	}
	if err := m.WriteTextfile(path); err != nil {
		logger.Warn("could not write metrics file", zap.String("path", path), zap.Error(err))
	}
}
