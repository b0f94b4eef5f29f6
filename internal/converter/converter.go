// Package converter runs the MIB to Zabbix template pipeline: read the MIB
// text, extract its objects, build the template and write it out.
package converter

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/config"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/export"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/metrics"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/mibtext"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/zabbix"
)

// batchWorkers bounds concurrent conversions in batch mode.
const batchWorkers = 4

type Converter struct {
	cfg     config.Config
	format  export.Format
	logger  *zap.Logger
	metrics *metrics.Metrics

	stdout io.Writer
	now    func() time.Time
}

// New returns a converter for a validated configuration. metrics may be nil.
func New(cfg config.Config, logger *zap.Logger, m *metrics.Metrics) (*Converter, error) {
	format, err := cfg.OutputFormat()
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Converter{
		cfg:     cfg,
		format:  format,
		logger:  logger,
		metrics: m,
		stdout:  os.Stdout,
		now:     time.Now,
	}, nil
}

// SetOutput redirects documents printed when no output file is configured.
func (c *Converter) SetOutput(w io.Writer) {
	c.stdout = w
}

// Convert reads one MIB file and returns its template export.
func (c *Converter) Convert(path string) (*zabbix.Export, mibtext.Stats, error) {
	start := time.Now()
	templateName := c.cfg.TemplateNameFor(path)
	log := c.logger.With(zap.String("mib", path), zap.String("template", templateName))

	log.Info("processing MIB file")
	raw, err := os.ReadFile(path)
	if err != nil {
		c.metrics.RecordFailure()
		return nil, mibtext.Stats{}, fmt.Errorf("read MIB file: %w", err)
	}

	log.Info("parsing MIB file")
	objects, stats := mibtext.ExtractWith(string(raw), func(name string) {
		log.Debug("object has no assignment clause, skipped", zap.String("object", name))
	})
	log.Info("objects found", zap.Int("count", stats.Extracted), zap.Int("dropped", stats.Dropped))

	log.Info("converting to Zabbix template")
	doc := zabbix.Build(objects, zabbix.Options{
		TemplateName: templateName,
		Groups:       c.cfg.Groups,
		SourceFile:   path,
		Now:          c.now,
	})

	c.metrics.RecordConversion(templateName, stats, doc, time.Since(start))
	return doc, stats, nil
}

// Run converts every configured input and writes the results.
func (c *Converter) Run(ctx context.Context) error {
	if len(c.cfg.Input) == 1 && c.cfg.OutDir == "" {
		return c.convertOne(c.cfg.Input[0], c.cfg.Output)
	}

	if err := c.cfg.CheckBatchOutputs(); err != nil {
		return err
	}
	if err := os.MkdirAll(c.cfg.OutDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batchWorkers)
	for _, input := range c.cfg.Input {
		input := input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return c.convertOne(input, c.OutputPathFor(input))
		})
	}
	return g.Wait()
}

// RunPaths converts only the given inputs, writing each where Run would.
func (c *Converter) RunPaths(paths []string) error {
	for _, path := range paths {
		output := c.cfg.Output
		if c.cfg.OutDir != "" {
			output = c.OutputPathFor(path)
		}
		if err := c.convertOne(path, output); err != nil {
			return err
		}
	}
	return nil
}

// OutputPathFor returns the batch mode output file of a MIB file.
func (c *Converter) OutputPathFor(input string) string {
	return c.cfg.OutputPathFor(input, c.format)
}

func (c *Converter) convertOne(input, output string) error {
	doc, _, err := c.Convert(input)
	if err != nil {
		return err
	}

	if output == "" {
		return export.Encode(c.stdout, doc, c.format)
	}

	c.logger.Info("saving template", zap.String("output", output))
	if err := export.WriteFile(output, doc, c.format); err != nil {
		return fmt.Errorf("write template %s: %w", output, err)
	}
	c.logger.Info("template saved", zap.String("output", output))
	return nil
}
