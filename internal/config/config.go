package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/debashish-mukherjee/go-mib2zabbix/internal/export"
	"github.com/debashish-mukherjee/go-mib2zabbix/internal/zabbix"
)

var (
	ErrNoInput       = errors.New("no MIB file given")
	ErrInputNotFound = errors.New("MIB file not found")
)

// Config drives one conversion run. Zero values mean "use the default".
type Config struct {
	Input        []string `yaml:"input"`
	Output       string   `yaml:"output"`
	OutDir       string   `yaml:"out_dir"`
	TemplateName string   `yaml:"template_name"`
	Groups       []string `yaml:"groups"`
	Verbose      bool     `yaml:"verbose"`
	Format       string   `yaml:"format"`
	Watch        string   `yaml:"watch"`
	MetricsFile  string   `yaml:"metrics_file"`
}

func LoadFile(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config yaml: %w", err)
	}
	cfg.Groups = normalizeGroups(cfg.Groups)
	return cfg, nil
}

// normalizeGroups splits comma-separated entries the way the -g flag does and
// drops empty names.
func normalizeGroups(entries []string) []string {
	if len(entries) == 0 {
		return nil
	}
	var groups []string
	for _, entry := range entries {
		groups = append(groups, zabbix.ParseGroups(entry)...)
	}
	return groups
}

// Merge returns base with every non-zero field of override applied.
func Merge(base, override Config) Config {
	out := base
	if len(override.Input) > 0 {
		out.Input = override.Input
	}
	if override.Output != "" {
		out.Output = override.Output
	}
	if override.OutDir != "" {
		out.OutDir = override.OutDir
	}
	if override.TemplateName != "" {
		out.TemplateName = override.TemplateName
	}
	if len(override.Groups) > 0 {
		out.Groups = override.Groups
	}
	if override.Verbose {
		out.Verbose = true
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Watch != "" {
		out.Watch = override.Watch
	}
	if override.MetricsFile != "" {
		out.MetricsFile = override.MetricsFile
	}
	return out
}

func (c Config) Validate() error {
	if len(c.Input) == 0 {
		return ErrNoInput
	}
	for _, path := range c.Input {
		if strings.TrimSpace(path) == "" {
			return ErrNoInput
		}
		info, err := os.Stat(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("%w: %s", ErrInputNotFound, path)
		case err != nil:
			return fmt.Errorf("stat MIB file: %w", err)
		case info.IsDir():
			return fmt.Errorf("%w: %s is a directory", ErrInputNotFound, path)
		}
	}
	if c.Output != "" && c.OutDir != "" {
		return errors.New("output and out_dir are mutually exclusive")
	}
	if len(c.Input) > 1 {
		if c.OutDir == "" {
			return errors.New("several MIB files need out_dir")
		}
		if c.TemplateName != "" {
			return errors.New("template_name applies to a single MIB file")
		}
	}
	if _, err := c.OutputFormat(); err != nil {
		return err
	}
	return c.CheckBatchOutputs()
}

// OutputPathFor returns the file a MIB file is written to in batch mode.
func (c Config) OutputPathFor(input string, format export.Format) string {
	return filepath.Join(c.OutDir, c.TemplateNameFor(input)+format.Ext())
}

// CheckBatchOutputs fails when two inputs would be written to the same file
// in batch mode. It is a no-op outside batch mode.
func (c Config) CheckBatchOutputs() error {
	if len(c.Input) < 2 && c.OutDir == "" {
		return nil
	}
	format, err := c.OutputFormat()
	if err != nil {
		return err
	}
	writers := make(map[string]string, len(c.Input))
	for _, input := range c.Input {
		target := filepath.Clean(c.OutputPathFor(input, format))
		if prev, ok := writers[target]; ok {
			return fmt.Errorf("%s and %s both write %s", prev, input, target)
		}
		writers[target] = input
	}
	return nil
}

// OutputFormat is the configured format, or the one implied by Output.
func (c Config) OutputFormat() (export.Format, error) {
	if c.Format == "" && c.Output != "" {
		return export.FormatFromPath(c.Output), nil
	}
	return export.ParseFormat(c.Format)
}

// TemplateNameFor returns the configured template name, or the base name of
// path without its extension.
func (c Config) TemplateNameFor(path string) string {
	if c.TemplateName != "" {
		return c.TemplateName
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
