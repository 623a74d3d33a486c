package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up by callers that don't pass a path
const FileName = "wrap.yml"

// Reporter names accepted by compare.reporter
const (
	ReporterDiff   = "diff"
	ReporterInline = "inline"
	ReporterNone   = "none"
)

// Config represents wrap.yml
type Config struct {
	Compare CompareConfig `yaml:"compare" mapstructure:"compare"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// CompareConfig controls golden-file comparison
type CompareConfig struct {
	Reporter    string `yaml:"reporter" mapstructure:"reporter"`
	DiffCommand string `yaml:"diff_command" mapstructure:"diff_command"`
	SkipHeader  bool   `yaml:"skip_header" mapstructure:"skip_header"`
}

// LogConfig controls the diagnostic logger
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Compare: CompareConfig{
			Reporter:    ReporterDiff,
			DiffCommand: "diff",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML config at path. A missing file yields Default().
// Any key can be overridden from the environment as WRAP_<SECTION>_<KEY>,
// e.g. WRAP_COMPARE_REPORTER=inline.
func Load(path string) (*Config, error) {
	def := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("compare.reporter", def.Compare.Reporter)
	v.SetDefault("compare.diff_command", def.Compare.DiffCommand)
	v.SetDefault("compare.skip_header", def.Compare.SkipHeader)
	v.SetDefault("log.level", def.Log.Level)

	v.SetEnvPrefix("WRAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks values that have a fixed set of choices
func (c *Config) Validate() error {
	switch c.Compare.Reporter {
	case ReporterDiff, ReporterInline, ReporterNone:
	default:
		return fmt.Errorf("unsupported compare.reporter: %s (supported: diff, inline, none)", c.Compare.Reporter)
	}

	if c.Compare.Reporter == ReporterDiff && c.Compare.DiffCommand == "" {
		return fmt.Errorf("compare.diff_command must not be empty when compare.reporter is diff")
	}

	return nil
}

// Save writes cfg to path as YAML
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
