package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

const (
	asOfLayout = "2006-01-02"
	envPrefix  = "FXCASHFLOW_"
)

// Config represents a complete cashflow run.
type Config struct {
	Input   InputConfig  `json:"input" yaml:"input" toml:"input"`
	AsOf    string       `json:"as_of,omitempty" yaml:"as_of,omitempty" toml:"as_of,omitempty"` // YYYY-MM-DD, empty = today
	Output  OutputConfig `json:"output" yaml:"output" toml:"output"`
	Filter  FilterConfig `json:"filter" yaml:"filter" toml:"filter"`
	Workers int          `json:"workers" yaml:"workers" toml:"workers"`
	Log     LogConfig    `json:"log" yaml:"log" toml:"log"`
}

type InputConfig struct {
	Trades string `json:"trades" yaml:"trades" toml:"trades"`
	Points string `json:"points,omitempty" yaml:"points,omitempty" toml:"points,omitempty"`
}

// OutputConfig names the generated files. File names are relative to Dir
// unless absolute.
type OutputConfig struct {
	Dir           string `json:"dir" yaml:"dir" toml:"dir"`
	AggregatedCSV string `json:"aggregated_csv" yaml:"aggregated_csv" toml:"aggregated_csv"`
	CashflowHTML  string `json:"cashflow_html" yaml:"cashflow_html" toml:"cashflow_html"`
	SummaryHTML   string `json:"summary_html" yaml:"summary_html" toml:"summary_html"`
	SummaryOrg    string `json:"summary_org,omitempty" yaml:"summary_org,omitempty" toml:"summary_org,omitempty"`
	SQLite        string `json:"sqlite,omitempty" yaml:"sqlite,omitempty" toml:"sqlite,omitempty"`

	// Template overrides; empty uses the built-in templates.
	CashflowTemplate string `json:"cashflow_template,omitempty" yaml:"cashflow_template,omitempty" toml:"cashflow_template,omitempty"`
	SummaryTemplate  string `json:"summary_template,omitempty" yaml:"summary_template,omitempty" toml:"summary_template,omitempty"`
}

type FilterConfig struct {
	IgnoreFolders []string `json:"ignore_folders,omitempty" yaml:"ignore_folders,omitempty" toml:"ignore_folders,omitempty"`
	File          string   `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
}

type LogConfig struct {
	Level  string `json:"level" yaml:"level" toml:"level"`
	Pretty bool   `json:"pretty" yaml:"pretty" toml:"pretty"`
}

// LoadFromFile reads path on top of Default. Files ending in .toml are
// TOML; anything else is tried as YAML, then JSON.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			if jerr := json.Unmarshal(data, cfg); jerr != nil {
				return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
			}
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// SaveToFile writes c as YAML, TOML or JSON depending on the extension.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err = yaml.Marshal(c)
	case ".toml":
		var b strings.Builder
		err = toml.NewEncoder(&b).Encode(c)
		data = []byte(b.String())
	default:
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Input.Trades == "" {
		return fmt.Errorf("input.trades is required")
	}
	if c.AsOf != "" {
		if _, err := time.Parse(asOfLayout, c.AsOf); err != nil {
			return fmt.Errorf("as_of must be YYYY-MM-DD: %q", c.AsOf)
		}
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("output.dir is required")
	}
	if c.Output.AggregatedCSV == "" || c.Output.CashflowHTML == "" || c.Output.SummaryHTML == "" {
		return fmt.Errorf("output aggregated_csv, cashflow_html and summary_html are required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Input: InputConfig{
			Trades: "trades.csv",
		},
		Output: OutputConfig{
			Dir:           "generatedFile",
			AggregatedCSV: "cashflows_agg.csv",
			CashflowHTML:  "cashflows.html",
			SummaryHTML:   "cashflows_horizon_summary.html",
		},
		Workers: 1,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// AsOfDate returns the as-of date, or the UTC date of now when unset.
func (c *Config) AsOfDate(now time.Time) (time.Time, error) {
	if c.AsOf == "" {
		y, m, d := now.UTC().Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(asOfLayout, c.AsOf)
	if err != nil {
		return time.Time{}, fmt.Errorf("as_of: %w", err)
	}
	return t, nil
}

// OutputPath resolves name against Output.Dir. Empty names stay empty.
func (c *Config) OutputPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Output.Dir, name)
}

// ApplyEnv loads .env if present and applies FXCASHFLOW_* overrides.
func (c *Config) ApplyEnv() {
	_ = godotenv.Load()

	setStr(&c.Input.Trades, "TRADES")
	setStr(&c.Input.Points, "POINTS")
	setStr(&c.AsOf, "AS_OF")
	setStr(&c.Output.Dir, "OUT_DIR")
	setStr(&c.Output.SQLite, "SQLITE")
	setStr(&c.Filter.File, "FILTER_CONFIG")
	setInt(&c.Workers, "WORKERS")
	setStr(&c.Log.Level, "LOG_LEVEL")
	setBool(&c.Log.Pretty, "LOG_PRETTY")

	if v := os.Getenv(envPrefix + "IGNORE_FOLDERS"); v != "" {
		c.Filter.IgnoreFolders = splitList(v)
	}
}

// LoadFilterFile reads a JSON filter file of the form
// {"ignore_folders": ["A", "B"]}.
func LoadFilterFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read filter file: %w", err)
	}
	var f FilterConfig
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse filter file %s: %w", path, err)
	}
	return f.IgnoreFolders, nil
}

func setStr(dst *string, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(envPrefix + key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
