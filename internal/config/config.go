package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gobwas/glob"

	"sharpcheck/internal/analysis"
)

type Config struct {
	ScanPaths []string        `toml:"scan_paths"`
	Exclude   Exclude         `toml:"exclude"`
	Watch     Watch           `toml:"watch"`
	Output    Output          `toml:"output"`
	Rules     map[string]Rule `toml:"rules"`
	Telemetry Telemetry       `toml:"telemetry"`
}

type Exclude struct {
	Dirs  []string `toml:"dirs"`
	Files []string `toml:"files"`
}

type Watch struct {
	Debounce time.Duration `toml:"debounce"`
	// RescansPerSecond throttles re-analysis bursts in watch mode.
	RescansPerSecond float64 `toml:"rescans_per_second"`
}

type Output struct {
	SARIF   string `toml:"sarif"`
	History string `toml:"history"`
}

// Rule overrides the enablement or severity of a single rule by id.
type Rule struct {
	Enabled  *bool  `toml:"enabled"`
	Severity string `toml:"severity"`
}

type Telemetry struct {
	ListenAddr   string `toml:"listen_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// Defaults if not set
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RescansPerSecond == 0 {
		cfg.Watch.RescansPerSecond = 4
	}
	if len(cfg.ScanPaths) == 0 {
		cfg.ScanPaths = []string{"."}
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	for _, pattern := range append(append([]string(nil), c.Exclude.Dirs...), c.Exclude.Files...) {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}
	}
	for id, override := range c.Rules {
		if override.Severity == "" {
			continue
		}
		if _, err := analysis.ParseSeverity(override.Severity); err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
	}
	return nil
}

// RuleEnabled reports whether a rule should run, honoring overrides over the
// descriptor's enabled-by-default flag.
func (c *Config) RuleEnabled(desc *analysis.Descriptor) bool {
	if override, ok := c.Rules[desc.ID]; ok && override.Enabled != nil {
		return *override.Enabled
	}
	return desc.EnabledByDefault
}

// RuleSeverity returns the effective severity for a rule.
func (c *Config) RuleSeverity(desc *analysis.Descriptor) analysis.Severity {
	if override, ok := c.Rules[desc.ID]; ok && override.Severity != "" {
		if sev, err := analysis.ParseSeverity(override.Severity); err == nil {
			return sev
		}
	}
	return desc.Severity
}
