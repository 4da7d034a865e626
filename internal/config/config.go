// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"fragasm-core/assemble"
	"fragasm-core/overlap"

	"fragasm/internal/writers"
)

// Config holds the run settings shared by the config file, environment and flags.
type Config struct {
	Matcher   string `yaml:"matcher"`    // naive | kmp
	Mode      string `yaml:"mode"`       // sequential | parallel | merge
	Workers   int    `yaml:"workers"`    // 0 = all CPUs
	CacheSize int    `yaml:"cache_size"` // KMP pattern cache entries, 0 = default
	Output    string `yaml:"output"`     // text | json | jsonl | fasta
	Header    bool   `yaml:"header"`
}

// Environment variables consulted by Load.
const (
	EnvMatcher = "FRAGASM_MATCHER"
	EnvMode    = "FRAGASM_MODE"
	EnvWorkers = "FRAGASM_WORKERS"
)

func Default() *Config {
	return &Config{
		Matcher: string(overlap.KindKMP),
		Mode:    string(assemble.ModeSequential),
		Output:  writers.FormatText,
		Header:  true,
	}
}

// Load reads the YAML file at path over the defaults, then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvMatcher); v != "" {
		c.Matcher = v
	}
	if v := os.Getenv(EnvMode); v != "" {
		c.Mode = v
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		c.Workers = n
	}
	return nil
}

// Validate rejects unknown names and negative sizes.
func (c *Config) Validate() error {
	if _, err := overlap.ParseKind(c.Matcher); err != nil {
		return err
	}
	if _, err := assemble.ParseMode(c.Mode); err != nil {
		return err
	}
	if !writers.Known(c.Output) {
		return fmt.Errorf("invalid output %q (valid: %v)", c.Output, writers.Formats())
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.CacheSize < 0 {
		return fmt.Errorf("cache_size must be >= 0, got %d", c.CacheSize)
	}
	return nil
}
