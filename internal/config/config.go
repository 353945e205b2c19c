// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/crnc/symbol"
)

// Config holds the CLI settings: compiler switches, display style and
// numeric parameter bindings.
type Config struct {
	Compile struct {
		LNA     bool `yaml:"lna"`     // track covariance in compiled samples
		Quiet   bool `yaml:"quiet"`   // suppress stage dumps
		Metrics bool `yaml:"metrics"` // print collected metrics on exit
	} `yaml:"compile"`
	Style struct {
		Varchar  string            `yaml:"varchar"`
		Swap     map[string]string `yaml:"swap"`
		AlphaMap bool              `yaml:"alpha_map"`
	} `yaml:"style"`
	Params map[string]float64 `yaml:"params"` // numeric values of model parameters
}

// LoadConfig reads path (optional) and applies CRNC_* overrides.
func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	// 2. Load YAML config
	var cfg Config
	if path != "" {
		file, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(file, &cfg); err != nil {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}

	// 3. Override with Environment Variables if present
	if v := os.Getenv("CRNC_LNA"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CRNC_LNA: %w", err)
		}
		cfg.Compile.LNA = b
	}
	if v := os.Getenv("CRNC_QUIET"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("CRNC_QUIET: %w", err)
		}
		cfg.Compile.Quiet = b
	}
	if v := os.Getenv("CRNC_VARCHAR"); v != "" {
		cfg.Style.Varchar = v
	}

	return &cfg, nil
}

// NewStyle builds the display style described by the config.
func (c *Config) NewStyle() *symbol.Style {
	var opts []symbol.StyleOption
	if c.Style.Varchar != "" {
		opts = append(opts, symbol.WithVarchar(c.Style.Varchar))
	}
	if len(c.Style.Swap) > 0 {
		opts = append(opts, symbol.WithSwap(c.Style.Swap))
	}
	if c.Style.AlphaMap {
		opts = append(opts, symbol.WithAlphaMap())
	}
	return symbol.NewStyle(opts...)
}
