package engine

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"finhealth/pkg/core/credit"
	"finhealth/pkg/core/forecast"
	"finhealth/pkg/core/health"
	"finhealth/pkg/core/recommend"
)

// Configs aggregates every engine's numeric policy. The YAML file overrides
// defaults field by field; weights, cut points, multipliers and tolerances
// are configuration, not code.
type Configs struct {
	Health    health.Config    `yaml:"health"`
	Credit    credit.Config    `yaml:"credit"`
	Forecast  forecast.Config  `yaml:"forecast"`
	Recommend recommend.Config `yaml:"recommend"`
}

// DefaultConfigs returns the stock policy for all engines.
func DefaultConfigs() Configs {
	return Configs{
		Health:    health.DefaultConfig(),
		Credit:    credit.DefaultConfig(),
		Forecast:  forecast.DefaultConfig(),
		Recommend: recommend.DefaultConfig(),
	}
}

// LoadConfigs reads the engine policy file, overlaying it on the defaults. A
// missing file is not an error; the defaults simply apply.
func LoadConfigs(path string) (Configs, error) {
	cfg := DefaultConfigs()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read engine config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse engine config %s: %w", path, err)
	}
	return cfg, nil
}
