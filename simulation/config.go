//go:build !solution

package simulation

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the YAML configuration of the readerwriter binary. Missing fields
// keep their defaults.
type Config struct {
	Capacity *int   `yaml:"capacity"`
	Readers  *int   `yaml:"readers"`
	Writers  *int   `yaml:"writers"`
	Rest     string `yaml:"rest"`
	WorkMin  string `yaml:"work_min"`
	WorkMax  string `yaml:"work_max"`
	LogLevel string `yaml:"log_level"`
	HTTPAddr string `yaml:"http_addr"`
}

// LoadConfig читает конфигурацию из YAML файла
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	// Пустой файл означает конфигурацию по умолчанию
	if len(data) == 0 {
		return &config, nil
	}

	if err := yaml.UnmarshalStrict(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &config, nil
}

// Apply overrides fields of s with the ones present in c.
func (c *Config) Apply(s Settings) (Settings, error) {
	if c.Capacity != nil {
		s.Capacity = *c.Capacity
	}
	if c.Readers != nil {
		s.Readers = *c.Readers
	}
	if c.Writers != nil {
		s.Writers = *c.Writers
	}

	for _, d := range []struct {
		name  string
		value string
		dst   *time.Duration
	}{
		{"rest", c.Rest, &s.Rest},
		{"work_min", c.WorkMin, &s.WorkMin},
		{"work_max", c.WorkMax, &s.WorkMax},
	} {
		if d.value == "" {
			continue
		}
		parsed, err := time.ParseDuration(d.value)
		if err != nil {
			return s, fmt.Errorf("config field %s: %w", d.name, err)
		}
		*d.dst = parsed
	}

	return s, s.Validate()
}
