// Package config provides configuration loading and management for semtag.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dario.cat/mergo"
	"gopkg.in/yaml.v3"
)

// Config represents the complete semtag configuration
type Config struct {
	NLP      NLPConfig      `yaml:"nlp"`
	Matching MatchingConfig `yaml:"matching"`
	Output   OutputConfig   `yaml:"output"`
	Watch    WatchConfig    `yaml:"watch"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

// NLPConfig configures the language model and word normalization
type NLPConfig struct {
	// WordsFile is a frequency ordered word list (empty = embedded list)
	WordsFile string `yaml:"words_file"`
	// CacheSize bounds the normalization memo (0 disables it)
	CacheSize int `yaml:"cache_size"`
	// SimilarityThreshold is the score an operation verb must exceed (0.0-1.0)
	SimilarityThreshold float64 `yaml:"similarity_threshold"`
}

// MatchingConfig tunes Definition matching
type MatchingConfig struct {
	// MinObjectProperties is the fewest properties for whole-object detection
	MinObjectProperties int `yaml:"min_object_properties"`
	// OperationStyle is "verb" or "method"
	OperationStyle string `yaml:"operation_style"`
}

// OutputConfig configures how annotated documents are written
type OutputConfig struct {
	// Format is "yaml" or "json" (empty = follow the output file extension)
	Format string `yaml:"format"`
}

// WatchConfig configures watch mode
type WatchConfig struct {
	// Debounce is how long a file must be quiet before it is re-annotated
	Debounce time.Duration `yaml:"debounce"`
}

// MetricsConfig configures metrics export
type MetricsConfig struct {
	// Textfile receives the Prometheus text exposition after each run
	Textfile string `yaml:"textfile"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		NLP: NLPConfig{
			WordsFile:           "", // Embedded
			CacheSize:           4096,
			SimilarityThreshold: 0.33,
		},
		Matching: MatchingConfig{
			MinObjectProperties: 3,
			OperationStyle:      "verb",
		},
		Watch: WatchConfig{
			Debounce: 500 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if c.NLP.CacheSize < 0 {
		return fmt.Errorf("nlp.cache_size must not be negative")
	}
	if c.NLP.SimilarityThreshold < 0 || c.NLP.SimilarityThreshold > 1 {
		return fmt.Errorf("nlp.similarity_threshold must be between 0 and 1")
	}
	if c.Matching.MinObjectProperties < 1 {
		return fmt.Errorf("matching.min_object_properties must be at least 1")
	}
	switch c.Matching.OperationStyle {
	case "verb", "method":
	default:
		return fmt.Errorf("matching.operation_style must be verb or method, got %q", c.Matching.OperationStyle)
	}
	switch c.Output.Format {
	case "", "yaml", "json":
	default:
		return fmt.Errorf("output.format must be yaml or json, got %q", c.Output.Format)
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge merges another config into this one (other takes precedence for non-zero values)
func (c *Config) Merge(other *Config) error {
	if other == nil {
		return nil
	}
	if err := mergo.Merge(c, other, mergo.WithOverride); err != nil {
		return fmt.Errorf("failed to merge config: %w", err)
	}
	return nil
}
