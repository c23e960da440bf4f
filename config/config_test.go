package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.NLP.CacheSize != 4096 {
		t.Errorf("expected default cache size 4096, got %d", cfg.NLP.CacheSize)
	}
	if cfg.NLP.SimilarityThreshold != 0.33 {
		t.Errorf("expected default similarity threshold 0.33, got %f", cfg.NLP.SimilarityThreshold)
	}
	if cfg.Matching.MinObjectProperties != 3 {
		t.Errorf("expected default min object properties 3, got %d", cfg.Matching.MinObjectProperties)
	}
	if cfg.Matching.OperationStyle != "verb" {
		t.Errorf("expected default operation style verb, got %s", cfg.Matching.OperationStyle)
	}
	if cfg.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected default debounce 500ms, got %v", cfg.Watch.Debounce)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "method operation style",
			modify:  func(c *Config) { c.Matching.OperationStyle = "method" },
			wantErr: false,
		},
		{
			name:    "json output",
			modify:  func(c *Config) { c.Output.Format = "json" },
			wantErr: false,
		},
		{
			name:    "negative cache size",
			modify:  func(c *Config) { c.NLP.CacheSize = -1 },
			wantErr: true,
		},
		{
			name:    "threshold too low",
			modify:  func(c *Config) { c.NLP.SimilarityThreshold = -0.1 },
			wantErr: true,
		},
		{
			name:    "threshold too high",
			modify:  func(c *Config) { c.NLP.SimilarityThreshold = 1.1 },
			wantErr: true,
		},
		{
			name:    "no object properties",
			modify:  func(c *Config) { c.Matching.MinObjectProperties = 0 },
			wantErr: true,
		},
		{
			name:    "unknown operation style",
			modify:  func(c *Config) { c.Matching.OperationStyle = "noun" },
			wantErr: true,
		},
		{
			name:    "unknown output format",
			modify:  func(c *Config) { c.Output.Format = "toml" },
			wantErr: true,
		},
		{
			name:    "negative debounce",
			modify:  func(c *Config) { c.Watch.Debounce = -time.Second },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	content := `
nlp:
  words_file: "/usr/share/words.txt"
  cache_size: 128
  similarity_threshold: 0.5
matching:
  min_object_properties: 4
  operation_style: method
output:
  format: json
watch:
  debounce: 2s
metrics:
  textfile: "/var/lib/node_exporter/semtag.prom"
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}

	if cfg.NLP.WordsFile != "/usr/share/words.txt" {
		t.Errorf("expected words file /usr/share/words.txt, got %s", cfg.NLP.WordsFile)
	}
	if cfg.NLP.CacheSize != 128 {
		t.Errorf("expected cache size 128, got %d", cfg.NLP.CacheSize)
	}
	if cfg.NLP.SimilarityThreshold != 0.5 {
		t.Errorf("expected similarity threshold 0.5, got %f", cfg.NLP.SimilarityThreshold)
	}
	if cfg.Matching.MinObjectProperties != 4 {
		t.Errorf("expected min object properties 4, got %d", cfg.Matching.MinObjectProperties)
	}
	if cfg.Matching.OperationStyle != "method" {
		t.Errorf("expected operation style method, got %s", cfg.Matching.OperationStyle)
	}
	if cfg.Output.Format != "json" {
		t.Errorf("expected output format json, got %s", cfg.Output.Format)
	}
	if cfg.Watch.Debounce != 2*time.Second {
		t.Errorf("expected debounce 2s, got %v", cfg.Watch.Debounce)
	}
	if cfg.Metrics.Textfile != "/var/lib/node_exporter/semtag.prom" {
		t.Errorf("expected metrics textfile, got %s", cfg.Metrics.Textfile)
	}
}

func TestConfigMerge(t *testing.T) {
	base := DefaultConfig()
	override := &Config{
		NLP: NLPConfig{
			WordsFile: "/override/words.txt",
		},
		Matching: MatchingConfig{
			OperationStyle: "method",
		},
	}

	if err := base.Merge(override); err != nil {
		t.Fatalf("Merge() error = %v", err)
	}

	if base.NLP.WordsFile != "/override/words.txt" {
		t.Errorf("expected words file /override/words.txt, got %s", base.NLP.WordsFile)
	}
	if base.Matching.OperationStyle != "method" {
		t.Errorf("expected operation style method, got %s", base.Matching.OperationStyle)
	}
	// Cache size should remain from base since override didn't set it
	if base.NLP.CacheSize != 4096 {
		t.Errorf("expected cache size to remain default, got %d", base.NLP.CacheSize)
	}
	if err := base.Merge(nil); err != nil {
		t.Errorf("Merge(nil) error = %v", err)
	}
}

func TestConfigSaveToFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "subdir", "config.yaml")

	cfg := DefaultConfig()
	cfg.Matching.OperationStyle = "method"

	if err := cfg.SaveToFile(configPath); err != nil {
		t.Fatalf("SaveToFile() error = %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Error("config file was not created")
	}

	loaded, err := LoadFromFile(configPath)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	if loaded.Matching.OperationStyle != "method" {
		t.Errorf("expected operation style method, got %s", loaded.Matching.OperationStyle)
	}
	if loaded.Watch.Debounce != 500*time.Millisecond {
		t.Errorf("expected debounce to round trip, got %v", loaded.Watch.Debounce)
	}
}
