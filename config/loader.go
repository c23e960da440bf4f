package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "semtag.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/semtag"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvFile is loaded into the environment before overrides are read
	EnvFile = ".env"
)

// Environment variables that override file configuration
const (
	EnvWordsFile           = "SEMTAG_WORDS_FILE"
	EnvCacheSize           = "SEMTAG_CACHE_SIZE"
	EnvSimilarityThreshold = "SEMTAG_SIMILARITY_THRESHOLD"
	EnvMetricsTextfile     = "SEMTAG_METRICS_TEXTFILE"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{logger: logger}
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/semtag/config.yaml)
// 3. Project config (semtag.yaml in current or parent directories)
// 4. Explicit config file, when path is not empty
// 5. Environment variables, after loading .env from the current directory
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	userConfigPath := l.userConfigPath()
	if userConfig, err := LoadFromFile(userConfigPath); err == nil {
		l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
		if err := config.Merge(userConfig); err != nil {
			return nil, err
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
	}

	projectConfigPath := l.findProjectConfig()
	if projectConfigPath != "" {
		if projectConfig, err := LoadFromFile(projectConfigPath); err == nil {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			if err := config.Merge(projectConfig); err != nil {
				return nil, err
			}
		} else {
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if path != "" {
		explicit, err := LoadFromFile(path)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("Loaded config file", slog.String("path", path))
		if err := config.Merge(explicit); err != nil {
			return nil, err
		}
	}

	if err := godotenv.Load(EnvFile); err == nil {
		l.logger.Debug("Loaded environment file", slog.String("path", EnvFile))
	} else if !errors.Is(err, fs.ErrNotExist) {
		l.logger.Warn("Failed to load environment file", slog.String("error", err.Error()))
	}
	if err := applyEnv(config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnv overrides config fields from SEMTAG_* variables
func applyEnv(config *Config) error {
	if v, ok := os.LookupEnv(EnvWordsFile); ok {
		config.NLP.WordsFile = v
	}
	if v, ok := os.LookupEnv(EnvCacheSize); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvCacheSize, err)
		}
		config.NLP.CacheSize = n
	}
	if v, ok := os.LookupEnv(EnvSimilarityThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", EnvSimilarityThreshold, err)
		}
		config.NLP.SimilarityThreshold = f
	}
	if v, ok := os.LookupEnv(EnvMetricsTextfile); ok {
		config.Metrics.Textfile = v
	}
	return nil
}

// EnsureUserConfig creates the user config file with defaults if it doesn't exist
func (l *Loader) EnsureUserConfig() error {
	userConfigPath := l.userConfigPath()

	if _, err := os.Stat(userConfigPath); err == nil {
		return nil
	}

	config := DefaultConfig()
	if err := config.SaveToFile(userConfigPath); err != nil {
		return err
	}

	l.logger.Info("Created default user config", slog.String("path", userConfigPath))
	return nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

// findProjectConfig searches for semtag.yaml in current and parent directories
func (l *Loader) findProjectConfig() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}

	dir := cwd
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
