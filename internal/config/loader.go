package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/altuslabsxyz/supplier-ops/internal/output"
)

// FileName is the config file looked up in the home and working directories.
const FileName = "config.toml"

// ConfigLoader is responsible for loading and merging configuration.
type ConfigLoader struct {
	homeDir    string
	configPath string // Explicit --config path
	workDir    string
	logger     output.LoggerInterface
}

// NewConfigLoader creates a new ConfigLoader.
func NewConfigLoader(homeDir, configPath string, logger output.LoggerInterface) *ConfigLoader {
	return &ConfigLoader{
		homeDir:    homeDir,
		configPath: configPath,
		workDir:    ".",
		logger:     logger,
	}
}

// WithWorkDir changes where ./config.toml is looked up.
func (l *ConfigLoader) WithWorkDir(dir string) *ConfigLoader {
	l.workDir = dir
	return l
}

// LoadFileConfig loads and parses config files, merging them in priority order.
// Priority: explicit path > ./config.toml > <home>/config.toml
// Returns the merged FileConfig and the highest priority file that was read.
func (l *ConfigLoader) LoadFileConfig() (*FileConfig, string, error) {
	var configFiles []string

	homePath := filepath.Join(l.homeDir, FileName)
	if fileExists(homePath) {
		configFiles = append(configFiles, homePath)
	}

	cwdPath := filepath.Join(l.workDir, FileName)
	if fileExists(cwdPath) && !containsPath(configFiles, cwdPath) {
		configFiles = append(configFiles, cwdPath)
	}

	if l.configPath != "" {
		if !fileExists(l.configPath) {
			return nil, "", fmt.Errorf("config file not found: %s", l.configPath)
		}
		if !containsPath(configFiles, l.configPath) {
			configFiles = append(configFiles, l.configPath)
		}
	}

	var merged FileConfig
	var primaryFile string
	for _, configFile := range configFiles {
		data, err := os.ReadFile(configFile)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}

		var cfg FileConfig
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, "", fmt.Errorf("failed to parse config file %s: %w", configFile, err)
		}

		mergeFileConfig(&merged, &cfg)
		primaryFile = configFile
		l.warnUnknownKeys(configFile, data)

		if l.logger != nil {
			l.logger.Debug("Loaded config file: %s", configFile)
		}
	}

	if err := ValidateFileConfig(&merged); err != nil {
		return nil, "", fmt.Errorf("config validation failed: %w", err)
	}
	return &merged, primaryFile, nil
}

// LoadDotEnv loads dir/.env into the process environment. Variables already
// set in the environment win. A missing file is not an error.
func LoadDotEnv(dir string, logger output.LoggerInterface) error {
	path := filepath.Join(dir, ".env")
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	if logger != nil {
		logger.Debug("Loaded environment file: %s", path)
	}
	return nil
}

// mergeFileConfig overlays the values set in src onto dst.
func mergeFileConfig(dst, src *FileConfig) {
	overlay(&dst.Home, src.Home)
	overlay(&dst.NoColor, src.NoColor)
	overlay(&dst.Verbose, src.Verbose)
	overlay(&dst.Network, src.Network)
	overlay(&dst.RESTEndpoint, src.RESTEndpoint)
	overlay(&dst.Binary, src.Binary)
	overlay(&dst.KeyringBackend, src.KeyringBackend)
	overlay(&dst.GasPrices, src.GasPrices)
	overlay(&dst.GasAdjustment, src.GasAdjustment)
	overlay(&dst.TimeoutDuration, src.TimeoutDuration)
	overlay(&dst.Delay, src.Delay)
}

func overlay[T any](dst **T, src *T) {
	if src != nil {
		*dst = src
	}
}

// warnUnknownKeys checks for unknown keys in the config file and logs warnings.
func (l *ConfigLoader) warnUnknownKeys(path string, data []byte) {
	if l.logger == nil {
		return
	}

	var raw map[string]interface{}
	if err := toml.Unmarshal(data, &raw); err != nil {
		return
	}
	for key := range raw {
		if !knownKeys[key] {
			l.logger.Warn("Unknown config key in %s: %s", path, key)
		}
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func containsPath(list []string, path string) bool {
	abs, _ := filepath.Abs(path)
	for _, p := range list {
		if a, _ := filepath.Abs(p); a == abs {
			return true
		}
	}
	return false
}
