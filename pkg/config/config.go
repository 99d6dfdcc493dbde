/*
Package config manages TOML config for SpellServe services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/bastiangx/spellserve/internal/utils"
	"github.com/bastiangx/spellserve/pkg/suggest"
	"github.com/charmbracelet/log"
)

// Config holds the entire config structure
type Config struct {
	Engine EngineConfig `toml:"engine"`
	Dict   DictConfig   `toml:"dict"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// EngineConfig tunes the suggestion engine.
type EngineConfig struct {
	MaxEditDistance    int     `toml:"max_edit_distance"`
	MaxSuggestions     int     `toml:"max_suggestions"`
	EditDistanceWeight float64 `toml:"edit_distance_weight"`
	FrequencyWeight    float64 `toml:"frequency_weight"`
	PhoneticWeight     float64 `toml:"phonetic_weight"`
	PrefixWeight       float64 `toml:"prefix_weight"`
}

// DictConfig holds dictionary options.
type DictConfig struct {
	Path             string `toml:"path"`
	DefaultFrequency int    `toml:"default_frequency"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxWordLength  int     `toml:"max_word_length"`
	RequestsPerSec float64 `toml:"requests_per_sec"`
	Burst          int     `toml:"burst"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	DefaultLimit int  `toml:"default_limit"`
	NoFilter     bool `toml:"no_filter"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "spellserve")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "spellserve")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/spellserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	weights := suggest.DefaultWeights()
	return &Config{
		Engine: EngineConfig{
			MaxEditDistance:    suggest.DefaultMaxEditDistance,
			MaxSuggestions:     suggest.DefaultMaxSuggestions,
			EditDistanceWeight: weights.EditDistance,
			FrequencyWeight:    weights.Frequency,
			PhoneticWeight:     weights.Phonetic,
			PrefixWeight:       weights.Prefix,
		},
		Dict: DictConfig{
			Path:             "dictionaries/en_US.dict",
			DefaultFrequency: 1,
		},
		Server: ServerConfig{
			MaxWordLength:  60,
			RequestsPerSec: 200,
			Burst:          50,
		},
		CLI: CliConfig{
			DefaultLimit: 10,
			NoFilter:     false,
		},
	}
}

// DictFrequency returns the default frequency for words added at
// runtime, clamped to at least 1 so a bad config value cannot wrap
// the uint32 conversion.
func (c *Config) DictFrequency() uint32 {
	if c.Dict.DefaultFrequency < 1 {
		return 1
	}
	return uint32(c.Dict.DefaultFrequency)
}

// Weights converts the engine section into suggestion engine weights.
func (c *Config) Weights() suggest.Weights {
	return suggest.Weights{
		EditDistance: c.Engine.EditDistanceWeight,
		Frequency:    c.Engine.FrequencyWeight,
		Phonetic:     c.Engine.PhoneticWeight,
		Prefix:       c.Engine.PrefixWeight,
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if engineSection, ok := utils.ExtractSection(tempConfig, "engine"); ok {
		extractEngineConfig(engineSection, &config.Engine)
	}
	if dictSection, ok := utils.ExtractSection(tempConfig, "dict"); ok {
		extractDictConfig(dictSection, &config.Dict)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	if cliSection, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(cliSection, &config.CLI)
	}
	return config, nil
}

// extractEngineConfig extracts engine configuration from a map
func extractEngineConfig(data map[string]any, engine *EngineConfig) {
	if val, ok := utils.ExtractInt64(data, "max_edit_distance"); ok {
		engine.MaxEditDistance = val
	}
	if val, ok := utils.ExtractInt64(data, "max_suggestions"); ok {
		engine.MaxSuggestions = val
	}
	if val, ok := utils.ExtractFloat64(data, "edit_distance_weight"); ok {
		engine.EditDistanceWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "frequency_weight"); ok {
		engine.FrequencyWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "phonetic_weight"); ok {
		engine.PhoneticWeight = val
	}
	if val, ok := utils.ExtractFloat64(data, "prefix_weight"); ok {
		engine.PrefixWeight = val
	}
}

// extractDictConfig extracts dictionary configuration from a map
func extractDictConfig(data map[string]any, dict *DictConfig) {
	if val, ok := utils.ExtractString(data, "path"); ok {
		dict.Path = val
	}
	if val, ok := utils.ExtractInt64(data, "default_frequency"); ok {
		dict.DefaultFrequency = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_word_length"); ok {
		server.MaxWordLength = val
	}
	if val, ok := utils.ExtractFloat64(data, "requests_per_sec"); ok {
		server.RequestsPerSec = val
	}
	if val, ok := utils.ExtractInt64(data, "burst"); ok {
		server.Burst = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "no_filter"); ok {
		cli.NoFilter = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes engine config values and saves to file
func (c *Config) Update(configPath string, maxEditDistance, maxSuggestions *int, weights *suggest.Weights) error {
	engine := &c.Engine
	if maxEditDistance != nil {
		engine.MaxEditDistance = *maxEditDistance
	}
	if maxSuggestions != nil {
		engine.MaxSuggestions = *maxSuggestions
	}
	if weights != nil {
		engine.EditDistanceWeight = weights.EditDistance
		engine.FrequencyWeight = weights.Frequency
		engine.PhoneticWeight = weights.Phonetic
		engine.PrefixWeight = weights.Prefix
	}
	return SaveConfig(c, configPath)
}
