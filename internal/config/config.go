package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// CurrentVersion is written into new config files.
const CurrentVersion = "1.0"

// Environment variables that override the config file.
const (
	EnvHome      = "VISA_HOME"
	EnvDBPath    = "VISA_DB_PATH"
	EnvExportDir = "VISA_EXPORT_DIR"
	EnvLogLevel  = "VISA_LOG_LEVEL"
)

// Config represents the visa configuration
type Config struct {
	Version   string `json:"version"`
	DBPath    string `json:"db_path"`
	ExportDir string `json:"export_dir,omitempty"` // relative export paths resolve here
	LogLevel  string `json:"log_level,omitempty"`  // zap level name
}

// Dir returns the visa home directory: $VISA_HOME, else ~/.visa.
func Dir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".visa"), nil
}

// Default returns the configuration used when no file exists in dir.
func Default(dir string) *Config {
	return &Config{
		Version:  CurrentVersion,
		DBPath:   filepath.Join(dir, "visa_bd.db"),
		LogLevel: "warn",
	}
}

// Path returns the config file location inside dir.
func Path(dir string) string {
	return filepath.Join(dir, "config.json")
}

// LoadConfig reads config.json from the specified directory.
// Returns error if no config found - caller should handle accordingly.
func LoadConfig(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

// SaveConfig writes config.json to directory
func SaveConfig(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(Path(dir), data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Load resolves the effective configuration.
// Precedence, lowest first: defaults, config.json in dir, envFile (dotenv,
// optional), process environment.
func Load(dir, envFile string) (*Config, error) {
	cfg := Default(dir)

	fileCfg, err := LoadConfig(dir)
	switch {
	case err == nil:
		cfg.merge(fileCfg)
	case errors.Is(err, os.ErrNotExist):
		// No config file: defaults apply
	default:
		return nil, err
	}

	env := map[string]string{}
	if envFile != "" {
		fileEnv, err := godotenv.Read(envFile)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
		}
		for k, v := range fileEnv {
			env[k] = v
		}
	}
	for _, key := range []string{EnvDBPath, EnvExportDir, EnvLogLevel} {
		if v, ok := os.LookupEnv(key); ok {
			env[key] = v
		}
	}

	cfg.merge(&Config{
		DBPath:    env[EnvDBPath],
		ExportDir: env[EnvExportDir],
		LogLevel:  env[EnvLogLevel],
	})

	return cfg, nil
}

// merge copies the non-empty fields of other into c.
func (c *Config) merge(other *Config) {
	if other.Version != "" {
		c.Version = other.Version
	}
	if other.DBPath != "" {
		c.DBPath = other.DBPath
	}
	if other.ExportDir != "" {
		c.ExportDir = other.ExportDir
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}
