package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/quiltboard/internal/paths"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	cfgKeyBackend     = "backend"
	cfgKeyDataDir     = "data_dir"
	cfgKeyGridRows    = "grid.rows"
	cfgKeyGridCols    = "grid.cols"
	cfgKeyPaletteFile = "palette_file"
	cfgKeyLogLevel    = "log_level"

	envPrefix = "QUILT"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# quilt configuration

# Storage backend
backend: sqlite

# Data directory (optional; overridable by --data-dir and QUILT_DATA_DIR)
# data_dir:

# Grid used by "quilt new" when --rows/--cols are not given
grid:
  rows: 4
  cols: 4

# TOML shape catalog (optional; the built-in palette is used when empty).
# Relative paths here and in data_dir are read from this directory.
# palette_file:

# debug, info, warn, error
log_level: info
`

// loadConfig reads config.yaml from configDir using Viper. It creates the
// directory and a default config.yaml on first run. Environment variables
// prefixed QUILT_ override file values (grid.rows is QUILT_GRID_ROWS).
func loadConfig(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyGridRows, types.DefaultRows)
	v.SetDefault(cfgKeyGridCols, types.DefaultColumns)
	v.SetDefault(cfgKeyLogLevel, "info")
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// ensureDefaultConfigFile creates a default config.yaml if none exists.
func ensureDefaultConfigFile(configDir string) error {
	path := paths.ConfigFile(configDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}

// defaultGrid returns the configured grid for new designs.
func defaultGrid(v *viper.Viper) types.Grid {
	return types.Grid{Rows: v.GetInt(cfgKeyGridRows), Cols: v.GetInt(cfgKeyGridCols)}
}
