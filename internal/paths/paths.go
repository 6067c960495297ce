// Package paths locates the files quilt reads and writes: the config
// directory (config.yaml, the editor log, palette catalogs named by a
// relative path) and the data directory holding the design store.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// File and directory names.
const (
	AppName            = "quilt"
	DefaultDataDirName = ".quilt-db"
	ConfigFileName     = "config.yaml"
	EditLogName        = "edit.log"
)

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "QUILT_CONFIG_DIR"
	EnvDataDir   = "QUILT_DATA_DIR"
)

// Origin names the setting a resolved directory came from.
type Origin string

// Origins in precedence order.
const (
	FromFlag    Origin = "flag"
	FromEnv     Origin = "env"
	FromConfig  Origin = "config"
	FromDefault Origin = "default"
)

// Dir is an absolute directory and the setting that chose it.
type Dir struct {
	Path   string
	Origin Origin
}

// Swapped in tests.
var (
	userConfigDir = os.UserConfigDir
	userHomeDir   = os.UserHomeDir
)

// candidate is one rung of a precedence chain. A relative value is taken
// from base when base is set, otherwise from the working directory.
type candidate struct {
	value  string
	origin Origin
	base   string
}

// first returns the first candidate with a value.
func first(cands ...candidate) (Dir, bool, error) {
	for _, c := range cands {
		if c.value == "" {
			continue
		}
		p, err := absolute(c.value, c.base)
		if err != nil {
			return Dir{}, false, err
		}
		return Dir{Path: p, Origin: c.origin}, true, nil
	}
	return Dir{}, false, nil
}

// absolute expands a leading ~ and anchors a relative path at base.
func absolute(path, base string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := userHomeDir()
		if err != nil {
			return "", fmt.Errorf("expand %s: %w", path, err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	if !filepath.IsAbs(path) && base != "" {
		return filepath.Join(base, path), nil
	}
	return filepath.Abs(path)
}

// ConfigDir resolves the configuration directory: --config-dir, then
// QUILT_CONFIG_DIR, then quilt under the user config directory
// ($XDG_CONFIG_HOME or ~/.config on Linux).
func ConfigDir(flag string) (Dir, error) {
	d, ok, err := first(
		candidate{value: flag, origin: FromFlag},
		candidate{value: os.Getenv(EnvConfigDir), origin: FromEnv},
	)
	if ok || err != nil {
		return d, err
	}
	base, err := userConfigDir()
	if err != nil {
		return Dir{}, fmt.Errorf("user config dir: %w", err)
	}
	return Dir{Path: filepath.Join(base, AppName), Origin: FromDefault}, nil
}

// DataDir resolves the design store directory: --data-dir, then
// QUILT_DATA_DIR, then data_dir from config.yaml (relative to configDir),
// then .quilt-db in the working directory.
func DataDir(flag, configDir, configured string) (Dir, error) {
	d, _, err := first(
		candidate{value: flag, origin: FromFlag},
		candidate{value: os.Getenv(EnvDataDir), origin: FromEnv},
		candidate{value: configured, origin: FromConfig, base: configDir},
		candidate{value: DefaultDataDirName, origin: FromDefault},
	)
	return d, err
}

// PaletteFile resolves the palette_file setting against configDir. An empty
// setting stays empty and selects the built-in palette.
func PaletteFile(configDir, value string) (string, error) {
	if value == "" {
		return "", nil
	}
	return absolute(value, configDir)
}

// ConfigFile returns the path of config.yaml in configDir.
func ConfigFile(configDir string) string {
	return filepath.Join(configDir, ConfigFileName)
}

// EditLog returns the path of the editor's debug log in configDir.
func EditLog(configDir string) string {
	return filepath.Join(configDir, EditLogName)
}
