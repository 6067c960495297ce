package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/quiltboard/internal/paths"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// configFile is the subset of config.yaml that init manages.
type configFile struct {
	Backend     string     `yaml:"backend"`
	DataDir     string     `yaml:"data_dir,omitempty"`
	Grid        types.Grid `yaml:"grid"`
	PaletteFile string     `yaml:"palette_file,omitempty"`
	LogLevel    string     `yaml:"log_level"`
}

func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize quilt storage",
		Long:  "Create the configuration and data directories, then initialize the design store.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd)
		},
	}
}

func (a *app) runInit(cmd *cobra.Command) error {
	logger := loggerFromContext(cmd.Context())

	dataDir, err := a.resolveDataDir()
	if err != nil {
		return sysErr(fmt.Errorf("resolve data dir: %w", err))
	}

	// Record an explicitly chosen data directory so later runs find it.
	if dataDir.Origin == paths.FromFlag {
		if err := a.recordDataDir(dataDir.Path); err != nil {
			return sysErr(fmt.Errorf("write config: %w", err))
		}
	}

	store, err := a.openStore()
	if err != nil {
		return err
	}
	if err := store.Detach(); err != nil {
		return sysErr(fmt.Errorf("finalize storage: %w", err))
	}
	logger.Debug("store initialized", "data_dir", dataDir.Path, "from", dataDir.Origin)

	if a.jsonMode {
		return writeJSON(cmd.OutOrStdout(), map[string]string{
			"config_dir": a.resolvedConfigDir,
			"data_dir":   dataDir.Path,
		})
	}
	printSuccess(cmd.OutOrStdout(), "quilt initialized")
	printKeyValue(cmd.OutOrStdout(), "config", a.resolvedConfigDir)
	printKeyValue(cmd.OutOrStdout(), "data", dataDir.Path)
	return nil
}

// recordDataDir rewrites config.yaml with data_dir set, keeping the other
// settings that Viper resolved.
func (a *app) recordDataDir(dataDir string) error {
	cfg := configFile{
		Backend:     a.cfg.GetString(cfgKeyBackend),
		DataDir:     dataDir,
		Grid:        defaultGrid(a.cfg),
		PaletteFile: a.cfg.GetString(cfgKeyPaletteFile),
		LogLevel:    a.cfg.GetString(cfgKeyLogLevel),
	}
	data, err := yaml.Marshal(&cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(paths.ConfigFile(a.resolvedConfigDir), data, 0o644); err != nil {
		return err
	}
	a.cfg.Set(cfgKeyDataDir, dataDir)
	return nil
}
