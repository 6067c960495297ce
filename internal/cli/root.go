// Package cli implements the quilt command-line interface: design storage,
// the terminal editor, and the log cabin calculator behind cobra commands.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mesh-intelligence/quiltboard/internal/paths"
	"github.com/mesh-intelligence/quiltboard/pkg/logcabin"
	"github.com/mesh-intelligence/quiltboard/pkg/palette"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// app holds global flag values and the state PersistentPreRunE loads for
// every subcommand.
type app struct {
	configDir string
	dataDir   string
	jsonMode  bool
	verbose   bool

	resolvedConfigDir string
	cfg               *viper.Viper
}

// NewRootCmd creates the top-level "quilt" command with global flags and all
// subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "quilt",
		Short: "Design quilts on a grid of blocks",
		Long: "quilt places quilt-block shapes on a grid, stores designs locally,\n" +
			"and estimates fabric for log cabin quilts.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.HasParent() {
				// The bare root only prints help.
				return nil
			}
			return a.setup(cmd)
		},
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return userErr(err)
	})

	root.PersistentFlags().StringVar(&a.configDir, "config-dir", "", "configuration directory (default: platform config dir/quilt)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "data directory (default: $(CWD)/.quilt-db)")
	root.PersistentFlags().BoolVar(&a.jsonMode, "json", false, "output as JSON")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newVersionCmd(),
		newInitCmd(a),
		newPaletteCmd(a),
		newNewCmd(a),
		newListCmd(a),
		newShowCmd(a),
		newPlaceCmd(a),
		newDeleteCmd(a),
		newEditCmd(a),
		newEstimateCmd(a),
		newPreviewCmd(a),
	)
	markArgErrors(root)
	return root
}

// markArgErrors wraps every positional argument validator in the tree so
// its failures exit as user errors.
func markArgErrors(cmd *cobra.Command) {
	if validate := cmd.Args; validate != nil {
		cmd.Args = func(c *cobra.Command, args []string) error {
			return userErr(validate(c, args))
		}
	}
	for _, sub := range cmd.Commands() {
		markArgErrors(sub)
	}
}

// setup resolves the config directory, loads config.yaml, and attaches a
// logger to the command context.
func (a *app) setup(cmd *cobra.Command) error {
	dir, err := paths.ConfigDir(a.configDir)
	if err != nil {
		return sysErr(fmt.Errorf("resolve config dir: %w", err))
	}
	cfg, err := loadConfig(dir.Path)
	if err != nil {
		return sysErr(err)
	}
	a.resolvedConfigDir = dir.Path
	a.cfg = cfg

	level, err := log.ParseLevel(cfg.GetString(cfgKeyLogLevel))
	if err != nil {
		level = log.InfoLevel
	}
	if a.verbose {
		level = log.DebugLevel
	}
	logger := newLogger(cmd.ErrOrStderr(), level)
	logger.Debug("config loaded", "dir", dir.Path, "from", dir.Origin)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, logger))
	return nil
}

// resolveDataDir follows --data-dir > QUILT_DATA_DIR > config.yaml data_dir >
// $(CWD)/.quilt-db.
func (a *app) resolveDataDir() (paths.Dir, error) {
	return paths.DataDir(a.dataDir, a.resolvedConfigDir, a.cfg.GetString(cfgKeyDataDir))
}

// Execute runs the root command and exits with the code for its error.
func Execute() {
	root := NewRootCmd()
	err := root.ExecuteContext(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, styleIconError.Render(iconError)+" "+err.Error())
	}
	os.Exit(exitCode(err))
}

// exitError carries an explicit exit code.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// sysErr marks err as a system failure (exit 2).
func sysErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitSysError, err: err}
}

// userErr marks err as a problem with the request itself (exit 1).
func userErr(err error) error {
	if err == nil {
		return nil
	}
	return &exitError{code: exitUserError, err: err}
}

// userErrors are the sentinels that mean the request itself was wrong.
var userErrors = []error{
	types.ErrCellOccupied,
	types.ErrUnknownCell,
	types.ErrUnknownToken,
	types.ErrUnknownShape,
	types.ErrDuplicateToken,
	types.ErrDragInProgress,
	types.ErrNoActiveDrag,
	types.ErrDragMismatch,
	types.ErrInvalidGrid,
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidName,
	types.ErrAmbiguousName,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	palette.ErrInvalidPalette,
	logcabin.ErrInvalidParams,
	logcabin.ErrUnknownBorderStyle,
	errPlaceSubject,
}

// exitCode maps an error to a process exit code. Domain sentinels and
// errors marked with userErr (cobra flag and argument checks) are user
// errors. Everything else, I/O and storage failures included, is a system
// error.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	for _, u := range userErrors {
		if errors.Is(err, u) {
			return exitUserError
		}
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitSysError
}
