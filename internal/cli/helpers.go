package cli

import (
	"fmt"

	"github.com/mesh-intelligence/quiltboard/internal/paths"
	"github.com/mesh-intelligence/quiltboard/internal/sqlite"
	"github.com/mesh-intelligence/quiltboard/pkg/board"
	"github.com/mesh-intelligence/quiltboard/pkg/palette"
	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// openStore resolves the data directory and attaches a SQLite design store.
// The caller must defer Detach.
func (a *app) openStore() (*sqlite.Backend, error) {
	dataDir, err := a.resolveDataDir()
	if err != nil {
		return nil, sysErr(fmt.Errorf("resolve data dir: %w", err))
	}
	cfg := types.Config{
		Backend: a.cfg.GetString(cfgKeyBackend),
		DataDir: dataDir.Path,
	}
	store := sqlite.NewBackend()
	if err := store.Attach(cfg); err != nil {
		return nil, sysErr(fmt.Errorf("attach store: %w", err))
	}
	return store, nil
}

// loadPalette returns the configured TOML catalog or the built-in one. A
// relative palette_file is read from the config directory.
func (a *app) loadPalette() (*palette.Palette, error) {
	path, err := paths.PaletteFile(a.resolvedConfigDir, a.cfg.GetString(cfgKeyPaletteFile))
	if err != nil {
		return nil, sysErr(fmt.Errorf("resolve palette file: %w", err))
	}
	if path == "" {
		return palette.Default(), nil
	}
	p, err := palette.Load(path)
	if err != nil {
		return nil, fmt.Errorf("palette %s: %w", path, err)
	}
	return p, nil
}

// loadBoard rebuilds the placement board of a stored design.
func loadBoard(d *types.Design, pal *palette.Palette) (*board.Board, error) {
	b, err := board.New(d.Grid(), pal)
	if err != nil {
		return nil, err
	}
	if err := b.Restore(d.Placements); err != nil {
		return nil, fmt.Errorf("design %s: %w", d.Name, err)
	}
	return b, nil
}
