package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// Create stores a new empty design and persists designs.jsonl.
func (b *Backend) Create(name string, grid types.Grid) (*types.Design, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, types.ErrInvalidName
	}
	if err := grid.Validate(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	now := time.Now().UTC()
	d := &types.Design{
		DesignID:   generateUUID(),
		Name:       name,
		Rows:       grid.Rows,
		Cols:       grid.Cols,
		CreatedAt:  now,
		UpdatedAt:  now,
		Placements: []types.Placement{},
	}
	_, err := b.db.Exec(
		`INSERT INTO designs (design_id, name, rows, cols, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?)`,
		d.DesignID, d.Name, d.Rows, d.Cols, formatTime(d.CreatedAt), formatTime(d.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert design: %w", err)
	}
	if err := persistDesigns(b.db, b.config.DataDir); err != nil {
		return nil, fmt.Errorf("persist designs: %w", err)
	}
	return d, nil
}

// Get returns the design whose ID equals ref or, failing that, whose name
// equals ref. A name shared by several designs returns ErrAmbiguousName.
func (b *Backend) Get(ref string) (*types.Design, error) {
	if strings.TrimSpace(ref) == "" {
		return nil, types.ErrInvalidID
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	id, err := b.resolveLocked(ref)
	if err != nil {
		return nil, err
	}
	return b.getLocked(id)
}

func (b *Backend) resolveLocked(ref string) (string, error) {
	var id string
	err := b.db.QueryRow("SELECT design_id FROM designs WHERE design_id = ?", ref).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}

	rows, err := b.db.Query("SELECT design_id FROM designs WHERE name = ? LIMIT 2", strings.TrimSpace(ref))
	if err != nil {
		return "", err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		if err := rows.Scan(&id); err != nil {
			return "", err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}
	switch len(ids) {
	case 0:
		return "", fmt.Errorf("%q: %w", ref, types.ErrNotFound)
	case 1:
		return ids[0], nil
	default:
		return "", fmt.Errorf("%q: %w", ref, types.ErrAmbiguousName)
	}
}

func (b *Backend) getLocked(id string) (*types.Design, error) {
	row := b.db.QueryRow(
		"SELECT design_id, name, rows, cols, created_at, updated_at FROM designs WHERE design_id = ?", id)
	d, err := scanDesign(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", id, types.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	if d.Placements, err = b.placementsLocked(id); err != nil {
		return nil, err
	}
	return d, nil
}

func (b *Backend) placementsLocked(id string) ([]types.Placement, error) {
	rows, err := b.db.Query(
		"SELECT token_id, cell_id, shape FROM placements WHERE design_id = ? ORDER BY cell_ord", id)
	if err != nil {
		return nil, fmt.Errorf("query placements: %w", err)
	}
	defer rows.Close()

	ps := []types.Placement{}
	for rows.Next() {
		var p types.Placement
		var cell, shape string
		if err := rows.Scan(&p.TokenID, &cell, &shape); err != nil {
			return nil, err
		}
		p.CellID = types.CellID(cell)
		p.Shape = types.ShapeKind(shape)
		ps = append(ps, p)
	}
	return ps, rows.Err()
}

// Save replaces the placements of an existing design in one transaction.
// Placements outside the design's grid, double-booked cells, and repeated
// token ids are rejected and nothing is written.
func (b *Backend) Save(d *types.Design) error {
	if d == nil || d.DesignID == "" {
		return types.ErrInvalidID
	}
	grid := d.Grid()
	cells := make(map[types.CellID]bool, len(d.Placements))
	tokens := make(map[string]bool, len(d.Placements))
	for _, p := range d.Placements {
		if !grid.Contains(p.CellID) {
			return fmt.Errorf("save %q: %w", p.CellID, types.ErrUnknownCell)
		}
		if cells[p.CellID] {
			return fmt.Errorf("save %s: %w", p.CellID, types.ErrCellOccupied)
		}
		if tokens[p.TokenID] || p.TokenID == "" {
			return fmt.Errorf("save %q: %w", p.TokenID, types.ErrDuplicateToken)
		}
		cells[p.CellID] = true
		tokens[p.TokenID] = true
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	tx, err := b.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var rows, cols int
	err = tx.QueryRow("SELECT rows, cols FROM designs WHERE design_id = ?", d.DesignID).Scan(&rows, &cols)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%q: %w", d.DesignID, types.ErrNotFound)
	}
	if err != nil {
		return err
	}
	if rows != d.Rows || cols != d.Cols {
		return fmt.Errorf("design %q is %dx%d, not %dx%d: %w", d.DesignID, rows, cols, d.Rows, d.Cols, types.ErrInvalidGrid)
	}

	if _, err := tx.Exec("DELETE FROM placements WHERE design_id = ?", d.DesignID); err != nil {
		return fmt.Errorf("clear placements: %w", err)
	}
	for _, p := range d.Placements {
		ord, _ := types.ParseCellID(p.CellID)
		if _, err := tx.Exec(
			"INSERT INTO placements (design_id, token_id, cell_id, cell_ord, shape) VALUES (?, ?, ?, ?, ?)",
			d.DesignID, p.TokenID, string(p.CellID), ord, string(p.Shape)); err != nil {
			return fmt.Errorf("insert placement %s: %w", p.CellID, err)
		}
	}

	d.UpdatedAt = time.Now().UTC()
	if _, err := tx.Exec("UPDATE designs SET updated_at = ? WHERE design_id = ?",
		formatTime(d.UpdatedAt), d.DesignID); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}

	if err := persistDesigns(b.db, b.config.DataDir); err != nil {
		return fmt.Errorf("persist designs: %w", err)
	}
	if err := persistPlacements(b.db, b.config.DataDir); err != nil {
		return fmt.Errorf("persist placements: %w", err)
	}
	return nil
}

// Delete removes a design and its placements.
func (b *Backend) Delete(id string) error {
	if id == "" {
		return types.ErrInvalidID
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return types.ErrStoreDetached
	}

	res, err := b.db.Exec("DELETE FROM designs WHERE design_id = ?", id)
	if err != nil {
		return fmt.Errorf("delete design: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%q: %w", id, types.ErrNotFound)
	}
	if _, err := b.db.Exec("DELETE FROM placements WHERE design_id = ?", id); err != nil {
		return fmt.Errorf("delete placements: %w", err)
	}

	if err := persistDesigns(b.db, b.config.DataDir); err != nil {
		return fmt.Errorf("persist designs: %w", err)
	}
	if err := persistPlacements(b.db, b.config.DataDir); err != nil {
		return fmt.Errorf("persist placements: %w", err)
	}
	return nil
}

// List returns every design, oldest first, with placements.
func (b *Backend) List() ([]*types.Design, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return nil, types.ErrStoreDetached
	}

	rows, err := b.db.Query(
		"SELECT design_id, name, rows, cols, created_at, updated_at FROM designs ORDER BY created_at, design_id")
	if err != nil {
		return nil, fmt.Errorf("query designs: %w", err)
	}
	var out []*types.Design
	for rows.Next() {
		d, err := scanDesign(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, d := range out {
		if d.Placements, err = b.placementsLocked(d.DesignID); err != nil {
			return nil, err
		}
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDesign(s scanner) (*types.Design, error) {
	var d types.Design
	var created, updated string
	if err := s.Scan(&d.DesignID, &d.Name, &d.Rows, &d.Cols, &created, &updated); err != nil {
		return nil, err
	}
	var err error
	if d.CreatedAt, err = time.Parse(time.RFC3339Nano, created); err != nil {
		return nil, fmt.Errorf("parse created_at: %w", err)
	}
	if d.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &d, nil
}

// timeLayout is RFC 3339 with a fixed-width fraction so stored timestamps
// sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}
