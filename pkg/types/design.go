package types

import "time"

// Design is a saved board: its grid and the placements on it.
type Design struct {
	DesignID   string      `json:"design_id"`  // UUID v7, generated on creation.
	Name       string      `json:"name"`       // Human-readable name (required).
	Rows       int         `json:"rows"`       // Grid rows, fixed at creation.
	Cols       int         `json:"cols"`       // Grid columns, fixed at creation.
	CreatedAt  time.Time   `json:"created_at"` // Timestamp of creation.
	UpdatedAt  time.Time   `json:"updated_at"` // Timestamp of last save.
	Placements []Placement `json:"placements"`
}

// Grid returns the design's layout.
func (d *Design) Grid() Grid {
	return Grid{Rows: d.Rows, Cols: d.Cols}
}

// SetPlacements replaces the stored placements and refreshes UpdatedAt.
func (d *Design) SetPlacements(ps []Placement) {
	d.Placements = append([]Placement(nil), ps...)
	d.UpdatedAt = time.Now()
}

// DesignStore persists designs. Callers attach to a backend, work with
// designs, and detach when done.
type DesignStore interface {
	// Attach connects the store to the backend described by config.
	// Returns ErrAlreadyAttached if called while attached.
	Attach(config Config) error

	// Detach releases backend resources. Idempotent.
	Detach() error

	// Create stores a new empty design and returns it.
	Create(name string, grid Grid) (*Design, error)

	// Get returns the design with the given ID or unique name.
	// Returns ErrNotFound if none matches.
	Get(ref string) (*Design, error)

	// Save replaces the stored placements of an existing design.
	Save(d *Design) error

	// Delete removes a design and its placements.
	Delete(id string) error

	// List returns every design ordered by creation time.
	List() ([]*Design, error)
}
