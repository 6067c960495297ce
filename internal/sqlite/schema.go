package sqlite

import (
	"fmt"

	"github.com/mesh-intelligence/quiltboard/pkg/types"
)

// Schema DDL for the design store. The unique indexes on placements keep
// the board's exclusivity invariant true at rest: one token per cell and
// one cell per token within a design.
var (
	createDesigns = fmt.Sprintf(`CREATE TABLE designs (
    design_id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    rows INTEGER NOT NULL CHECK (rows BETWEEN 1 AND %[1]d),
    cols INTEGER NOT NULL CHECK (cols BETWEEN 1 AND %[1]d),
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`, types.MaxGridSide)

	createPlacements = `CREATE TABLE placements (
    design_id TEXT NOT NULL,
    token_id TEXT NOT NULL,
    cell_id TEXT NOT NULL,
    cell_ord INTEGER NOT NULL,
    shape TEXT NOT NULL,
    FOREIGN KEY (design_id) REFERENCES designs(design_id) ON DELETE CASCADE
);`
)

// trgPlacementsCell rejects a placement whose cell is not c<cell_ord> or
// lies outside its design's grid.
const trgPlacementsCell = `CREATE TRIGGER trg_placements_cell BEFORE INSERT ON placements
FOR EACH ROW
WHEN NEW.cell_id IS NOT 'c' || NEW.cell_ord
    OR NEW.cell_ord < 1
    OR NEW.cell_ord > (SELECT rows * cols FROM designs WHERE design_id = NEW.design_id)
BEGIN
    SELECT RAISE(ABORT, 'placement cell outside design grid');
END;`

// Index DDL.
const (
	idxDesignsName         = `CREATE INDEX idx_designs_name ON designs(name);`
	idxPlacementsCell      = `CREATE UNIQUE INDEX idx_placements_cell ON placements(design_id, cell_id);`
	idxPlacementsToken     = `CREATE UNIQUE INDEX idx_placements_token ON placements(design_id, token_id);`
	idxPlacementsDesignOrd = `CREATE INDEX idx_placements_design_ord ON placements(design_id, cell_ord);`
)

// schemaDDL lists all CREATE TABLE statements in dependency order.
var schemaDDL = []string{
	createDesigns,
	createPlacements,
}

// indexDDL lists the CREATE INDEX and CREATE TRIGGER statements that run
// after the tables exist.
var indexDDL = []string{
	idxDesignsName,
	idxPlacementsCell,
	idxPlacementsToken,
	idxPlacementsDesignOrd,
	trgPlacementsCell,
}
