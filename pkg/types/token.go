package types

// ShapeKind names an entry in the shape palette.
type ShapeKind string

// Token is one placed quilt-block shape instance.
type Token struct {
	TokenID string    `json:"token_id"`
	Shape   ShapeKind `json:"shape"`
}

// TokenRef is the subject of a drag. A palette reference carries only a
// shape kind and means "instantiate a new token"; a placed reference carries
// the id of a token already on the board and means "relocate or remove it".
type TokenRef struct {
	TokenID string    `json:"token_id,omitempty"`
	Shape   ShapeKind `json:"shape,omitempty"`
}

// PaletteRef references a palette entry.
func PaletteRef(kind ShapeKind) TokenRef {
	return TokenRef{Shape: kind}
}

// PlacedRef references a token already on the board.
func PlacedRef(tokenID string) TokenRef {
	return TokenRef{TokenID: tokenID}
}

// IsPalette reports whether r originates from the palette.
func (r TokenRef) IsPalette() bool {
	return r.TokenID == ""
}

func (r TokenRef) String() string {
	if r.IsPalette() {
		return "palette:" + string(r.Shape)
	}
	return "token:" + r.TokenID
}

// Placement binds a token to a cell.
type Placement struct {
	TokenID string    `json:"token_id"`
	CellID  CellID    `json:"cell_id"`
	Shape   ShapeKind `json:"shape"`
}

// Token returns the token half of the placement.
func (p Placement) Token() Token {
	return Token{TokenID: p.TokenID, Shape: p.Shape}
}

// MoveAction says which transition a successful TryPlace applied.
type MoveAction int

// Exactly one action happens per TryPlace call.
const (
	MoveNone      MoveAction = iota // palette drag dropped outside the grid
	MoveCreate                      // new token minted and bound
	MoveRelocate                    // placed token moved to a free cell
	MoveUnchanged                   // placed token dropped on its own cell
	MoveRemove                      // placed token dropped outside the grid
)

var moveActionNames = [...]string{"none", "create", "relocate", "unchanged", "remove"}

func (a MoveAction) String() string {
	if a < 0 || int(a) >= len(moveActionNames) {
		return "unknown"
	}
	return moveActionNames[a]
}

// Move is the outcome of a successful TryPlace.
type Move struct {
	Action MoveAction `json:"action"`
	// Placement is the resulting binding; for MoveRemove it is the binding
	// that was released. Zero for MoveNone.
	Placement Placement `json:"placement"`
	// From is the cell the token occupied before the move, if any.
	From CellID `json:"from,omitempty"`
}

// Changed reports whether the move altered the placement relation.
func (m Move) Changed() bool {
	return m.Action == MoveCreate || m.Action == MoveRelocate || m.Action == MoveRemove
}
