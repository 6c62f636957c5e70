package game

// Cell is the atomic unit of board state. Row and Col are set once at
// construction and never change afterwards. A cell is never both a mine
// and a treasure, and never both revealed and flagged.
type Cell struct {
	IsMine        bool
	HasTreasure   bool
	IsFlagged     bool
	IsRevealed    bool
	AdjacentMines int
	Row, Col      int
}

// reveal marks the cell revealed unless it is flagged. A flag must be
// cleared before the cell can be revealed; revealing is irreversible.
func (c *Cell) reveal() {
	if !c.IsFlagged {
		c.IsRevealed = true
	}
}

// toggleFlag flips the flag state of a hidden cell. Revealed cells
// cannot be flagged.
func (c *Cell) toggleFlag() {
	if !c.IsRevealed {
		c.IsFlagged = !c.IsFlagged
	}
}
