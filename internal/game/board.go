package game

// Board is a rectangular grid of cells. Its dimensions are fixed at
// construction; the owning [Engine] is the only mutator after that.
type Board struct {
	Rows, Cols int
	Cells      [][]Cell
}

func newBoard(rows, cols int) *Board {
	cells := make([][]Cell, rows)
	for x := range cells {
		cells[x] = make([]Cell, cols)
		for y := range cells[x] {
			cells[x][y] = Cell{Row: x, Col: y}
		}
	}
	return &Board{Rows: rows, Cols: cols, Cells: cells}
}

func (b *Board) InBounds(x, y int) bool {
	return b != nil && 0 <= x && x < b.Rows && 0 <= y && y < b.Cols
}

// At returns the cell at (x, y). Out-of-bounds coordinates are a caller
// bug and panic with an [AssertionError].
func (b *Board) At(x, y int) *Cell {
	assertInBounds(b, x, y)
	return &b.Cells[x][y]
}

var mooreOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the in-bounds cells of the Moore neighborhood of
// (x, y), clipped at board edges. Callers must not rely on the order.
func (b *Board) Neighbors(x, y int) []*Cell {
	assertInBounds(b, x, y)
	neighbors := make([]*Cell, 0, 8)
	for _, d := range mooreOffsets {
		nx, ny := x+d[0], y+d[1]
		if b.InBounds(nx, ny) {
			neighbors = append(neighbors, &b.Cells[nx][ny])
		}
	}
	return neighbors
}

func (b *Board) adjacentMines(x, y int) int {
	count := 0
	for _, n := range b.Neighbors(x, y) {
		if n.IsMine {
			count++
		}
	}
	return count
}

// computeAdjacency derives every cell's adjacent mine count. Called
// exactly once, after placement; counts are frozen afterwards.
func (b *Board) computeAdjacency() {
	for x := range b.Rows {
		for y := range b.Cols {
			b.Cells[x][y].AdjacentMines = b.adjacentMines(x, y)
		}
	}
}
