package game

import (
	"math/rand/v2"
	"time"
)

// Engine orchestrates mine placement, reveals, flagging and win/loss
// evaluation. It is the sole mutator of its Board after construction and
// expects exactly one caller; no locking is done.
type Engine struct {
	Board        *Board
	Difficulty   Difficulty
	MinesCount   int
	FlagsCount   int
	ClickedCount int
	StartTime    *time.Time

	rnd *rand.Rand
	now func() time.Time
}

// NewEngine creates an engine for one of the three preset difficulty
// tiers. An unknown tier is a fatal configuration error. The board is
// not built yet; call [Engine.InitializeBoard] or
// [Engine.InitializeTestBoard] next.
func NewEngine(d Difficulty, rnd *rand.Rand) (*Engine, error) {
	if _, err := ParseDifficulty(string(d)); err != nil {
		return nil, err
	}
	return &Engine{Difficulty: d, rnd: rnd}, nil
}

func (e *Engine) clock() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

// InitializeBoard builds a fresh board for the engine's difficulty:
// draws the mine count uniformly from the tier's inclusive range, places
// that many mines at distinct random positions, then places a uniform
// [0, mines-1] number of treasures on the remaining cells, and finally
// freezes every cell's adjacent mine count.
func (e *Engine) InitializeBoard() {
	p := presets[e.Difficulty]
	e.Board = newBoard(p.rows, p.cols)
	e.MinesCount = p.minMines + e.rnd.IntN(p.maxMines-p.minMines+1)

	// A prefix of a random permutation is a uniform sample without
	// replacement; the next slice of the same permutation is a uniform
	// sample of the remaining (non-mine) cells.
	perm := e.rnd.Perm(p.rows * p.cols)
	for _, pos := range perm[:e.MinesCount] {
		e.Board.Cells[pos/p.cols][pos%p.cols].IsMine = true
	}

	treasures := 0
	if e.MinesCount > 1 {
		treasures = e.rnd.IntN(e.MinesCount)
	}
	for _, pos := range perm[e.MinesCount : e.MinesCount+treasures] {
		e.Board.Cells[pos/p.cols][pos%p.cols].HasTreasure = true
	}

	e.Board.computeAdjacency()
}

// InitializeTestBoard builds a board from an externally validated matrix
// of {0, 1, 2} values (0 empty, 1 mine, 2 treasure). Adjacency is
// computed exactly as on the random path.
func (e *Engine) InitializeTestBoard(matrix [][]int) {
	rows, cols := len(matrix), len(matrix[0])
	e.Board = newBoard(rows, cols)
	e.MinesCount = 0
	for x, row := range matrix {
		for y, value := range row {
			switch value {
			case 1:
				e.Board.Cells[x][y].IsMine = true
				e.MinesCount++
			case 2:
				e.Board.Cells[x][y].HasTreasure = true
			}
		}
	}
	e.Board.computeAdjacency()
}

func (e *Engine) InBounds(x, y int) bool {
	return e.Board.InBounds(x, y)
}

// RevealCell reveals the cell at (x, y) and reports the outcome. The
// very first call of a game records the start time. Revealed and flagged
// targets are a no-op. If the revealed cell has zero adjacent mines the
// caller must follow up with [Engine.RevealEmptyCells] so that cascade
// reveals can interleave with its own view updates.
func (e *Engine) RevealCell(x, y int) Outcome {
	cell := e.Board.At(x, y)

	if e.StartTime == nil {
		t := e.clock()
		e.StartTime = &t
	}

	if cell.IsRevealed || cell.IsFlagged {
		return NoEffect
	}

	cell.reveal()
	e.ClickedCount++

	if cell.HasTreasure {
		return WinTreasure
	}
	if cell.IsMine {
		return Loss
	}
	if e.CheckWinCondition() {
		return Win
	}
	return Continue
}

// RevealEmptyCells floods outward from an already revealed
// zero-adjacency cell, revealing every connected hidden neighbor.
// Flagged cells and treasures are cascade boundaries: they stay hidden
// even with zero adjacent mines. onReveal is invoked once per revealed
// cell, in reveal order, before the call returns.
//
// The walk uses an explicit stack: a worst-case empty region spans the
// whole board, which would overflow a recursive version.
func (e *Engine) RevealEmptyCells(x, y int, onReveal func(x, y int)) {
	assertInBounds(e.Board, x, y)
	type point struct{ x, y int }
	stack := []point{{x, y}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, n := range e.Board.Neighbors(p.x, p.y) {
			if n.IsRevealed || n.IsFlagged || n.HasTreasure {
				continue
			}
			n.reveal()
			if onReveal != nil {
				onReveal(n.Row, n.Col)
			}
			if n.AdjacentMines == 0 {
				stack = append(stack, point{n.Row, n.Col})
			}
		}
	}
}

// ToggleFlag flips the flag on a hidden cell. This is the only path
// that mutates FlagsCount.
func (e *Engine) ToggleFlag(x, y int) {
	cell := e.Board.At(x, y)
	if cell.IsRevealed {
		return
	}
	cell.toggleFlag()
	if cell.IsFlagged {
		e.FlagsCount++
	} else {
		e.FlagsCount--
	}
}

// CheckWinCondition scans the board once and reports whether the game is
// won. A flag on any non-mine cell blocks the win outright. Otherwise
// the game is won when all non-mines are revealed, or all mines are
// flagged, or every cell is either revealed or a mine. Never mutates
// state.
func (e *Engine) CheckWinCondition() bool {
	var unrevealed, flaggedMines int
	allRevealedOrMine := true
	for x := range e.Board.Rows {
		for y := range e.Board.Cols {
			cell := &e.Board.Cells[x][y]
			if !cell.IsMine && cell.IsFlagged {
				return false
			}
			if !cell.IsRevealed {
				unrevealed++
				if !cell.IsMine {
					allRevealedOrMine = false
				}
			}
			if cell.IsMine && cell.IsFlagged {
				flaggedMines++
			}
		}
	}
	if unrevealed == e.MinesCount || flaggedMines == e.MinesCount {
		return true
	}
	return allRevealedOrMine
}

// ResetGame discards the board and zeroes all counters. It does not
// rebuild: the caller decides between the random and fixed paths and
// calls the matching initializer afterwards.
func (e *Engine) ResetGame() {
	e.Board = nil
	e.MinesCount = 0
	e.FlagsCount = 0
	e.ClickedCount = 0
	e.StartTime = nil
}
