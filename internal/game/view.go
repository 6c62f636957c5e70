package game

import (
	"fmt"
	"strconv"
	"strings"
)

// TileView is what a renderer may show for one cell. The engine's cells
// stay pure data; every view keeps its own mirror built from these.
type TileView int8

const (
	TileHidden  TileView = -2
	TileFlagged TileView = -1
	// 0-8 for an open safe tile with its adjacent mine count
	TileMine     TileView = 9
	TileTreasure TileView = 10
)

func (t TileView) String() string {
	switch {
	case t == TileHidden:
		return "#"
	case t == TileFlagged:
		return "F"
	case t == TileMine:
		return "*"
	case t == TileTreasure:
		return "$"
	case 0 <= t && t <= 8:
		return strconv.Itoa(int(t))
	default:
		return "!"
	}
}

// GridView is a row-major snapshot of the board as one renderer frame.
type GridView []TileView

func (g GridView) ToString(width int) string {
	var b strings.Builder
	for x := range len(g) / width {
		for y := range width {
			fmt.Fprint(&b, g[x*width+y].String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}

func viewOf(cell *Cell, showAll bool) TileView {
	if !cell.IsRevealed && !showAll {
		if cell.IsFlagged {
			return TileFlagged
		}
		return TileHidden
	}
	switch {
	case cell.IsMine:
		return TileMine
	case cell.HasTreasure:
		return TileTreasure
	default:
		return TileView(cell.AdjacentMines)
	}
}

// TileAt returns the player-visible tile for one cell.
func (e *Engine) TileAt(x, y int) TileView {
	return viewOf(e.Board.At(x, y), false)
}

// Render snapshots the board as the player is allowed to see it.
func (e *Engine) Render() GridView {
	return e.render(false)
}

// RenderAll snapshots the board with mines and treasures exposed, for
// end-of-game presentation.
func (e *Engine) RenderAll() GridView {
	return e.render(true)
}

func (e *Engine) render(showAll bool) GridView {
	g := make(GridView, 0, e.Board.Rows*e.Board.Cols)
	for x := range e.Board.Rows {
		for y := range e.Board.Cols {
			g = append(g, viewOf(&e.Board.Cells[x][y], showAll))
		}
	}
	return g
}
