package game

import "testing"

func TestTileViewString(t *testing.T) {
	cases := []struct {
		tile TileView
		want string
	}{
		{TileHidden, "#"},
		{TileFlagged, "F"},
		{TileMine, "*"},
		{TileTreasure, "$"},
		{0, "0"},
		{8, "8"},
		{TileView(11), "!"},
	}
	for _, c := range cases {
		if have := c.tile.String(); have != c.want {
			t.Errorf("TileView(%d): have %q, want %q", c.tile, have, c.want)
		}
	}
}

// A 2x3 board keeps rows and columns distinguishable: each printed line
// must hold one board row of Cols tiles, top row first.
func TestGridViewToString(t *testing.T) {
	e := mustEngine(t, Beginner)
	e.InitializeTestBoard([][]int{
		{0, 0, 1},
		{2, 0, 0},
	})

	if have, want := e.Render().ToString(e.Board.Cols), "# # # \n# # # \n"; have != want {
		t.Fatalf("have %q, want %q", have, want)
	}

	e.ToggleFlag(1, 0)
	e.RevealCell(0, 0)
	e.RevealEmptyCells(0, 0, nil)
	if have, want := e.Render().ToString(e.Board.Cols), "0 1 # \nF 1 # \n"; have != want {
		t.Fatalf("have %q, want %q", have, want)
	}

	if have, want := e.RenderAll().ToString(e.Board.Cols), "0 1 * \n$ 1 1 \n"; have != want {
		t.Fatalf("have %q, want %q", have, want)
	}
}

func TestTileAt(t *testing.T) {
	e := mustEngine(t, Beginner)
	e.InitializeTestBoard([][]int{{0, 0, 1}})

	if have := e.TileAt(0, 0); have != TileHidden {
		t.Fatalf("have %v, want hidden", have)
	}
	e.RevealCell(0, 1)
	if have := e.TileAt(0, 1); have != 1 {
		t.Fatalf("have %v, want 1", have)
	}
	e.ToggleFlag(0, 2)
	if have := e.TileAt(0, 2); have != TileFlagged {
		t.Fatalf("have %v, want flagged", have)
	}
}
