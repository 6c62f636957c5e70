package handlers

import (
	"math/rand/v2"
	"testing"

	"github.com/dkoval/minehunt-server/internal/game"
)

func testEngine(t *testing.T, matrix [][]int) *game.Engine {
	t.Helper()
	e, err := game.NewEngine(game.Beginner, rand.New(rand.NewPCG(1, 2)))
	if err != nil {
		t.Fatal(err)
	}
	e.InitializeTestBoard(matrix)
	return e
}

func TestParseMove(t *testing.T) {
	if m, err := ParseMove("reveal"); err != nil || m != MoveReveal {
		t.Fatalf("have (%v, %v), want (MoveReveal, nil)", m, err)
	}
	if m, err := ParseMove("flag"); err != nil || m != MoveFlag {
		t.Fatalf("have (%v, %v), want (MoveFlag, nil)", m, err)
	}
	if _, err := ParseMove("chord"); err == nil {
		t.Fatal("expected an error for an unknown move")
	}
}

func TestApplyMoveFlag(t *testing.T) {
	e := testEngine(t, [][]int{{0, 0, 1}})

	outcome, revealed := applyMove(e, MoveFlag, 0, 0)
	if outcome != game.NoEffect {
		t.Fatalf("have %v, want NO_EFFECT", outcome)
	}
	if revealed != nil {
		t.Fatalf("flagging must not reveal cells, got %v", revealed)
	}
	if e.FlagsCount != 1 {
		t.Fatalf("have %d flags, want 1", e.FlagsCount)
	}
}

func TestApplyMoveCascadeWins(t *testing.T) {
	e := testEngine(t, [][]int{{0, 0, 1}})

	outcome, revealed := applyMove(e, MoveReveal, 0, 0)
	if outcome != game.Win {
		t.Fatalf("have %v, want WIN", outcome)
	}
	// Clicked cell first, then the cascade in reveal order. (0, 2) is
	// the mine and stays hidden.
	want := []CellUpdate{
		{X: 0, Y: 0, Tile: 0},
		{X: 0, Y: 1, Tile: 1},
	}
	if len(revealed) != len(want) {
		t.Fatalf("have %v, want %v", revealed, want)
	}
	for i := range want {
		if revealed[i] != want[i] {
			t.Fatalf("have %v, want %v", revealed, want)
		}
	}
}

func TestApplyMoveLoss(t *testing.T) {
	e := testEngine(t, [][]int{{0, 0, 1}})

	outcome, revealed := applyMove(e, MoveReveal, 0, 2)
	if outcome != game.Loss {
		t.Fatalf("have %v, want LOSS", outcome)
	}
	if len(revealed) != 1 || revealed[0].Tile != game.TileMine {
		t.Fatalf("expected the mine itself as the only update, got %v", revealed)
	}
}

func TestApplyMoveNoOp(t *testing.T) {
	e := testEngine(t, [][]int{{0, 1}, {1, 1}})

	applyMove(e, MoveFlag, 0, 0)
	outcome, revealed := applyMove(e, MoveReveal, 0, 0)
	if outcome != game.NoEffect || revealed != nil {
		t.Fatalf("have (%v, %v), want (NO_EFFECT, nil)", outcome, revealed)
	}
}
