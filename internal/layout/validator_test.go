package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// boardWith builds an 8x8 matrix with mines at the given coordinates
// and treasures at the given coordinates.
func boardWith(mines [][2]int, treasures [][2]int) [][]int {
	matrix := make([][]int, Size)
	for x := range matrix {
		matrix[x] = make([]int, Size)
	}
	for _, m := range mines {
		matrix[m[0]][m[1]] = Mine
	}
	for _, tr := range treasures {
		matrix[tr[0]][tr[1]] = Treasure
	}
	return matrix
}

// Eight diagonal mines (unique rows and columns, one on the diagonal,
// none orthogonally adjacent), a ninth next to (0,0) and a tenth clear
// of everything.
var acceptedMines = [][2]int{
	{0, 0}, {1, 1}, {2, 2}, {3, 3}, {4, 4}, {5, 5}, {6, 6}, {7, 7},
	{0, 1}, // ninth: orthogonally adjacent to (0,0)
	{7, 0}, // tenth: isolated from the rest
}

func TestValidateAccepted(t *testing.T) {
	board := boardWith(acceptedMines, [][2]int{{3, 7}, {5, 0}})
	require.NoError(t, Validate(board))
}

func TestValidateStructural(t *testing.T) {
	t.Parallel()

	t.Run("wrong row count", func(t *testing.T) {
		board := boardWith(acceptedMines, nil)[:7]
		assert.ErrorIs(t, Validate(board), ErrDimensions)
	})

	t.Run("ragged row", func(t *testing.T) {
		board := boardWith(acceptedMines, nil)
		board[3] = board[3][:7]
		assert.ErrorIs(t, Validate(board), ErrDimensions)
	})

	t.Run("invalid value", func(t *testing.T) {
		board := boardWith(acceptedMines, nil)
		board[2][5] = 3
		err := Validate(board)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid value 3 at (2, 5)")
	})

	t.Run("too many treasures", func(t *testing.T) {
		treasures := [][2]int{
			{0, 3}, {0, 5}, {1, 3}, {1, 5}, {2, 0}, {2, 6}, {3, 0}, {3, 5}, {4, 0}, {4, 6},
		}
		board := boardWith(acceptedMines, treasures)
		assert.ErrorIs(t, Validate(board), ErrTreasures)
	})

	t.Run("eleven mines", func(t *testing.T) {
		mines := append([][2]int{}, acceptedMines...)
		mines = append(mines, [2]int{5, 2})
		err := Validate(boardWith(mines, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "exactly 10 mines")
		assert.Contains(t, err.Error(), "found 11")
	})

	t.Run("nine mines", func(t *testing.T) {
		err := Validate(boardWith(acceptedMines[:9], nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "found 9")
	})
}

func TestValidatePlacement(t *testing.T) {
	t.Parallel()

	t.Run("no diagonal mine", func(t *testing.T) {
		// shifted permutation: unique rows and columns but no fixed
		// point, and neither extra mine can repair the diagonal
		mines := [][2]int{
			{0, 1}, {0, 3}, {1, 2}, {1, 4}, {2, 3},
			{3, 4}, {4, 5}, {5, 6}, {6, 7}, {7, 0},
		}
		err := Validate(boardWith(mines, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unique rows and columns")
	})

	t.Run("diagonal secured by repair", func(t *testing.T) {
		// The greedy pass takes (2,0) for row 2 and passes over the
		// diagonal mine (2,2); the repair step swaps (2,2) in for the
		// last anchor (7,1). The swap keeps the anchors clear of each
		// other: (2,2) is two columns from (2,0) and three rows from
		// (5,2). The displaced (7,1) rejoins the candidate pool as the
		// isolated tenth mine, with (7,5) the ninth under anchor (6,5).
		mines := [][2]int{
			{0, 3}, {1, 6}, {2, 0}, {2, 2}, {3, 4},
			{4, 7}, {5, 2}, {6, 5}, {7, 1}, {7, 5},
		}
		require.NoError(t, Validate(boardWith(mines, nil)))
	})

	t.Run("orthogonally adjacent anchors rejected", func(t *testing.T) {
		// the repair step swaps in a diagonal mine without re-checking
		// row/column uniqueness, which can produce adjacent anchors
		mines := [][2]int{
			{0, 1}, {1, 2}, {2, 0}, {3, 4}, {4, 6},
			{5, 7}, {6, 5}, {7, 3}, {6, 6}, {0, 7},
		}
		// greedy selects the first eight (all unique rows/columns, no
		// diagonal); repair replaces (7,3) with (6,6), which sits next
		// to nothing orthogonally — but (6,6) and (6,5) share row 6
		err := Validate(boardWith(mines, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "adjacent")
	})

	t.Run("no valid ninth and tenth", func(t *testing.T) {
		// both leftover mines are clear of the anchors, so no ninth is
		// orthogonally adjacent to any anchor
		mines := [][2]int{
			{0, 0}, {0, 4}, {1, 1}, {2, 2}, {3, 3},
			{4, 0}, {4, 4}, {5, 5}, {6, 6}, {7, 7},
		}
		err := Validate(boardWith(mines, nil))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "9th and 10th")
	})
}

func TestValidateOrderSensitivity(t *testing.T) {
	// The greedy scan honors input (row-major) order: (0,1) is passed
	// over because row 0 is taken by (0,0), and (7,0) because column 0
	// is taken — the anchors end up being exactly the diagonal.
	board := boardWith(acceptedMines, nil)
	require.NoError(t, Validate(board))

	// Moving the ninth mine away from every anchor breaks the pair
	// search even though ten mines remain.
	board[0][1] = Empty
	board[0][4] = Mine
	err := Validate(board)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "9th and 10th")
}

func TestValidateIsPure(t *testing.T) {
	board := boardWith(acceptedMines, [][2]int{{3, 7}})
	before := make([][]int, len(board))
	for i, row := range board {
		before[i] = append([]int(nil), row...)
	}
	require.NoError(t, Validate(board))
	assert.Equal(t, before, board, "Validate must not mutate its input")

	// repeated calls agree
	require.NoError(t, Validate(board))
}
