// Package layout accepts or rejects curated 8x8 board files before they
// become a test board. It is a pure checker with no engine coupling and
// is safe to call concurrently.
package layout

import (
	"errors"
	"fmt"
)

const (
	Size         = 8  // boards are exactly Size x Size
	MineCount    = 10 // required number of mines
	MaxTreasures = 9
	anchorMines  = 8 // mines forming the partial permutation pattern
)

// Cell values of a curated board matrix.
const (
	Empty    = 0
	Mine     = 1
	Treasure = 2
)

type point struct {
	x, y int
}

var (
	ErrDimensions   = fmt.Errorf("invalid board dimensions: board must be %dx%d", Size, Size)
	ErrTreasures    = fmt.Errorf("invalid number of treasures: must be no more than %d", MaxTreasures)
	errNoAnchors    = errors.New("unable to select 8 mines with unique rows and columns, with one on the diagonal")
	errNoNinthTenth = errors.New("unable to find a valid 9th and 10th mine combination")
)

// Validate decides whether matrix is an acceptable curated layout. A nil
// return means accepted; otherwise the error carries the diagnostic for
// the first failed check. matrix values: 0 empty, 1 mine, 2 treasure.
func Validate(matrix [][]int) error {
	if len(matrix) != Size {
		return ErrDimensions
	}
	for _, row := range matrix {
		if len(row) != Size {
			return ErrDimensions
		}
	}

	var (
		mines         []point
		treasureCount int
	)
	for x, row := range matrix {
		for y, value := range row {
			switch value {
			case Mine:
				mines = append(mines, point{x, y})
			case Treasure:
				treasureCount++
			case Empty:
			default:
				return fmt.Errorf(
					"invalid value %d at (%d, %d): must be 0, 1, or 2", value, x, y,
				)
			}
		}
	}

	if treasureCount > MaxTreasures {
		return ErrTreasures
	}
	if len(mines) != MineCount {
		return fmt.Errorf(
			"board must have exactly %d mines, found %d", MineCount, len(mines),
		)
	}

	return validateMinePlacement(mines)
}

// validateMinePlacement applies the placement rules to the mine
// coordinates in their input (row-major) order. The selection is a
// greedy, order-dependent heuristic, kept bit-for-bit compatible with
// the reference behavior rather than replaced by a proper constraint
// solver; see the diagonal repair step in particular, which does not
// re-check row/column uniqueness of the replacement.
func validateMinePlacement(mines []point) error {
	var (
		anchors        = make([]point, 0, anchorMines)
		usedRows       [Size]bool
		usedCols       [Size]bool
		diagonalSecure bool
	)

	for _, m := range mines {
		if usedRows[m.x] || usedCols[m.y] {
			continue
		}
		anchors = append(anchors, m)
		usedRows[m.x] = true
		usedCols[m.y] = true
		if m.x == m.y {
			diagonalSecure = true
		}
		if len(anchors) == anchorMines {
			break
		}
	}

	if !diagonalSecure {
		// Single repair attempt: swap the last anchor for an unselected
		// diagonal mine. Inherited quirk: the replacement's row and
		// column are not re-validated against the other anchors.
		for _, m := range mines {
			if m.x == m.y && !containsPoint(anchors, m) {
				anchors[len(anchors)-1] = m
				diagonalSecure = true
				break
			}
		}
	}

	if len(anchors) < anchorMines || !diagonalSecure {
		return errNoAnchors
	}

	for i, a := range anchors {
		for j, b := range anchors {
			if i != j && orthAdjacent(a, b) {
				return fmt.Errorf(
					"mine placement error: (%d, %d) is adjacent to (%d, %d) by row or column",
					a.x, a.y, b.x, b.y,
				)
			}
		}
	}

	var remaining []point
	for _, m := range mines {
		if !containsPoint(anchors, m) {
			remaining = append(remaining, m)
		}
	}

	// First pair in input order wins: the ninth must touch an anchor
	// orthogonally, the tenth must sit outside the Chebyshev-1 halo of
	// every anchor and of the ninth.
	for _, ninth := range remaining {
		if !orthAdjacentToAny(ninth, anchors) {
			continue
		}
		for _, tenth := range remaining {
			if tenth == ninth {
				continue
			}
			if !chebNearAny(tenth, anchors) && !chebNear(tenth, ninth) {
				return nil
			}
		}
	}

	return errNoNinthTenth
}

func containsPoint(ps []point, p point) bool {
	for _, q := range ps {
		if q == p {
			return true
		}
	}
	return false
}

// orthAdjacent reports adjacency along a single axis only.
func orthAdjacent(a, b point) bool {
	return (absDiff(a.x, b.x) == 1 && a.y == b.y) ||
		(a.x == b.x && absDiff(a.y, b.y) == 1)
}

func orthAdjacentToAny(p point, ps []point) bool {
	for _, q := range ps {
		if orthAdjacent(p, q) {
			return true
		}
	}
	return false
}

// chebNear reports whether both coordinate differences are at most 1
// (same cell or any of the 8 surrounding cells).
func chebNear(a, b point) bool {
	return absDiff(a.x, b.x) <= 1 && absDiff(a.y, b.y) <= 1
}

func chebNearAny(p point, ps []point) bool {
	for _, q := range ps {
		if chebNear(p, q) {
			return true
		}
	}
	return false
}

func absDiff(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}
