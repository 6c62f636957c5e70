package game

import "fmt"

// AssertionError signals a broken caller contract, e.g. an out-of-bounds
// coordinate. It is raised via panic: the engine treats these as
// programming errors, not recoverable runtime conditions.
type AssertionError struct {
	message string
}

// [AssertionError] implements [error]
func (e AssertionError) Error() string {
	return e.message
}

func assertInBounds(b *Board, x, y int) {
	if b == nil {
		panic(AssertionError{"board is not initialized"})
	}
	if x < 0 || x >= b.Rows || y < 0 || y >= b.Cols {
		panic(AssertionError{fmt.Sprintf(
			"coordinates (%d, %d) out of bounds for %dx%d board",
			x, y, b.Rows, b.Cols,
		)})
	}
}
