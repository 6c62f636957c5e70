package layout

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Parse reads a delimited test board: 8 rows of 8 comma-separated
// integer fields. It only converts; run [Validate] on the result before
// building a board from it.
func Parse(r io.Reader) ([][]int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("unable to parse board file: %w", err)
	}

	matrix := make([][]int, 0, len(records))
	for x, record := range records {
		row := make([]int, 0, len(record))
		for y, field := range record {
			value, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf(
					"invalid field %q at row %d, column %d: must be an integer",
					field, x, y,
				)
			}
			row = append(row, value)
		}
		matrix = append(matrix, row)
	}
	return matrix, nil
}

// ReadFile loads and fully validates a curated board file. On any
// failure no board is returned, so a partially constructed board can
// never leak to the caller.
func ReadFile(path string) ([][]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read board file: %w", err)
	}
	defer f.Close()

	matrix, err := Parse(f)
	if err != nil {
		return nil, err
	}
	if err := Validate(matrix); err != nil {
		return nil, err
	}
	return matrix, nil
}
