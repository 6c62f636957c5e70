package game

import "fmt"

type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Expert       Difficulty = "expert"
)

type preset struct {
	rows, cols         int
	minMines, maxMines int // inclusive
}

var presets = map[Difficulty]preset{
	Beginner:     {rows: 8, cols: 8, minMines: 1, maxMines: 10},
	Intermediate: {rows: 16, cols: 16, minMines: 11, maxMines: 40},
	Expert:       {rows: 30, cols: 16, minMines: 41, maxMines: 99},
}

func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if _, ok := presets[d]; !ok {
		return "", fmt.Errorf("unknown difficulty level: %q", s)
	}
	return d, nil
}
