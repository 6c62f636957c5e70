package game

import "fmt"

// Outcome is the tagged result of a reveal operation. The caller drives
// end-of-game presentation off of it.
type Outcome int8

const (
	NoEffect Outcome = iota
	Continue
	Loss
	Win
	WinTreasure
)

func (o Outcome) String() string {
	switch o {
	case NoEffect:
		return "NO_EFFECT"
	case Continue:
		return "CONTINUE"
	case Loss:
		return "LOSS"
	case Win:
		return "WIN"
	case WinTreasure:
		return "WIN_TREASURE"
	default:
		return fmt.Sprintf("Outcome(%d)", int8(o))
	}
}

// GameOver reports whether the outcome ends the game.
func (o Outcome) GameOver() bool {
	return o == Loss || o == Win || o == WinTreasure
}

// Outcomes cross the API as their string tags.
func (o Outcome) MarshalJSON() ([]byte, error) {
	return []byte(`"` + o.String() + `"`), nil
}
