package handlers

import (
	"fmt"
	"strconv"

	"github.com/gorilla/schema"

	"github.com/dkoval/minehunt-server/internal/game"
	"github.com/dkoval/minehunt-server/internal/repository"
)

type NewGameDTO struct {
	Difficulty string `schema:"difficulty,required"`
}

func ParseNewGameDTO(src map[string][]string) (NewGameDTO, error) {
	var dto NewGameDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, src)
	return dto, err
}

type Position struct {
	X int `schema:"x,required"`
	Y int `schema:"y,required"`
}

func ParsePosition(src map[string][]string) (Position, error) {
	var pos Position
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&pos, src)
	return pos, err
}

type Move int8

const (
	MoveReveal Move = iota
	MoveFlag
)

func ParseMove(s string) (Move, error) {
	switch s {
	case "reveal":
		return MoveReveal, nil
	case "flag":
		return MoveFlag, nil
	default:
		return 0, fmt.Errorf("move must be %q or %q", "reveal", "flag")
	}
}

// CellUpdate mirrors one revealed cell into the caller's view, in the
// order the engine revealed it.
type CellUpdate struct {
	X    int           `json:"x"`
	Y    int           `json:"y"`
	Tile game.TileView `json:"tile"`
}

type GameSessionDTO struct {
	GameSessionId string        `json:"game_session_id"`
	Difficulty    string        `json:"difficulty"`
	TestLayout    bool          `json:"test_layout"`
	Rows          int           `json:"rows"`
	Cols          int           `json:"cols"`
	MineCount     int           `json:"mine_count"`
	FlagsCount    int           `json:"flags_count"`
	ClickedCount  int           `json:"clicked_count"`
	Outcome       string        `json:"outcome"`
	Grid          game.GridView `json:"grid"`
	StartedAt     *int64        `json:"started_at,omitempty"`
	EndedAt       *int64        `json:"ended_at,omitempty"`
}

type MoveResultDTO struct {
	Outcome  game.Outcome    `json:"outcome"`
	Revealed []CellUpdate    `json:"revealed"`
	Session  *GameSessionDTO `json:"session"`
}

func sessionOver(session *repository.GameSession) bool {
	return session.Outcome == game.Loss.String() ||
		session.Outcome == game.Win.String() ||
		session.Outcome == game.WinTreasure.String()
}

func NewGameSessionDTO(
	session *repository.GameSession, e *game.Engine,
) *GameSessionDTO {
	dto := &GameSessionDTO{
		GameSessionId: strconv.FormatInt(session.GameSessionID, 10),
		Difficulty:    session.Difficulty,
		TestLayout:    session.TestLayout,
		Rows:          e.Board.Rows,
		Cols:          e.Board.Cols,
		MineCount:     e.MinesCount,
		FlagsCount:    e.FlagsCount,
		ClickedCount:  e.ClickedCount,
		Outcome:       session.Outcome,
	}
	if sessionOver(session) {
		dto.Grid = e.RenderAll()
	} else {
		dto.Grid = e.Render()
	}
	if e.StartTime != nil {
		t := e.StartTime.UnixMilli()
		dto.StartedAt = &t
	}
	if session.EndedAt != nil {
		t := session.EndedAt.UnixMilli()
		dto.EndedAt = &t
	}
	return dto
}
