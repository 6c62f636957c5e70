package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"strconv"
	"time"

	"github.com/dkoval/minehunt-server/internal/config"
	"github.com/dkoval/minehunt-server/internal/game"
	"github.com/dkoval/minehunt-server/internal/layout"
	"github.com/dkoval/minehunt-server/internal/middleware"
	"github.com/dkoval/minehunt-server/internal/repository"
)

type GameHandler struct {
	logger  *slog.Logger
	queries *repository.Queries
	ws      *config.WebSocket
	rnd     *rand.Rand
}

func NewGameHandler(
	logger *slog.Logger,
	queries *repository.Queries,
	ws *config.WebSocket,
	rnd *rand.Rand,
) *GameHandler {
	return &GameHandler{
		logger:  logger,
		queries: queries,
		ws:      ws,
		rnd:     rnd,
	}
}

func playerID(r *http.Request) *int64 {
	claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		return nil
	}
	return &claims.PlayerId
}

func (g *GameHandler) createSession(
	w http.ResponseWriter, r *http.Request, e *game.Engine, testLayout bool,
) {
	state, err := e.Bytes()
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to encode game state", slog.Any("error", err))
		return
	}
	session, err := g.queries.CreateSession(r.Context(), repository.CreateSessionParams{
		PlayerID:   playerID(r),
		Difficulty: string(e.Difficulty),
		TestLayout: testLayout,
		BoardRows:  int32(e.Board.Rows),
		BoardCols:  int32(e.Board.Cols),
		MineCount:  int32(e.MinesCount),
		State:      state,
	})
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create game session", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, e))
}

// NewGame handles POST /v1/game?difficulty={beginner|intermediate|expert}.
func (g *GameHandler) NewGame(w http.ResponseWriter, r *http.Request) {
	dto, err := ParseNewGameDTO(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	difficulty, err := game.ParseDifficulty(dto.Difficulty)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	e, err := game.NewEngine(difficulty, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	e.InitializeBoard()
	g.createSession(w, r, e, false)
}

// NewTestGame handles POST /v1/game/test with a CSV board layout as the
// request body. The layout must pass the 8x8 placement rules before a
// session is created from it.
func (g *GameHandler) NewTestGame(w http.ResponseWriter, r *http.Request) {
	matrix, err := layout.Parse(r.Body)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	if err := layout.Validate(matrix); err != nil {
		w.WriteHeader(http.StatusUnprocessableEntity)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	e, err := game.NewEngine(game.Beginner, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error("unable to create engine", slog.Any("error", err))
		return
	}
	e.InitializeTestBoard(matrix)
	g.createSession(w, r, e, true)
}

func (g *GameHandler) loadSession(
	w http.ResponseWriter, r *http.Request,
) (*repository.GameSession, *game.Engine, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("invalid game session id")))
		return nil, nil, false
	}
	session, err := g.queries.GetSession(r.Context(), id)
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("game session not found")))
		return nil, nil, false
	}
	e, err := game.DecodeEngine(session.State, g.rnd)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error(
			"unable to decode game state",
			slog.Int64("game_session_id", session.GameSessionID),
			slog.Any("error", err),
		)
		return nil, nil, false
	}
	return session, e, true
}

func (g *GameHandler) saveSession(
	ctx context.Context,
	session *repository.GameSession, e *game.Engine, outcome game.Outcome,
) error {
	state, err := e.Bytes()
	if err != nil {
		return err
	}
	endedAt := session.EndedAt
	if outcome.GameOver() && endedAt == nil {
		now := time.Now().UTC()
		endedAt = &now
	}
	return g.queries.UpdateSession(ctx, repository.UpdateSessionParams{
		GameSessionID: session.GameSessionID,
		State:         state,
		MineCount:     int32(e.MinesCount),
		Outcome:       outcome.String(),
		StartedAt:     e.StartTime,
		EndedAt:       endedAt,
	})
}

// Fetch handles GET /v1/game/{id}.
func (g *GameHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	session, e, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, e))
}

// applyMove runs one reveal or flag against the engine, collecting every
// cell the move uncovered in reveal order.
func applyMove(e *game.Engine, move Move, x, y int) (game.Outcome, []CellUpdate) {
	if move == MoveFlag {
		e.ToggleFlag(x, y)
		return game.NoEffect, nil
	}

	var revealed []CellUpdate
	outcome := e.RevealCell(x, y)
	if outcome != game.NoEffect {
		revealed = append(revealed, CellUpdate{X: x, Y: y, Tile: e.TileAt(x, y)})
	}
	cell := e.Board.At(x, y)
	if cell.IsRevealed && !cell.IsMine && !cell.HasTreasure && cell.AdjacentMines == 0 {
		e.RevealEmptyCells(x, y, func(cx, cy int) {
			revealed = append(revealed, CellUpdate{X: cx, Y: cy, Tile: e.TileAt(cx, cy)})
		})
		// The cascade may finish the board without another click.
		if !outcome.GameOver() && e.CheckWinCondition() {
			outcome = game.Win
		}
	}
	return outcome, revealed
}

// Move handles POST /v1/game/{id}/move?move={reveal|flag}&x={x}&y={y}.
func (g *GameHandler) Move(w http.ResponseWriter, r *http.Request) {
	move, err := ParseMove(r.URL.Query().Get("move"))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}
	pos, err := ParsePosition(r.URL.Query())
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(err))
		return
	}

	session, e, ok := g.loadSession(w, r)
	if !ok {
		return
	}
	if sessionOver(session) {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, g.logger, wrapError(fmt.Errorf("game is over")))
		return
	}
	if !e.InBounds(pos.X, pos.Y) {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, g.logger, wrapError(
			fmt.Errorf("position (%d, %d) is out of bounds", pos.X, pos.Y),
		))
		return
	}

	outcome, revealed := applyMove(e, move, pos.X, pos.Y)
	if err := g.saveSession(r.Context(), session, e, outcome); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error(
			"unable to save game session",
			slog.Int64("game_session_id", session.GameSessionID),
			slog.Any("error", err),
		)
		return
	}
	session.Outcome = outcome.String()
	sendJSONOrLog(w, g.logger, MoveResultDTO{
		Outcome:  outcome,
		Revealed: revealed,
		Session:  NewGameSessionDTO(session, e),
	})
}

// rebuildBoard discards the current board and builds a replacement: a
// fresh random layout for random sessions, the same layout replayed for
// test sessions.
func rebuildBoard(session *repository.GameSession, e *game.Engine) {
	var matrix [][]int
	if session.TestLayout {
		matrix = make([][]int, e.Board.Rows)
		for x := range e.Board.Rows {
			matrix[x] = make([]int, e.Board.Cols)
			for y := range e.Board.Cols {
				cell := e.Board.At(x, y)
				switch {
				case cell.IsMine:
					matrix[x][y] = 1
				case cell.HasTreasure:
					matrix[x][y] = 2
				}
			}
		}
	}

	e.ResetGame()
	if session.TestLayout {
		e.InitializeTestBoard(matrix)
	} else {
		e.InitializeBoard()
	}
	session.EndedAt = nil
}

// Reset handles POST /v1/game/{id}/reset.
func (g *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	session, e, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	rebuildBoard(session, e)
	if err := g.saveSession(r.Context(), session, e, game.Continue); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		g.logger.Error(
			"unable to save game session",
			slog.Int64("game_session_id", session.GameSessionID),
			slog.Any("error", err),
		)
		return
	}
	session.Outcome = game.Continue.String()
	sendJSONOrLog(w, g.logger, NewGameSessionDTO(session, e))
}
