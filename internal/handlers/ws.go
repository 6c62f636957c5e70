package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/dkoval/minehunt-server/internal/game"
)

var commandNargs = map[string]int{
	"g": 0, // send current session snapshot
	"r": 2, // reveal x y
	"f": 2, // flag x y
	"n": 0, // reset the board
}

func parseXY(args []string) (x int, y int, err error) {
	if x, err = strconv.Atoi(args[0]); err != nil {
		err = fmt.Errorf("first argument must be an int")
		return
	}
	if y, err = strconv.Atoi(args[1]); err != nil {
		err = fmt.Errorf("second argument must be an int")
		return
	}
	return
}

type wsFrame struct {
	Type     string          `json:"type"`
	Error    string          `json:"error,omitempty"`
	Outcome  string          `json:"outcome,omitempty"`
	Revealed []CellUpdate    `json:"revealed,omitempty"`
	Session  *GameSessionDTO `json:"session,omitempty"`
}

// ConnectWS handles GET /v1/game/{id}/connect: a websocket loop of text
// commands ("r x y", "f x y", "g", "n") answered with JSON frames. Each
// move frame carries the cells it uncovered in reveal order, so clients
// can animate the cascade without diffing grids.
func (g *GameHandler) ConnectWS(w http.ResponseWriter, r *http.Request) {
	session, e, ok := g.loadSession(w, r)
	if !ok {
		return
	}

	c, err := g.ws.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.logger.Error("unable to upgrade", slog.Any("error", err))
		return
	}
	defer c.Close()

	for {
		mt, message, err := c.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				g.logger.Warn("abnormal ws break", slog.Any("error", err))
			}
			break
		}
		if mt != websocket.TextMessage {
			break
		}

		text := strings.TrimSpace(string(message))
		parts := strings.Split(text, " ")
		nargs, known := commandNargs[parts[0]]
		if !known || nargs != len(parts)-1 {
			if err := c.WriteJSON(wsFrame{Type: "error", Error: "unknown command"}); err != nil {
				break
			}
			continue
		}

		switch parts[0] {
		case "g":
			if err := c.WriteJSON(wsFrame{
				Type:    "session",
				Session: NewGameSessionDTO(session, e),
			}); err != nil {
				g.logger.Error("unable to write json", slog.Any("error", err))
				return
			}
			continue

		case "n":
			rebuildBoard(session, e)
			if err := g.saveSession(r.Context(), session, e, game.Continue); err != nil {
				g.logger.Error("unable to save game session", slog.Any("error", err))
				return
			}
			session.Outcome = game.Continue.String()
			if err := c.WriteJSON(wsFrame{
				Type:    "session",
				Session: NewGameSessionDTO(session, e),
			}); err != nil {
				g.logger.Error("unable to write json", slog.Any("error", err))
				return
			}
			continue
		}

		x, y, err := parseXY(parts[1:])
		if err != nil {
			if err := c.WriteJSON(wsFrame{Type: "error", Error: err.Error()}); err != nil {
				break
			}
			continue
		}
		if sessionOver(session) {
			if err := c.WriteJSON(wsFrame{Type: "error", Error: "game is over"}); err != nil {
				break
			}
			continue
		}
		if !e.InBounds(x, y) {
			if err := c.WriteJSON(wsFrame{Type: "error", Error: "invalid square coordinates"}); err != nil {
				break
			}
			continue
		}

		move := MoveReveal
		if parts[0] == "f" {
			move = MoveFlag
		}
		outcome, revealed := applyMove(e, move, x, y)

		if err := g.saveSession(r.Context(), session, e, outcome); err != nil {
			g.logger.Error("unable to save game session", slog.Any("error", err))
			return
		}
		session.Outcome = outcome.String()

		if err := c.WriteJSON(wsFrame{
			Type:     "move",
			Outcome:  outcome.String(),
			Revealed: revealed,
			Session:  NewGameSessionDTO(session, e),
		}); err != nil {
			g.logger.Error("unable to write json", slog.Any("error", err))
			break
		}
	}
}
