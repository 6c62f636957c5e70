package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type GameSession struct {
	GameSessionID int64
	PlayerID      *int64
	Difficulty    string
	TestLayout    bool
	BoardRows     int32
	BoardCols     int32
	MineCount     int32
	Outcome       string
	State         []byte
	StartedAt     *time.Time
	EndedAt       *time.Time
	CreatedAt     pgtype.Timestamptz
	UpdatedAt     pgtype.Timestamptz
}

type CreateSessionParams struct {
	PlayerID   *int64
	Difficulty string
	TestLayout bool
	BoardRows  int32
	BoardCols  int32
	MineCount  int32
	State      []byte
}

func (q *Queries) CreateSession(
	ctx context.Context, params CreateSessionParams,
) (*GameSession, error) {
	args := pgx.NamedArgs{
		"difficulty":  params.Difficulty,
		"test_layout": params.TestLayout,
		"board_rows":  params.BoardRows,
		"board_cols":  params.BoardCols,
		"mine_count":  params.MineCount,
		"state":       params.State,
	}
	if params.PlayerID != nil {
		args["player_id"] = *params.PlayerID
	} else {
		args["player_id"] = nil
	}
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO game_session (
			player_id, difficulty, test_layout,
			board_rows, board_cols, mine_count, state
		)
		VALUES (
			@player_id, @difficulty, @test_layout,
			@board_rows, @board_cols, @mine_count, @state
		)
		RETURNING *;`,
		args,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

func (q *Queries) GetSession(ctx context.Context, gameSessionID int64) (*GameSession, error) {
	rows, _ := q.db.Query(
		ctx,
		"SELECT * FROM game_session WHERE game_session_id = $1",
		gameSessionID,
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[GameSession])
}

type UpdateSessionParams struct {
	GameSessionID int64
	State         []byte
	MineCount     int32
	Outcome       string
	StartedAt     *time.Time
	EndedAt       *time.Time
}

func (q *Queries) UpdateSession(ctx context.Context, params UpdateSessionParams) error {
	_, err := q.db.Exec(
		ctx,
		`UPDATE game_session SET
			state = @state,
			mine_count = @mine_count,
			outcome = @outcome,
			started_at = @started_at,
			ended_at = @ended_at,
			updated_at = now()
		WHERE game_session_id = @game_session_id`,
		pgx.NamedArgs{
			"game_session_id": params.GameSessionID,
			"state":           params.State,
			"mine_count":      params.MineCount,
			"outcome":         params.Outcome,
			"started_at":      params.StartedAt,
			"ended_at":        params.EndedAt,
		},
	)
	return err
}
