package repository

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
)

type Highscore struct {
	GameSessionID int64   `json:"game_session_id"`
	Username      *string `json:"username"`
	Difficulty    string  `json:"difficulty"`
	Outcome       string  `json:"outcome"`
	PlaytimeMs    float64 `json:"playtime_ms"`
}

type HighscoreFilter struct {
	Username   *string
	Difficulty *string
}

func (f HighscoreFilter) WhereClause() (string, pgx.NamedArgs) {
	clauses := []string{
		"outcome IN ('WIN', 'WIN_TREASURE')",
		"started_at IS NOT NULL",
		"ended_at IS NOT NULL",
	}
	args := pgx.NamedArgs{}
	if f.Username != nil {
		clauses = append(clauses, "username = @username")
		args["username"] = *f.Username
	}
	if f.Difficulty != nil {
		clauses = append(clauses, "difficulty = @difficulty")
		args["difficulty"] = *f.Difficulty
	}
	return strings.Join(clauses, " AND "), args
}

func (q *Queries) Highscores(
	ctx context.Context, filter HighscoreFilter, limit int,
) ([]Highscore, error) {
	whereClause, args := filter.WhereClause()
	args["limit"] = limit
	rows, _ := q.db.Query(
		ctx,
		`SELECT
			gs.game_session_id,
			p.username,
			gs.difficulty,
			gs.outcome,
			EXTRACT(EPOCH FROM (gs.ended_at - gs.started_at)) * 1000 AS playtime_ms
		FROM game_session gs
		LEFT JOIN player p USING (player_id)
		WHERE `+whereClause+`
		ORDER BY playtime_ms ASC
		LIMIT @limit`,
		args,
	)
	return pgx.CollectRows(rows, pgx.RowToStructByName[Highscore])
}
