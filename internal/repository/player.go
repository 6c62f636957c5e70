package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// Player is an account row. PasswordHash holds a bcrypt digest; the
// plaintext never reaches this layer.
type Player struct {
	PlayerID     int64
	Username     string
	PasswordHash []byte
	CreatedAt    pgtype.Timestamptz
	UpdatedAt    pgtype.Timestamptz
}

type CreatePlayerParams struct {
	Username     string
	PasswordHash []byte
}

// CreatePlayer inserts a new account. Username uniqueness is enforced by
// the schema; callers translate the unique-violation into their own
// conflict response.
func (q *Queries) CreatePlayer(ctx context.Context, params CreatePlayerParams) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		`INSERT INTO player (username, password_hash)
		VALUES (@username, @password_hash)
		RETURNING player_id, username, password_hash, created_at, updated_at`,
		pgx.NamedArgs{
			"username":      params.Username,
			"password_hash": params.PasswordHash,
		},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}

// FetchPlayer looks an account up by username, the login identifier.
// Returns pgx.ErrNoRows for an unknown name.
func (q *Queries) FetchPlayer(ctx context.Context, username string) (*Player, error) {
	rows, _ := q.db.Query(
		ctx,
		`SELECT player_id, username, password_hash, created_at, updated_at
		FROM player WHERE username = @username`,
		pgx.NamedArgs{"username": username},
	)
	return pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[Player])
}
