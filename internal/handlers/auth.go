package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/crypto/bcrypt"

	"github.com/dkoval/minehunt-server/internal/config"
	"github.com/dkoval/minehunt-server/internal/middleware"
	"github.com/dkoval/minehunt-server/internal/repository"
)

type AuthHandler struct {
	logger  *slog.Logger
	queries *repository.Queries
	jwt     *config.JWT
	cookies *config.Cookies
}

func NewAuthHandler(
	logger *slog.Logger,
	queries *repository.Queries,
	jwt *config.JWT,
	cookies *config.Cookies,
) *AuthHandler {
	return &AuthHandler{
		logger:  logger,
		queries: queries,
		jwt:     jwt,
		cookies: cookies,
	}
}

type CredentialsDTO struct {
	Username string `schema:"username,required"`
	Password string `schema:"password,required"`
}

func parseCredentials(r *http.Request) (CredentialsDTO, error) {
	var dto CredentialsDTO
	if err := r.ParseForm(); err != nil {
		return dto, err
	}
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	err := dec.Decode(&dto, r.PostForm)
	return dto, err
}

func (a *AuthHandler) setPlayerCookies(w http.ResponseWriter, player *repository.Player) error {
	claims := config.NewPlayerClaims(player.PlayerID, player.Username)
	token, err := a.jwt.Sign(claims)
	if err != nil {
		return err
	}
	return a.cookies.Refresh(w, token)
}

type PlayerDTO struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
}

// Register handles POST /v1/auth/register with form-encoded credentials.
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	dto, err := parseCredentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, a.logger, wrapError(err))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to hash password", slog.Any("error", err))
		return
	}

	player, err := a.queries.CreatePlayer(r.Context(), repository.CreatePlayerParams{
		Username:     dto.Username,
		PasswordHash: hash,
	})
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		w.WriteHeader(http.StatusConflict)
		sendJSONOrLog(w, a.logger, wrapError(
			fmt.Errorf("username %q is taken", dto.Username),
		))
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to create player", slog.Any("error", err))
		return
	}

	if err := a.setPlayerCookies(w, player); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to issue auth cookies", slog.Any("error", err))
		return
	}
	w.WriteHeader(http.StatusCreated)
	sendJSONOrLog(w, a.logger, PlayerDTO{
		PlayerId: player.PlayerID,
		Username: player.Username,
	})
}

// Login handles POST /v1/auth/login with form-encoded credentials. A
// missing player and a wrong password are indistinguishable to the
// caller.
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	dto, err := parseCredentials(r)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, a.logger, wrapError(err))
		return
	}

	badCredentials := func() {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, a.logger, wrapError(fmt.Errorf("invalid credentials")))
	}

	player, err := a.queries.FetchPlayer(r.Context(), dto.Username)
	if errors.Is(err, pgx.ErrNoRows) {
		badCredentials()
		return
	}
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to fetch player", slog.Any("error", err))
		return
	}
	if bcrypt.CompareHashAndPassword(player.PasswordHash, []byte(dto.Password)) != nil {
		badCredentials()
		return
	}

	if err := a.setPlayerCookies(w, player); err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		a.logger.Error("unable to issue auth cookies", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, a.logger, PlayerDTO{
		PlayerId: player.PlayerID,
		Username: player.Username,
	})
}

// Logout handles POST /v1/auth/logout.
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

// Status handles GET /v1/auth/status, reporting the claims attached by
// the auth middleware, if any.
func (a *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	claims, ok := r.Context().Value(middleware.CtxPlayerClaims).(*config.PlayerClaims)
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		sendJSONOrLog(w, a.logger, wrapError(fmt.Errorf("not logged in")))
		return
	}
	sendJSONOrLog(w, a.logger, PlayerDTO{
		PlayerId: claims.PlayerId,
		Username: claims.Username,
	})
}
