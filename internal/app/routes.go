package app

import (
	"hash/maphash"
	"math/rand/v2"

	"github.com/dkoval/minehunt-server/internal/handlers"
	"github.com/dkoval/minehunt-server/internal/repository"
)

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

func (a *App) loadRoutes() {
	queries := repository.New(a.db)

	game := handlers.NewGameHandler(a.logger, queries, a.ws, createRand())
	auth := handlers.NewAuthHandler(a.logger, queries, a.jwt, a.cookies)
	highscores := handlers.NewHighscoreHandler(a.logger, queries)

	a.router.HandleFunc("POST /v1/game", game.NewGame)
	a.router.HandleFunc("POST /v1/game/test", game.NewTestGame)
	a.router.HandleFunc("GET /v1/game/{id}", game.Fetch)
	a.router.HandleFunc("POST /v1/game/{id}/move", game.Move)
	a.router.HandleFunc("POST /v1/game/{id}/reset", game.Reset)
	a.router.HandleFunc("/v1/game/{id}/connect", game.ConnectWS)

	a.router.HandleFunc("POST /v1/auth/register", auth.Register)
	a.router.HandleFunc("POST /v1/auth/login", auth.Login)
	a.router.HandleFunc("POST /v1/auth/logout", auth.Logout)
	a.router.HandleFunc("GET /v1/auth/status", auth.Status)

	a.router.HandleFunc("GET /v1/highscores", highscores.Highscores)
}
