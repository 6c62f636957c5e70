package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/dkoval/minehunt-server/internal/repository"
)

type HighscoreHandler struct {
	logger  *slog.Logger
	queries *repository.Queries
}

func NewHighscoreHandler(logger *slog.Logger, queries *repository.Queries) *HighscoreHandler {
	return &HighscoreHandler{logger: logger, queries: queries}
}

type HighscoreFilterDTO struct {
	Username   *string `schema:"username"`
	Difficulty *string `schema:"difficulty"`
	Limit      int     `schema:"limit"`
}

// Highscores handles GET /v1/highscores?username=&difficulty=&limit=.
// Only finished winning sessions qualify, fastest first.
func (h *HighscoreHandler) Highscores(w http.ResponseWriter, r *http.Request) {
	var dto HighscoreFilterDTO
	dec := schema.NewDecoder()
	dec.IgnoreUnknownKeys(true)
	if err := dec.Decode(&dto, r.URL.Query()); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		sendJSONOrLog(w, h.logger, wrapError(err))
		return
	}
	if dto.Limit <= 0 || dto.Limit > 100 {
		dto.Limit = 25
	}

	highscores, err := h.queries.Highscores(r.Context(), repository.HighscoreFilter{
		Username:   dto.Username,
		Difficulty: dto.Difficulty,
	}, dto.Limit)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		h.logger.Error("unable to fetch highscores", slog.Any("error", err))
		return
	}
	sendJSONOrLog(w, h.logger, highscores)
}
