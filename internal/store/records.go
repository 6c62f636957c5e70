package store

import (
	"errors"
	"time"
)

// Record accumulates one difficulty tier's lifetime stats.
type Record struct {
	Difficulty   string
	GamesPlayed  int
	GamesWon     int
	TreasureWins int
	BestTime     time.Duration
}

// Records is the typed view over a [Store] keyed by difficulty name.
type Records struct {
	store *Store
}

func NewRecords(store *Store) *Records {
	return &Records{store: store}
}

func (r *Records) For(difficulty string) (Record, error) {
	record := Record{Difficulty: difficulty}
	err := r.store.Get(difficulty, &record)
	if errors.Is(err, ErrNotFound) {
		return record, nil
	}
	return record, err
}

// AddWin counts a finished winning game and keeps the best time. A zero
// playtime means the clock never started and is not ranked.
func (r *Records) AddWin(difficulty string, playtime time.Duration, treasure bool) error {
	record, err := r.For(difficulty)
	if err != nil {
		return err
	}
	record.GamesPlayed++
	record.GamesWon++
	if treasure {
		record.TreasureWins++
	}
	if playtime > 0 && (record.BestTime == 0 || playtime < record.BestTime) {
		record.BestTime = playtime
	}
	return r.store.Set(difficulty, record)
}

func (r *Records) AddLoss(difficulty string) error {
	record, err := r.For(difficulty)
	if err != nil {
		return err
	}
	record.GamesPlayed++
	return r.store.Set(difficulty, record)
}

func (r *Records) All() ([]Record, error) {
	keys, err := r.store.Keys()
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(keys))
	for _, key := range keys {
		record, err := r.For(key)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}
