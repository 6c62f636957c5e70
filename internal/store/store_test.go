package store

import (
	"path/filepath"
	"reflect"
	"slices"
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "records.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestStoreReadEmpty(t *testing.T) {
	s := setupTestStore(t)

	var nothing struct{}
	if err := s.Get("some key", &nothing); err != ErrNotFound {
		t.Fatalf("expected not found error, received %v", err)
	}
}

func TestStoreWriteAndRead(t *testing.T) {
	s := setupTestStore(t)

	key := "key"
	val := Record{
		Difficulty:  "beginner",
		GamesPlayed: 12,
		GamesWon:    3,
		BestTime:    42 * time.Second,
	}
	if err := s.Set(key, val); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	var rtVal Record
	if err := s.Get(key, &rtVal); err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if !reflect.DeepEqual(val, rtVal) {
		t.Fatalf("expected: %v, actual: %v", val, rtVal)
	}
}

func TestStoreUpdate(t *testing.T) {
	s := setupTestStore(t)

	key := "key"
	if err := s.Set(key, 1); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := s.Set(key, 2); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}

	var rtVal int
	if err := s.Get(key, &rtVal); err != nil {
		t.Fatalf("failed to get value: %v", err)
	}
	if rtVal != 2 {
		t.Fatalf("failed to update value (expected 2, actual %v)", rtVal)
	}
}

func TestStoreDelete(t *testing.T) {
	s := setupTestStore(t)

	if err := s.Delete("missing"); err != nil {
		t.Fatal(err)
	}

	key := "key"
	if err := s.Set(key, 1337); err != nil {
		t.Fatalf("failed to set value: %v", err)
	}
	if err := s.Delete(key); err != nil {
		t.Fatalf("failed to delete value: %v", err)
	}

	var rtVal int
	if err := s.Get(key, &rtVal); err != ErrNotFound {
		t.Fatalf("expected to get not found err, instead got %v", err)
	}
}

func TestStoreKeys(t *testing.T) {
	s := setupTestStore(t)

	for _, key := range []string{"a", "b", "c"} {
		if err := s.Set(key, 1); err != nil {
			t.Fatal(err)
		}
	}

	keys, err := s.Keys()
	if err != nil {
		t.Fatal(err)
	}
	slices.Sort(keys)
	if !reflect.DeepEqual(keys, []string{"a", "b", "c"}) {
		t.Fatalf("have %v, want [a b c]", keys)
	}
}

func TestRecords(t *testing.T) {
	records := NewRecords(setupTestStore(t))

	record, err := records.For("beginner")
	if err != nil {
		t.Fatal(err)
	}
	if record.GamesPlayed != 0 {
		t.Fatalf("fresh record should be empty, got %+v", record)
	}

	if err := records.AddWin("beginner", 90*time.Second, false); err != nil {
		t.Fatal(err)
	}
	if err := records.AddWin("beginner", 60*time.Second, true); err != nil {
		t.Fatal(err)
	}
	if err := records.AddWin("beginner", 2*time.Minute, false); err != nil {
		t.Fatal(err)
	}
	if err := records.AddLoss("beginner"); err != nil {
		t.Fatal(err)
	}

	record, err = records.For("beginner")
	if err != nil {
		t.Fatal(err)
	}
	if record.GamesPlayed != 4 || record.GamesWon != 3 || record.TreasureWins != 1 {
		t.Fatalf("unexpected counters: %+v", record)
	}
	if record.BestTime != 60*time.Second {
		t.Fatalf("have best time %v, want 1m", record.BestTime)
	}

	// An instant win carries no start time and must not rank.
	if err := records.AddWin("beginner", 0, false); err != nil {
		t.Fatal(err)
	}
	record, _ = records.For("beginner")
	if record.BestTime != 60*time.Second {
		t.Fatalf("zero playtime must not rank, got %v", record.BestTime)
	}

	all, err := NewRecords(records.store).All()
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 1 || all[0].Difficulty != "beginner" {
		t.Fatalf("unexpected records: %+v", all)
	}
}
