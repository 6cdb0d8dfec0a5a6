package results

import (
	"context"
	"path/filepath"
	"testing"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenDB(filepath.Join(t.TempDir(), "data", "results.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	// Second run is a no-op.
	if err := Migrate(db); err != nil {
		t.Fatal(err)
	}
	return NewStore(db)
}

func TestInsertIgnoresDuplicatePlay(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	r := Record{PlayID: "p1", GameID: "memo", PlayerID: "ann", Level: 1, Score: 120, UnlockedLevel: 2}
	if err := s.Insert(ctx, r); err != nil {
		t.Fatal(err)
	}
	r.Score = 999
	if err := s.Insert(ctx, r); err != nil {
		t.Fatal(err)
	}
	best, err := s.Best(ctx, "memo", "ann")
	if err != nil {
		t.Fatal(err)
	}
	if best != 120 {
		t.Errorf("best %d, want 120", best)
	}
}

func TestBestWithoutPlays(t *testing.T) {
	best, err := openStore(t).Best(context.Background(), "memo", "nobody")
	if err != nil || best != 0 {
		t.Errorf("best=%d err=%v", best, err)
	}
}

func TestLeaderboard(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)
	rows := []Record{
		{PlayID: "1", GameID: "colors", PlayerID: "ann", Level: 1, Score: 50},
		{PlayID: "2", GameID: "colors", PlayerID: "ann", Level: 2, Score: 300},
		{PlayID: "3", GameID: "colors", PlayerID: "bob", Level: 1, Score: 200},
		{PlayID: "4", GameID: "colors", PlayerID: "", Level: 1, Score: 900},
		{PlayID: "5", GameID: "memo", PlayerID: "cy", Level: 1, Score: 1000},
	}
	for _, r := range rows {
		if err := s.Insert(ctx, r); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Leaderboard(ctx, "colors", 0)
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{{"ann", 300, 2}, {"bob", 200, 1}}
	if len(got) != len(want) {
		t.Fatalf("got %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	top, err := s.Leaderboard(ctx, "colors", 1)
	if err != nil || len(top) != 1 || top[0].PlayerID != "ann" {
		t.Errorf("limit 1: %+v %v", top, err)
	}
}
