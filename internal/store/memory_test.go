package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/robalobadob/minigames/apps/go-server/internal/core"
	"github.com/robalobadob/minigames/apps/go-server/internal/play"
)

type idleScene struct{}

func (idleScene) Key() string                      { return "game" }
func (idleScene) Begin() error                     { return nil }
func (idleScene) Advance(time.Duration)            {}
func (idleScene) Select(int) (core.Outcome, error) { return core.OutcomeIgnored, nil }
func (idleScene) Snapshot() core.Snapshot          { return core.Snapshot{} }
func (idleScene) Score() int                       { return 0 }
func (idleScene) Finished() bool                   { return false }

func newPlay(t *testing.T, id string) *play.Play {
	t.Helper()
	p, err := play.New(id, &core.Context{Config: core.GameConfig{GameID: "test"}}, idleScene{}, zerolog.Nop())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSaveGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	p := newPlay(t, "a")
	if err := s.Save(ctx, p); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "a")
	if err != nil || got != p {
		t.Fatalf("get: %v", err)
	}
	if _, err := s.Get(ctx, "b"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing get: %v", err)
	}
	if _, err := s.Delete(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Delete(ctx, "a"); !errors.Is(err, ErrNotFound) {
		t.Errorf("double delete: %v", err)
	}
	if s.Len() != 0 {
		t.Errorf("len %d", s.Len())
	}
}

func TestIdle(t *testing.T) {
	s := NewMemoryStore()
	s.Save(context.Background(), newPlay(t, "a"))
	if idle := s.Idle(time.Now().Add(-time.Minute)); len(idle) != 0 {
		t.Errorf("fresh play reported idle")
	}
	if idle := s.Idle(time.Now().Add(time.Minute)); len(idle) != 1 || idle[0].ID != "a" {
		t.Errorf("idle %v", idle)
	}
}
