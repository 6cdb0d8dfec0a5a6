// apps/go-server/internal/store/memory.go
//
// In-memory registry of running plays.
// Plays hold a live scene and a runner goroutine, so they are never
// serialized; this store only indexes them by ID for the HTTP layer.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Idle lists plays whose last input predates a cutoff, for the reaper.
//   - State is lost when the process restarts.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/robalobadob/minigames/apps/go-server/internal/play"
)

var ErrNotFound = errors.New("play not found")

// Store indexes running plays.
type Store interface {
	Save(ctx context.Context, p *play.Play) error
	// Get returns ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*play.Play, error)
	Delete(ctx context.Context, id string) (*play.Play, error)
	// Idle returns plays with no input since cutoff.
	Idle(cutoff time.Time) []*play.Play
	Len() int
}

type memory struct {
	mu    sync.RWMutex
	plays map[string]*play.Play
}

func NewMemoryStore() Store {
	return &memory{plays: make(map[string]*play.Play)}
}

func (m *memory) Save(ctx context.Context, p *play.Play) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plays[p.ID] = p
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*play.Play, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if p, ok := m.plays[id]; ok {
		return p, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) (*play.Play, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.plays[id]
	if !ok {
		return nil, ErrNotFound
	}
	delete(m.plays, id)
	return p, nil
}

func (m *memory) Idle(cutoff time.Time) []*play.Play {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*play.Play
	for _, p := range m.plays {
		if p.LastActive().Before(cutoff) {
			out = append(out, p)
		}
	}
	return out
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.plays)
}
