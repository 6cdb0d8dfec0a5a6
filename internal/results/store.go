package results

import (
	"context"
	"database/sql"
)

// DefaultLimit caps leaderboard rows when no limit is given.
const DefaultLimit = 20

// MaxLimit bounds caller-supplied limits.
const MaxLimit = 100

// Record is one finished play.
type Record struct {
	PlayID        string `json:"playId"`
	GameID        string `json:"gameId"`
	PlayerID      string `json:"playerId"`
	SessionID     string `json:"sessionId"`
	Level         int    `json:"level"`
	Score         int    `json:"score"`
	NewRecord     bool   `json:"newRecord"`
	UnlockedLevel int    `json:"unlockedLevel"`
}

// Entry is a leaderboard row: a player's best score for a game.
type Entry struct {
	PlayerID string `json:"playerId"`
	Score    int    `json:"score"`
	Level    int    `json:"level"`
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert records r. A play ID already stored is ignored.
func (s *Store) Insert(ctx context.Context, r Record) error {
	_, err := s.db.ExecContext(ctx, `
        INSERT OR IGNORE INTO play_results
            (play_id, game_id, player_id, session_id, level, score, new_record, unlocked_level)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.PlayID, r.GameID, r.PlayerID, r.SessionID, r.Level, r.Score, r.NewRecord, r.UnlockedLevel,
	)
	return err
}

// Best returns the player's best score for a game, 0 when none.
func (s *Store) Best(ctx context.Context, gameID, playerID string) (int, error) {
	var best sql.NullInt64
	err := s.db.QueryRowContext(ctx,
		`SELECT MAX(score) FROM play_results WHERE game_id=? AND player_id=?`,
		gameID, playerID,
	).Scan(&best)
	return int(best.Int64), err
}

// Leaderboard lists each player's best score for a game, highest first.
// Ties go to whoever reached the score earliest.
func (s *Store) Leaderboard(ctx context.Context, gameID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	limit = min(limit, MaxLimit)
	rows, err := s.db.QueryContext(ctx, `
        SELECT player_id, MAX(score) AS best, MAX(level)
        FROM play_results
        WHERE game_id=? AND player_id <> ''
        GROUP BY player_id
        ORDER BY best DESC, MIN(created_at) ASC
        LIMIT ?`, gameID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Entry, 0, limit)
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.PlayerID, &e.Score, &e.Level); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
