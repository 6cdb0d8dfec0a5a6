package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Scoring defaults applied to zero-valued level fields.
const (
	DefaultAwardPoints        = 100
	DefaultChargePoints       = 5
	DefaultMinPoints          = 20
	DefaultNextLevelThreshold = 100
)

var errNoLevelData = errors.New("level has no data payload")

// Level is a difficulty tier: scoring parameters plus game-specific data.
type Level struct {
	Value              int             `json:"value"`
	AwardPoints        int             `json:"awardPoints"`
	ChargePoints       int             `json:"chargePoints"`
	MinPoints          int             `json:"minPoints"`
	NextLevelThreshold int             `json:"nextLevelThreshold"`
	Data               json.RawMessage `json:"data,omitempty"`
}

// withDefaults fills zero scoring fields.
func (l Level) withDefaults() Level {
	if l.AwardPoints == 0 {
		l.AwardPoints = DefaultAwardPoints
	}
	if l.ChargePoints == 0 {
		l.ChargePoints = DefaultChargePoints
	}
	if l.MinPoints == 0 {
		l.MinPoints = DefaultMinPoints
	}
	if l.NextLevelThreshold == 0 {
		l.NextLevelThreshold = DefaultNextLevelThreshold
	}
	return l
}

// NewLevel returns a Level with defaults applied. The ordinal is assigned
// on registration.
func NewLevel(l Level) Level { return l.withDefaults() }

// Decode unmarshals the level's data payload into v.
func (l Level) Decode(v any) error {
	if len(l.Data) == 0 {
		return fmt.Errorf("level %d: %w", l.Value, errNoLevelData)
	}
	if err := json.Unmarshal(l.Data, v); err != nil {
		return fmt.Errorf("level %d data: %w", l.Value, err)
	}
	return nil
}

// levelsDoc is the on-disk shape of levels.json.
type levelsDoc struct {
	Levels []Level `json:"levels"`
}

// LoadLevels decodes a levels document. Source ordinals are discarded;
// Bootstrapper.AddLevel assigns them.
func LoadLevels(r io.Reader) ([]Level, error) {
	var doc levelsDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode levels: %w", err)
	}
	out := make([]Level, 0, len(doc.Levels))
	for _, l := range doc.Levels {
		l.Value = 0
		out = append(out, l.withDefaults())
	}
	return out, nil
}
