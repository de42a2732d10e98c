package normalize

import (
	"encoding/json"
	"fmt"

	"github.com/tnicklin/omegastrikers/models"
)

type levelPayload struct {
	Timestamp      string `json:"timestamp"`
	PlayerID       string `json:"playerId"`
	CurrentLevel   *int   `json:"currentLevel"`
	CurrentLevelXP *int   `json:"currentLevelXp"`
	XPToNextLevel  *int   `json:"xpToNextLevel"`
	TotalXP        *int   `json:"totalXp"`
}

type masteryPayload struct {
	Timestamp          string                    `json:"timestamp"`
	PlayerID           string                    `json:"playerId"`
	CharacterMasteries []characterMasteryPayload `json:"characterMasteries"`
}

type characterMasteryPayload struct {
	CharacterAssetName      string `json:"characterAssetName"`
	TotalXP                 *int   `json:"totalXp"`
	MaxTier                 *int   `json:"maxTier"`
	IdxHighestTierCollected int    `json:"idxHighestTierCollecter"`
	CurrentTier             *int   `json:"currentTier"`
	CurrentTierXP           *int   `json:"currentTierXp"`
	XPToNextTier            *int   `json:"xpToNextTier"`
}

// fields collects the first missing or negative required value.
type fields struct {
	scope string
	err   error
}

func (f *fields) required(name string, v *int) int {
	if f.err != nil {
		return 0
	}
	switch {
	case v == nil:
		f.err = fmt.Errorf("%w: %s.%s is missing", ErrInvalidPayload, f.scope, name)
		return 0
	case *v < 0:
		f.err = fmt.Errorf("%w: %s.%s is negative (%d)", ErrInvalidPayload, f.scope, name, *v)
		return 0
	}
	return *v
}

// Level validates an account level payload. Values are passed through unchanged.
func Level(raw json.RawMessage) (models.LevelRecord, error) {
	var payload levelPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.LevelRecord{}, fmt.Errorf("%w: level: %v", ErrInvalidPayload, err)
	}

	f := fields{scope: "level"}
	rec := models.LevelRecord{
		Timestamp:      payload.Timestamp,
		PlayerID:       payload.PlayerID,
		CurrentLevel:   f.required("currentLevel", payload.CurrentLevel),
		CurrentLevelXP: f.required("currentLevelXp", payload.CurrentLevelXP),
		XPToNextLevel:  f.required("xpToNextLevel", payload.XPToNextLevel),
		TotalXP:        f.required("totalXp", payload.TotalXP),
	}
	if f.err != nil {
		return models.LevelRecord{}, f.err
	}
	return rec, nil
}

// Mastery validates a character mastery payload. Entries keep service order.
func Mastery(raw json.RawMessage) (models.MasteryRecord, error) {
	var payload masteryPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return models.MasteryRecord{}, fmt.Errorf("%w: mastery: %v", ErrInvalidPayload, err)
	}

	rec := models.MasteryRecord{
		Timestamp:          payload.Timestamp,
		PlayerID:           payload.PlayerID,
		CharacterMasteries: make([]models.CharacterMastery, 0, len(payload.CharacterMasteries)),
	}
	for i, entry := range payload.CharacterMasteries {
		f := fields{scope: fmt.Sprintf("characterMasteries[%d]", i)}
		m := models.CharacterMastery{
			CharacterAssetName:      entry.CharacterAssetName,
			TotalXP:                 f.required("totalXp", entry.TotalXP),
			MaxTier:                 f.required("maxTier", entry.MaxTier),
			IdxHighestTierCollected: entry.IdxHighestTierCollected,
			CurrentTier:             f.required("currentTier", entry.CurrentTier),
			CurrentTierXP:           f.required("currentTierXp", entry.CurrentTierXP),
			XPToNextTier:            f.required("xpToNextTier", entry.XPToNextTier),
		}
		if f.err != nil {
			return models.MasteryRecord{}, f.err
		}
		rec.CharacterMasteries = append(rec.CharacterMasteries, m)
	}
	return rec, nil
}
