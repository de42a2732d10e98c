// Package normalize turns statistics service payloads into the stable
// records in package models.
package normalize

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/tnicklin/omegastrikers/models"
)

var (
	// ErrNotRanked is returned when a ranked window does not contain the
	// requested player.
	ErrNotRanked = errors.New("normalize: player not present in ranked window")
	// ErrInvalidPayload is returned when a payload is malformed or misses a
	// required field.
	ErrInvalidPayload = errors.New("normalize: invalid payload")
)

// Search decodes a username search envelope.
func Search(raw json.RawMessage) (models.SearchResult, error) {
	var result models.SearchResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return models.SearchResult{}, fmt.Errorf("%w: search: %v", ErrInvalidPayload, err)
	}
	return result, nil
}

// Leaderboard decodes a leaderboard page in service order, keeping at most
// pageSize rows. Both a bare array and a {"players": [...]} envelope are
// accepted.
func Leaderboard(raw json.RawMessage, pageSize int) (models.LeaderboardPage, error) {
	var page models.LeaderboardPage

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var envelope models.AdjacentPlayers
		if err := json.Unmarshal(trimmed, &envelope); err != nil {
			return nil, fmt.Errorf("%w: leaderboard: %v", ErrInvalidPayload, err)
		}
		page = envelope.Players
	} else if err := json.Unmarshal(trimmed, &page); err != nil {
		return nil, fmt.Errorf("%w: leaderboard: %v", ErrInvalidPayload, err)
	}

	if page == nil {
		page = models.LeaderboardPage{}
	}
	if pageSize >= 0 && len(page) > pageSize {
		page = page[:pageSize]
	}
	return page, nil
}

// Ranked locates playerID in a "search around rank" window. A located entry
// without a rank becomes an untracked record in the WORLD division.
func Ranked(playerID string, raw json.RawMessage) (models.RankedRecord, error) {
	var window models.AdjacentPlayers
	if err := json.Unmarshal(raw, &window); err != nil {
		return models.RankedRecord{}, fmt.Errorf("%w: ranked: %v", ErrInvalidPayload, err)
	}

	for _, entry := range window.Players {
		if entry.PlayerID == playerID {
			return rankedRecord(entry), nil
		}
	}
	return models.RankedRecord{}, ErrNotRanked
}

func rankedRecord(entry models.PlayerSummary) models.RankedRecord {
	standing := models.Untracked()
	if entry.Rank != nil && *entry.Rank > 0 {
		standing = models.Standing{
			Tracked:        true,
			Rank:           *entry.Rank,
			DivisionID:     entry.CurrentDivisionID,
			ProgressToNext: entry.ProgressToNext,
		}
	}

	return models.RankedRecord{
		PlayerIdentity:       entry.PlayerIdentity,
		Wins:                 entry.Wins,
		Losses:               entry.Losses,
		Games:                entry.Games,
		TopRole:              entry.TopRole,
		Rating:               entry.Rating,
		MostPlayedCharacters: entry.MostPlayedCharacters,
		Standing:             standing,
	}
}
