package models

import (
	"encoding/json"
	"time"

	"github.com/tnicklin/omegastrikers/timeutil"
)

// WorldDivision is the division reported for players without a tracked
// ranked standing.
const WorldDivision = "WORLD"

type Organization struct {
	OrganizationID string `json:"organizationId"`
	Name           string `json:"name"`
	LogoID         string `json:"logoId"`
}

// PlayerIdentity holds the identity and cosmetic fields the service repeats
// on every player-shaped payload.
type PlayerIdentity struct {
	Username     string          `json:"username"`
	PlayerID     string          `json:"playerId"`
	LogoID       string          `json:"logoId"`
	Title        string          `json:"title"`
	NameplateID  string          `json:"nameplateId"`
	EmoticonID   string          `json:"emoticonId"`
	TitleID      string          `json:"titleId"`
	Tags         []string        `json:"tags"`
	PlatformIDs  json.RawMessage `json:"platformIds,omitempty"`
	MasteryLevel int             `json:"masteryLevel"`
	Organization *Organization   `json:"organization,omitempty"`
}

// SearchMatch is one candidate returned by a username query.
type SearchMatch = PlayerIdentity

type Paging struct {
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// SearchResult is the envelope of GET /v1/players.
type SearchResult struct {
	Matches []SearchMatch `json:"matches"`
	Paging  Paging        `json:"paging"`
}

type CharacterUsage struct {
	CharacterID string `json:"characterId"`
	GamesPlayed int    `json:"gamesPlayed"`
}

// PlayerSummary is a leaderboard row as sent by the service.
type PlayerSummary struct {
	PlayerIdentity
	Rank                 *int             `json:"rank"`
	Wins                 int              `json:"wins"`
	Losses               int              `json:"losses"`
	Games                int              `json:"games"`
	TopRole              string           `json:"topRole"`
	Rating               float64          `json:"rating"`
	MostPlayedCharacters []CharacterUsage `json:"mostPlayedCharacters"`
	CurrentDivisionID    string           `json:"currentDivisionId"`
	ProgressToNext       float64          `json:"progressToNext"`
}

// LeaderboardPage is an ordered page of the ranked leaderboard.
type LeaderboardPage []PlayerSummary

// AdjacentPlayers is the envelope of the "search around rank" endpoint.
type AdjacentPlayers struct {
	Players []PlayerSummary `json:"players"`
}

// Standing is a player's position on the ranked board. The zero value is an
// untracked standing.
type Standing struct {
	Tracked        bool
	Rank           int
	DivisionID     string
	ProgressToNext float64
}

// Untracked is the standing of a player outside the tracked window.
func Untracked() Standing {
	return Standing{DivisionID: WorldDivision}
}

// RankedRecord is the normalized ranked profile of a single player.
type RankedRecord struct {
	PlayerIdentity
	Wins                 int              `json:"wins"`
	Losses               int              `json:"losses"`
	Games                int              `json:"games"`
	TopRole              string           `json:"topRole"`
	Rating               float64          `json:"rating"`
	MostPlayedCharacters []CharacterUsage `json:"mostPlayedCharacters"`
	Standing             Standing         `json:"-"`
}

// MarshalJSON flattens Standing into the rank, currentDivisionId and
// progressToNext fields existing consumers read. Untracked standings are
// written as a null rank in the WORLD division with zero progress.
func (r RankedRecord) MarshalJSON() ([]byte, error) {
	type record RankedRecord

	var (
		rank     *int
		division = WorldDivision
		progress float64
	)
	if r.Standing.Tracked {
		value := r.Standing.Rank
		rank = &value
		division = r.Standing.DivisionID
		progress = r.Standing.ProgressToNext
	}

	return json.Marshal(struct {
		record
		Rank              *int    `json:"rank"`
		CurrentDivisionID string  `json:"currentDivisionId"`
		ProgressToNext    float64 `json:"progressToNext"`
	}{
		record:            record(r),
		Rank:              rank,
		CurrentDivisionID: division,
		ProgressToNext:    progress,
	})
}

// LevelRecord is a player's account level.
type LevelRecord struct {
	Timestamp      string `json:"timestamp"`
	PlayerID       string `json:"playerId"`
	CurrentLevel   int    `json:"currentLevel"`
	CurrentLevelXP int    `json:"currentLevelXp"`
	XPToNextLevel  int    `json:"xpToNextLevel"`
	TotalXP        int    `json:"totalXp"`
}

// ComputedAt parses the time the service computed the record.
func (r LevelRecord) ComputedAt() (time.Time, error) {
	return timeutil.ParseRFC3339(r.Timestamp)
}

type CharacterMastery struct {
	CharacterAssetName      string `json:"characterAssetName"`
	TotalXP                 int    `json:"totalXp"`
	MaxTier                 int    `json:"maxTier"`
	IdxHighestTierCollected int    `json:"idxHighestTierCollecter"`
	CurrentTier             int    `json:"currentTier"`
	CurrentTierXP           int    `json:"currentTierXp"`
	XPToNextTier            int    `json:"xpToNextTier"`
}

// MasteryRecord is a player's per-character mastery progression.
type MasteryRecord struct {
	Timestamp          string             `json:"timestamp"`
	PlayerID           string             `json:"playerId"`
	CharacterMasteries []CharacterMastery `json:"characterMasteries"`
}

// ComputedAt parses the time the service computed the record.
func (r MasteryRecord) ComputedAt() (time.Time, error) {
	return timeutil.ParseRFC3339(r.Timestamp)
}
