package strikers

import (
	"context"

	"github.com/tnicklin/omegastrikers/models"
)

// Client is the read-only statistics client.
type Client interface {
	Leaderboard(ctx context.Context, players int, region string) (models.LeaderboardPage, error)
	Search(ctx context.Context, username string) (string, error)
	Ranked(ctx context.Context, username, region string) (models.RankedRecord, error)
	Level(ctx context.Context, username string) (models.LevelRecord, error)
	Mastery(ctx context.Context, username string) (models.MasteryRecord, error)
}
