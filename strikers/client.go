package strikers

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/tnicklin/omegastrikers/clock"
	"github.com/tnicklin/omegastrikers/logger"
	"github.com/tnicklin/omegastrikers/metrics"
	"github.com/tnicklin/omegastrikers/models"
	"github.com/tnicklin/omegastrikers/normalize"
	"github.com/tnicklin/omegastrikers/regions"
	"github.com/tnicklin/omegastrikers/resolver"
	"github.com/tnicklin/omegastrikers/transport"
)

var _ Client = (*DefaultClient)(nil)

const (
	MinPlayers = 1
	MaxPlayers = 10000
)

const (
	opNew         = "new"
	opLeaderboard = "leaderboard"
	opSearch      = "search"
	opRanked      = "ranked"
	opLevel       = "level"
	opMastery     = "mastery"
)

// DefaultClient implements Client on top of a transport.Client. It holds no
// per-call state and is safe for concurrent use.
type DefaultClient struct {
	transport transport.Client
	regions   regions.Table
	policy    resolver.Policy
	logger    logger.Logger
	metrics   *metrics.Manager
	clock     clock.Clock
}

type Params struct {
	Config Config
	// Transport overrides the HTTP transport built from Config.
	Transport transport.Client
	Regions   regions.Table
	Logger    logger.Logger
	Metrics   *metrics.Manager
	Clock     clock.Clock
}

// New creates a client. The token pair is required even when a Transport is
// supplied.
func New(p Params) (*DefaultClient, error) {
	if p.Config.Token == "" || p.Config.Refresh == "" {
		return nil, newError(KindInvalidCredentials, opNew, "", nil)
	}
	p.Config.Defaults()

	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}
	table := p.Regions
	if table == nil {
		table = regions.Default()
	}

	tr := p.Transport
	if tr == nil {
		tr = transport.New(transport.Params{
			Config:  p.Config.Transport,
			Token:   p.Config.Token,
			Refresh: p.Config.Refresh,
			Logger:  log,
			Metrics: p.Metrics,
			Clock:   clk,
		})
	}

	return &DefaultClient{
		transport: tr,
		regions:   table,
		policy:    p.Config.policy(),
		logger:    log,
		metrics:   p.Metrics,
		clock:     clk,
	}, nil
}

// Leaderboard returns the top players of region, at most players rows.
func (c *DefaultClient) Leaderboard(ctx context.Context, players int, region string) (page models.LeaderboardPage, err error) {
	defer c.observe(opLeaderboard, c.clock.Now(), &err)

	name, err := c.region(opLeaderboard, region)
	if err != nil {
		return nil, err
	}
	if players < MinPlayers || players > MaxPlayers {
		return nil, c.fail(newError(KindInvalidPageSize, opLeaderboard, fmt.Sprintf("players=%d", players), nil))
	}

	query := fmt.Sprintf("startRank=0&pageSize=%d%s", players, c.regions.Fragment(name))
	raw, err := c.transport.Get(ctx, "/v1/ranked/leaderboard/players", query)
	if err != nil {
		return nil, c.fail(serviceError(opLeaderboard, err))
	}

	page, err = normalize.Leaderboard(raw, players)
	if err != nil {
		return nil, c.fail(newError(KindUnknown, opLeaderboard, "", err))
	}
	return page, nil
}

// Search resolves username to a player identifier. An exact, case-sensitive
// username match wins; otherwise the first candidate is used unless strict
// resolution is configured.
func (c *DefaultClient) Search(ctx context.Context, username string) (id string, err error) {
	defer c.observe(opSearch, c.clock.Now(), &err)

	if err = c.username(opSearch, username); err != nil {
		return "", err
	}
	return c.resolve(ctx, opSearch, username)
}

// Ranked returns the ranked standing of username in region.
func (c *DefaultClient) Ranked(ctx context.Context, username, region string) (rec models.RankedRecord, err error) {
	defer c.observe(opRanked, c.clock.Now(), &err)

	if err = c.username(opRanked, username); err != nil {
		return models.RankedRecord{}, err
	}
	name, err := c.region(opRanked, region)
	if err != nil {
		return models.RankedRecord{}, err
	}

	id, err := c.resolve(ctx, opRanked, username)
	if err != nil {
		return models.RankedRecord{}, err
	}

	path := "/v1/ranked/leaderboard/search/" + url.PathEscape(id)
	query := "entriesBefore=1&entriesAfter=1&specificRegion=" + c.regions.Fragment(name)
	raw, err := c.transport.Get(ctx, path, query)
	if err != nil {
		var statusErr *transport.StatusError
		if errors.As(err, &statusErr) && !statusErr.Unauthorized() && statusErr.ClientError() {
			return models.RankedRecord{}, c.fail(newError(KindNoRankedHistory, opRanked, username, err))
		}
		return models.RankedRecord{}, c.fail(serviceError(opRanked, err))
	}

	rec, err = normalize.Ranked(id, raw)
	switch {
	case errors.Is(err, normalize.ErrNotRanked):
		return models.RankedRecord{}, c.fail(newError(KindNoRankedHistory, opRanked, username, err))
	case err != nil:
		return models.RankedRecord{}, c.fail(newError(KindUnknown, opRanked, "", err))
	}
	return rec, nil
}

// Level returns the account level of username.
func (c *DefaultClient) Level(ctx context.Context, username string) (rec models.LevelRecord, err error) {
	defer c.observe(opLevel, c.clock.Now(), &err)

	if err = c.username(opLevel, username); err != nil {
		return models.LevelRecord{}, err
	}
	id, err := c.resolve(ctx, opLevel, username)
	if err != nil {
		return models.LevelRecord{}, err
	}

	raw, err := c.transport.Get(ctx, "/v1/mastery/"+url.PathEscape(id)+"/player", "")
	if err != nil {
		return models.LevelRecord{}, c.fail(serviceError(opLevel, err))
	}

	rec, err = normalize.Level(raw)
	if err != nil {
		return models.LevelRecord{}, c.fail(newError(KindUnknown, opLevel, "", err))
	}
	return rec, nil
}

// Mastery returns the per-character mastery of username.
func (c *DefaultClient) Mastery(ctx context.Context, username string) (rec models.MasteryRecord, err error) {
	defer c.observe(opMastery, c.clock.Now(), &err)

	if err = c.username(opMastery, username); err != nil {
		return models.MasteryRecord{}, err
	}
	id, err := c.resolve(ctx, opMastery, username)
	if err != nil {
		return models.MasteryRecord{}, err
	}

	raw, err := c.transport.Get(ctx, "/v2/mastery/"+url.PathEscape(id)+"/characters", "")
	if err != nil {
		return models.MasteryRecord{}, c.fail(serviceError(opMastery, err))
	}

	rec, err = normalize.Mastery(raw)
	if err != nil {
		return models.MasteryRecord{}, c.fail(newError(KindUnknown, opMastery, "", err))
	}
	return rec, nil
}

// resolve runs the username search and picks one player. Errors are tagged
// with op, the operation the caller is performing.
func (c *DefaultClient) resolve(ctx context.Context, op, username string) (string, error) {
	raw, err := c.transport.Get(ctx, "/v1/players", "usernameQuery="+url.QueryEscape(username))
	if err != nil {
		return "", c.fail(serviceError(op, err))
	}

	result, err := normalize.Search(raw)
	if err != nil {
		return "", c.fail(newError(KindUnknown, op, "", err))
	}

	id, err := resolver.Resolve(username, result, c.policy)
	switch {
	case errors.Is(err, resolver.ErrNoMatches):
		return "", c.fail(newError(KindNotFound, op, username, err))
	case errors.Is(err, resolver.ErrAmbiguous):
		return "", c.fail(newError(KindAmbiguous, op, fmt.Sprintf("%s, %d candidates", username, len(result.Matches)), err))
	case err != nil:
		return "", c.fail(newError(KindUnknown, op, "", err))
	}
	return id, nil
}

func (c *DefaultClient) username(op, username string) error {
	if username == "" {
		return c.fail(newError(KindInvalidUsername, op, "", nil))
	}
	return nil
}

// region validates a user supplied region and returns its table key.
func (c *DefaultClient) region(op, region string) (string, error) {
	name := regions.Normalize(region)
	if !c.regions.Has(name) {
		detail := fmt.Sprintf("%q, want one of %s", region, strings.Join(c.regions.Names(), ", "))
		return "", c.fail(newError(KindInvalidRegion, op, detail, nil))
	}
	return name, nil
}

// serviceError classifies a transport failure.
func serviceError(op string, err error) *Error {
	var statusErr *transport.StatusError
	if errors.As(err, &statusErr) && statusErr.Unauthorized() {
		return newError(KindUnauthorized, op, "", err)
	}
	return newError(KindUnknown, op, "", err)
}

func (c *DefaultClient) fail(e *Error) error {
	switch e.Kind {
	case KindInvalidRegion, KindInvalidPageSize, KindInvalidUsername:
		c.logger.DebugW("rejected input", "op", e.Op, "kind", e.Kind.String(), "detail", e.Detail)
	default:
		c.logger.WarnW("operation failed", "op", e.Op, "kind", e.Kind.String(), "error", e)
	}
	return e
}

func (c *DefaultClient) observe(op string, start time.Time, err *error) {
	outcome := metrics.OutcomeSuccess
	if *err != nil {
		outcome = KindOf(*err).String()
	}
	c.metrics.ObserveOperation(op, outcome, clock.Since(c.clock, start))
}
