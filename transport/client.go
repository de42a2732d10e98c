package transport

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/tnicklin/omegastrikers/clock"
	"github.com/tnicklin/omegastrikers/logger"
	"github.com/tnicklin/omegastrikers/metrics"
	"golang.org/x/time/rate"
)

var _ Client = (*DefaultClient)(nil)

const maxErrorBody = 64 * 1024

// DefaultClient is the statistics service HTTP client. The credential pair is
// fixed at construction and attached to every request.
type DefaultClient struct {
	baseURL   string
	userAgent string
	token     string
	refresh   string
	http      *http.Client
	limiter   *rate.Limiter
	logger    logger.Logger
	metrics   *metrics.Manager
	clock     clock.Clock
}

type Params struct {
	Config  Config
	Token   string
	Refresh string
	Logger  logger.Logger
	Metrics *metrics.Manager
	Clock   clock.Clock
}

// New creates a new transport client.
func New(p Params) *DefaultClient {
	p.Config.Defaults()

	log := p.Logger
	if log == nil {
		log = logger.NewNop()
	}
	clk := p.Clock
	if clk == nil {
		clk = clock.System()
	}

	var limiter *rate.Limiter
	if p.Config.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(p.Config.RequestsPerSecond), 1)
	}

	return &DefaultClient{
		baseURL:   strings.TrimRight(p.Config.BaseURL, "/"),
		userAgent: p.Config.UserAgent,
		token:     p.Token,
		refresh:   p.Refresh,
		http:      p.Config.HTTPClient,
		limiter:   limiter,
		logger:    log,
		metrics:   p.Metrics,
		clock:     clk,
	}
}

// Get issues GET {baseURL}{path}?{rawQuery} and returns the response body.
// rawQuery is sent as given.
func (c *DefaultClient) Get(ctx context.Context, path, rawQuery string) (json.RawMessage, error) {
	endpoint := c.baseURL + path
	if rawQuery != "" {
		endpoint += "?" + rawQuery
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("transport: build request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Authorization", "Bearer "+c.token)
	req.Header.Set("X-Refresh-Token", c.refresh)
	req.Header.Set("X-Request-ID", requestID)
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	if c.limiter != nil {
		if err = c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("transport: wait for request slot: %w", err)
		}
	}

	start := c.clock.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.metrics.ObserveRequest(0, clock.Since(c.clock, start))
		c.logger.DebugW("request failed", "request_id", requestID, "path", path, "error", err)
		return nil, fmt.Errorf("transport: request %s: %w", path, err)
	}
	defer resp.Body.Close()

	elapsed := clock.Since(c.clock, start)
	c.metrics.ObserveRequest(resp.StatusCode, elapsed)
	c.logger.DebugW("request completed",
		"request_id", requestID,
		"path", path,
		"status", resp.StatusCode,
		"duration", elapsed,
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, newStatusError(resp.StatusCode, body)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("transport: read %s: %w", path, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("transport: %s: response is not valid JSON", path)
	}

	return body, nil
}
