package transport

import (
	"context"
	"encoding/json"
)

// Client executes authenticated GET requests against the statistics service.
type Client interface {
	Get(ctx context.Context, path, rawQuery string) (json.RawMessage, error)
}
