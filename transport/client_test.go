package transport

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestClient(server *httptest.Server) *DefaultClient {
	return New(Params{
		Config: Config{
			BaseURL:    server.URL + "/api",
			UserAgent:  "test/1.0",
			HTTPClient: server.Client(),
		},
		Token:   "access",
		Refresh: "refresh",
	})
}

func TestGetInjectsHeadersAndQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Path; got != "/api/v1/ranked/leaderboard/players" {
			t.Errorf("unexpected path: %s", got)
		}
		if got := r.URL.RawQuery; got != "startRank=0&pageSize=5&region=na-east" {
			t.Errorf("unexpected query: %s", got)
		}
		if got := r.Header.Get("X-Authorization"); got != "Bearer access" {
			t.Errorf("unexpected X-Authorization: %q", got)
		}
		if got := r.Header.Get("X-Refresh-Token"); got != "refresh" {
			t.Errorf("unexpected X-Refresh-Token: %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "test/1.0" {
			t.Errorf("unexpected User-Agent: %q", got)
		}
		if _, err := uuid.Parse(r.Header.Get("X-Request-ID")); err != nil {
			t.Errorf("expected uuid request id, got %q", r.Header.Get("X-Request-ID"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"username":"Alice"}]`))
	}))
	defer server.Close()

	body, err := newTestClient(server).Get(context.Background(), "/v1/ranked/leaderboard/players", "startRank=0&pageSize=5&region=na-east")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if string(body) != `[{"username":"Alice"}]` {
		t.Fatalf("unexpected body: %s", body)
	}
}

func TestGetStatusError(t *testing.T) {
	cases := []struct {
		name             string
		status           int
		body             string
		wantMessage      string
		wantUnauthorized bool
		wantClientError  bool
	}{
		{
			name:             "service rejects token pair",
			status:           http.StatusBadRequest,
			body:             `{"error":{"message":"Player not authorized."}}`,
			wantMessage:      "Player not authorized.",
			wantUnauthorized: true,
			wantClientError:  true,
		},
		{
			name:             "http unauthorized",
			status:           http.StatusUnauthorized,
			body:             `nope`,
			wantUnauthorized: true,
			wantClientError:  true,
		},
		{
			name:            "not found",
			status:          http.StatusNotFound,
			body:            `{"error":{"message":"Player not found in leaderboard."}}`,
			wantMessage:     "Player not found in leaderboard.",
			wantClientError: true,
		},
		{
			name:   "server error",
			status: http.StatusBadGateway,
			body:   `upstream down`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := newTestClient(server).Get(context.Background(), "/v1/players", "usernameQuery=Alice")

			var statusErr *StatusError
			if !errors.As(err, &statusErr) {
				t.Fatalf("expected *StatusError, got %v", err)
			}
			if statusErr.StatusCode != tc.status {
				t.Fatalf("status = %d, want %d", statusErr.StatusCode, tc.status)
			}
			if statusErr.Message != tc.wantMessage {
				t.Fatalf("message = %q, want %q", statusErr.Message, tc.wantMessage)
			}
			if statusErr.Unauthorized() != tc.wantUnauthorized {
				t.Fatalf("Unauthorized() = %v, want %v", statusErr.Unauthorized(), tc.wantUnauthorized)
			}
			if statusErr.ClientError() != tc.wantClientError {
				t.Fatalf("ClientError() = %v, want %v", statusErr.ClientError(), tc.wantClientError)
			}
			if !strings.HasPrefix(err.Error(), "transport: status ") {
				t.Fatalf("unexpected error text: %q", err.Error())
			}
		})
	}
}

func TestGetRejectsInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>maintenance</html>`))
	}))
	defer server.Close()

	_, err := newTestClient(server).Get(context.Background(), "/v1/players", "")
	if err == nil || !strings.HasPrefix(err.Error(), "transport: ") {
		t.Fatalf("expected transport error for non-JSON body, got %v", err)
	}
}

func TestGetPassesContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := newTestClient(server).Get(ctx, "/v1/players", "")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestGetPacesRequests(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{}`))
	}))
	defer server.Close()

	client := New(Params{
		Config: Config{
			BaseURL:           server.URL,
			HTTPClient:        server.Client(),
			RequestsPerSecond: 0.001,
		},
		Token:   "access",
		Refresh: "refresh",
	})

	if _, err := client.Get(context.Background(), "/v1/players", ""); err != nil {
		t.Fatalf("first request: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := client.Get(ctx, "/v1/players", ""); err == nil {
		t.Fatal("expected second request to be held back by the limiter")
	}
	if got := hits.Load(); got != 1 {
		t.Fatalf("expected 1 request to reach the server, got %d", got)
	}
}

func TestConfigDefaults(t *testing.T) {
	var cfg Config
	cfg.Defaults()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v", cfg.Timeout)
	}
	if cfg.HTTPClient == nil || cfg.HTTPClient.Timeout != DefaultTimeout {
		t.Errorf("expected HTTP client with default timeout")
	}
}
