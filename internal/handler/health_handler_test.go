package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"medqbank/internal/dto"
	"medqbank/internal/handler"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct{ err error }

func (s stubPinger) PingContext(ctx context.Context) error { return s.err }

// stubCache only answers Ping; the health check uses nothing else.
type stubCache struct {
	pingErr error
}

func (s stubCache) Get(ctx context.Context, key string) (string, error) { return "", nil }
func (s stubCache) Set(ctx context.Context, key, value string, exp time.Duration) error {
	return nil
}
func (s stubCache) Delete(ctx context.Context, keys ...string) error { return nil }
func (s stubCache) Exists(ctx context.Context, key string) (bool, error) { return false, nil }
func (s stubCache) Ping(ctx context.Context) error { return s.pingErr }
func (s stubCache) HUpdate(ctx context.Context, key string, exp time.Duration, fn func(map[string]string) (map[string]string, error)) error {
	return nil
}

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		dbErr    error
		cacheErr error
		status   int
		expected dto.HealthResponse
	}{
		{name: "all up", status: 200, expected: dto.HealthResponse{Status: "ok", Database: "up", Cache: "up"}},
		{name: "cache down", cacheErr: errors.New("refused"), status: 200, expected: dto.HealthResponse{Status: "degraded", Database: "up", Cache: "down"}},
		{name: "db down", dbErr: errors.New("refused"), status: 503, expected: dto.HealthResponse{Status: "unavailable", Database: "down", Cache: "up"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHealthHandler(stubPinger{err: tt.dbErr}, stubCache{pingErr: tt.cacheErr})
			app := fiber.New()
			app.Get("/health", h.Health)

			resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)

			var body dto.HealthResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.expected, body)
		})
	}
}

func TestHealthHandler_NoCache(t *testing.T) {
	h := handler.NewHealthHandler(stubPinger{}, nil)
	app := fiber.New()
	app.Get("/health", h.Health)

	resp, err := app.Test(httptest.NewRequest("GET", "/health", nil), -1)
	require.NoError(t, err)

	var body dto.HealthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "disabled", body.Cache)
}
