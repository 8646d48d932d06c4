package comparison

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"db-compare/core/compare"
	"db-compare/core/config"
	"db-compare/core/loader"
	"db-compare/core/provider"
	"db-compare/core/provider/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupApp(t *testing.T, providers map[string]provider.Provider, comparisons ...config.Comparison) *fiber.App {
	t.Helper()
	svc, _ := newTestService(t, comparisons, staticOpener(providers))

	mgr := loader.NewManager()
	mgr.Register(NewFeature(svc, zap.NewNop()))

	app := fiber.New()
	require.NoError(t, mgr.LoadAll(app))
	return app
}

func doRequest(t *testing.T, app *fiber.App, method, path string) (int, []byte) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(method, path, nil))
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, body
}

func TestHandler(t *testing.T) {
	providers := map[string]provider.Provider{
		"src": mocks.Static(person(1, "Ann"), person(2, "Bob")),
		"dst": mocks.Static(person(1, "Ann")),
	}
	app := setupApp(t, providers, descriptor("people", "src", "dst"), descriptor("broken", "src", "offline"))

	t.Run("List", func(t *testing.T) {
		status, body := doRequest(t, app, "GET", "/comparisons")
		assert.Equal(t, fiber.StatusOK, status)

		var list []map[string]any
		require.NoError(t, json.Unmarshal(body, &list))
		require.Len(t, list, 2)
		assert.Equal(t, "people", list[0]["name"])
		assert.Equal(t, "sqlite", list[0]["source_type"])
	})

	t.Run("Report Before Run", func(t *testing.T) {
		status, _ := doRequest(t, app, "GET", "/comparisons/people/report")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("Run", func(t *testing.T) {
		status, body := doRequest(t, app, "POST", "/comparisons/people/run")
		require.Equal(t, fiber.StatusOK, status, string(body))

		var res Result
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, "people", res.Name)
		assert.Equal(t, compare.Summary{
			TotalSource: 2, TotalTarget: 1, Identical: 1, SourceOnly: 1, Intersection: 1,
			SourceRecordsRead: 2, TargetRecordsRead: 1,
		}, res.Summary)
	})

	t.Run("Report After Run", func(t *testing.T) {
		status, body := doRequest(t, app, "GET", "/comparisons/people/report")
		assert.Equal(t, fiber.StatusOK, status)
		assert.Contains(t, string(body), `"identical":1`)
	})

	t.Run("Run Unknown", func(t *testing.T) {
		status, _ := doRequest(t, app, "POST", "/comparisons/missing/run")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("Report Unknown", func(t *testing.T) {
		status, _ := doRequest(t, app, "GET", "/comparisons/missing/report")
		assert.Equal(t, fiber.StatusNotFound, status)
	})

	t.Run("Provider Failure", func(t *testing.T) {
		status, body := doRequest(t, app, "POST", "/comparisons/broken/run")
		assert.Equal(t, fiber.StatusBadGateway, status)
		assert.Contains(t, string(body), "unknown database")
	})
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"Not Found", ErrNotFound, fiber.StatusNotFound},
		{"Configuration", compare.ErrConfiguration, fiber.StatusBadRequest},
		{"Provider", provider.NewError(provider.KindMySQL, "query", errors.New("x")), fiber.StatusBadGateway},
		{"Cancelled", context.Canceled, fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statusFor(tt.err))
		})
	}
}

func TestFeature(t *testing.T) {
	svc, _ := newTestService(t, nil, staticOpener(nil))
	f := NewFeature(svc, zap.NewNop())

	assert.Equal(t, "comparison", f.Name())
	assert.False(t, f.IsEnabled())
}
