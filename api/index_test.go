package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"procedures-search-backend/config"
	"procedures-search-backend/internal/bootstrap"
	"procedures-search-backend/search/models"
	"procedures-search-backend/search/repositories"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubIndex struct{}

func (stubIndex) Query(context.Context, repositories.IndexQuery) ([]repositories.Hit, error) {
	return []repositories.Hit{{ID: "p1", Score: 0.876, Fields: map[string]interface{}{repositories.TextField: "MRI knee"}}}, nil
}

// resetHandler clears the cached gateway and swaps in build for the test.
func resetHandler(t *testing.T, build func(context.Context, config.Settings) (*fiber.App, error)) {
	t.Helper()
	prevBuild := buildApp
	serve = nil
	buildApp = build
	t.Cleanup(func() {
		serve = nil
		buildApp = prevBuild
	})
	t.Setenv("SEARCH_TOP_K", "")
	t.Setenv("APP_PROFILE", "")
}

func stubBuild(context.Context, config.Settings) (*fiber.App, error) {
	return bootstrap.NewApp(bootstrap.ProfileStandalone, bootstrap.Dependencies{Index: stubIndex{}, Logger: zap.NewNop()})
}

func call(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, models.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	Handler(rec, req)

	var errBody models.ErrorResponse
	if rec.Code >= http.StatusBadRequest {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errBody))
	}
	return rec, errBody
}

func TestHandler_MissingKeyThenConfigured(t *testing.T) {
	builds := 0
	resetHandler(t, func(ctx context.Context, s config.Settings) (*fiber.App, error) {
		builds++
		assert.Equal(t, "pc-key", s.PineconeAPIKey)
		assert.Equal(t, string(bootstrap.ProfileStandalone), s.Profile)
		return stubBuild(ctx, s)
	})
	t.Setenv("PINECONE_API_KEY", "")

	rec, _ := call(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message": "Hello World"}`, rec.Body.String())

	rec, errBody := call(t, http.MethodPost, "/api/search", `{"query": "knee"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "PINECONE_API_KEY is required", errBody.Detail)
	assert.Zero(t, builds)

	t.Setenv("PINECONE_API_KEY", "pc-key")

	rec, _ = call(t, http.MethodPost, "/api/search", `{"query": "knee"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var body models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []models.SearchHit{{ID: "p1", Score: 0.88, Text: "MRI knee"}}, body.Results)
	assert.Equal(t, 1, builds)
}

func TestHandler_RetriesAfterBuildFailure(t *testing.T) {
	builds := 0
	resetHandler(t, func(ctx context.Context, s config.Settings) (*fiber.App, error) {
		builds++
		if builds == 1 {
			return nil, errors.New("describing index procedures-index: dial tcp: i/o timeout")
		}
		return stubBuild(ctx, s)
	})
	t.Setenv("PINECONE_API_KEY", "pc-key")

	rec, _ := call(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = call(t, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	rec, _ = call(t, http.MethodPost, "/api/search", `{"query": "knee"}`)
	assert.Equal(t, http.StatusOK, rec.Code)

	// The successful build is cached.
	assert.Equal(t, 2, builds)
}
