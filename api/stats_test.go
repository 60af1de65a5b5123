package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockPopularRoutes struct {
	mock.Mock
}

func (m *MockPopularRoutes) TopRoutes(ctx context.Context, limit int) ([]domain.PairStat, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PairStat), args.Error(1)
}

func serveStats(handler *StatsHandler, target string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler.Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestStatsHandler_popular(t *testing.T) {
	stats := &MockPopularRoutes{}
	stats.On("TopRoutes", mock.Anything, 10).Return([]domain.PairStat{
		{Source: "DEL", Destination: "BOM", Searches: 42},
	}, nil)

	w := serveStats(NewStatsHandler(stats, 10), "/stats/popular")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"routes":[{"source":"DEL","destination":"BOM","searches":42}]}`, w.Body.String())
	stats.AssertExpectations(t)
}

func TestStatsHandler_popular_Limit(t *testing.T) {
	stats := &MockPopularRoutes{}
	stats.On("TopRoutes", mock.Anything, 3).Return([]domain.PairStat{}, nil)

	w := serveStats(NewStatsHandler(stats, 10), "/stats/popular?limit=3")

	assert.Equal(t, http.StatusOK, w.Code)
	stats.AssertExpectations(t)
}

func TestStatsHandler_popular_BadLimit(t *testing.T) {
	for _, limit := range []string{"0", "-1", "abc", "101"} {
		stats := &MockPopularRoutes{}
		w := serveStats(NewStatsHandler(stats, 10), "/stats/popular?limit="+limit)

		assert.Equal(t, http.StatusBadRequest, w.Code, limit)
		stats.AssertNotCalled(t, "TopRoutes", mock.Anything, mock.Anything)
	}
}

func TestStatsHandler_popular_Disabled(t *testing.T) {
	w := serveStats(NewStatsHandler(nil, 10), "/stats/popular")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestStatsHandler_popular_StoreError(t *testing.T) {
	stats := &MockPopularRoutes{}
	stats.On("TopRoutes", mock.Anything, 10).Return(nil, errors.New("redis unavailable"))

	w := serveStats(NewStatsHandler(stats, 10), "/stats/popular")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHealthHandler(6).Register(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","routes":6}`, w.Body.String())
}
