package bootstrap

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Domenick1991/routesuggest/config"
	"github.com/Domenick1991/routesuggest/internal/dataset"
	"github.com/Domenick1991/routesuggest/internal/domain"
	"github.com/Domenick1991/routesuggest/internal/service/routes"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDeps() Deps {
	table := dataset.NewTable([]domain.Route{
		{Airline: "AirlineX", SourceAirport: "DEL", DestinationAirport: "BOM", SourceCountry: "India", Price: 3000, Distance: 1150},
		{Airline: "AirlineY", SourceAirport: "DEL", DestinationAirport: "BOM", SourceCountry: "India", Price: 2500, Distance: 1150},
		{Airline: "AirlineZ", SourceAirport: "BOM", DestinationAirport: "DEL", SourceCountry: "India", Price: 2800, Distance: 1150},
	})
	return Deps{
		Routes:     routes.NewRouteService(table, "India"),
		RouteCount: table.Len(),
	}
}

func testConfig() *config.Config {
	cfg := config.Default()
	return &cfg
}

func TestNewRouter_Endpoints(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(testConfig(), testDeps())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/airports", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `["BOM","DEL"]`, w.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/suggestions", bytes.NewBufferString(`{"source":"del","destination":"bom"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"routes":[
		{"airline":"AirlineY","source_airport":"DEL","destination_airport":"BOM","price":2500,"distance":1150},
		{"airline":"AirlineX","source_airport":"DEL","destination_airport":"BOM","price":3000,"distance":1150}
	]}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/suggestions", bytes.NewBufferString(`{"source":"XXX","destination":"YYY"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stats/popular", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok","routes":3}`, w.Body.String())
}

func TestNewRouter_CORS(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(testConfig(), testDeps())

	req := httptest.NewRequest(http.MethodOptions, "/suggestions", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestNewRouter_Swagger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "routes.swagger.json"), []byte(`{"swagger":"2.0"}`), 0o644))

	cfg := testConfig()
	cfg.HTTP.SwaggerDir = dir
	router := NewRouter(cfg, testDeps())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/routes.swagger.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/docs/index.html", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRun_ShutsDownOnCancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	cfg.HTTP.Address = "127.0.0.1:0"
	cfg.GRPC.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, cfg, testDeps()) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
