package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManthanKaria/fraud-job-detector/internal/config"
	"github.com/ManthanKaria/fraud-job-detector/internal/handlers"
	"github.com/ManthanKaria/fraud-job-detector/internal/services"
)

func newTestRouter(t *testing.T, origins ...string) http.Handler {
	t.Helper()
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	cfg := &config.Config{
		PredictionAPIURL: "http://127.0.0.1:1/",
		GinMode:          "test",
		AllowedOrigins:   origins,
	}
	h := handlers.NewPredictionHandler(services.NewPredictionService(cfg.PredictionAPIURL, time.Second))

	r, err := NewRouter(cfg, h)
	require.NoError(t, err)
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestNewRouter_Routes(t *testing.T) {
	r := newTestRouter(t)

	tests := []struct {
		path string
		want int
	}{
		{"/", http.StatusOK},
		{"/api/v1/health", http.StatusOK},
		{"/api/v1/docs/doc.json", http.StatusOK},
		{"/api/v1/nope", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, get(r, tt.path, nil).Code)
		})
	}
}

func TestNewRouter_SwaggerDocument(t *testing.T) {
	w := get(newTestRouter(t), "/api/v1/docs/doc.json", nil)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/predict"`)
	assert.Contains(t, w.Body.String(), `"basePath": "/api/v1"`)
	assert.Contains(t, w.Body.String(), `"title": "Fraud Job Posting Detector API"`)
	assert.Contains(t, w.Body.String(), `"version": "1.0.0"`)
}

func TestNewRouter_CORS(t *testing.T) {
	w := get(newTestRouter(t), "/api/v1/health", map[string]string{"Origin": "http://localhost:3000"})
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))

	restricted := newTestRouter(t, "https://app.example.com")

	w = get(restricted, "/api/v1/health", map[string]string{"Origin": "https://app.example.com"})
	assert.Equal(t, "https://app.example.com", w.Header().Get("Access-Control-Allow-Origin"))

	w = get(restricted, "/api/v1/health", map[string]string{"Origin": "https://evil.example.com"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- Serve(ctx, "127.0.0.1:0", http.NotFoundHandler())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestServe_ListenError(t *testing.T) {
	err := Serve(context.Background(), "not-an-address", http.NotFoundHandler())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server failed to start")
}

func TestNewRouter_Preflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/predict", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()

	newTestRouter(t).ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
