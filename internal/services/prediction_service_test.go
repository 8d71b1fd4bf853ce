package services

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManthanKaria/fraud-job-detector/internal/dtos"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *PredictionService {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewPredictionService(server.URL+"/", 5*time.Second)
}

func TestSubmit_Success(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/predict", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, map[string]any{"description": "Work from home, earn $5000 a week"}, req)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"fraudulent": true, "confidence": 0.912, "cleaned_text": "Work from home, earn 5000 a week"}`))
	})

	outcome := svc.Submit(context.Background(), "Work from home, earn $5000 a week")

	require.False(t, outcome.Failed())
	require.NotNil(t, outcome.Result)
	assert.Equal(t, dtos.PredictionResult{
		Fraudulent:  true,
		Confidence:  0.912,
		CleanedText: "Work from home, earn 5000 a week",
	}, *outcome.Result)
}

func TestSubmit_MissingFieldsAreZero(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"confidence": 0.4}`))
	})

	outcome := svc.Submit(context.Background(), "text")

	require.NotNil(t, outcome.Result)
	assert.Nil(t, outcome.Error)
	assert.False(t, outcome.Result.Fraudulent)
	assert.InDelta(t, 0.4, outcome.Result.Confidence, 1e-9)
	assert.Empty(t, outcome.Result.CleanedText)
}

func TestSubmit_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"detail":"Prediction error"}`, http.StatusInternalServerError)
			},
		},
		{
			name: "bad request",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				http.Error(w, `{"detail":"Description too short after cleaning"}`, http.StatusBadRequest)
			},
		},
		{
			name: "invalid json",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>not json</html>`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, tt.handler)

			outcome := svc.Submit(context.Background(), "some posting")

			require.True(t, outcome.Failed())
			assert.Nil(t, outcome.Result)
			assert.Equal(t, GenericErrorMessage, outcome.Error.Error)
		})
	}
}

func TestSubmit_ConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	svc := NewPredictionService("http://"+addr+"/", time.Second)

	outcome := svc.Submit(context.Background(), "some posting")

	require.True(t, outcome.Failed())
	assert.Equal(t, GenericErrorMessage, outcome.Error.Error)
}

func TestSubmit_CanceledContext(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"fraudulent": false, "confidence": 0.9}`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := svc.Submit(ctx, "some posting")
	assert.True(t, outcome.Failed())
}

func TestExplain(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/explain", r.URL.Path)
		_, _ = w.Write([]byte(`{"top_features": {"earn": 0.42, "wire": 0.17}, "note": "Positive scores indicate fraud."}`))
	})

	explanation, err := svc.Explain(context.Background(), "earn money, wire transfer")
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"earn": 0.42, "wire": 0.17}, explanation.TopFeatures)
	assert.Equal(t, "Positive scores indicate fraud.", explanation.Note)
}

func TestExplain_StatusError(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte("model not loaded"))
	})

	_, err := svc.Explain(context.Background(), "text")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUpstreamStatus))

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusServiceUnavailable, statusErr.StatusCode)
	assert.Equal(t, "explain", statusErr.Route)
	assert.Equal(t, "model not loaded", statusErr.Body)
}

func TestCheckUpstream(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/health", r.URL.Path)
		_, _ = w.Write([]byte(`{"status": "ok", "timestamp": "2025-01-02T03:04:05"}`))
	})

	health, err := svc.CheckUpstream(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "2025-01-02T03:04:05", health.Timestamp)
}

func TestStatusError_Message(t *testing.T) {
	err := &StatusError{Route: "predict", StatusCode: 500, Body: "boom"}
	assert.Contains(t, err.Error(), "predict returned 500: boom")
	assert.ErrorIs(t, err, ErrUpstreamStatus)
}
