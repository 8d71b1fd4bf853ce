package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/ManthanKaria/fraud-job-detector/internal/dtos"
)

// GenericErrorMessage is the only failure text a user ever sees.
const GenericErrorMessage = "Something went wrong. Try again!"

// ErrUpstreamStatus marks a non-2xx answer from the prediction service.
var ErrUpstreamStatus = errors.New("prediction service returned an error status")

// StatusError keeps the status code and body of a failed upstream call for the logs.
type StatusError struct {
	Route      string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %s returned %d: %s", ErrUpstreamStatus, e.Route, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error {
	return ErrUpstreamStatus
}

// Outcome is the settled value of one submission. Exactly one field is set.
type Outcome struct {
	Result *dtos.PredictionResult
	Error  *dtos.ErrorResult
}

// Failed reports whether the submission ended in an ErrorResult.
func (o Outcome) Failed() bool {
	return o.Error != nil
}

// FailedOutcome is the generic ErrorResult every failure settles to.
func FailedOutcome() Outcome {
	return Outcome{Error: &dtos.ErrorResult{Error: GenericErrorMessage}}
}

// PredictionService talks to the remote fraud prediction endpoint.
type PredictionService struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewPredictionService expects baseURL to end in "/" (see config.NormalizeBaseURL).
// A zero timeout leaves the client unbounded.
func NewPredictionService(baseURL string, timeout time.Duration) *PredictionService {
	return &PredictionService{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Submit sends the description for classification. Every failure collapses
// into the generic ErrorResult; the detail only goes to the log.
func (s *PredictionService) Submit(ctx context.Context, text string) Outcome {
	var result dtos.PredictionResult
	if err := s.postJSON(ctx, "predict", dtos.PredictionRequest{Description: text}, &result); err != nil {
		log.Printf("❌ Prediction failed: %v", err)
		return FailedOutcome()
	}
	return Outcome{Result: &result}
}

// Explain asks the prediction service which terms drove its verdict.
func (s *PredictionService) Explain(ctx context.Context, text string) (*dtos.Explanation, error) {
	var explanation dtos.Explanation
	if err := s.postJSON(ctx, "explain", dtos.PredictionRequest{Description: text}, &explanation); err != nil {
		return nil, fmt.Errorf("explain: %w", err)
	}
	return &explanation, nil
}

// CheckUpstream fetches the prediction service's health report.
func (s *PredictionService) CheckUpstream(ctx context.Context) (*dtos.UpstreamHealth, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"health", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build health request: %w", err)
	}

	var health dtos.UpstreamHealth
	if err := s.do(req, "health", &health); err != nil {
		return nil, fmt.Errorf("health check: %w", err)
	}
	return &health, nil
}

func (s *PredictionService) postJSON(ctx context.Context, route string, body any, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.BaseURL+route, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req, route, out)
}

func (s *PredictionService) do(req *http.Request, route string, out any) error {
	resp, err := s.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request to %s failed: %w", route, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", route, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{Route: route, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", route, err)
	}
	return nil
}
