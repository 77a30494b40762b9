package predictor

//go:generate go run go.uber.org/mock/mockgen -source=./predictor.go -destination=./mocks/predictor_mock.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"heritage/config"
	"heritage/infras/otel"
	"heritage/shared/constant"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

const (
	otelScopeName = "predictor"

	pathCrowd   = "/predict/crowd"
	pathSeason  = "/predict/season"
	pathPeak    = "/predict/peak"
	pathAnomaly = "/predict/anomaly"

	defaultTimeout = 3 * time.Second
	maxBodyBytes   = 1 << 16
)

var (
	ErrNotConfigured = errors.New("prediction service is not configured")
	ErrBadResponse   = errors.New("unexpected response from prediction service")
)

// CrowdFeatures is the feature vector accepted by the crowd, peak and anomaly models.
type CrowdFeatures struct {
	DayOfWeek   int     `json:"day_of_week"`
	IsWeekend   int     `json:"is_weekend"`
	IsHoliday   int     `json:"is_holiday"`
	Temperature float64 `json:"temperature"`
	Month       int     `json:"month"`
	Hour        int     `json:"hour"`
}

// Season drops the time-of-day features the season model does not take.
func (f CrowdFeatures) Season() SeasonFeatures {
	return SeasonFeatures{
		Month:       f.Month,
		Temperature: f.Temperature,
		IsHoliday:   f.IsHoliday,
	}
}

type SeasonFeatures struct {
	Month       int     `json:"month"`
	Temperature float64 `json:"temperature"`
	IsHoliday   int     `json:"is_holiday"`
}

type predictionResponse struct {
	Prediction *float64 `json:"prediction"`
}

// Client talks to the external crowd prediction model service.
type Client interface {
	PredictCrowd(ctx context.Context, features CrowdFeatures) (float64, error)
	PredictSeason(ctx context.Context, features SeasonFeatures) (float64, error)
	PredictPeak(ctx context.Context, features CrowdFeatures) (float64, error)
	PredictAnomaly(ctx context.Context, features CrowdFeatures) (float64, error)
}

type clientImpl struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	otel       otel.Otel
}

func New(cfg *config.Config, otl otel.Otel) Client {
	timeout := defaultTimeout
	if cfg.Prediction.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.Prediction.TimeoutSeconds) * time.Second
	}

	limit := rate.Inf
	if cfg.Prediction.RatePerSecond > 0 {
		limit = rate.Limit(cfg.Prediction.RatePerSecond)
	}

	return &clientImpl{
		baseURL:    strings.TrimRight(cfg.Prediction.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, max(1, cfg.Prediction.Burst)),
		otel:       otl,
	}
}

func (c *clientImpl) PredictCrowd(ctx context.Context, features CrowdFeatures) (float64, error) {
	return c.predict(ctx, pathCrowd, features)
}

func (c *clientImpl) PredictSeason(ctx context.Context, features SeasonFeatures) (float64, error) {
	return c.predict(ctx, pathSeason, features)
}

func (c *clientImpl) PredictPeak(ctx context.Context, features CrowdFeatures) (float64, error) {
	return c.predict(ctx, pathPeak, features)
}

func (c *clientImpl) PredictAnomaly(ctx context.Context, features CrowdFeatures) (float64, error) {
	return c.predict(ctx, pathAnomaly, features)
}

func (c *clientImpl) predict(ctx context.Context, path string, features any) (res float64, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+path)
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if c.baseURL == "" {
		return 0, ErrNotConfigured
	}

	if err = c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("prediction rate limit: %w", err)
	}

	body, err := json.Marshal(features)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal prediction features: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, fmt.Errorf("failed to build prediction request: %w", err)
	}

	req.Header.Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Msg("prediction request failed")

		return 0, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	scope.SetAttribute("http.status_code", resp.StatusCode)

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return 0, fmt.Errorf("failed to read prediction response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		log.Warn().Int("status", resp.StatusCode).Str("path", path).Msg("prediction service returned an error")

		return 0, fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	var decoded predictionResponse
	if err = json.Unmarshal(payload, &decoded); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	if decoded.Prediction == nil {
		return 0, fmt.Errorf("%w: missing prediction", ErrBadResponse)
	}

	return *decoded.Prediction, nil
}
