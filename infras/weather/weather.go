package weather

//go:generate go run go.uber.org/mock/mockgen -source=./weather.go -destination=./mocks/weather_mock.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"heritage/config"
	"heritage/infras/otel"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	otelScopeName = "weather"
	cacheWeather  = "weather:temperature"

	defaultTimeout = 3 * time.Second
	maxBodyBytes   = 1 << 20
)

var (
	ErrDisabled        = errors.New("weather lookup is disabled")
	ErrLocationUnknown = errors.New("location could not be geocoded")
	ErrBadResponse     = errors.New("unexpected response from weather provider")
)

// Client resolves the current air temperature in celsius for a place.
type Client interface {
	Temperature(ctx context.Context, city, country string) (float64, error)
}

type geocodeResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
	} `json:"current_weather"`
}

type clientImpl struct {
	cfg        *config.Config
	httpClient *http.Client
	cache      cache.RedisCache
	otel       otel.Otel
}

func New(cfg *config.Config, cache cache.RedisCache, otl otel.Otel) Client {
	timeout := defaultTimeout
	if cfg.External.Weather.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.External.Weather.TimeoutSeconds) * time.Second
	}

	return &clientImpl{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
		cache:      cache,
		otel:       otl,
	}
}

func (c *clientImpl) Temperature(ctx context.Context, city, country string) (res float64, err error) {
	ctx, scope := c.otel.NewScope(ctx, constant.OtelExternalScopeName, otelScopeName+".Temperature")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if !c.cfg.External.Weather.Enable {
		return 0, ErrDisabled
	}

	query := strings.TrimSpace(strings.Trim(strings.TrimSpace(city)+", "+strings.TrimSpace(country), ", "))
	if query == "" {
		return 0, ErrLocationUnknown
	}

	cacheKey := shared.BuildCacheKey(cacheWeather, strings.ToLower(query))

	if err = c.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	lat, lon, err := c.geocode(ctx, query)
	if err != nil {
		return 0, err
	}

	res, err = c.current(ctx, lat, lon)
	if err != nil {
		return 0, err
	}

	if err := c.cache.Save(ctx, cacheKey, res, c.cfg.External.Weather.CacheTTL); err != nil {
		log.Warn().Err(err).Str("key", cacheKey).Msg("failed to cache temperature")
	}

	return res, nil
}

func (c *clientImpl) geocode(ctx context.Context, query string) (lat, lon string, err error) {
	endpoint := strings.TrimRight(c.cfg.External.Weather.GeocodeURL, "/") + "/search?" + url.Values{
		"format": {"json"},
		"limit":  {"1"},
		"q":      {query},
	}.Encode()

	var results []geocodeResult
	if err = c.getJSON(ctx, endpoint, &results); err != nil {
		return "", "", err
	}

	if len(results) == 0 || results[0].Lat == "" || results[0].Lon == "" {
		return "", "", fmt.Errorf("%w: %s", ErrLocationUnknown, query)
	}

	return results[0].Lat, results[0].Lon, nil
}

func (c *clientImpl) current(ctx context.Context, lat, lon string) (float64, error) {
	if _, err := strconv.ParseFloat(lat, 64); err != nil {
		return 0, fmt.Errorf("%w: latitude %q", ErrBadResponse, lat)
	}

	if _, err := strconv.ParseFloat(lon, 64); err != nil {
		return 0, fmt.Errorf("%w: longitude %q", ErrBadResponse, lon)
	}

	endpoint := strings.TrimRight(c.cfg.External.Weather.ForecastURL, "/") + "/v1/forecast?" + url.Values{
		"latitude":        {lat},
		"longitude":       {lon},
		"current_weather": {"true"},
	}.Encode()

	var forecast forecastResponse
	if err := c.getJSON(ctx, endpoint, &forecast); err != nil {
		return 0, err
	}

	if forecast.CurrentWeather == nil {
		return 0, fmt.Errorf("%w: missing current weather", ErrBadResponse)
	}

	return forecast.CurrentWeather.Temperature, nil
}

func (c *clientImpl) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to build weather request: %w", err)
	}

	// nominatim rejects anonymous clients
	req.Header.Set(constant.RequestHeaderUserAgent, c.cfg.App.Name)
	req.Header.Set(constant.RequestHeaderAccept, constant.ContentTypeJSON)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("failed to read weather response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrBadResponse, resp.StatusCode)
	}

	if err = json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %w", ErrBadResponse, err)
	}

	return nil
}
