package service_test

import (
	"context"
	"errors"
	"heritage/config"
	"heritage/infras/otel/mocks"
	"heritage/infras/predictor"
	predictorMocks "heritage/infras/predictor/mocks"
	weatherMocks "heritage/infras/weather/mocks"
	bookingMocks "heritage/internal/domains/booking/mocks"
	"heritage/internal/domains/crowd/model"
	"heritage/internal/domains/crowd/model/dto"
	"heritage/internal/domains/crowd/service"
	placeMocks "heritage/internal/domains/place/mocks"
	placeModel "heritage/internal/domains/place/model"
	cacheMocks "heritage/shared/cache/mocks"
	"heritage/shared/failure"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	places    *placeMocks.MockPlace
	bookings  *bookingMocks.MockBooking
	predictor *predictorMocks.MockClient
	weather   *weatherMocks.MockClient
	cache     *cacheMocks.MockRedisCache
	cfg       *config.Config
	svc       service.Crowd
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Prediction.DefaultTemperature = 30
	cfg.Prediction.ModerateThreshold = 0.4
	cfg.Prediction.HighThreshold = 0.7
	cfg.Prediction.CacheTTL = 900

	f := fixture{
		places:    placeMocks.NewMockPlace(ctrl),
		bookings:  bookingMocks.NewMockBooking(ctrl),
		predictor: predictorMocks.NewMockClient(ctrl),
		weather:   weatherMocks.NewMockClient(ctrl),
		cache:     cacheMocks.NewMockRedisCache(ctrl),
		cfg:       cfg,
	}

	f.svc = service.New(f.places, f.bookings, f.predictor, f.weather, cfg, f.cache, mocks.NewOtel())

	t.Cleanup(func() { time.Sleep(10 * time.Millisecond) })

	return f
}

func forecastRequest() dto.ForecastRequest {
	return dto.ForecastRequest{PlaceID: "P1", Date: "2030-06-15", TimeSlot: "14:00"}
}

func saturdayAt2pm(temperature float64) predictor.CrowdFeatures {
	return predictor.CrowdFeatures{DayOfWeek: 6, IsWeekend: 1, Temperature: temperature, Month: 6, Hour: 14}
}

func (f fixture) expectPlace(place placeModel.Place) {
	f.places.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(place, nil)
}

func TestCrowdService_Forecast(t *testing.T) {
	f := newFixture(t)
	features := saturdayAt2pm(18.5)

	f.cache.EXPECT().Get(gomock.Any(), "crowd:forecast:P1:2030-06-15:14:00", gomock.Any()).Return(errors.New("miss"))
	f.expectPlace(placeModel.Place{ID: "P1", City: "Agra", Country: "India"})
	f.weather.EXPECT().Temperature(gomock.Any(), "Agra", "India").Return(18.5, nil)
	f.predictor.EXPECT().PredictCrowd(gomock.Any(), features).Return(0.55, nil)
	f.predictor.EXPECT().PredictSeason(gomock.Any(), features.Season()).Return(0.9, nil)
	f.cache.EXPECT().Save(gomock.Any(), "crowd:forecast:P1:2030-06-15:14:00", gomock.Any(), 900).Return(nil).AnyTimes()

	res, err := f.svc.Forecast(context.Background(), forecastRequest())

	require.NoError(t, err)
	assert.Equal(t, model.LevelModerate, res.Level)
	require.NotNil(t, res.Crowd)
	assert.InDelta(t, 0.55, *res.Crowd, 0.0001)
	require.NotNil(t, res.Season)
	assert.InDelta(t, 0.9, *res.Season, 0.0001)
	assert.InDelta(t, 18.5, res.Temperature, 0.0001)
	assert.False(t, res.IsHoliday)
}

func TestCrowdService_ForecastCacheHit(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
		*(value.(*dto.ForecastResponse)) = dto.ForecastResponse{PlaceID: "P1", Level: model.LevelHigh}

		return nil
	})

	res, err := f.svc.Forecast(context.Background(), forecastRequest())

	require.NoError(t, err)
	assert.Equal(t, model.LevelHigh, res.Level)
}

func TestCrowdService_ForecastFallsBackToDefaultTemperature(t *testing.T) {
	f := newFixture(t)
	f.cfg.Prediction.Holidays = []string{"06-15"}

	features := saturdayAt2pm(30)
	features.IsHoliday = 1

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.expectPlace(placeModel.Place{ID: "P1", City: "Nowhere", Country: "Atlantis"})
	f.weather.EXPECT().Temperature(gomock.Any(), gomock.Any(), gomock.Any()).Return(0.0, errors.New("geocode failed"))
	f.predictor.EXPECT().PredictCrowd(gomock.Any(), features).Return(0.1, nil)
	f.predictor.EXPECT().PredictSeason(gomock.Any(), features.Season()).Return(0.2, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	res, err := f.svc.Forecast(context.Background(), forecastRequest())

	require.NoError(t, err)
	assert.Equal(t, model.LevelLow, res.Level)
	assert.InDelta(t, 30.0, res.Temperature, 0.0001)
	assert.True(t, res.IsHoliday)
}

func TestCrowdService_ForecastPredictionFailure(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.expectPlace(placeModel.Place{ID: "P1", City: "Agra", Country: "India"})
	f.weather.EXPECT().Temperature(gomock.Any(), gomock.Any(), gomock.Any()).Return(25.0, nil)
	f.predictor.EXPECT().PredictCrowd(gomock.Any(), gomock.Any()).Return(0.0, predictor.ErrBadResponse)
	f.predictor.EXPECT().PredictSeason(gomock.Any(), gomock.Any()).Return(0.0, context.DeadlineExceeded)

	res, err := f.svc.Forecast(context.Background(), forecastRequest())

	require.NoError(t, err)
	assert.Equal(t, model.LevelUnavailable, res.Level)
	assert.Nil(t, res.Crowd)
	assert.Nil(t, res.Season)
}

func TestCrowdService_ForecastUnknownPlace(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.expectPlace(placeModel.Place{})

	_, err := f.svc.Forecast(context.Background(), forecastRequest())

	require.Error(t, err)
	assert.Equal(t, failure.KindPlaceNotFound, failure.GetKind(err))
}

func TestCrowdService_ForecastStoreError(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	f.places.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(placeModel.Place{}, errors.New("pq: connection refused"))

	_, err := f.svc.Forecast(context.Background(), forecastRequest())

	require.Error(t, err)
	assert.Equal(t, failure.KindStoreUnavailable, failure.GetKind(err))
	assert.NotContains(t, err.Error(), "connection refused")
}

func TestCrowdService_ForecastInvalidRequest(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		req  dto.ForecastRequest
	}{
		{name: "missing place", req: dto.ForecastRequest{Date: "2030-06-15", TimeSlot: "14:00"}},
		{name: "malformed date", req: dto.ForecastRequest{PlaceID: "P1", Date: "15/06/2030", TimeSlot: "14:00"}},
		{name: "malformed slot", req: dto.ForecastRequest{PlaceID: "P1", Date: "2030-06-15", TimeSlot: "afternoon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Forecast(context.Background(), tt.req)

			require.Error(t, err)
			assert.Equal(t, failure.KindInvalidInput, failure.GetKind(err))
		})
	}
}

func TestCrowdService_PlaceStats(t *testing.T) {
	f := newFixture(t)

	f.expectPlace(placeModel.Place{
		ID:            "P1",
		Name:          "Taj Mahal",
		City:          "Agra",
		Country:       "India",
		CurrentCrowd:  10,
		MaxCrowd:      100,
		BookingsCount: 6,
		DailyStats:    placeModel.DailyStats{"2030-06-15": 5},
	})
	f.weather.EXPECT().Temperature(gomock.Any(), "Agra", "India").Return(33.0, nil)
	f.predictor.EXPECT().PredictSeason(gomock.Any(), gomock.Any()).Return(0.7, nil)
	f.predictor.EXPECT().PredictCrowd(gomock.Any(), gomock.Any()).Return(0.8, nil)
	f.predictor.EXPECT().PredictPeak(gomock.Any(), gomock.Any()).Return(0.0, errors.New("model offline"))
	f.predictor.EXPECT().PredictAnomaly(gomock.Any(), gomock.Any()).Return(0.1, nil)

	res, err := f.svc.PlaceStats(context.Background(), "P1")

	require.NoError(t, err)
	assert.Equal(t, "Taj Mahal", res.Name)
	assert.InDelta(t, 10.0, res.OccupancyPercent, 0.0001)
	assert.InDelta(t, 33.0, res.Temperature, 0.0001)
	assert.Nil(t, res.Predictions.Peak)
	assert.Nil(t, res.Labels.PeakTime)
	require.NotNil(t, res.Labels.HighSeason)
	assert.True(t, *res.Labels.HighSeason)
	require.NotNil(t, res.Labels.AnomalyDetected)
	assert.False(t, *res.Labels.AnomalyDetected)
	require.NotNil(t, res.PredictedCrowd)
	assert.Equal(t, 11, *res.PredictedCrowd)
	assert.Equal(t, placeModel.DailyStats{"2030-06-15": 5}, res.DailyStats)
}

func TestCrowdService_PlaceStatsUnknownPlace(t *testing.T) {
	f := newFixture(t)

	f.expectPlace(placeModel.Place{})

	_, err := f.svc.PlaceStats(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, failure.KindPlaceNotFound, failure.GetKind(err))
}

func TestCrowdService_Overview(t *testing.T) {
	f := newFixture(t)

	f.places.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
	f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(37, nil)
	f.places.EXPECT().Sum(gomock.Any(), placeModel.FieldCurrentCrowd, gomock.Any()).Return(50, nil)
	f.places.EXPECT().Sum(gomock.Any(), placeModel.FieldMaxCrowd, gomock.Any()).Return(200, nil)

	res, err := f.svc.Overview(context.Background())

	require.NoError(t, err)
	assert.Equal(t, dto.OverviewResponse{
		TotalPlaces:       4,
		TotalBookings:     37,
		TotalCurrentCrowd: 50,
		TotalCapacity:     200,
		OccupancyPercent:  25,
	}, res)
}

func TestCrowdService_OverviewStoreError(t *testing.T) {
	f := newFixture(t)

	f.places.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, errors.New("pq: too many connections")).AnyTimes()
	f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
	f.places.EXPECT().Sum(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()

	res, err := f.svc.Overview(context.Background())

	require.Error(t, err)
	assert.Equal(t, failure.KindStoreUnavailable, failure.GetKind(err))
	assert.Equal(t, dto.OverviewResponse{}, res)
}
