package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"heritage/config"
	"heritage/infras/otel"
	"heritage/infras/predictor"
	"heritage/infras/weather"
	bookingRepo "heritage/internal/domains/booking/repository"
	"heritage/internal/domains/crowd/model"
	"heritage/internal/domains/crowd/model/dto"
	placeModel "heritage/internal/domains/place/model"
	placeRepo "heritage/internal/domains/place/repository"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/failure"
	"heritage/shared/timezone"
	"heritage/shared/validator"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var errStoreUnavailable = errors.New("crowd data is temporarily unavailable, please try again")

// Crowd serves advisory crowd forecasts. Nothing here writes to the store and no booking
// waits on it.
type Crowd interface {
	Forecast(ctx context.Context, req dto.ForecastRequest) (dto.ForecastResponse, error)
	PlaceStats(ctx context.Context, placeID string) (dto.PlaceStatsResponse, error)
	Overview(ctx context.Context) (dto.OverviewResponse, error)
}

type serviceImpl struct {
	placeRepo   placeRepo.Place
	bookingRepo bookingRepo.Booking
	predictor   predictor.Client
	weather     weather.Client
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	placeRepo placeRepo.Place,
	bookingRepo bookingRepo.Booking,
	predictor predictor.Client,
	weather weather.Client,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Crowd {
	return &serviceImpl{
		placeRepo:   placeRepo,
		bookingRepo: bookingRepo,
		predictor:   predictor,
		weather:     weather,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Forecast(ctx context.Context, req dto.ForecastRequest) (res dto.ForecastResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Forecast")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	visitAt, err := model.VisitTime(req.Date, req.TimeSlot)
	if err != nil {
		return res, failure.BadRequest(err) //nolint:wrapcheck
	}

	cacheKey := shared.BuildCacheKey(model.CacheForecast, req.PlaceID, req.Date, req.TimeSlot)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for crowd forecast")

		return res, nil
	}

	place, err := s.getPlace(ctx, req.PlaceID, placeModel.FieldID, placeModel.FieldCity, placeModel.FieldCountry)
	if err != nil {
		return res, err
	}

	temperature := s.temperature(ctx, place)
	features := model.Features(visitAt, s.cfg.Prediction.Holidays, temperature)

	var predictions dto.Predictions

	g := errgroup.Group{}
	s.predict(ctx, &g, "crowd", &predictions.Crowd, func(ctx context.Context) (float64, error) {
		return s.predictor.PredictCrowd(ctx, features)
	})
	s.predict(ctx, &g, "season", &predictions.Season, func(ctx context.Context) (float64, error) {
		return s.predictor.PredictSeason(ctx, features.Season())
	})
	_ = g.Wait()

	res = dto.ForecastResponse{
		PlaceID:     req.PlaceID,
		Date:        req.Date,
		TimeSlot:    req.TimeSlot,
		Level:       model.LevelUnavailable,
		Crowd:       predictions.Crowd,
		Season:      predictions.Season,
		Temperature: temperature,
		IsHoliday:   features.IsHoliday == 1,
	}

	if predictions.Crowd == nil {
		return res, nil
	}

	res.Level = model.Classify(*predictions.Crowd, s.cfg.Prediction.ModerateThreshold, s.cfg.Prediction.HighThreshold)

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Prediction.CacheTTL); err != nil {
			log.Error().Err(err).Msg("failed to save crowd forecast to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) PlaceStats(ctx context.Context, placeID string) (res dto.PlaceStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PlaceStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	place, err := s.getPlace(ctx, placeID)
	if err != nil {
		return res, err
	}

	now := timezone.Now()
	temperature := s.temperature(ctx, place)
	features := model.Features(now, s.cfg.Prediction.Holidays, temperature)

	var predictions dto.Predictions

	g := errgroup.Group{}
	s.predict(ctx, &g, "season", &predictions.Season, func(ctx context.Context) (float64, error) {
		return s.predictor.PredictSeason(ctx, features.Season())
	})
	s.predict(ctx, &g, "crowd", &predictions.Crowd, func(ctx context.Context) (float64, error) {
		return s.predictor.PredictCrowd(ctx, features)
	})
	s.predict(ctx, &g, "peak", &predictions.Peak, func(ctx context.Context) (float64, error) {
		return s.predictor.PredictPeak(ctx, features)
	})
	s.predict(ctx, &g, "anomaly", &predictions.Anomaly, func(ctx context.Context) (float64, error) {
		return s.predictor.PredictAnomaly(ctx, features)
	})
	_ = g.Wait()

	res.FromModel(place, predictions, temperature, now)

	return res, nil
}

func (s *serviceImpl) Overview(ctx context.Context) (res dto.OverviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Overview")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	all := gDto.FilterGroup{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		res.TotalPlaces, err = s.placeRepo.Count(gctx, all)

		return err
	})
	g.Go(func() (err error) {
		res.TotalBookings, err = s.bookingRepo.Count(gctx, all)

		return err
	})
	g.Go(func() (err error) {
		res.TotalCurrentCrowd, err = s.placeRepo.Sum(gctx, placeModel.FieldCurrentCrowd, all)

		return err
	})
	g.Go(func() (err error) {
		res.TotalCapacity, err = s.placeRepo.Sum(gctx, placeModel.FieldMaxCrowd, all)

		return err
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to build crowd overview")

		return dto.OverviewResponse{}, failure.StoreUnavailable(errStoreUnavailable) //nolint:wrapcheck
	}

	res.OccupancyPercent = placeModel.Percent(res.TotalCurrentCrowd, res.TotalCapacity)

	return res, nil
}

func (s *serviceImpl) getPlace(ctx context.Context, id string, columns ...string) (placeModel.Place, error) {
	place, err := s.placeRepo.Get(ctx, shared.FilterByID(id, placeModel.FieldID, placeModel.TableName), columns...)
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get place")

		return place, failure.StoreUnavailable(errStoreUnavailable) //nolint:wrapcheck
	}

	if place.ID == "" {
		return place, failure.PlaceNotFound("place not found") //nolint:wrapcheck
	}

	return place, nil
}

// temperature falls back to the configured default when the weather lookup fails.
func (s *serviceImpl) temperature(ctx context.Context, place placeModel.Place) float64 {
	temperature, err := s.weather.Temperature(ctx, place.City, place.Country)
	if err != nil {
		log.Debug().Err(err).Str("place", place.ID).Msg("using default temperature")

		return s.cfg.Prediction.DefaultTemperature
	}

	return temperature
}

// predict runs fn on g and stores the result in dst. A failed prediction leaves dst nil.
func (s *serviceImpl) predict(ctx context.Context, g *errgroup.Group, name string, dst **float64, fn func(context.Context) (float64, error)) {
	g.Go(func() error {
		value, err := fn(ctx)
		if err != nil {
			log.Warn().Err(err).Str("model", name).Msg("crowd prediction unavailable")

			return nil
		}

		*dst = &value

		return nil
	})
}
