//go:build wireinject
// +build wireinject

package di

import (
	"heritage/config"
	"heritage/infras/jwt"
	"heritage/infras/kafka"
	"heritage/infras/otel"
	"heritage/infras/postgres"
	"heritage/infras/predictor"
	"heritage/infras/redis"
	"heritage/infras/s3"
	"heritage/infras/weather"
	bookingRepository "heritage/internal/domains/booking/repository"
	bookingService "heritage/internal/domains/booking/service"
	crowdService "heritage/internal/domains/crowd/service"
	placeRepository "heritage/internal/domains/place/repository"
	placeService "heritage/internal/domains/place/service"
	bookingHandler "heritage/internal/handlers/booking"
	crowdHandler "heritage/internal/handlers/crowd"
	placeHandler "heritage/internal/handlers/place"
	"heritage/permissions"
	"heritage/shared/cache"
	"heritage/transport/http"
	"heritage/transport/http/middleware"
	"heritage/transport/http/router"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
	predictor.New,
	weather.New,
	s3.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var placeDomain = wire.NewSet(
	placeRepository.New,
	placeService.New,
)

var bookingDomain = wire.NewSet(
	bookingRepository.New,
	bookingService.New,
)

var crowdDomain = wire.NewSet(
	crowdService.New,
)

var domains = wire.NewSet(
	placeDomain,
	bookingDomain,
	crowdDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	placeHandler.New,
	bookingHandler.New,
	crowdHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
