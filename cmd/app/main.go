package main

import (
	"heritage/config"
	"heritage/di"
	"heritage/helper"
	"heritage/shared/logger"

	"github.com/rs/zerolog/log"
)

// @title Heritage API
// @version 1.0
// @description Booking and crowd forecasting for heritage sites and museums.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer access token issued by the identity provider.
func main() {
	logger.InitLogger()

	cfg := config.Get()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to migrate database")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
