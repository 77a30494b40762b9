package crowd

import (
	"heritage/infras/otel"
	"heritage/internal/domains/crowd/model/dto"
	"heritage/internal/domains/crowd/service"
	"heritage/shared/constant"
	"heritage/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Crowd
	otel    otel.Otel
}

func New(service service.Crowd, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/crowd/forecast", handler.GetForecast)
	router.Get("/crowd/overview", handler.GetOverview)
	router.Get("/crowd/places/{id}/stats", handler.GetPlaceStats)
}

// GetForecast predicts the crowd level for a visit. A failing prediction service yields
// the Unavailable level, never an error.
// @Summary Forecast the crowd level for a visit
// @Tags Crowd
// @Produce json
// @Param place_id query string true "Place ID"
// @Param date query string true "Visit date (YYYY-MM-DD)"
// @Param time_slot query string true "Time slot (HH:MM)"
// @Success 200 {object} response.Data[dto.ForecastResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/crowd/forecast [get]
func (handler *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetForecast")
	defer scope.End()

	query := r.URL.Query()

	forecast, err := handler.service.Forecast(ctx, dto.ForecastRequest{
		PlaceID:  query.Get(constant.RequestParamPlaceID),
		Date:     query.Get(constant.RequestParamDate),
		TimeSlot: query.Get(constant.RequestParamTimeSlot),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to forecast crowd")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, forecast)
}

// GetPlaceStats returns live occupancy and all model predictions for a place.
// @Summary Live statistics and predictions for a place
// @Tags Crowd
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.Data[dto.PlaceStatsResponse]
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/crowd/places/{id}/stats [get]
// @Security BearerAuth
func (handler *Handler) GetPlaceStats(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaceStats")
	defer scope.End()

	stats, err := handler.service.PlaceStats(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get place stats")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, stats)
}

// GetOverview returns totals across every place for the admin dashboard.
// @Summary Dashboard totals across all places
// @Tags Crowd
// @Produce json
// @Success 200 {object} response.Data[dto.OverviewResponse]
// @Failure 503 {object} response.Error
// @Router /v1/crowd/overview [get]
// @Security BearerAuth
func (handler *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetOverview")
	defer scope.End()

	overview, err := handler.service.Overview(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get crowd overview")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, overview)
}
