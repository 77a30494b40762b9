package place

import (
	"heritage/infras/otel"
	"heritage/internal/domains/place/model"
	"heritage/internal/domains/place/model/dto"
	"heritage/internal/domains/place/service"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/failure"
	"heritage/shared/validator"
	"heritage/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	queryParamName = "name"
	queryParamType = "type"
	queryParamCity = "city"
)

type Handler struct {
	service service.Place
	otel    otel.Otel
}

func New(service service.Place, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/places", handler.GetPlaces)
	router.Post("/places", handler.CreatePlace)
	router.Get("/places/slots", handler.GetTimeSlots)
	router.Get("/places/{id}", handler.GetPlaceByID)
	router.Patch("/places/{id}", handler.UpdatePlace)
	router.Delete("/places/{id}", handler.DeletePlace)
	router.Post("/places/{id}/images", handler.UploadPlaceImage)
	router.Delete("/places/{id}/images", handler.RemovePlaceImage)
}

// CreatePlace handles the creation of a new place.
// @Summary Create a place
// @Description Create a heritage site or museum. Booking aggregates start empty.
// @Tags Place
// @Accept json
// @Produce json
// @Param request body dto.CreatePlaceRequest true "Create Place Request"
// @Success 201 {object} response.Data[dto.CreatePlaceResponse]
// @Failure 400 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places [post]
// @Security BearerAuth
func (handler *Handler) CreatePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePlace")
	defer scope.End()

	req := dto.CreatePlaceRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create place")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Place created successfully")

	response.WithJSON(w, http.StatusCreated, res)
}

// GetPlaces lists places.
// @Summary List places
// @Tags Place
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param type query string false "Filter by type"
// @Param city query string false "Filter by city"
// @Success 200 {object} response.Data[dto.GetPlacesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/places [get]
func (handler *Handler) GetPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaces")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)
	queryParams.RestrictSort(model.FieldName, model.FieldCity, model.FieldBookingsCount, constant.FieldCreatedAt)

	filterGroup := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{},
	}

	if name := r.URL.Query().Get(queryParamName); name != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	if category := r.URL.Query().Get(queryParamType); category != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Operator: gDto.FilterOperatorEq,
			Value:    category,
			Table:    model.TableName,
		})
	}

	if city := r.URL.Query().Get(queryParamCity); city != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldCity,
			Operator: gDto.FilterOperatorLike,
			Value:    city,
			Table:    model.TableName,
		})
	}

	places, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get places")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, places)
}

// GetTimeSlots returns the bookable time slots.
// @Summary List bookable time slots
// @Tags Place
// @Produce json
// @Success 200 {object} response.Data[dto.TimeSlotsResponse]
// @Router /v1/places/slots [get]
func (handler *Handler) GetTimeSlots(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTimeSlots")
	defer scope.End()

	response.WithJSON(w, http.StatusOK, handler.service.TimeSlots(ctx))
}

// GetPlaceByID retrieves a place by its ID.
// @Summary Get a place
// @Tags Place
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.Data[dto.PlaceResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/places/{id} [get]
func (handler *Handler) GetPlaceByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPlaceByID")
	defer scope.End()

	place, err := handler.service.Get(ctx, chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get place by ID")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, place)
}

// UpdatePlace edits the descriptive fields of a place.
// @Summary Update a place
// @Description Booking aggregates cannot be edited here.
// @Tags Place
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Param request body dto.UpdatePlaceRequest true "Update Place Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/places/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePlace")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdatePlaceRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update place")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Place updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Place updated successfully")
}

// DeletePlace deletes a place without bookings.
// @Summary Delete a place
// @Tags Place
// @Produce json
// @Param id path string true "Place ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/places/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePlace(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePlace")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(r, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete place")

		response.WithError(w, err)

		return
	}

	response.WithMessage(w, http.StatusOK, "Place deleted successfully")
}

// UploadPlaceImage stores an image and appends it to the place.
// @Summary Upload a place image
// @Tags Place
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Place ID"
// @Param file formData file true "png, jpeg or webp image"
// @Success 201 {object} response.Data[dto.ImagesResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/places/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadPlaceImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadPlaceImage")
	defer scope.End()

	r.Body = http.MaxBytesReader(w, r.Body, constant.RequestMaxMemory)

	if err := r.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(w, failure.BadRequest(err))

		return
	}

	file, _, err := r.FormFile(constant.FormFile)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get file from form")

		response.WithError(w, failure.BadRequest(err))

		return
	}
	defer file.Close()

	req, err := dto.NewUploadImageRequest(file)
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	res, err := handler.service.AddImage(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload place image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusCreated, res)
}

// RemovePlaceImage removes an image from the place and from storage.
// @Summary Remove a place image
// @Tags Place
// @Accept json
// @Produce json
// @Param id path string true "Place ID"
// @Param request body dto.RemoveImageRequest true "Image to remove"
// @Success 200 {object} response.Data[dto.ImagesResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/places/{id}/images [delete]
// @Security BearerAuth
func (handler *Handler) RemovePlaceImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RemovePlaceImage")
	defer scope.End()

	req := dto.RemoveImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	res, err := handler.service.RemoveImage(ctx, chi.URLParam(r, constant.RequestParamID), req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to remove place image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
