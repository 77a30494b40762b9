package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"heritage/config"
	"heritage/infras/otel"
	"heritage/infras/s3"
	"heritage/internal/domains/place/model"
	"heritage/internal/domains/place/model/dto"
	"heritage/internal/domains/place/repository"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/failure"
	gRepo "heritage/shared/repository"
	"heritage/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

var (
	errPlaceNotFound = errors.New("place not found")
	errImageNotFound = errors.New("image not found")
)

type Place interface {
	Create(ctx context.Context, req dto.CreatePlaceRequest) (dto.CreatePlaceResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPlacesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, id string) (dto.PlaceResponse, error)
	Update(ctx context.Context, req dto.UpdatePlaceRequest, id string) error
	Delete(ctx context.Context, id string) error
	TimeSlots(ctx context.Context) dto.TimeSlotsResponse
	AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (dto.ImagesResponse, error)
	RemoveImage(ctx context.Context, id string, req dto.RemoveImageRequest) (dto.ImagesResponse, error)
}

type serviceImpl struct {
	repo    repository.Place
	cfg     *config.Config
	cache   cache.RedisCache
	otel    otel.Otel
	storage s3.S3
}

func New(repo repository.Place, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, storage s3.S3) Place {
	return &serviceImpl{
		repo:    repo,
		cfg:     cfg,
		cache:   cache,
		otel:    otel,
		storage: storage,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePlaceRequest) (res dto.CreatePlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	place := req.ToModel(user)

	if err = s.repo.Insert(ctx, place); err != nil {
		log.Error().Err(err).Msg("failed to create place")

		return res, fmt.Errorf("failed to create place: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, model.CacheGetAllPlace)
		shared.InvalidateCaches(c, s.cache, model.CacheCountPlace)
	}()

	res.ID = place.ID

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPlacesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheGetAllPlace, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for places")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count places")

		return res, fmt.Errorf("failed to count places: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get places")

		return res, fmt.Errorf("failed to get places: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save places to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(model.CacheCountPlace, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for place count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count places")

		return 0, fmt.Errorf("failed to count places: %w", err)
	}

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save place count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PlaceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(model.CacheGetPlace, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for place")

		return res, nil
	}

	place, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get place")

		return res, fmt.Errorf("failed to get place: %w", err)
	}

	if place.ID == "" {
		return res, failure.NotFound("place not found") // nolint:wrapcheck
	}

	res.FromModel(place)

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save place to cache")
		}
	}()

	return res, nil
}

// Update edits the descriptive fields of a place. It bumps the version with the same
// compare-and-set a booking uses, so an edit racing a booking never overwrites its counters.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePlaceRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.IsEmpty() {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	updatedFields := shared.TransformFields(req, user)

	_, err = s.compareAndSet(ctx, id, func(place model.Place) (map[string]any, error) {
		updatedFields[model.FieldVersion] = place.Version + 1

		return updatedFields, nil
	}, model.FieldID, model.FieldVersion)

	if err != nil {
		return s.mapWriteError(err, id, "failed to update place")
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if place exists")

		return fmt.Errorf("failed to check if place exists: %w", err)
	}

	if !exist {
		return failure.NotFound("place not found") // nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		if gRepo.IsForeignKeyViolation(err) {
			return failure.Conflict("place still has bookings") // nolint:wrapcheck
		}

		log.Error().Err(err).Msg("failed to delete place")

		return fmt.Errorf("failed to delete place: %w", err)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return nil
}

// AddImage uploads an image and appends its URL to the place's images.
func (s *serviceImpl) AddImage(ctx context.Context, id string, req dto.UploadImageRequest) (res dto.ImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AddImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if place exists")

		return res, fmt.Errorf("failed to check if place exists: %w", err)
	}

	if !exist {
		return res, failure.NotFound("place not found") // nolint:wrapcheck
	}

	key := req.ObjectKey(id, uuid.NewString())

	url, err := s.storage.Upload(ctx, key, req.ContentType, req.Body)
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to upload place image")

		if errors.Is(err, s3.ErrNotConfigured) {
			return res, failure.StoreUnavailable(err) // nolint:wrapcheck
		}

		return res, fmt.Errorf("failed to upload place image: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var images model.StringList

	_, err = s.compareAndSet(ctx, id, func(place model.Place) (map[string]any, error) {
		images = append(place.Images.Without(url), url)

		return imageFields(images, place.Version, user), nil
	}, model.FieldID, model.FieldImages, model.FieldVersion)
	if err != nil {
		go s.deleteObject(context.WithoutCancel(ctx), key)

		return res, s.mapWriteError(err, id, "failed to add place image")
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return dto.ImagesResponse{URL: url, Images: images}, nil
}

// RemoveImage drops an image URL from the place. The stored object is deleted afterwards
// on a best effort basis.
func (s *serviceImpl) RemoveImage(ctx context.Context, id string, req dto.RemoveImageRequest) (res dto.ImagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".RemoveImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var remaining model.StringList

	_, err = s.compareAndSet(ctx, id, func(place model.Place) (map[string]any, error) {
		remaining = place.Images.Without(req.URL)
		if len(remaining) == len(place.Images) {
			return nil, errImageNotFound
		}

		return imageFields(remaining, place.Version, user), nil
	}, model.FieldID, model.FieldImages, model.FieldVersion)
	if err != nil {
		return res, s.mapWriteError(err, id, "failed to remove place image")
	}

	if key := s.storage.KeyFromURL(req.URL); key != constant.Empty {
		go s.deleteObject(context.WithoutCancel(ctx), key)
	}

	go s.invalidate(context.WithoutCancel(ctx), id)

	return dto.ImagesResponse{Images: remaining}, nil
}

// compareAndSet reads the place inside a transaction and writes the fields returned by
// change only if the version is still the one read.
func (s *serviceImpl) compareAndSet(
	ctx context.Context,
	id string,
	change func(place model.Place) (map[string]any, error),
	columns ...string,
) (place model.Place, err error) {
	err = s.repo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		place, err = s.repo.GetTx(ctx, tx, shared.FilterByID(id, model.FieldID, model.TableName), columns...)
		if err != nil {
			return err
		}

		if place.ID == "" {
			return errPlaceNotFound
		}

		fields, err := change(place)
		if err != nil {
			return err
		}

		affected, err := s.repo.UpdateTxAffected(ctx, tx, fields, model.FilterByVersion(id, place.Version))
		if err != nil {
			return err
		}

		if affected == 0 {
			return gRepo.ErrConflict
		}

		return nil
	})

	return place, err
}

func (s *serviceImpl) mapWriteError(err error, id, msg string) error {
	switch {
	case errors.Is(err, errPlaceNotFound):
		return failure.NotFound("place not found") // nolint:wrapcheck
	case errors.Is(err, errImageNotFound):
		return failure.NotFound("image not found") // nolint:wrapcheck
	case errors.Is(err, gRepo.ErrConflict):
		log.Warn().Err(err).Str("id", id).Msg("place changed during update")

		return failure.Conflict("place was modified concurrently, please retry") // nolint:wrapcheck
	default:
		log.Error().Err(err).Msg(msg)

		return fmt.Errorf("%s: %w", msg, err)
	}
}

func (s *serviceImpl) deleteObject(ctx context.Context, key string) {
	if err := s.storage.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to delete place image from storage")
	}
}

func imageFields(images model.StringList, version int64, user string) map[string]any {
	return map[string]any{
		model.FieldImages:        images,
		model.FieldVersion:       version + 1,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

func (s *serviceImpl) TimeSlots(_ context.Context) dto.TimeSlotsResponse {
	return dto.TimeSlotsResponse{TimeSlots: append([]string{}, s.cfg.Booking.TimeSlots...)}
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CacheGetPlace, id)); err != nil {
		log.Error().Err(err).Msg("failed to delete place cache")
	}

	shared.InvalidateCaches(ctx, s.cache, model.CacheGetAllPlace)
	shared.InvalidateCaches(ctx, s.cache, model.CacheCountPlace)
}
