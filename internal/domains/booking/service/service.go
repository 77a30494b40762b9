package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"heritage/config"
	"heritage/infras/kafka"
	"heritage/infras/otel"
	"heritage/internal/domains/booking/model"
	"heritage/internal/domains/booking/model/dto"
	"heritage/internal/domains/booking/repository"
	placeModel "heritage/internal/domains/place/model"
	placeRepo "heritage/internal/domains/place/repository"
	"heritage/shared"
	"heritage/shared/cache"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/failure"
	gRepo "heritage/shared/repository"
	"heritage/shared/timezone"
	"heritage/shared/validator"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetBooking    = "booking:get"
	cacheGetAllBooking = "booking:gets"
	cacheCountBooking  = "booking:count"
	cacheGetMyBooking  = "booking:mine"
	cacheIdempotency   = "booking:idempotency"

	idempotencyPending = "pending"

	defaultTimeout = 10 * time.Second
)

var (
	errPlaceNotFound    = errors.New("place not found")
	errStoreUnavailable = errors.New("booking could not be saved, please try again")
)

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest, requester dto.Requester) (dto.CreateBookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	GetMine(ctx context.Context, requester dto.Requester, req gDto.QueryParams) (dto.GetMyBookingsResponse, error)
	Get(ctx context.Context, id string, requester dto.Requester) (dto.BookingResponse, error)
}

type serviceImpl struct {
	repo      repository.Booking
	placeRepo placeRepo.Place
	cfg       *config.Config
	cache     cache.RedisCache
	kafka     kafka.Client
	otel      otel.Otel
}

func New(repo repository.Booking, placeRepo placeRepo.Place, cfg *config.Config, cache cache.RedisCache, kafka kafka.Client, otel otel.Otel) Booking {
	return &serviceImpl{
		repo:      repo,
		placeRepo: placeRepo,
		cfg:       cfg,
		cache:     cache,
		kafka:     kafka,
		otel:      otel,
	}
}

// Create records a booking and folds it into the place aggregates in one transaction.
// A version conflict on the place is retried with linear backoff.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest, requester dto.Requester) (res dto.CreateBookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if requester.UserID == constant.Empty {
		return res, failure.Unauthorized("login required to book a visit") // nolint:wrapcheck
	}

	if err = validator.ValidateStruct(&req); err != nil {
		return res, err //nolint:wrapcheck
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	idempotencyKey := constant.Empty
	if req.IdempotencyKey != constant.Empty {
		idempotencyKey = shared.BuildCacheKey(cacheIdempotency, requester.UserID, req.IdempotencyKey)

		id, replayed, err := s.claimIdempotencyKey(ctx, idempotencyKey)
		if err != nil {
			return res, err
		}

		if replayed {
			log.Info().Str("bookingID", id).Msg("replaying booking for idempotency key")

			res.ID = id

			return res, nil
		}
	}

	booking := req.ToModel(requester, timezone.Now())

	if err = s.commit(ctx, booking); err != nil {
		if idempotencyKey != constant.Empty {
			s.releaseIdempotencyKey(context.WithoutCancel(ctx), idempotencyKey)
		}

		return res, err
	}

	if idempotencyKey != constant.Empty {
		s.saveIdempotencyResult(context.WithoutCancel(ctx), idempotencyKey, booking.ID)
	}

	go s.afterCommit(context.WithoutCancel(ctx), booking)

	scope.SetAttribute("booking.id", booking.ID)
	res.ID = booking.ID

	return res, nil
}

func (s *serviceImpl) commit(ctx context.Context, booking model.Booking) error {
	attempts := max(1, s.cfg.Booking.MaxRetry)
	backoff := time.Duration(s.cfg.Booking.RetryBackoffMillis) * time.Millisecond

	var err error

	for attempt := 1; attempt <= attempts; attempt++ {
		err = s.placeRepo.WithTransaction(ctx, func(tx *sqlx.Tx) error {
			return s.book(ctx, tx, booking)
		})
		if !errors.Is(err, gRepo.ErrConflict) || attempt == attempts {
			break
		}

		log.Warn().Err(err).Str("placeID", booking.PlaceID).Int("attempt", attempt).Msg("place changed during booking, retrying")

		if waitErr := sleep(ctx, backoff*time.Duration(attempt)); waitErr != nil {
			err = waitErr

			break
		}
	}

	switch {
	case err == nil:
		return nil
	case errors.Is(err, errPlaceNotFound):
		return failure.PlaceNotFound("place not found") // nolint:wrapcheck
	case errors.Is(err, gRepo.ErrConflict):
		log.Error().Err(err).Str("placeID", booking.PlaceID).Int("attempts", attempts).Msg("booking retries exhausted")

		return failure.Conflict("place is busy, please try again") // nolint:wrapcheck
	default:
		log.Error().Err(err).Str("placeID", booking.PlaceID).Msg("failed to create booking")

		return failure.StoreUnavailable(errStoreUnavailable) // nolint:wrapcheck
	}
}

// book runs one attempt: the place is read first so a missing place never leaves a booking behind.
func (s *serviceImpl) book(ctx context.Context, tx *sqlx.Tx, booking model.Booking) error {
	place, err := s.placeRepo.GetTx(ctx, tx, shared.FilterByID(booking.PlaceID, placeModel.FieldID, placeModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to read place: %w", err)
	}

	if place.ID == constant.Empty {
		return errPlaceNotFound
	}

	if err = s.repo.InsertTx(ctx, tx, booking); err != nil {
		return fmt.Errorf("failed to insert booking: %w", err)
	}

	next := place.ApplyBooking(booking.VisitDate, shared.Today(), booking.Visitors)

	affected, err := s.placeRepo.UpdateTxAffected(ctx, tx, next.AggregateFields(booking.UserID, timezone.Now()), placeModel.FilterByVersion(place.ID, place.Version))
	if err != nil {
		return fmt.Errorf("failed to update place aggregates: %w", err)
	}

	if affected == 0 {
		return gRepo.ErrConflict
	}

	return nil
}

func (s *serviceImpl) afterCommit(ctx context.Context, booking model.Booking) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".BookingCreated")
	defer scope.End()

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(placeModel.CacheGetPlace, booking.PlaceID)); err != nil {
		log.Error().Err(err).Msg("failed to delete place cache")
	}

	shared.InvalidateCaches(ctx, s.cache, placeModel.CacheGetAllPlace)
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllBooking)
	shared.InvalidateCaches(ctx, s.cache, cacheCountBooking)
	shared.InvalidateCaches(ctx, s.cache, shared.BuildCacheKey(cacheGetMyBooking, booking.UserID))

	message := kafka.Message{
		Key:   booking.PlaceID,
		Value: dto.NewBookingCreatedEvent(booking),
	}

	if err := s.kafka.SendMessages(ctx, s.cfg.Kafka.Topics.BookingCreated, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("bookingID", booking.ID).Msg("failed to publish booking created event")
	}
}

// claimIdempotencyKey reserves key for this request. It reports the booking id when a
// previous request with the same key already succeeded. Cache failures disable the check.
func (s *serviceImpl) claimIdempotencyKey(ctx context.Context, key string) (string, bool, error) {
	ttl := s.cfg.Booking.IdempotencyTTLSeconds

	claimed, err := s.cache.SaveIfAbsent(ctx, key, idempotencyPending, ttl)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("idempotency check unavailable")

		return constant.Empty, false, nil
	}

	if claimed {
		return constant.Empty, false, nil
	}

	var previous string
	if err = s.cache.Get(ctx, key, &previous); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("failed to read idempotency result")

		return constant.Empty, false, nil
	}

	if previous == idempotencyPending {
		return constant.Empty, false, failure.Conflict("a booking with this idempotency key is in progress") // nolint:wrapcheck
	}

	return previous, true, nil
}

func (s *serviceImpl) releaseIdempotencyKey(ctx context.Context, key string) {
	if err := s.cache.Delete(ctx, key); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to release idempotency key")
	}
}

func (s *serviceImpl) saveIdempotencyResult(ctx context.Context, key, bookingID string) {
	if err := s.cache.Save(ctx, key, bookingID, s.cfg.Booking.IdempotencyTTLSeconds); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save idempotency result")
	}
}

func (s *serviceImpl) timeout() time.Duration {
	if s.cfg.Booking.TimeoutSeconds > 0 {
		return time.Duration(s.cfg.Booking.TimeoutSeconds) * time.Second
	}

	return defaultTimeout
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err() //nolint:wrapcheck
	case <-timer.C:
		return nil
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for bookings")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save bookings to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountBooking, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for booking count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save booking count to cache")
		}
	}()

	return res, nil
}

// GetMine lists the requester's bookings, newest first, with the booked place attached.
func (s *serviceImpl) GetMine(ctx context.Context, requester dto.Requester, req gDto.QueryParams) (res dto.GetMyBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetMine")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if requester.UserID == constant.Empty {
		return res, failure.Unauthorized("login required") // nolint:wrapcheck
	}

	req.SortBy = model.TableName + "." + constant.FieldCreatedAt
	req.SortDir = gDto.SortDirDesc

	filter := shared.FilterByID(requester.UserID, model.FieldUserID, model.TableName)
	cacheKey := shared.BuildCacheKeyWithQuery(shared.BuildCacheKey(cacheGetMyBooking, requester.UserID), req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count user bookings")

		return res, fmt.Errorf("failed to count user bookings: %w", err)
	}

	models, err := s.repo.GetAllWithPlace(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user bookings")

		return res, fmt.Errorf("failed to get user bookings: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	cached := res

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save user bookings to cache")
		}
	}()

	return res, nil
}

// Get returns a booking owned by the requester. Admins can read any booking.
func (s *serviceImpl) Get(ctx context.Context, id string, requester dto.Requester) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetBooking, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err != nil {
		booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get booking")

			return res, fmt.Errorf("failed to get booking: %w", err)
		}

		if booking.ID == constant.Empty {
			return res, failure.NotFound("booking not found") // nolint:wrapcheck
		}

		res.FromModel(booking)

		cached := res

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, cached, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save booking to cache")
			}
		}()
	}

	if !canRead(res, requester) {
		return dto.BookingResponse{}, failure.NotFound("booking not found") // nolint:wrapcheck
	}

	return res, nil
}

func canRead(booking dto.BookingResponse, requester dto.Requester) bool {
	switch requester.Role {
	case constant.RoleAdmin, constant.RoleSuperAdmin:
		return true
	default:
		return requester.UserID != constant.Empty && booking.UserID == requester.UserID
	}
}
