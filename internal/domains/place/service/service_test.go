package service_test

import (
	"context"
	"errors"
	"heritage/config"
	"heritage/infras/otel/mocks"
	"heritage/infras/s3"
	s3Mocks "heritage/infras/s3/mocks"
	placeMocks "heritage/internal/domains/place/mocks"
	"heritage/internal/domains/place/model"
	"heritage/internal/domains/place/model/dto"
	"heritage/internal/domains/place/service"
	cacheMocks "heritage/shared/cache/mocks"
	"heritage/shared/constant"
	gDto "heritage/shared/dto"
	"heritage/shared/failure"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo    *placeMocks.MockPlace
	cache   *cacheMocks.MockRedisCache
	storage *s3Mocks.MockS3
	svc     service.Place
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	ctrl := gomock.NewController(t)

	repo := placeMocks.NewMockPlace(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)
	storage := s3Mocks.NewMockS3(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Booking.TimeSlots = []string{"09:00", "10:30"}

	return fixture{
		repo:    repo,
		cache:   redisCache,
		storage: storage,
		svc:     service.New(repo, cfg, redisCache, mocks.NewOtel(), storage),
	}
}

func adminContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")
}

func runTransaction(_ context.Context, fn func(*sqlx.Tx) error) error {
	return fn(nil)
}

func TestPlaceService_Create(t *testing.T) {
	f := newFixture(t)

	req := dto.CreatePlaceRequest{Name: "Amber Fort", PriceType: model.PriceTypePaid, City: "Jaipur", Country: "India", MaxCrowd: 300}

	f.repo.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, place model.Place) error {
			assert.Equal(t, "Amber Fort", place.Name)
			assert.Equal(t, "admin-1", place.CreatedBy)
			assert.Equal(t, int64(1), place.Version)

			return nil
		})

	res, err := f.svc.Create(adminContext(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, res.ID)

	time.Sleep(10 * time.Millisecond)
}

func TestPlaceService_Create_RepositoryError(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

	_, err := f.svc.Create(adminContext(), dto.CreatePlaceRequest{Name: "Fort"})
	assert.Error(t, err)
}

func TestPlaceService_Get(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f fixture)
		wantCode int
		wantName string
	}{
		{
			name: "cache hit",
			setup: func(f fixture) {
				f.cache.EXPECT().
					Get(gomock.Any(), "place:get:P1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						value.(*dto.PlaceResponse).Name = "Cached Fort"

						return nil
					})
			},
			wantName: "Cached Fort",
		},
		{
			name: "loaded from repository",
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{ID: "P1", Name: "City Palace"}, nil)
			},
			wantName: "City Palace",
		},
		{
			name: "not found",
			setup: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Place{}, nil)
			},
			wantCode: 404,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			res, err := f.svc.Get(context.Background(), "P1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantName, res.Name)
		})
	}
}

func TestPlaceService_GetAll(t *testing.T) {
	f := newFixture(t)

	params := gDto.QueryParams{Page: 1, Limit: 2}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Place{{ID: "a"}, {ID: "b"}}, nil)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})
	require.NoError(t, err)

	assert.Len(t, res.Places, 2)
	assert.Equal(t, 3, res.TotalData)
	assert.Equal(t, 2, res.TotalPage)

	time.Sleep(10 * time.Millisecond)
}

func TestPlaceService_Update(t *testing.T) {
	name := "Jantar Mantar"

	tests := []struct {
		name     string
		req      dto.UpdatePlaceRequest
		setup    func(f fixture)
		wantCode int
	}{
		{
			name:     "empty request",
			req:      dto.UpdatePlaceRequest{},
			setup:    func(fixture) {},
			wantCode: 400,
		},
		{
			name: "bumps version with compare and set",
			req:  dto.UpdatePlaceRequest{Name: name},
			setup: func(f fixture) {
				f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runTransaction)
				f.repo.EXPECT().
					GetTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID, model.FieldVersion).
					Return(model.Place{ID: "P1", Version: 4}, nil)
				f.repo.EXPECT().
					UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), model.FilterByVersion("P1", 4)).
					DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
						assert.Equal(t, name, fields[model.FieldName])
						assert.Equal(t, int64(5), fields[model.FieldVersion])
						assert.NotContains(t, fields, model.FieldBookingsCount)
						assert.NotContains(t, fields, model.FieldDailyStats)
						assert.NotContains(t, fields, model.FieldCurrentCrowd)

						return 1, nil
					})
			},
		},
		{
			name: "not found",
			req:  dto.UpdatePlaceRequest{Name: name},
			setup: func(f fixture) {
				f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runTransaction)
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Place{}, nil)
			},
			wantCode: 404,
		},
		{
			name: "lost race",
			req:  dto.UpdatePlaceRequest{Name: name},
			setup: func(f fixture) {
				f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runTransaction)
				f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Place{ID: "P1", Version: 4}, nil)
				f.repo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
			},
			wantCode: 409,
		},
		{
			name: "store error",
			req:  dto.UpdatePlaceRequest{Name: name},
			setup: func(f fixture) {
				f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).Return(errors.New("connection refused"))
			},
			wantCode: 500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Update(adminContext(), tt.req, "P1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestPlaceService_Delete(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(f fixture)
		wantCode int
	}{
		{
			name: "deleted",
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			},
		},
		{
			name: "not found",
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
			},
			wantCode: 404,
		},
		{
			name: "still referenced by bookings",
			setup: func(f fixture) {
				f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
				f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})
			},
			wantCode: 409,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f)

			err := f.svc.Delete(adminContext(), "P1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestPlaceService_TimeSlots(t *testing.T) {
	f := newFixture(t)

	assert.Equal(t, []string{"09:00", "10:30"}, f.svc.TimeSlots(context.Background()).TimeSlots)
}

func pngUpload(t *testing.T) dto.UploadImageRequest {
	t.Helper()

	req, err := dto.NewUploadImageRequest(strings.NewReader("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"))
	require.NoError(t, err)

	return req
}

func TestPlaceService_AddImage(t *testing.T) {
	const url = "https://cdn.example.com/places/P1/new.png"

	t.Run("appends with compare and set", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.storage.EXPECT().
			Upload(gomock.Any(), gomock.Any(), "image/png", gomock.Any()).
			DoAndReturn(func(_ context.Context, key, _ string, _ io.ReadSeeker) (string, error) {
				assert.True(t, strings.HasPrefix(key, "places/P1/"))
				assert.True(t, strings.HasSuffix(key, ".png"))

				return url, nil
			})
		f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runTransaction)
		f.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID, model.FieldImages, model.FieldVersion).
			Return(model.Place{ID: "P1", Images: model.StringList{"https://cdn.example.com/places/P1/old.png"}, Version: 7}, nil)
		f.repo.EXPECT().
			UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), model.FilterByVersion("P1", 7)).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StringList{"https://cdn.example.com/places/P1/old.png", url}, fields[model.FieldImages])
				assert.Equal(t, int64(8), fields[model.FieldVersion])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return 1, nil
			})

		res, err := f.svc.AddImage(adminContext(), "P1", pngUpload(t))

		require.NoError(t, err)
		assert.Equal(t, url, res.URL)
		assert.Equal(t, []string{"https://cdn.example.com/places/P1/old.png", url}, res.Images)
	})

	t.Run("unknown place uploads nothing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.AddImage(adminContext(), "P1", pngUpload(t))

		assert.Equal(t, 404, failure.GetCode(err))
	})

	t.Run("storage not configured", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", s3.ErrNotConfigured)

		_, err := f.svc.AddImage(adminContext(), "P1", pngUpload(t))

		assert.Equal(t, 503, failure.GetCode(err))
	})

	t.Run("lost race deletes the uploaded object", func(t *testing.T) {
		f := newFixture(t)
		deleted := make(chan string, 1)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.storage.EXPECT().Upload(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(url, nil)
		f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runTransaction)
		f.repo.EXPECT().GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Place{ID: "P1", Version: 7}, nil)
		f.repo.EXPECT().UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil)
		f.storage.EXPECT().Delete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, key string) error {
			deleted <- key

			return nil
		})

		_, err := f.svc.AddImage(adminContext(), "P1", pngUpload(t))

		assert.Equal(t, 409, failure.GetCode(err))

		select {
		case key := <-deleted:
			assert.True(t, strings.HasPrefix(key, "places/P1/"))
		case <-time.After(time.Second):
			t.Fatal("uploaded object was not deleted")
		}
	})
}

func TestPlaceService_RemoveImage(t *testing.T) {
	const (
		kept    = "https://cdn.example.com/places/P1/kept.png"
		removed = "https://cdn.example.com/places/P1/removed.png"
	)

	t.Run("removes url and stored object", func(t *testing.T) {
		f := newFixture(t)
		deleted := make(chan string, 1)

		f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runTransaction)
		f.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID, model.FieldImages, model.FieldVersion).
			Return(model.Place{ID: "P1", Images: model.StringList{kept, removed}, Version: 2}, nil)
		f.repo.EXPECT().
			UpdateTxAffected(gomock.Any(), gomock.Any(), gomock.Any(), model.FilterByVersion("P1", 2)).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) (int64, error) {
				assert.Equal(t, model.StringList{kept}, fields[model.FieldImages])

				return 1, nil
			})
		f.storage.EXPECT().KeyFromURL(removed).Return("places/P1/removed.png")
		f.storage.EXPECT().Delete(gomock.Any(), "places/P1/removed.png").DoAndReturn(func(_ context.Context, key string) error {
			deleted <- key

			return nil
		})

		res, err := f.svc.RemoveImage(adminContext(), "P1", dto.RemoveImageRequest{URL: removed})

		require.NoError(t, err)
		assert.Equal(t, []string{kept}, res.Images)

		select {
		case <-deleted:
		case <-time.After(time.Second):
			t.Fatal("stored object was not deleted")
		}
	})

	t.Run("unknown url", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().WithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(runTransaction)
		f.repo.EXPECT().
			GetTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Place{ID: "P1", Images: model.StringList{kept}, Version: 2}, nil)

		_, err := f.svc.RemoveImage(adminContext(), "P1", dto.RemoveImageRequest{URL: removed})

		assert.Equal(t, 404, failure.GetCode(err))
	})
}
