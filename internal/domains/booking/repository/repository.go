package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"heritage/infras/otel"
	"heritage/infras/postgres"
	"heritage/internal/domains/booking/model"
	gDto "heritage/shared/dto"
	gRepo "heritage/shared/repository"

	"github.com/jmoiron/sqlx"
)

type Booking interface {
	InsertTx(ctx context.Context, tx *sqlx.Tx, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithPlace, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	withPlace gRepo.Repository[model.BookingWithPlace]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		withPlace:  gRepo.NewRepository[model.BookingWithPlace](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

func (r *repositoryImpl) GetAllWithPlace(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) ([]model.BookingWithPlace, error) {
	return r.withPlace.GetAll(ctx, params, filter) //nolint:wrapcheck
}
