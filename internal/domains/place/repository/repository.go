package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"heritage/infras/otel"
	"heritage/infras/postgres"
	"heritage/internal/domains/place/model"
	gDto "heritage/shared/dto"
	gRepo "heritage/shared/repository"

	"github.com/jmoiron/sqlx"
)

// Place writes to the booking aggregates must go through WithTransaction and a
// version-checked UpdateTxAffected.
type Place interface {
	Insert(ctx context.Context, model model.Place) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Place, error)
	GetTx(ctx context.Context, tx *sqlx.Tx, filter gDto.FilterGroup, columns ...string) (model.Place, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Place, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Sum(ctx context.Context, column string, filter gDto.FilterGroup) (int, error)
	UpdateTxAffected(ctx context.Context, tx *sqlx.Tx, req map[string]any, filter gDto.FilterGroup) (int64, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	WithTransaction(ctx context.Context, fn func(tx *sqlx.Tx) error) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Place]
}

func New(db *postgres.Connection, otel otel.Otel) Place {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Place](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
