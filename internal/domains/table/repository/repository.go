package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"tavola/infras/otel"
	"tavola/infras/postgres"
	"tavola/internal/domains/table/model"
	gDto "tavola/shared/dto"
	gRepo "tavola/shared/repository"
)

type Table interface {
	Insert(ctx context.Context, model model.Table) error
	InsertBulk(ctx context.Context, models []model.Table) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Table, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Table, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Table]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Table {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Table](model.EntityName, model.TableName, model.FieldTableNumber, db, otel),
		db:         db,
		otel:       otel,
	}
}
