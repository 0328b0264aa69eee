package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	"fieldbook/internal/domains/field/model"
	gDto "fieldbook/shared/dto"
	gRepo "fieldbook/shared/repository"
)

type Field interface {
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Field, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Field, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Field]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Field {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Field](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
