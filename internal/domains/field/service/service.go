package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"fieldbook/config"
	"fieldbook/infras/otel"
	"fieldbook/internal/domains/field/model"
	"fieldbook/internal/domains/field/model/dto"
	"fieldbook/internal/domains/field/repository"
	"fieldbook/shared"
	"fieldbook/shared/cache"
	"fieldbook/shared/constant"
	gDto "fieldbook/shared/dto"
)

const (
	cacheGetAllField = "field:gets"
)

type Field interface {
	GetAll(ctx context.Context) (dto.GetFieldsResponse, error)
}

type serviceImpl struct {
	repo  repository.Field
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Field, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Field {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// GetAll returns the full field catalog. The catalog is reference data seeded
// by migration, so the cached copy only goes stale when a migration runs.
func (s *serviceImpl) GetAll(ctx context.Context) (res dto.GetFieldsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetAllField)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for fields")

		return res, nil
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{
		SortBy:  model.FieldName,
		SortDir: gDto.SortDirAsc,
	}, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to get fields")

		return res, fmt.Errorf("failed to get fields: %w", err)
	}

	res.FromModels(models)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save fields to cache")
		}
	}()

	return res, nil
}
