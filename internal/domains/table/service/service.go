package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"

	"tavola/config"
	"tavola/infras/otel"
	"tavola/internal/domains/table/model"
	"tavola/internal/domains/table/model/dto"
	"tavola/internal/domains/table/repository"
	"tavola/shared"
	"tavola/shared/cache"
	"tavola/shared/constant"
	gDto "tavola/shared/dto"
	"tavola/shared/failure"
)

const (
	cacheGetTable    = "table:get"
	cacheGetAllTable = "table:gets"
	cacheCountTable  = "table:count"
)

type Table interface {
	Initialize(ctx context.Context, req dto.InitializeTablesRequest) error
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetTablesResponse, error)
	Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (int, error)
	Get(ctx context.Context, tableNumber int) (dto.TableResponse, error)
	Update(ctx context.Context, req dto.UpdateTableRequest, tableNumber int) error
}

type serviceImpl struct {
	repo  repository.Table
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Table, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Table {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// FilterByTableNumber scopes a query to a single physical table.
func FilterByTableNumber(tableNumber int) gDto.FilterGroup {
	return gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldTableNumber,
				Value:    tableNumber,
				Operator: gDto.FilterOperatorEq,
				Table:    model.TableName,
			},
		},
	}
}

// Initialize provisions the fixed table set. It is idempotent: when any table
// already exists the call is a no-op, so repeated bootstraps never duplicate
// the registry.
func (s *serviceImpl) Initialize(ctx context.Context, req dto.InitializeTablesRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Initialize")
	defer scope.End()
	defer scope.TraceIfError(err)

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	existing, err := s.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return fmt.Errorf("failed to count tables: %w", err)
	}

	if existing > 0 {
		log.Info().Int("tables", existing).Msg("table registry already provisioned, skipping initialization")

		return nil
	}

	if err = s.repo.InsertBulk(ctx, req.ToModels(user)); err != nil {
		log.Error().Err(err).Msg("failed to provision table registry")

		return fmt.Errorf("failed to provision table registry: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
		shared.InvalidateCaches(c, s.cache, cacheCountTable)
	}()

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetTablesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllTable, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for tables")

		return res, nil
	}

	total, err := s.Count(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, fmt.Errorf("failed to count tables: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get tables")

		return res, fmt.Errorf("failed to get tables: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save tables to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Count")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountTable, req, filter)

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table count")

		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count tables")

		return res, fmt.Errorf("failed to count tables: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save table count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, tableNumber int) (res dto.TableResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer scope.TraceIfError(err)

	cacheKey := shared.BuildCacheKey(cacheGetTable, strconv.Itoa(tableNumber))

	err = s.cache.Get(ctx, cacheKey, &res)
	if err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for table")

		return res, nil
	}

	table, err := s.repo.Get(ctx, FilterByTableNumber(tableNumber))
	if err != nil {
		log.Error().Err(err).Msg("failed to get table")

		return res, fmt.Errorf("failed to get table: %w", err)
	}

	if table.TableNumber == 0 {
		return res, failure.NotFound("table not found") // nolint:wrapcheck
	}

	res.FromModel(table)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save table to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateTableRequest, tableNumber int) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer scope.TraceIfError(err)

	if req == (dto.UpdateTableRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty") // nolint:wrapcheck
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := FilterByTableNumber(tableNumber)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check if table exists")

		return fmt.Errorf("failed to check if table exists: %w", err)
	}

	if !exist {
		log.Error().Msg("table not found")

		return failure.NotFound("table not found") // nolint:wrapcheck
	}

	updatedFields := shared.TransformFields(req, user)
	if err := s.repo.Update(ctx, updatedFields, filter); err != nil {
		log.Error().Err(err).Msg("failed to update table")

		return fmt.Errorf("failed to update table: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetTable, strconv.Itoa(tableNumber))); err != nil {
			log.Error().Err(err).Msg("failed to delete table from cache")
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllTable)
		shared.InvalidateCaches(c, s.cache, cacheCountTable)
	}()

	return nil
}
