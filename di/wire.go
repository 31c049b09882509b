//go:build wireinject
// +build wireinject

package di

import (
	"tavola/config"
	"tavola/infras/jwt"
	"tavola/infras/kafka"
	"tavola/infras/otel"
	"tavola/infras/postgres"
	"tavola/infras/redis"
	"tavola/permissions"
	"tavola/shared/cache"
	"tavola/transport/http"
	"tavola/transport/http/middleware"
	"tavola/transport/http/router"

	ledgerRepository "tavola/internal/domains/ledger/repository"
	reservationRepository "tavola/internal/domains/reservation/repository"
	reservationService "tavola/internal/domains/reservation/service"
	tableRepository "tavola/internal/domains/table/repository"
	tableService "tavola/internal/domains/table/service"
	reservationHandler "tavola/internal/handlers/reservation"
	tableHandler "tavola/internal/handlers/table"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
	permissions.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var tableDomain = wire.NewSet(
	tableRepository.New,
	tableService.New,
)

var reservationDomain = wire.NewSet(
	ledgerRepository.New,
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	tableDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	tableHandler.New,
	reservationHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
