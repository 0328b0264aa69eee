//go:build wireinject
// +build wireinject

package di

import (
	"fieldbook/config"
	"fieldbook/infras/kafka"
	"fieldbook/infras/otel"
	"fieldbook/infras/postgres"
	"fieldbook/infras/redis"
	fieldHandler "fieldbook/internal/handlers/field"
	reservationHandler "fieldbook/internal/handlers/reservation"
	"fieldbook/shared/cache"
	"fieldbook/transport/http"
	"fieldbook/transport/http/middleware"
	"fieldbook/transport/http/router"

	fieldRepository "fieldbook/internal/domains/field/repository"
	fieldService "fieldbook/internal/domains/field/service"
	reservationRepository "fieldbook/internal/domains/reservation/repository"
	reservationService "fieldbook/internal/domains/reservation/service"

	"github.com/google/wire"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	kafka.New,
)

var middlewares = wire.NewSet(
	middleware.NewAppMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var fieldDomain = wire.NewSet(
	fieldRepository.New,
	fieldService.New,
)

var reservationDomain = wire.NewSet(
	reservationRepository.New,
	reservationService.New,
)

var domains = wire.NewSet(
	fieldDomain,
	reservationDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	fieldHandler.New,
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
