package router

import (
	"tavola/internal/handlers/reservation"
	"tavola/internal/handlers/table"
	"tavola/transport/http/middleware"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Table       table.Handler
	Reservation reservation.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		routerGroup.Use(r.AuthRole.Auth)
		routerGroup.Use(r.AuthRole.RBAC)

		r.DomainHandlers.Table.Router(routerGroup)
		r.DomainHandlers.Reservation.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AuthRole:       authRole,
	}
}
