package router

import (
	"heritage/internal/handlers/booking"
	"heritage/internal/handlers/crowd"
	"heritage/internal/handlers/place"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Place   place.Handler
	Booking booking.Handler
	Crowd   crowd.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Place.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Crowd.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
