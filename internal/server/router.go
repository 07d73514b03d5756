package server

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"atelier/internal/address"
	"atelier/internal/auth"
	"atelier/internal/customer"
	"atelier/internal/item"
	"atelier/internal/metrics"
	ordercontroller "atelier/internal/order/controller"
	"atelier/internal/postal"
)

type Controllers struct {
	Auth     *auth.Module
	Customer *customer.Controller
	Address  *address.Controller
	Item     *item.Controller
	Order    *ordercontroller.OrderController
	Metrics  *metrics.Controller
	Postal   *postal.Controller
}

func NewRouter(c Controllers, logger *zap.Logger) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Post("/sessions", c.Auth.Controller.HandleSignIn)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(c.Auth.Service, logger))

		r.Put("/me/password", c.Auth.Controller.HandleChangePassword)

		r.Get("/postal/{cep}", c.Postal.HandleLookup)

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", c.Customer.HandleList)
			r.Post("/", c.Customer.HandleCreate)
			r.Get("/{customerId}", c.Customer.HandleGet)
			r.Put("/{customerId}", c.Customer.HandleUpdate)
			r.Put("/{customerId}/avatar", c.Customer.HandleUpdateAvatar)

			r.Route("/{customerId}/addresses", func(r chi.Router) {
				r.Get("/", c.Address.HandleListByCustomer)
				r.Post("/", c.Address.HandleCreate)
				r.Get("/default", c.Address.HandleGetDefault)
				r.Put("/{addressId}", c.Address.HandleUpdate)
				r.Patch("/{addressId}/default", c.Address.HandleSetDefault)
			})
		})

		r.Route("/items", func(r chi.Router) {
			r.Get("/", c.Item.HandleListItems)
			r.Post("/", c.Item.HandleCreateItem)
			r.Get("/{itemId}", c.Item.HandleGetItem)
			r.Put("/{itemId}", c.Item.HandleUpdateItem)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", c.Order.HandleListOrders)
			r.Post("/", c.Order.HandleCreateOrder)
			r.Get("/collection-report", c.Order.HandleCollectionReport)
			r.Get("/{orderId}", c.Order.HandleGetOrder)
			r.Post("/{orderId}/pay", c.Order.HandlePayOrder)
			r.Post("/{orderId}/cancel", c.Order.HandleCancelOrder)
			r.Post("/{orderId}/collect", c.Order.HandleCollectOrder)
		})

		r.Get("/metrics", c.Metrics.HandleSummary)
	})

	return r
}
