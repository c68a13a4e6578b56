package httpx

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/creativesites/Destiny-Bakes-sub000/internal/httpx/middlewares"
)

func NewRouter(handler *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middlewares.AttachRequestMetadata)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", handler.CreateOrder)
		r.Get("/", handler.ListOrders)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handler.GetOrderByID)
			r.Get("/events", handler.GetOrderEvents)
			r.Get("/progress", handler.GetOrderProgress)

			r.Patch("/status", handler.UpdateStatus)
			r.Patch("/payment", handler.UpdatePaymentStatus)
			r.Post("/events", handler.AddEvent)
		})
	})

	return r
}
