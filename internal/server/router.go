package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"floracrm/internal/client"
	"floracrm/internal/inventory"
	ordercontroller "floracrm/internal/order/controller"
	"floracrm/internal/product"
	"floracrm/internal/stats"
)

func NewRouter(
	clients *client.Controller,
	products *product.Controller,
	inventoryCtrl *inventory.Controller,
	orders *ordercontroller.OrderController,
	statsCtrl *stats.Controller,
	logger *zap.Logger,
) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(metricsMiddleware)

	r.Get("/health", handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/clients", func(r chi.Router) {
			r.Get("/", clients.HandleList)
			r.Post("/", clients.HandleCreate)
			r.Get("/{clientId}", clients.HandleGet)
			r.Put("/{clientId}", clients.HandleUpdate)
			r.Delete("/{clientId}", clients.HandleDelete)
			r.Get("/{clientId}/orders", clients.HandleOrders)
		})

		r.Route("/products", func(r chi.Router) {
			r.Get("/", products.HandleList)
			r.Post("/", products.HandleCreate)
			r.Get("/{productId}", products.HandleGet)
			r.Put("/{productId}", products.HandleUpdate)
			r.Delete("/{productId}", products.HandleDelete)
		})

		r.Route("/inventory", func(r chi.Router) {
			r.Get("/", inventoryCtrl.HandleList)
			r.Post("/", inventoryCtrl.HandleCreate)
			r.Get("/{inventoryId}", inventoryCtrl.HandleGet)
			r.Put("/{inventoryId}", inventoryCtrl.HandleUpdate)
			r.Delete("/{inventoryId}", inventoryCtrl.HandleDelete)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.HandleList)
			r.Post("/", orders.HandleCreate)
			r.Get("/{orderId}", orders.HandleGet)
			r.Put("/{orderId}", orders.HandleUpdate)
			r.Patch("/{orderId}", orders.HandlePatch)
			r.Delete("/{orderId}", orders.HandleDelete)
			r.Put("/{orderId}/status", orders.HandleUpdateStatus)
			r.Get("/{orderId}/history", orders.HandleHistory)
			r.Post("/{orderId}/items", orders.HandleAddItem)
			r.Delete("/{orderId}/items/{itemId}", orders.HandleRemoveItem)
		})

		r.Route("/stats", func(r chi.Router) {
			r.Get("/dashboard", statsCtrl.HandleDashboard)
			r.Get("/sales", statsCtrl.HandleSales)
		})
	})

	logger.Info("router configured")
	return r
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "healthy"})
}
