package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/warehouse-fulfillment/internal/application/fulfillment"
	"github.com/jhoicas/warehouse-fulfillment/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Fulfillment fulfillment.Service
	Logger      *logger.Logger
	Metrics     http.Handler // opcional: expone /metrics
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	app.Use(RequestMiddleware(log.Child("http")))
	// Dentro de RequestMiddleware: un panic recuperado se registra como 500.
	app.Use(recover.New())

	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	api := app.Group("/api")

	warehouse := api.Group("/warehouse")
	fulfillmentHandler := NewFulfillmentHandler(deps.Fulfillment)
	warehouse.Post("/", fulfillmentHandler.AddProduct)
	warehouse.Post("/procedure", fulfillmentHandler.AddProductWithProcedure)
}
