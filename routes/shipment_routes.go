package routes

import (
	"compras-app/config"
	"compras-app/controllers"
	"compras-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupShipmentRoutes(app *fiber.App, db *gorm.DB) {
	shipmentController := controllers.NewShipmentController(db)

	api := app.Group(config.MAIN_ROUTES+"/shipments", middleware.AuthMiddleware)
	api.Post("/", shipmentController.CreateShipment)
	api.Get("/order/:orderId", shipmentController.GetShipmentsByOrder)
	api.Get("/:id", shipmentController.GetShipmentByID)
	api.Put("/:id", shipmentController.UpdateShipment)
	api.Delete("/:id", shipmentController.DeleteShipment)
}
