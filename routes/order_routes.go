package routes

import (
	"compras-app/config"
	"compras-app/controllers"
	"compras-app/middleware"
	"compras-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupOrderRoutes(app *fiber.App, db *gorm.DB, grouping *services.GroupingService) {
	orderController := controllers.NewOrderController(db, grouping)
	batchController := controllers.NewBatchController(db)

	api := app.Group(config.MAIN_ROUTES+"/orders", middleware.AuthMiddleware)
	api.Post("/", orderController.CreateOrder)
	api.Get("/", orderController.GetOrders)
	api.Get("/grouped", orderController.GetGroupedOrders)
	api.Post("/page", orderController.MovePage)
	api.Post("/toggle", orderController.ToggleGroup)

	api.Post("/batch-edit", batchController.BatchEdit)
	api.Post("/generate-order-no", batchController.GenerateOrderNumber)
	api.Post("/clear-order-no", batchController.ClearOrderNumbers)

	api.Get("/:id", orderController.GetOrderByID)
	api.Put("/:id", orderController.UpdateOrder)
	api.Delete("/:id", orderController.DeleteOrder)
}
