package routes

import (
	"compras-app/config"
	"compras-app/controllers"
	"compras-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupQuotationRoutes(app *fiber.App, db *gorm.DB) {
	quotationController := controllers.NewQuotationController(db)

	api := app.Group(config.MAIN_ROUTES+"/quotations", middleware.AuthMiddleware)
	api.Post("/", quotationController.CreateQuotation)
	api.Get("/requisition/:requisition", quotationController.GetQuotationsByRequisition)
	api.Get("/:id", quotationController.GetQuotationByID)
	api.Put("/:id", quotationController.UpdateQuotation)
	api.Delete("/:id", quotationController.DeleteQuotation)
}
