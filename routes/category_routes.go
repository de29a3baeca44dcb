package routes

import (
	"compras-app/config"
	"compras-app/controllers"
	"compras-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupCategoryRoutes(app *fiber.App, db *gorm.DB) {
	categoryController := controllers.NewCategoryController(db)

	api := app.Group(config.MAIN_ROUTES+"/categories", middleware.AuthMiddleware)
	api.Post("/", categoryController.CreateCategory)
	api.Get("/", categoryController.GetAllCategories)
	api.Get("/:id", categoryController.GetCategoryByID)
	api.Put("/:id", categoryController.UpdateCategory)
	api.Delete("/:id", categoryController.DeleteCategory)

	// Target price history of the category edit form
	api.Get("/:id/target-prices", categoryController.GetTargetPrices)
	api.Post("/:id/target-prices", categoryController.AppendTargetPrice)
	api.Delete("/:id/target-prices/:entryId", categoryController.DeleteTargetPrice)
}
