package routes

import (
	"compras-app/config"
	"compras-app/controllers"
	"compras-app/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupGroupRoutes(app *fiber.App, db *gorm.DB) {
	groupController := controllers.NewGroupController(db)

	api := app.Group(config.MAIN_ROUTES+"/groups", middleware.AuthMiddleware)
	api.Post("/", groupController.CreateGroup)
	api.Get("/", groupController.GetAllGroups)
	api.Get("/:id", groupController.GetGroupByID)
	api.Put("/:id", groupController.UpdateGroup)
	api.Delete("/:id", groupController.DeleteGroup)
}
