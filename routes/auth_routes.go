package routes

import (
	"compras-app/config"
	"compras-app/controllers"
	"compras-app/middleware"
	"compras-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupAuthRoutes(app *fiber.App, db *gorm.DB, cursors *services.CursorStore) {
	authController := controllers.NewAuthController(db, cursors)

	api := app.Group(config.MAIN_ROUTES)
	api.Post("/login", authController.Login)
	api.Get("/logout", middleware.AuthMiddleware, authController.Logout)
	api.Get("/isLoggedIn", middleware.AuthMiddleware, authController.IsLoggedIn)
}
