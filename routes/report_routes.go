package routes

import (
	"compras-app/config"
	"compras-app/controllers"
	"compras-app/middleware"
	"compras-app/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupReportRoutes(app *fiber.App, db *gorm.DB, mailer *services.MailerService) {
	reportController := controllers.NewReportController(db, mailer)

	api := app.Group(config.MAIN_ROUTES+"/reports", middleware.AuthMiddleware)
	api.Get("/quotation-map/:orderNo", reportController.QuotationMap)
	api.Get("/rfq/:requisition", reportController.RFQ)
	api.Get("/purchase-order/:orderNo", reportController.PurchaseOrder)
	api.Post("/purchase-order/:orderNo/send", reportController.SendPurchaseOrder)
	api.Get("/export-excel", reportController.ExportExcel)
}
