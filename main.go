package main

import (
	"compras-app/config"
	"compras-app/controllers/idgen"
	"compras-app/database"
	"compras-app/routes"
	"compras-app/services"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

func main() {

	config.LoadConfig()

	app := fiber.New()

	// Connect to database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto migrate models
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to auto migrate: %v", err)
	}

	idgen.Init()
	database.RunSeeders(db)

	// Shared services
	cursors := services.NewCursorStore()
	grouping := services.NewGroupingService(cursors)
	mailer := services.NewMailerService()

	// Setup CORS middleware
	config.SetupCORS(app)

	// Setup routes
	routes.SetupAuthRoutes(app, db, cursors)
	routes.SetupSupplierRoutes(app, db)
	routes.SetupCategoryRoutes(app, db)
	routes.SetupGroupRoutes(app, db)
	routes.SetupProductRoutes(app, db)
	routes.SetupShipmentRoutes(app, db)
	routes.SetupOrderRoutes(app, db, grouping)
	routes.SetupQuotationRoutes(app, db)
	routes.SetupReportRoutes(app, db, mailer)

	port := config.APP_PORT
	fmt.Println("🚀 Servidor de compras rodando na porta " + port)

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
