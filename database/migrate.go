// database/migrate.go
package database

import (
	"compras-app/models"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Supplier{},
		&models.Product{},
		&models.Category{},
		&models.TargetPrice{},
		&models.Group{},
		&models.PurchaseOrder{},
		&models.Shipment{},
		&models.Quotation{},
	)
}
