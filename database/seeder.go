// database/seeder.go
package database

import (
	"compras-app/models"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	SeedGroups(db)
}

func SeedUserMaster(db *gorm.DB) {
	var existing models.User
	if err := db.Where("username = ?", "admin").First(&existing).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			hashed, hashErr := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
			if hashErr != nil {
				log.Fatalf("Failed to hash seed password: %v", hashErr)
			}
			user := models.User{
				Username: "admin",
				Password: string(hashed),
				Name:     "Administrador",
				Email:    "admin@compras.local",
				Role:     "admin",
			}
			if createErr := db.Create(&user).Error; createErr != nil {
				log.Fatalf("Failed to seed admin user: %v", createErr)
			}
		} else {
			log.Fatalf("Unexpected DB error: %v", err)
		}
	}
}

func SeedGroups(db *gorm.DB) {
	groups := []models.Group{
		{GroupName: "PRODUCAO"},
		{GroupName: "MANUTENCAO"},
		{GroupName: "ADMINISTRATIVO"},
	}

	for _, g := range groups {
		var existing models.Group
		if err := db.Where("group_name = ?", g.GroupName).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				db.Create(&g)
			}
		}
	}
}
