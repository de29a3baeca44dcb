package models

import "gorm.io/gorm"

type Product struct {
	gorm.Model
	ProductCode string `json:"product_code" gorm:"unique"`
	ProductName string `json:"product_name"`
	Uom         string `json:"uom"`
	CreatedBy   int
	UpdatedBy   int
	DeletedBy   int
}
