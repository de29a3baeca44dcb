package models

import "gorm.io/gorm"

type Category struct {
	gorm.Model
	CategoryName     string   `json:"category_name" gorm:"unique"`
	ConversionFactor *float64 `json:"conversion_factor"`
	FreightTerms     string   `json:"freight_terms"`
	CreatedBy        int
	UpdatedBy        int
	DeletedBy        int

	TargetPrices []TargetPrice `gorm:"foreignKey:CategoryId;references:ID;constraint:OnDelete:CASCADE" json:"target_prices"`
}

// TargetPrice is an append-only dated price/cost observation. Entries are
// never updated, only inserted and deleted by id.
type TargetPrice struct {
	gorm.Model
	CategoryId uint    `json:"category_id" gorm:"index"`
	Price      float64 `json:"price"`
	Cost       float64 `json:"cost"`
	PriceDate  string  `gorm:"type:date" json:"price_date"`
	CreatedBy  int
}
