package models

import "gorm.io/gorm"

type Supplier struct {
	gorm.Model
	SupplierName string `json:"supplier_name" gorm:"unique"`
	Contact      string `json:"contact"`
	SuppEmail    string `json:"supp_email"`
	SuppPhone    string `json:"supp_phone"`
	SuppAddr1    string `json:"supp_addr1"`
	SuppCity     string `json:"supp_city"`
	PaymentTerms string `json:"payment_terms"`
	CreatedBy    int
	UpdatedBy    int
	DeletedBy    int
}
