package models

import "gorm.io/gorm"

type Shipment struct {
	gorm.Model
	PurchaseOrderId int64   `json:"purchase_order_id" gorm:"index"`
	Quantity        float64 `json:"quantity"`
	ReceiptDate     string  `gorm:"type:date" json:"receipt_date"`
	CreatedBy       int
	UpdatedBy       int
	DeletedBy       int
}
