package models

import (
	"compras-app/controllers/idgen"

	"gorm.io/gorm"
)

// Status values follow the listing order of the purchase flow, not the
// alphabet. Transitions are not enforced: the edit forms may set any status.
const (
	StatusRequestSupplier  = "Solicitar ao Fornecedor"
	StatusAwaitingApproval = "Aguardando Aprovacao"
	StatusAwaitingReceipt  = "Aguardando Recebimento"
	StatusPartialDelivered = "Entregue Parcial"
	StatusFullyDelivered   = "Entregue Total"
	StatusCancelled        = "Cancelado"
)

// StatusListingOrder drives the ORDER BY of the order listing and the
// section order of the grouped view.
var StatusListingOrder = []string{
	StatusRequestSupplier,
	StatusAwaitingApproval,
	StatusAwaitingReceipt,
	StatusPartialDelivered,
	StatusFullyDelivered,
	StatusCancelled,
}

type PurchaseOrder struct {
	gorm.Model
	ID               int64    `json:"id" gorm:"primary_key"`
	RequisitionNo    string   `json:"requisition_no"`
	Requester        string   `json:"requester"`
	Department       string   `json:"department"`
	SupplierId       int64    `json:"supplier_id"`
	ProductId        int64    `json:"product_id"`
	Uom              string   `json:"uom"`
	Quantity         *float64 `json:"quantity"`
	ReceivedQty      *float64 `json:"received_qty"`
	ConversionFactor *float64 `json:"conversion_factor"`
	UnitPrice        *float64 `json:"unit_price"`
	IpiPct           *float64 `json:"ipi_pct"`
	IcmsPct          *float64 `json:"icms_pct"`
	FreightCost      *float64 `json:"freight_cost"`
	RequiredDate     string   `gorm:"type:date" json:"required_date"`
	IssueDate        string   `gorm:"type:date" json:"issue_date"`
	DeliveryDate     string   `gorm:"type:date" json:"delivery_date"`
	Status           string   `json:"status" gorm:"default:'Solicitar ao Fornecedor'"`
	Note             string   `json:"note"`
	CategoryId       int64    `json:"category_id"`
	// OrderNo stays empty until a batch generation assigns it. Uniqueness
	// among assigned numbers is kept by the generator, not by the schema,
	// because many rows legitimately share the empty value.
	OrderNo   string `json:"order_no"`
	CreatedBy int
	UpdatedBy int
	DeletedBy int

	Shipments []Shipment `gorm:"foreignKey:PurchaseOrderId;references:ID;constraint:OnDelete:CASCADE" json:"shipments"`
}

func (o *PurchaseOrder) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == 0 {
		o.ID = idgen.GenerateID()
	}
	return
}
