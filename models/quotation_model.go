package models

import "gorm.io/gorm"

// Quotation is one supplier quote for a requisition line, collected while the
// order is still in "Solicitar ao Fornecedor". The quotation map report pivots
// these into one column per quoting supplier.
type Quotation struct {
	gorm.Model
	RequisitionNo string   `json:"requisition_no" gorm:"index"`
	SupplierId    int64    `json:"supplier_id"`
	ProductId     int64    `json:"product_id"`
	UnitPrice     *float64 `json:"unit_price"`
	EntryValue    *float64 `json:"entry_value"`
	PaymentTerms  string   `json:"payment_terms"`
	Observation   string   `json:"observation"`
	CreatedBy     int
	UpdatedBy     int
	DeletedBy     int
}
