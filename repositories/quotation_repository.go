package repositories

import (
	"gorm.io/gorm"
)

type QuotationRepository struct {
	db *gorm.DB
}

type QuotationRow struct {
	ID            uint     `json:"id"`
	RequisitionNo string   `json:"requisition_no"`
	SupplierId    int64    `json:"supplier_id"`
	SupplierName  string   `json:"supplier_name"`
	ProductId     int64    `json:"product_id"`
	ProductCode   string   `json:"product_code"`
	ProductName   string   `json:"product_name"`
	UnitPrice     *float64 `json:"unit_price"`
	EntryValue    *float64 `json:"entry_value"`
	PaymentTerms  string   `json:"payment_terms"`
	Observation   string   `json:"observation"`
}

func NewQuotationRepository(db *gorm.DB) *QuotationRepository {
	return &QuotationRepository{db: db}
}

// ByRequisitions loads the quotes of the given requisitions joined with
// supplier and product names, the input of the quotation map report.
func (r *QuotationRepository) ByRequisitions(requisitions []string) ([]QuotationRow, error) {
	var rows []QuotationRow
	if len(requisitions) == 0 {
		return rows, nil
	}

	sql := `SELECT a.id, a.requisition_no, a.supplier_id, c.supplier_name,
			a.product_id, b.product_code, b.product_name,
			a.unit_price, a.entry_value, a.payment_terms, a.observation
			FROM quotations a
			LEFT JOIN products b ON a.product_id = b.id
			LEFT JOIN suppliers c ON a.supplier_id = c.id
			WHERE a.deleted_at IS NULL AND a.requisition_no IN ?
			ORDER BY b.product_name ASC, c.supplier_name ASC`

	if err := r.db.Raw(sql, requisitions).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
