package repositories

import (
	"compras-app/models"
	"fmt"
	"strings"

	"gorm.io/gorm"
)

type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// OrderFilter holds the named predicates of the listing query. Every zero
// value means "predicate off": an empty SupplierId is the sentinel for "no
// supplier filter" and an empty Statuses set means every status is shown.
type OrderFilter struct {
	RequisitionNo string
	Requester     string
	Department    string
	ProductName   string
	ProductCode   string
	SupplierId    string
	DateFrom      string
	DateTo        string
	Statuses      []string
	// OrderNo is an exact match used by the report builders to collect the
	// rows of one generated order.
	OrderNo string
}

type OrderRow struct {
	ID               int64    `json:"id"`
	RequisitionNo    string   `json:"requisition_no"`
	Requester        string   `json:"requester"`
	Department       string   `json:"department"`
	SupplierId       int64    `json:"supplier_id"`
	SupplierName     string   `json:"supplier_name"`
	ProductId        int64    `json:"product_id"`
	ProductCode      string   `json:"product_code"`
	ProductName      string   `json:"product_name"`
	Uom              string   `json:"uom"`
	Quantity         *float64 `json:"quantity"`
	ReceivedQty      *float64 `json:"received_qty"`
	ConversionFactor *float64 `json:"conversion_factor"`
	UnitPrice        *float64 `json:"unit_price"`
	IpiPct           *float64 `json:"ipi_pct"`
	IcmsPct          *float64 `json:"icms_pct"`
	FreightCost      *float64 `json:"freight_cost"`
	RequiredDate     string   `json:"required_date"`
	IssueDate        string   `json:"issue_date"`
	DeliveryDate     string   `json:"delivery_date"`
	Status           string   `json:"status"`
	Note             string   `json:"note"`
	CategoryId       int64    `json:"category_id"`
	OrderNo          string   `json:"order_no"`
	TotalShipped     float64  `json:"total_shipped"`
	TotalShipments   int      `json:"total_shipments"`
	ShipmentPending  bool     `json:"shipment_pending"`
	ShipmentSummary  string   `json:"shipment_summary"`
}

// Search runs the listing query. Predicates are appended clause by clause and
// every value is bound as a parameter, never concatenated into the SQL text.
// Sort is the status listing order first, then id descending.
func (r *OrderRepository) Search(filter OrderFilter) ([]OrderRow, error) {
	sql := `WITH recebimentos AS (
				SELECT purchase_order_id, SUM(quantity) AS total_shipped, COUNT(id) AS total_shipments
				FROM shipments
				WHERE deleted_at IS NULL
				GROUP BY purchase_order_id
			)
			SELECT a.id, a.requisition_no, a.requester, a.department,
			a.supplier_id, c.supplier_name,
			a.product_id, b.product_code, b.product_name,
			a.uom, a.quantity, a.received_qty, a.conversion_factor,
			a.unit_price, a.ipi_pct, a.icms_pct, a.freight_cost,
			a.required_date, a.issue_date, a.delivery_date,
			a.status, a.note, a.category_id, a.order_no,
			COALESCE(d.total_shipped, 0) AS total_shipped,
			COALESCE(d.total_shipments, 0) AS total_shipments
			FROM purchase_orders a
			LEFT JOIN products b ON a.product_id = b.id
			LEFT JOIN suppliers c ON a.supplier_id = c.id
			LEFT JOIN recebimentos d ON a.id = d.purchase_order_id
			WHERE a.deleted_at IS NULL`

	args := []interface{}{}

	if filter.RequisitionNo != "" {
		sql += " AND a.requisition_no LIKE ?"
		args = append(args, "%"+filter.RequisitionNo+"%")
	}
	if filter.Requester != "" {
		sql += " AND a.requester LIKE ?"
		args = append(args, "%"+filter.Requester+"%")
	}
	if filter.Department != "" {
		sql += " AND a.department LIKE ?"
		args = append(args, "%"+filter.Department+"%")
	}
	if filter.ProductName != "" {
		sql += " AND b.product_name LIKE ?"
		args = append(args, "%"+filter.ProductName+"%")
	}
	if filter.ProductCode != "" {
		sql += " AND b.product_code LIKE ?"
		args = append(args, "%"+filter.ProductCode+"%")
	}
	if filter.SupplierId != "" {
		sql += " AND a.supplier_id = ?"
		args = append(args, filter.SupplierId)
	}
	if filter.DateFrom != "" {
		sql += " AND a.issue_date >= ?"
		args = append(args, filter.DateFrom)
	}
	if filter.DateTo != "" {
		sql += " AND a.issue_date <= ?"
		args = append(args, filter.DateTo)
	}
	if len(filter.Statuses) > 0 {
		sql += " AND a.status IN ?"
		args = append(args, filter.Statuses)
	}
	if filter.OrderNo != "" {
		sql += " AND a.order_no = ?"
		args = append(args, filter.OrderNo)
	}

	sql += " ORDER BY CASE a.status"
	for i, status := range models.StatusListingOrder {
		sql += fmt.Sprintf(" WHEN ? THEN %d", i)
		args = append(args, status)
	}
	sql += fmt.Sprintf(" ELSE %d END, a.id DESC", len(models.StatusListingOrder))

	var rows []OrderRow
	if err := r.db.Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, err
	}

	for i := range rows {
		r.decorateShipments(&rows[i])
	}

	return rows, nil
}

// decorateShipments fills the derived shipment columns: the pending
// indicator and the human readable receipt summary shown as a tooltip.
func (r *OrderRepository) decorateShipments(row *OrderRow) {
	if row.Status == models.StatusAwaitingReceipt || row.Status == models.StatusPartialDelivered {
		if row.Quantity != nil && row.TotalShipped < *row.Quantity {
			row.ShipmentPending = true
		}
	}

	if row.TotalShipments == 0 {
		row.ShipmentSummary = "Nenhum recebimento"
		return
	}

	shipments := []models.Shipment{}
	if err := r.db.Where("purchase_order_id = ?", row.ID).Order("receipt_date ASC, id ASC").Find(&shipments).Error; err != nil {
		row.ShipmentSummary = fmt.Sprintf("%d recebimento(s)", row.TotalShipments)
		return
	}

	var parts []string
	for _, s := range shipments {
		parts = append(parts, fmt.Sprintf("%s: %g", s.ReceiptDate, s.Quantity))
	}
	row.ShipmentSummary = fmt.Sprintf("%d recebimento(s) - %s", len(shipments), strings.Join(parts, ", "))
}

// NumbersWithPrefix returns the assigned order numbers beginning with the
// given date prefix. Used by the batch generator to find the next sequence.
func (r *OrderRepository) NumbersWithPrefix(prefix string) ([]string, error) {
	var numbers []string
	err := r.db.Model(&models.PurchaseOrder{}).
		Where("order_no LIKE ?", prefix+"%").
		Pluck("order_no", &numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}
