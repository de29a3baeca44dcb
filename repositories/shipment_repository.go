package repositories

import (
	"compras-app/models"

	"gorm.io/gorm"
)

type ShipmentRepository struct {
	db *gorm.DB
}

func NewShipmentRepository(db *gorm.DB) *ShipmentRepository {
	return &ShipmentRepository{db: db}
}

// ByPurchaseOrder lists the receipts of one order, oldest first.
func (r *ShipmentRepository) ByPurchaseOrder(purchaseOrderID int64) ([]models.Shipment, error) {
	var shipments []models.Shipment
	err := r.db.Where("purchase_order_id = ?", purchaseOrderID).
		Order("receipt_date ASC, id ASC").
		Find(&shipments).Error
	if err != nil {
		return nil, err
	}
	return shipments, nil
}

// ByPurchaseOrders loads receipts for a set of orders keyed by order id. The
// spreadsheet export uses this to lay out the dynamic shipment columns.
func (r *ShipmentRepository) ByPurchaseOrders(ids []int64) (map[int64][]models.Shipment, error) {
	result := make(map[int64][]models.Shipment)
	if len(ids) == 0 {
		return result, nil
	}

	var shipments []models.Shipment
	err := r.db.Where("purchase_order_id IN ?", ids).
		Order("purchase_order_id ASC, receipt_date ASC, id ASC").
		Find(&shipments).Error
	if err != nil {
		return nil, err
	}

	for _, s := range shipments {
		result[s.PurchaseOrderId] = append(result[s.PurchaseOrderId], s)
	}
	return result, nil
}
