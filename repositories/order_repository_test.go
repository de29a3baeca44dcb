package repositories

import (
	"fmt"
	"testing"

	"compras-app/controllers/idgen"
	"compras-app/database"
	"compras-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrderTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	idgen.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func floatPtr(v float64) *float64 {
	return &v
}

func seedSupplier(t *testing.T, db *gorm.DB, name string) models.Supplier {
	t.Helper()
	supplier := models.Supplier{SupplierName: name, SuppEmail: "compras@" + name + ".com.br"}
	require.NoError(t, db.Create(&supplier).Error)
	return supplier
}

func seedProduct(t *testing.T, db *gorm.DB, code, name string) models.Product {
	t.Helper()
	product := models.Product{ProductCode: code, ProductName: name, Uom: "KG"}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestSearchSortsByStatusThenNewest(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)

	supplier := seedSupplier(t, db, "Alfa Insumos")
	product := seedProduct(t, db, "MP-001", "Acucar Cristal")

	// Inserted out of listing order on purpose.
	statuses := []string{
		models.StatusFullyDelivered,
		models.StatusRequestSupplier,
		models.StatusAwaitingReceipt,
		models.StatusRequestSupplier,
	}
	for i, status := range statuses {
		order := models.PurchaseOrder{
			RequisitionNo: fmt.Sprintf("REQ-%d", i+1),
			SupplierId:    int64(supplier.ID),
			ProductId:     int64(product.ID),
			Quantity:      floatPtr(10),
			Status:        status,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	rows, err := repo.Search(OrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 4)

	assert.Equal(t, models.StatusRequestSupplier, rows[0].Status)
	assert.Equal(t, models.StatusRequestSupplier, rows[1].Status)
	assert.Equal(t, models.StatusAwaitingReceipt, rows[2].Status)
	assert.Equal(t, models.StatusFullyDelivered, rows[3].Status)

	// Within a status the newest row comes first.
	assert.Equal(t, "REQ-4", rows[0].RequisitionNo)
	assert.Equal(t, "REQ-2", rows[1].RequisitionNo)
	assert.Greater(t, rows[0].ID, rows[1].ID)
}

func TestSearchFilters(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)

	alfa := seedSupplier(t, db, "Alfa Insumos")
	beta := seedSupplier(t, db, "Beta Embalagens")
	sugar := seedProduct(t, db, "MP-001", "Acucar Cristal")
	box := seedProduct(t, db, "EMB-010", "Caixa Papelao")

	orders := []models.PurchaseOrder{
		{RequisitionNo: "REQ-100", Requester: "Carlos", Department: "Producao",
			SupplierId: int64(alfa.ID), ProductId: int64(sugar.ID), IssueDate: "2025-01-10",
			Status: models.StatusRequestSupplier},
		{RequisitionNo: "REQ-200", Requester: "Marina", Department: "Logistica",
			SupplierId: int64(beta.ID), ProductId: int64(box.ID), IssueDate: "2025-02-20",
			Status: models.StatusAwaitingApproval},
	}
	for i := range orders {
		require.NoError(t, db.Create(&orders[i]).Error)
	}

	rows, err := repo.Search(OrderFilter{RequisitionNo: "REQ-1"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "REQ-100", rows[0].RequisitionNo)

	rows, err = repo.Search(OrderFilter{ProductName: "Caixa"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "EMB-010", rows[0].ProductCode)

	// Empty SupplierId means no supplier predicate at all.
	rows, err = repo.Search(OrderFilter{SupplierId: ""})
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = repo.Search(OrderFilter{SupplierId: fmt.Sprint(alfa.ID)})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Alfa Insumos", rows[0].SupplierName)

	rows, err = repo.Search(OrderFilter{DateFrom: "2025-02-01", DateTo: "2025-02-28"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "REQ-200", rows[0].RequisitionNo)

	rows, err = repo.Search(OrderFilter{Statuses: []string{models.StatusAwaitingApproval}})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.StatusAwaitingApproval, rows[0].Status)
}

func TestSearchShipmentIndicator(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)

	supplier := seedSupplier(t, db, "Alfa Insumos")
	product := seedProduct(t, db, "MP-001", "Acucar Cristal")

	partial := models.PurchaseOrder{
		RequisitionNo: "REQ-1", SupplierId: int64(supplier.ID), ProductId: int64(product.ID),
		Quantity: floatPtr(10), Status: models.StatusAwaitingReceipt,
	}
	complete := models.PurchaseOrder{
		RequisitionNo: "REQ-2", SupplierId: int64(supplier.ID), ProductId: int64(product.ID),
		Quantity: floatPtr(5), Status: models.StatusAwaitingReceipt,
	}
	require.NoError(t, db.Create(&partial).Error)
	require.NoError(t, db.Create(&complete).Error)

	shipments := []models.Shipment{
		{PurchaseOrderId: partial.ID, Quantity: 3, ReceiptDate: "2025-03-01"},
		{PurchaseOrderId: partial.ID, Quantity: 4, ReceiptDate: "2025-03-05"},
		{PurchaseOrderId: complete.ID, Quantity: 5, ReceiptDate: "2025-03-02"},
	}
	for i := range shipments {
		require.NoError(t, db.Create(&shipments[i]).Error)
	}

	rows, err := repo.Search(OrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byReq := map[string]OrderRow{}
	for _, row := range rows {
		byReq[row.RequisitionNo] = row
	}

	assert.True(t, byReq["REQ-1"].ShipmentPending)
	assert.Equal(t, 7.0, byReq["REQ-1"].TotalShipped)
	assert.Equal(t, 2, byReq["REQ-1"].TotalShipments)
	assert.Contains(t, byReq["REQ-1"].ShipmentSummary, "2 recebimento(s)")
	assert.Contains(t, byReq["REQ-1"].ShipmentSummary, "2025-03-01: 3")

	assert.False(t, byReq["REQ-2"].ShipmentPending)
	assert.Equal(t, 5.0, byReq["REQ-2"].TotalShipped)
}

func TestSearchNoShipmentsSummary(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)

	supplier := seedSupplier(t, db, "Alfa Insumos")
	product := seedProduct(t, db, "MP-001", "Acucar Cristal")

	order := models.PurchaseOrder{
		RequisitionNo: "REQ-1", SupplierId: int64(supplier.ID), ProductId: int64(product.ID),
		Quantity: floatPtr(10), Status: models.StatusAwaitingReceipt,
	}
	require.NoError(t, db.Create(&order).Error)

	rows, err := repo.Search(OrderFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ShipmentPending)
	assert.Equal(t, "Nenhum recebimento", rows[0].ShipmentSummary)
}

func TestNumbersWithPrefix(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewOrderRepository(db)

	supplier := seedSupplier(t, db, "Alfa Insumos")
	product := seedProduct(t, db, "MP-001", "Acucar Cristal")

	for _, number := range []string{"01012501", "01012502", "02012501", ""} {
		order := models.PurchaseOrder{
			SupplierId: int64(supplier.ID), ProductId: int64(product.ID),
			OrderNo: number, Status: models.StatusAwaitingApproval,
		}
		require.NoError(t, db.Create(&order).Error)
	}

	numbers, err := repo.NumbersWithPrefix("010125")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"01012501", "01012502"}, numbers)
}
