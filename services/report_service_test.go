package services

import (
	"bytes"
	"testing"

	"compras-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"compras-app/repositories"
)

func seedReportOrder(t *testing.T, db *gorm.DB) models.PurchaseOrder {
	t.Helper()

	supplier := models.Supplier{SupplierName: "Alfa Insumos", PaymentTerms: "28 dias"}
	require.NoError(t, db.Create(&supplier).Error)
	product := models.Product{ProductCode: "MP-001", ProductName: "Acucar Cristal", Uom: "KG"}
	require.NoError(t, db.Create(&product).Error)

	order := models.PurchaseOrder{
		RequisitionNo: "REQ-100",
		Requester:     "Carlos",
		SupplierId:    int64(supplier.ID),
		ProductId:     int64(product.ID),
		Quantity:      ptr(100),
		UnitPrice:     ptr(3.5),
		IpiPct:        ptr(10),
		Status:        models.StatusAwaitingReceipt,
		OrderNo:       "01012501",
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestReportFilenames(t *testing.T) {
	assert.Equal(t, "Mapa_Cotacoes_OC_01012501.pdf", QuotationMapFilename("01012501"))
	assert.Equal(t, "Cotacao_REQ_100.pdf", RFQFilename("REQ 100"))
	assert.Equal(t, "Ordem_Compra_OC_01012501.pdf", PurchaseOrderFilename("01012501"))
}

func TestPurchaseOrderPDF(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewReportService(db)

	seedReportOrder(t, db)

	pdf, err := service.PurchaseOrderPDF("01012501")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = service.PurchaseOrderPDF("99999999")
	assert.ErrorIs(t, err, ErrNoReportRows)
}

func TestRFQPDF(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewReportService(db)

	seedReportOrder(t, db)

	pdf, err := service.RFQPDF("REQ-100")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))

	_, err = service.RFQPDF("REQ-999")
	assert.ErrorIs(t, err, ErrNoReportRows)
}

func TestQuotationMapPDF(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewReportService(db)

	order := seedReportOrder(t, db)

	beta := models.Supplier{SupplierName: "Beta Embalagens"}
	require.NoError(t, db.Create(&beta).Error)

	quotes := []models.Quotation{
		{RequisitionNo: "REQ-100", SupplierId: order.SupplierId, ProductId: order.ProductId,
			UnitPrice: ptr(3.5), PaymentTerms: "28 dias"},
		{RequisitionNo: "REQ-100", SupplierId: int64(beta.ID), ProductId: order.ProductId,
			UnitPrice: ptr(3.2), PaymentTerms: "a vista"},
	}
	for i := range quotes {
		require.NoError(t, db.Create(&quotes[i]).Error)
	}

	pdf, err := service.QuotationMapPDF("01012501")
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestOrdersSpreadsheet(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewReportService(db)

	order := seedReportOrder(t, db)
	shipments := []models.Shipment{
		{PurchaseOrderId: order.ID, Quantity: 40, ReceiptDate: "2025-01-10"},
		{PurchaseOrderId: order.ID, Quantity: 60, ReceiptDate: "2025-01-20"},
	}
	for i := range shipments {
		require.NoError(t, db.Create(&shipments[i]).Error)
	}

	data, err := service.OrdersSpreadsheet(repositories.OrderFilter{})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	cell, err := f.GetCellValue("Sheet1", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", cell)

	cell, err = f.GetCellValue("Sheet1", "B2")
	require.NoError(t, err)
	assert.Equal(t, "REQ-100", cell)

	// 21 fixed columns, then one qty/date pair per receipt.
	cell, err = f.GetCellValue("Sheet1", "V1")
	require.NoError(t, err)
	assert.Equal(t, "Recebimento 1 Qtd", cell)

	cell, err = f.GetCellValue("Sheet1", "Y1")
	require.NoError(t, err)
	assert.Equal(t, "Recebimento 2 Data", cell)

	cell, err = f.GetCellValue("Sheet1", "V2")
	require.NoError(t, err)
	assert.Equal(t, "40", cell)

	cell, err = f.GetCellValue("Sheet1", "Y2")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-20", cell)
}
