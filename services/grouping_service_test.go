package services

import (
	"fmt"
	"testing"

	"compras-app/models"
	"compras-app/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGroupingTest() *GroupingService {
	return NewGroupingService(NewCursorStore())
}

func ptr(v float64) *float64 {
	return &v
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 1, TotalPages(0, 5))
	assert.Equal(t, 1, TotalPages(5, 5))
	assert.Equal(t, 2, TotalPages(6, 5))
	assert.Equal(t, 3, TotalPages(7, 3))
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 0, ClampPage(-3, 4))
	assert.Equal(t, 0, ClampPage(0, 4))
	assert.Equal(t, 3, ClampPage(3, 4))
	assert.Equal(t, 3, ClampPage(9, 4))
}

func TestBuildListingEmpty(t *testing.T) {
	service := newGroupingTest()

	listing := service.BuildListing("s1", nil, nil)
	assert.True(t, listing.Empty)
	assert.Empty(t, listing.Sections)
}

func TestBuildListingRequestedStatusWithoutRows(t *testing.T) {
	service := newGroupingTest()

	// A filtered-in status renders an empty section instead of the
	// empty placeholder.
	listing := service.BuildListing("s1", nil, []string{models.StatusCancelled})
	assert.False(t, listing.Empty)
	require.Len(t, listing.Sections, 1)
	assert.Equal(t, models.StatusCancelled, listing.Sections[0].Status)
	assert.Empty(t, listing.Sections[0].Suppliers)
	assert.Equal(t, 1, listing.Sections[0].TotalPages)
}

func TestBuildListingHierarchy(t *testing.T) {
	service := newGroupingTest()

	rows := []repositories.OrderRow{
		{ID: 4, Status: models.StatusRequestSupplier, SupplierName: "Alfa", RequisitionNo: "REQ-1"},
		{ID: 3, Status: models.StatusRequestSupplier, SupplierName: "Alfa", RequisitionNo: "REQ-1"},
		{ID: 2, Status: models.StatusRequestSupplier, SupplierName: "Alfa", RequisitionNo: ""},
		{ID: 1, Status: models.StatusAwaitingReceipt, SupplierName: "Beta", OrderNo: "01012501"},
	}

	listing := service.BuildListing("s1", rows, nil)
	require.Len(t, listing.Sections, 2)

	// Sections follow the purchase flow order.
	first := listing.Sections[0]
	assert.Equal(t, models.StatusRequestSupplier, first.Status)
	require.Len(t, first.Suppliers, 1)

	groups := first.Suppliers[0].Groups
	require.Len(t, groups, 2)
	assert.Equal(t, "REQ-1", groups[0].Key)
	assert.Len(t, groups[0].Orders, 2)
	assert.Equal(t, NoRequisitionBucket, groups[1].Key)

	// Requisition groups are always expanded.
	assert.False(t, groups[0].Collapsible)
	assert.True(t, groups[0].Open)

	second := listing.Sections[1]
	assert.Equal(t, models.StatusAwaitingReceipt, second.Status)
	group := second.Suppliers[0].Groups[0]
	assert.Equal(t, "01012501", group.Key)
	assert.True(t, group.Collapsible)
	assert.False(t, group.Open)
}

func TestBuildListingNoOrderNoBucket(t *testing.T) {
	service := newGroupingTest()

	rows := []repositories.OrderRow{
		{ID: 1, Status: models.StatusAwaitingApproval, SupplierName: "Alfa", OrderNo: ""},
	}

	listing := service.BuildListing("s1", rows, nil)
	group := listing.Sections[0].Suppliers[0].Groups[0]
	assert.Equal(t, NoOrderNoBucket, group.Key)
	assert.True(t, group.Collapsible)
}

func TestToggleOpensAndClosesGroup(t *testing.T) {
	service := newGroupingTest()

	rows := []repositories.OrderRow{
		{ID: 1, Status: models.StatusAwaitingReceipt, SupplierName: "Beta", OrderNo: "01012501"},
	}

	listing := service.BuildListing("s1", rows, nil)
	group := listing.Sections[0].Suppliers[0].Groups[0]
	assert.False(t, group.Open)

	service.Cursors.Toggle("s1", group.ToggleKey)
	listing = service.BuildListing("s1", rows, nil)
	assert.True(t, listing.Sections[0].Suppliers[0].Groups[0].Open)

	// Another session keeps its own collapsed state.
	other := service.BuildListing("s2", rows, nil)
	assert.False(t, other.Sections[0].Suppliers[0].Groups[0].Open)

	service.Cursors.Toggle("s1", group.ToggleKey)
	listing = service.BuildListing("s1", rows, nil)
	assert.False(t, listing.Sections[0].Suppliers[0].Groups[0].Open)
}

func TestSupplierPaging(t *testing.T) {
	service := newGroupingTest()

	var rows []repositories.OrderRow
	for i := 0; i < 7; i++ {
		rows = append(rows, repositories.OrderRow{
			ID:           int64(100 - i),
			Status:       models.StatusAwaitingApproval,
			SupplierName: fmt.Sprintf("Fornecedor %d", i+1),
			OrderNo:      fmt.Sprintf("0101250%d", i+1),
		})
	}

	listing := service.BuildListing("s1", rows, nil)
	section := listing.Sections[0]
	assert.Equal(t, 0, section.Page)
	assert.Equal(t, 2, section.TotalPages)
	assert.Len(t, section.Suppliers, SupplierPageSize)
	assert.Equal(t, "Fornecedor 1", section.Suppliers[0].SupplierName)
	assert.False(t, section.HasPrev)
	assert.True(t, section.HasNext)

	key := SupplierPageKey(models.StatusAwaitingApproval)
	service.Cursors.Move("s1", key, 1)

	listing = service.BuildListing("s1", rows, nil)
	section = listing.Sections[0]
	assert.Equal(t, 1, section.Page)
	assert.Len(t, section.Suppliers, 2)
	assert.Equal(t, "Fornecedor 6", section.Suppliers[0].SupplierName)
	assert.True(t, section.HasPrev)
	assert.False(t, section.HasNext)

	// Moving past the last page clamps on render and writes the clamped
	// cursor back.
	service.Cursors.Move("s1", key, 1)
	listing = service.BuildListing("s1", rows, nil)
	assert.Equal(t, 1, listing.Sections[0].Page)
	assert.Equal(t, 1, service.Cursors.Page("s1", key))
}

func TestCursorClampsWhenDataShrinks(t *testing.T) {
	service := newGroupingTest()

	var rows []repositories.OrderRow
	for i := 0; i < 7; i++ {
		rows = append(rows, repositories.OrderRow{
			ID:           int64(100 - i),
			Status:       models.StatusAwaitingApproval,
			SupplierName: fmt.Sprintf("Fornecedor %d", i+1),
		})
	}

	key := SupplierPageKey(models.StatusAwaitingApproval)
	service.Cursors.Move("s1", key, 1)
	service.BuildListing("s1", rows, nil)

	// A narrower filter leaves fewer suppliers than the stored cursor.
	listing := service.BuildListing("s1", rows[:2], nil)
	section := listing.Sections[0]
	assert.Equal(t, 0, section.Page)
	assert.Len(t, section.Suppliers, 2)
	assert.Equal(t, 0, service.Cursors.Page("s1", key))
}

func TestMoveFloorsAtZero(t *testing.T) {
	store := NewCursorStore()
	store.Move("s1", "suppliers|x", -5)
	assert.Equal(t, 0, store.Page("s1", "suppliers|x"))
}

func TestToggleKeyReplacesSpaces(t *testing.T) {
	key := ToggleKey(models.StatusAwaitingReceipt, "Alfa Insumos", "01012501")
	assert.Equal(t, "Aguardando_Recebimento|Alfa_Insumos|01012501", key)
}

func TestListingFromSearchWithPartialReceipts(t *testing.T) {
	db := setupBatchTestDB(t)
	service := newGroupingTest()

	supplier := models.Supplier{SupplierName: "Alfa Insumos"}
	require.NoError(t, db.Create(&supplier).Error)
	product := models.Product{ProductCode: "MP-001", ProductName: "Acucar Cristal", Uom: "KG"}
	require.NoError(t, db.Create(&product).Error)

	order := models.PurchaseOrder{
		RequisitionNo: "REQ-1",
		SupplierId:    int64(supplier.ID),
		ProductId:     int64(product.ID),
		Quantity:      ptr(10),
		Status:        models.StatusAwaitingReceipt,
		OrderNo:       "01012501",
	}
	require.NoError(t, db.Create(&order).Error)

	shipments := []models.Shipment{
		{PurchaseOrderId: order.ID, Quantity: 3, ReceiptDate: "2025-03-01"},
		{PurchaseOrderId: order.ID, Quantity: 4, ReceiptDate: "2025-03-05"},
	}
	for i := range shipments {
		require.NoError(t, db.Create(&shipments[i]).Error)
	}
	require.NoError(t, db.Model(&models.PurchaseOrder{}).Where("id = ?", order.ID).
		Update("received_qty", 7).Error)

	repo := repositories.NewOrderRepository(db)
	filter := repositories.OrderFilter{Statuses: []string{models.StatusAwaitingReceipt}}
	rows, err := repo.Search(filter)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ShipmentPending)

	listing := service.BuildListing("s1", rows, filter.Statuses)
	require.Len(t, listing.Sections, 1)
	section := listing.Sections[0]
	assert.Equal(t, models.StatusAwaitingReceipt, section.Status)

	require.Len(t, section.Suppliers, 1)
	assert.Equal(t, "Alfa Insumos", section.Suppliers[0].SupplierName)

	require.Len(t, section.Suppliers[0].Groups, 1)
	group := section.Suppliers[0].Groups[0]
	assert.Equal(t, "01012501", group.Key)

	require.Len(t, group.Orders, 1)
	view := group.Orders[0]
	assert.True(t, view.ShipmentPending)
	assert.True(t, view.Shortfall)
	assert.Equal(t, 7.0, view.TotalShipped)
}

func TestOrderViewDerivedFields(t *testing.T) {
	view := buildOrderView(repositories.OrderRow{
		Quantity:         ptr(10),
		ConversionFactor: ptr(25),
		UnitPrice:        ptr(3.5),
		ReceivedQty:      ptr(8.5),
	})

	require.NotNil(t, view.ConversionQty)
	assert.Equal(t, 250.0, *view.ConversionQty)
	require.NotNil(t, view.LineTotal)
	assert.Equal(t, 35.0, *view.LineTotal)
	assert.True(t, view.Shortfall)

	// Exactly ninety percent received is not a shortfall.
	view = buildOrderView(repositories.OrderRow{Quantity: ptr(10), ReceivedQty: ptr(9)})
	assert.False(t, view.Shortfall)

	// Missing inputs leave the derived fields unset.
	view = buildOrderView(repositories.OrderRow{Quantity: ptr(10)})
	assert.Nil(t, view.ConversionQty)
	assert.Nil(t, view.LineTotal)
	assert.False(t, view.Shortfall)
}
