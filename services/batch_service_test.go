package services

import (
	"errors"
	"testing"
	"time"

	"compras-app/controllers/idgen"
	"compras-app/database"
	"compras-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupBatchTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	idgen.Init()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createOrder(t *testing.T, db *gorm.DB, order models.PurchaseOrder) models.PurchaseOrder {
	t.Helper()
	require.NoError(t, db.Create(&order).Error)
	return order
}

func selectionOf(orders ...models.PurchaseOrder) []SelectedOrder {
	selection := make([]SelectedOrder, len(orders))
	for i, o := range orders {
		selection[i] = SelectedOrder{ID: o.ID, OrderNo: o.OrderNo, Note: o.Note}
	}
	return selection
}

func TestApplyChangesSparsePatch(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewBatchService(db)

	first := createOrder(t, db, models.PurchaseOrder{
		Status: models.StatusRequestSupplier, Note: "urgente", Quantity: ptr(10), IpiPct: ptr(5),
	})
	second := createOrder(t, db, models.PurchaseOrder{
		Status: models.StatusRequestSupplier, Note: "", Quantity: ptr(3),
	})

	result, err := service.ApplyChanges(selectionOf(first, second), BatchChanges{
		Status:     models.StatusAwaitingApproval,
		NoteAppend: "aprovado pela diretoria",
	}, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Updated)
	assert.Empty(t, result.Failures)
	assert.Equal(t, "2 ordem(ns) atualizada(s)", result.Message)

	var got models.PurchaseOrder
	require.NoError(t, db.First(&got, first.ID).Error)
	assert.Equal(t, models.StatusAwaitingApproval, got.Status)
	assert.Equal(t, "urgente\naprovado pela diretoria", got.Note)
	assert.Equal(t, 7, got.UpdatedBy)

	// Untouched fields keep their values.
	require.NotNil(t, got.Quantity)
	assert.Equal(t, 10.0, *got.Quantity)
	require.NotNil(t, got.IpiPct)
	assert.Equal(t, 5.0, *got.IpiPct)

	got = models.PurchaseOrder{}
	require.NoError(t, db.First(&got, second.ID).Error)
	assert.Equal(t, "aprovado pela diretoria", got.Note)
}

func TestApplyChangesZeroTaxRate(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewBatchService(db)

	order := createOrder(t, db, models.PurchaseOrder{
		Status: models.StatusAwaitingApproval, IpiPct: ptr(5), IcmsPct: ptr(18),
	})

	// Zero is a real rate, distinct from "leave unchanged".
	result, err := service.ApplyChanges(selectionOf(order), BatchChanges{IpiPct: ptr(0)}, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	var got models.PurchaseOrder
	require.NoError(t, db.First(&got, order.ID).Error)
	require.NotNil(t, got.IpiPct)
	assert.Equal(t, 0.0, *got.IpiPct)
	require.NotNil(t, got.IcmsPct)
	assert.Equal(t, 18.0, *got.IcmsPct)
}

func TestApplyChangesEmptySelection(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewBatchService(db)

	_, err := service.ApplyChanges(nil, BatchChanges{Status: models.StatusCancelled}, 1)
	assert.ErrorIs(t, err, ErrEmptySelection)
}

func TestNextOrderNumber(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewBatchService(db)

	day := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)

	number, err := service.NextOrderNumber(day)
	require.NoError(t, err)
	assert.Equal(t, "01012501", number)

	createOrder(t, db, models.PurchaseOrder{OrderNo: "01012501"})
	createOrder(t, db, models.PurchaseOrder{OrderNo: "01012502"})
	// A different day never feeds today's sequence.
	createOrder(t, db, models.PurchaseOrder{OrderNo: "02012509"})

	number, err = service.NextOrderNumber(day)
	require.NoError(t, err)
	assert.Equal(t, "01012503", number)
}

func TestAssignOrderNumber(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewBatchService(db)

	first := createOrder(t, db, models.PurchaseOrder{Status: models.StatusAwaitingApproval})
	second := createOrder(t, db, models.PurchaseOrder{Status: models.StatusAwaitingApproval})

	day := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	number, result, err := service.AssignOrderNumber(selectionOf(first, second), day, 2)
	require.NoError(t, err)
	assert.Equal(t, "01012501", number)
	assert.Equal(t, 2, result.Updated)

	var got models.PurchaseOrder
	require.NoError(t, db.First(&got, first.ID).Error)
	assert.Equal(t, "01012501", got.OrderNo)
	got = models.PurchaseOrder{}
	require.NoError(t, db.First(&got, second.ID).Error)
	assert.Equal(t, "01012501", got.OrderNo)
}

func TestAssignOrderNumberRejectsNumberedRows(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewBatchService(db)

	numbered := createOrder(t, db, models.PurchaseOrder{OrderNo: "31122501"})
	plain := createOrder(t, db, models.PurchaseOrder{})

	day := time.Date(2025, time.January, 1, 10, 0, 0, 0, time.UTC)
	_, _, err := service.AssignOrderNumber(selectionOf(numbered, plain), day, 2)

	var already *AlreadyNumberedError
	require.True(t, errors.As(err, &already))
	assert.Equal(t, []int64{numbered.ID}, already.IDs)

	// Nothing was written, not even to the unnumbered row.
	var got models.PurchaseOrder
	require.NoError(t, db.First(&got, plain.ID).Error)
	assert.Equal(t, "", got.OrderNo)
}

func TestClearOrderNumbers(t *testing.T) {
	db := setupBatchTestDB(t)
	service := NewBatchService(db)

	order := createOrder(t, db, models.PurchaseOrder{OrderNo: "01012501"})

	result, err := service.ClearOrderNumbers(selectionOf(order), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Updated)

	var got models.PurchaseOrder
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, "", got.OrderNo)

	// The released selection can be renumbered from scratch.
	day := time.Date(2025, time.February, 2, 10, 0, 0, 0, time.UTC)
	number, _, err := service.AssignOrderNumber(selectionOf(got), day, 3)
	require.NoError(t, err)
	assert.Equal(t, "02022501", number)
}
