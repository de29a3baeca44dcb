package repositories

import (
	"testing"

	"compras-app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCategoryRoundTrip(t *testing.T) {
	db := setupOrderTestDB(t)

	category := models.Category{
		CategoryName:     "Acucar",
		ConversionFactor: floatPtr(25),
		FreightTerms:     "CIF",
	}
	require.NoError(t, db.Create(&category).Error)

	var got models.Category
	require.NoError(t, db.First(&got, category.ID).Error)
	assert.Equal(t, "Acucar", got.CategoryName)
	require.NotNil(t, got.ConversionFactor)
	assert.Equal(t, 25.0, *got.ConversionFactor)
	assert.Equal(t, "CIF", got.FreightTerms)
}

func TestTargetPriceHistoryOrder(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewCategoryRepository(db)

	category := models.Category{CategoryName: "Acucar"}
	require.NoError(t, db.Create(&category).Error)

	// Inserted newest first, the history must come back date ascending.
	entries := []models.TargetPrice{
		{CategoryId: category.ID, Price: 3.10, Cost: 2.80, PriceDate: "2025-03-01"},
		{CategoryId: category.ID, Price: 2.90, Cost: 2.60, PriceDate: "2025-01-15"},
		{CategoryId: category.ID, Price: 3.00, Cost: 2.70, PriceDate: "2025-02-10"},
	}
	for i := range entries {
		require.NoError(t, repo.AppendTargetPrice(&entries[i]))
	}

	history, err := repo.TargetPriceHistory(category.ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "2025-01-15", history[0].PriceDate)
	assert.Equal(t, "2025-02-10", history[1].PriceDate)
	assert.Equal(t, "2025-03-01", history[2].PriceDate)
	assert.Equal(t, 2.90, history[0].Price)
}

func TestDeleteTargetPrice(t *testing.T) {
	db := setupOrderTestDB(t)
	repo := NewCategoryRepository(db)

	category := models.Category{CategoryName: "Acucar"}
	other := models.Category{CategoryName: "Embalagem"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&other).Error)

	entry := models.TargetPrice{CategoryId: category.ID, Price: 3.10, PriceDate: "2025-03-01"}
	require.NoError(t, repo.AppendTargetPrice(&entry))

	// An entry id under the wrong category is not found, not deleted.
	err := repo.DeleteTargetPrice(other.ID, entry.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteTargetPrice(category.ID, entry.ID))

	history, err := repo.TargetPriceHistory(category.ID)
	require.NoError(t, err)
	assert.Empty(t, history)

	err = repo.DeleteTargetPrice(category.ID, entry.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
