package repositories

import (
	"compras-app/models"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// TargetPriceHistory returns the append-only price history of a category
// ordered by date then entry id, the order the edit form renders it in.
func (r *CategoryRepository) TargetPriceHistory(categoryID uint) ([]models.TargetPrice, error) {
	var history []models.TargetPrice
	err := r.db.Where("category_id = ?", categoryID).
		Order("price_date ASC, id ASC").
		Find(&history).Error
	if err != nil {
		return nil, err
	}
	return history, nil
}

func (r *CategoryRepository) AppendTargetPrice(entry *models.TargetPrice) error {
	return r.db.Create(entry).Error
}

func (r *CategoryRepository) DeleteTargetPrice(categoryID uint, entryID uint) error {
	result := r.db.Where("category_id = ?", categoryID).Delete(&models.TargetPrice{}, entryID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
