package repositories

import (
	"fmt"

	"github.com/prasetyadi/gerai/app/models"
	"gorm.io/gorm"
)

// ProductRepository reads the catalogue shown on the product pages.
type ProductRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// All returns the catalogue, newest first.
func (r *ProductRepository) All() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("products: list: %w", err)
	}
	return products, nil
}

// Create persists a catalogue entry; used by the seeder.
func (r *ProductRepository) Create(product *models.Product) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	if err != nil {
		return fmt.Errorf("products: create: %w", err)
	}
	return nil
}
