package repositories

import (
	"fmt"

	"github.com/prasetyadi/gerai/app/models"
	"gorm.io/gorm"
)

// OrderRepository persists reservation orders. The model is write-only; no
// read path exists by design.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists a new order inside a transaction.
func (r *OrderRepository) Create(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(order).Error
	})
	if err != nil {
		return fmt.Errorf("orders: create: %w", err)
	}
	return nil
}
