package seeders

import (
	"fmt"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
	"gorm.io/gorm"
)

func init() {
	Register("products", SeedProducts)
}

// SeedProducts fills an empty catalogue with a starter assortment so the
// product pages are not blank on first run.
func SeedProducts(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if count > 0 {
		return nil
	}

	products := repositories.NewProductRepository(db)
	starter := []models.Product{
		{Name: "Kopi Arabika Gayo", Description: "Biji kopi arabika dari dataran tinggi Gayo, 250g.", Price: 85000, Stock: 40, SKU: "KOPI-GAYO-250"},
		{Name: "Teh Melati Premium", Description: "Teh hijau melati, kemasan 100g.", Price: 45000, Stock: 60, SKU: "TEH-MELATI-100"},
		{Name: "Gula Aren Cair", Description: "Pemanis alami dari nira aren, botol 500ml.", Price: 38000, Stock: 35, SKU: "GULA-AREN-500"},
		{Name: "Keripik Singkong Balado", Description: "Keripik singkong pedas manis, 200g.", Price: 25000, Stock: 80, SKU: "KERIPIK-BLD-200"},
	}
	for i := range starter {
		if err := products.Create(&starter[i]); err != nil {
			return fmt.Errorf("seed product %s: %w", starter[i].SKU, err)
		}
	}
	return nil
}
