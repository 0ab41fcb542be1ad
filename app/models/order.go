package models

import "gorm.io/gorm"

// Order is one reservation submission. Orders are write-only: created by the
// reservation form and never read back, updated or deleted.
//
// TotalHarga is stored exactly as submitted; it is deliberately not
// recomputed from Jumlah * Harga.
type Order struct {
	gorm.Model
	Nama       string  `gorm:"size:100" json:"nama"`
	Email      string  `gorm:"size:100" json:"email"`
	Tanggal    string  `gorm:"size:100" json:"tanggal"`
	Jumlah     int     `json:"jumlah"`
	Produk     string  `gorm:"size:100" json:"produk"`
	Harga      float64 `json:"harga"`
	TotalHarga float64 `json:"total_harga"`
	Pesan      string  `gorm:"size:200" json:"pesan"`
}
