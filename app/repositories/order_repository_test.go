package repositories

import (
	"testing"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepositoryCreateStoresTotalVerbatim(t *testing.T) {
	db := testDB(t)
	orders := NewOrderRepository(db)

	// An inconsistent total must be stored as submitted.
	in := &models.Order{
		Nama:       "Budi Santoso",
		Email:      "budi@example.com",
		Tanggal:    "2026-09-01",
		Jumlah:     3,
		Produk:     "Kopi Arabika Gayo",
		Harga:      10.00,
		TotalHarga: 999.99,
		Pesan:      "Tanpa gula",
	}
	require.NoError(t, orders.Create(in))
	require.NotZero(t, in.ID)

	var got models.Order
	require.NoError(t, db.First(&got, in.ID).Error)
	assert.Equal(t, 3, got.Jumlah)
	assert.Equal(t, 10.00, got.Harga)
	assert.Equal(t, 999.99, got.TotalHarga)
	assert.Equal(t, "Tanpa gula", got.Pesan)
}
