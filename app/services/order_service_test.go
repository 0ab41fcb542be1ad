package services

import (
	"testing"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitPersistsSubmissionAsIs(t *testing.T) {
	db := testDB(t)
	svc := NewOrderService(repositories.NewOrderRepository(db))

	order, err := svc.Submit(Submission{
		Nama:       "Budi Santoso",
		Email:      "budi@example.com",
		Tanggal:    "2026-09-01",
		Jumlah:     3,
		Produk:     "Kopi Arabika Gayo",
		Harga:      10.00,
		TotalHarga: 30.00,
		Pesan:      "",
	})
	require.NoError(t, err)
	require.NotZero(t, order.ID)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, "Budi Santoso", got.Nama)
	assert.Equal(t, 3, got.Jumlah)
	assert.Equal(t, 30.00, got.TotalHarga)
}

func TestSubmitKeepsInconsistentTotal(t *testing.T) {
	db := testDB(t)
	svc := NewOrderService(repositories.NewOrderRepository(db))

	order, err := svc.Submit(Submission{
		Nama:       "Sari",
		Email:      "sari@example.com",
		Tanggal:    "2026-09-02",
		Jumlah:     2,
		Produk:     "Teh Melati",
		Harga:      5.00,
		TotalHarga: 777.00,
	})
	require.NoError(t, err)

	var got models.Order
	require.NoError(t, db.First(&got, order.ID).Error)
	assert.Equal(t, 777.00, got.TotalHarga, "submitted total is stored verbatim")
}
