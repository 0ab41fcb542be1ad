package repositories

import (
	"testing"
	"time"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductRepositoryAllNewestFirst(t *testing.T) {
	db := testDB(t)
	products := NewProductRepository(db)

	older := &models.Product{Name: "Teh Melati", SKU: "TEH-1", Price: 45000}
	require.NoError(t, products.Create(older))
	// Force distinct created_at values; sqlite timestamps are coarse.
	require.NoError(t, db.Model(older).Update("created_at", time.Now().Add(-time.Hour)).Error)

	newer := &models.Product{Name: "Kopi Gayo", SKU: "KOPI-1", Price: 85000}
	require.NoError(t, products.Create(newer))

	got, err := products.All()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Kopi Gayo", got[0].Name)
	assert.Equal(t, "Teh Melati", got[1].Name)
}
