package repositories

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

// testDB opens a private in-memory database. The named DSN keeps one
// store shared across the pool's connections within a single test.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:gerai_test_%d?mode=memory&cache=shared&_busy_timeout=5000", testDBSeq.Add(1))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}, &models.Product{}))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})
	return db
}

func TestUserRepositoryFindByUsernameMiss(t *testing.T) {
	users := NewUserRepository(testDB(t))

	user, err := users.FindByUsername("tidak-ada")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUserRepositoryCreateAndFind(t *testing.T) {
	users := NewUserRepository(testDB(t))

	in := &models.User{Username: "budi", Password: "hash", Role: models.RoleUser, Email: "budi@example.com"}
	require.NoError(t, users.Create(in))
	require.NotZero(t, in.ID)

	byName, err := users.FindByUsername("budi")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, in.ID, byName.ID)
	assert.Equal(t, "budi@example.com", byName.Email)

	byID, err := users.FindByID(in.ID)
	require.NoError(t, err)
	require.NotNil(t, byID)
	assert.Equal(t, "budi", byID.Username)
}

func TestUserRepositoryDuplicateUsername(t *testing.T) {
	users := NewUserRepository(testDB(t))

	require.NoError(t, users.Create(&models.User{Username: "budi", Password: "hash", Role: models.RoleUser}))

	err := users.Create(&models.User{Username: "budi", Password: "lain", Role: models.RoleUser})
	assert.ErrorIs(t, err, ErrDuplicateUsername)
}

func TestUserRepositoryConcurrentRegistration(t *testing.T) {
	users := NewUserRepository(testDB(t))

	const attempts = 8
	errs := make([]error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = users.Create(&models.User{
				Username: "rebutan",
				Password: fmt.Sprintf("hash-%d", i),
				Role:     models.RoleUser,
			})
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrDuplicateUsername)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent registration should win")
}

func TestUserRepositoryUpdate(t *testing.T) {
	users := NewUserRepository(testDB(t))

	user := &models.User{Username: "budi", Password: "hash", Role: models.RoleUser}
	require.NoError(t, users.Create(user))

	user.Username = "budi-baru"
	user.Email = "baru@example.com"
	user.Phone = "0812000111"
	user.Address = "Jl. Melati 5"
	require.NoError(t, users.Update(user))

	got, err := users.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "budi-baru", got.Username)
	assert.Equal(t, "baru@example.com", got.Email)
	assert.Equal(t, "0812000111", got.Phone)
	assert.Equal(t, "Jl. Melati 5", got.Address)
}

func TestUserRepositoryUpdateCollision(t *testing.T) {
	users := NewUserRepository(testDB(t))

	require.NoError(t, users.Create(&models.User{Username: "budi", Password: "hash", Role: models.RoleUser}))
	other := &models.User{Username: "sari", Password: "hash", Role: models.RoleUser}
	require.NoError(t, users.Create(other))

	other.Username = "budi"
	assert.ErrorIs(t, users.Update(other), ErrDuplicateUsername)
}

func TestUserRepositoryUpdateMissing(t *testing.T) {
	users := NewUserRepository(testDB(t))

	ghost := &models.User{Username: "hantu", Password: "hash", Role: models.RoleUser}
	ghost.ID = 9999
	assert.ErrorIs(t, users.Update(ghost), ErrNotFound)
}

func TestAdminExists(t *testing.T) {
	users := NewUserRepository(testDB(t))

	exists, err := users.AdminExists()
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, users.Create(&models.User{Username: "admin", Password: "hash", Role: models.RoleAdmin}))

	exists, err = users.AdminExists()
	require.NoError(t, err)
	assert.True(t, exists)
}
