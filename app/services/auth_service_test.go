package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
	"github.com/prasetyadi/gerai/pkg/database"
	"github.com/prasetyadi/gerai/pkg/hash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testDBSeq atomic.Int64

func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:gerai_svc_test_%d?mode=memory&cache=shared&_busy_timeout=5000", testDBSeq.Add(1))
	db, err := database.Open("sqlite", dsn)
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Order{}))

	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})
	return db
}

func newAuthService(t *testing.T) (*AuthService, *repositories.UserRepository) {
	t.Helper()
	users := repositories.NewUserRepository(testDB(t))
	return NewAuthService(users), users
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	svc, users := newAuthService(t)

	require.NoError(t, svc.Register("budi", "budi@example.com", "0812", "rahasia1", "rahasia1"))

	user, err := users.FindByUsername("budi")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "rahasia1", user.Password)
	assert.True(t, hash.Verify("rahasia1", user.Password))
}

func TestRegisterRejectsTakenUsername(t *testing.T) {
	svc, _ := newAuthService(t)

	require.NoError(t, svc.Register("budi", "", "", "rahasia1", "rahasia1"))
	assert.ErrorIs(t, svc.Register("budi", "", "", "lainlain", "lainlain"), ErrUsernameTaken)
}

func TestRegisterRejectsConfirmationMismatch(t *testing.T) {
	svc, users := newAuthService(t)

	assert.ErrorIs(t, svc.Register("budi", "", "", "rahasia1", "beda"), ErrPasswordMismatch)

	user, err := users.FindByUsername("budi")
	require.NoError(t, err)
	assert.Nil(t, user, "nothing should be persisted on a failed registration")
}

func TestLoginDoesNotRevealWhichFieldWasWrong(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register("budi", "", "", "rahasia1", "rahasia1"))

	_, unknownUser := svc.Login("tidak-ada", "rahasia1")
	_, wrongPassword := svc.Login("budi", "salah")

	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.Equal(t, unknownUser, wrongPassword)
}

func TestLoginSuccess(t *testing.T) {
	svc, _ := newAuthService(t)
	require.NoError(t, svc.Register("budi", "budi@example.com", "", "rahasia1", "rahasia1"))

	user, err := svc.Login("budi", "rahasia1")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "budi", user.Username)
}

func TestUpdateAccountOverwritesProfile(t *testing.T) {
	svc, users := newAuthService(t)
	require.NoError(t, svc.Register("budi", "lama@example.com", "0811", "rahasia1", "rahasia1"))

	user, err := users.FindByUsername("budi")
	require.NoError(t, err)
	require.NotNil(t, user)

	require.NoError(t, svc.UpdateAccount(user.ID, "budi-baru", "baru@example.com", "0812", "Jl. Melati 5"))

	got, err := users.FindByID(user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "budi-baru", got.Username)
	assert.Equal(t, "baru@example.com", got.Email)
	assert.Equal(t, "Jl. Melati 5", got.Address)
	assert.True(t, hash.Verify("rahasia1", got.Password), "password must survive a profile update")
}

func TestChangePassword(t *testing.T) {
	svc, users := newAuthService(t)
	require.NoError(t, svc.Register("budi", "", "", "rahasia1", "rahasia1"))

	user, err := users.FindByUsername("budi")
	require.NoError(t, err)
	require.NotNil(t, user)

	assert.ErrorIs(t, svc.ChangePassword(user.ID, "salah", "baru1234", "baru1234"), ErrWrongPassword)
	assert.ErrorIs(t, svc.ChangePassword(user.ID, "rahasia1", "baru1234", "beda"), ErrPasswordMismatch)
	require.NoError(t, svc.ChangePassword(user.ID, "rahasia1", "baru1234", "baru1234"))

	_, err = svc.Login("budi", "rahasia1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, err := svc.Login("budi", "baru1234")
	require.NoError(t, err)
	assert.NotNil(t, logged)
}
