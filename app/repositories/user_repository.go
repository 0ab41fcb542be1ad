package repositories

import (
	"errors"
	"fmt"

	"github.com/prasetyadi/gerai/app/models"
	"gorm.io/gorm"
)

// UserRepository owns all database access for User records. Every write
// runs inside a transaction so a failure leaves no partial state behind.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername looks up a user by login key. A miss is a valid outcome
// and returns (nil, nil).
func (r *UserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by username: %w", err)
	}
	return &user, nil
}

// FindByID looks up a user by primary key, returning (nil, nil) on a miss
// so a stale session degrades to anonymous instead of erroring.
func (r *UserRepository) FindByID(id uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("users: find by id: %w", err)
	}
	return &user, nil
}

// Create persists a new user. A unique-index violation on username comes
// back as ErrDuplicateUsername; under concurrent registrations for the same
// name exactly one insert wins.
func (r *UserRepository) Create(user *models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(user).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateUsername
	}
	if err != nil {
		return fmt.Errorf("users: create: %w", err)
	}
	return nil
}

// Update persists the mutable fields of an existing user in one atomic
// write. ErrNotFound when the identifier vanished; ErrDuplicateUsername
// when a username change collides with the unique index.
func (r *UserRepository) Update(user *models.User) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		if err := tx.First(&existing, user.ID).Error; err != nil {
			return err
		}
		return tx.Model(&existing).Updates(map[string]interface{}{
			"username": user.Username,
			"password": user.Password,
			"role":     user.Role,
			"email":    user.Email,
			"phone":    user.Phone,
			"address":  user.Address,
		}).Error
	})

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateUsername
	case err != nil:
		return fmt.Errorf("users: update: %w", err)
	}
	return nil
}

// AdminExists reports whether any admin-role account is present. Used by
// the bootstrap seeder.
func (r *UserRepository) AdminExists() (bool, error) {
	var count int64
	if err := r.db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
		return false, fmt.Errorf("users: count admins: %w", err)
	}
	return count > 0, nil
}

// BumpRememberVersion invalidates every outstanding remember-me token for
// the user by advancing the version new tokens are issued against.
func (r *UserRepository) BumpRememberVersion(id uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&models.User{}).
			Where("id = ?", id).
			UpdateColumn("remember_version", gorm.Expr("remember_version + 1")).Error
	})
	if err != nil {
		return fmt.Errorf("users: bump remember version: %w", err)
	}
	return nil
}
