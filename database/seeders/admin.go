package seeders

import (
	"fmt"

	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/app/repositories"
	"github.com/prasetyadi/gerai/config"
	"github.com/prasetyadi/gerai/pkg/hash"
	"github.com/prasetyadi/gerai/pkg/logger"
	"gorm.io/gorm"
)

func init() {
	Register("admin", SeedAdmin)
}

// SeedAdmin creates the bootstrap administrator if no admin-role account
// exists yet. The username and password come from configuration so
// deployments can override the defaults.
func SeedAdmin(db *gorm.DB) error {
	users := repositories.NewUserRepository(db)

	exists, err := users.AdminExists()
	if err != nil {
		return fmt.Errorf("check admin presence: %w", err)
	}
	if exists {
		return nil
	}

	hashed, err := hash.Password(config.AdminPassword())
	if err != nil {
		return fmt.Errorf("hash bootstrap password: %w", err)
	}

	admin := &models.User{
		Username: config.AdminUsername(),
		Password: hashed,
		Role:     models.RoleAdmin,
	}
	if err := users.Create(admin); err != nil {
		return fmt.Errorf("create bootstrap admin: %w", err)
	}

	logger.Info("seeder: bootstrap admin created", "username", admin.Username)
	return nil
}
