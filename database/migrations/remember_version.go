package migrations

import (
	"github.com/prasetyadi/gerai/app/models"
	"github.com/prasetyadi/gerai/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20260828000000_add_remember_version_to_users", &addRememberVersionToUsers{})
}

type addRememberVersionToUsers struct{}

func (m *addRememberVersionToUsers) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *addRememberVersionToUsers) Down(db *gorm.DB) error {
	return db.Migrator().DropColumn(&models.User{}, "remember_version")
}
