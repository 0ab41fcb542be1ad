package migration

import (
	"testing"

	"github.com/prasetyadi/gerai/pkg/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type createWidgetsTable struct{}

func (createWidgetsTable) Up(db *gorm.DB) error {
	return db.Exec("CREATE TABLE widgets (id INTEGER PRIMARY KEY)").Error
}

func (createWidgetsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("widgets")
}

func withMigration(t *testing.T, name string, m Migration) {
	t.Helper()
	saved := registry
	registry = append([]registered{}, saved...)
	registry = append(registry, registered{name: name, m: m})
	t.Cleanup(func() { registry = saved })
}

func TestUpIsIdempotentAndRollbackUndoesBatch(t *testing.T) {
	db, err := database.Open("sqlite", "file:gerai_mig_test?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB, err := db.DB()
		require.NoError(t, err)
		_ = sqlDB.Close()
	})

	withMigration(t, "20260301000100_create_widgets_table", createWidgetsTable{})
	runner := New(db)

	require.NoError(t, runner.Up())
	assert.True(t, db.Migrator().HasTable("widgets"))

	// A second Up must not re-apply anything.
	require.NoError(t, runner.Up())

	rows, err := runner.Status()
	require.NoError(t, err)
	found := false
	for _, row := range rows {
		if row.Name == "20260301000100_create_widgets_table" {
			found = true
			assert.True(t, row.Ran)
		}
	}
	assert.True(t, found)

	require.NoError(t, runner.Rollback())
	assert.False(t, db.Migrator().HasTable("widgets"))
}
