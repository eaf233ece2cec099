package migrations

import (
	"fmt"
	"sort"

	"github.com/promedhq/promed/internal/logger"
	"gorm.io/gorm"
)

// Migration is a schema change beyond what AutoMigrate covers.
type Migration struct {
	ID string
	Up func(*gorm.DB) error
}

var registry = make(map[string]Migration)

// Register adds a migration to the registry. Called from init funcs in
// this package; IDs are applied in lexical order.
func Register(id string, up func(*gorm.DB) error) {
	registry[id] = Migration{ID: id, Up: up}
}

// Record tracks an executed migration.
type Record struct {
	ID        string `gorm:"primaryKey"`
	CreatedAt int64  `gorm:"autoCreateTime"`
}

func (Record) TableName() string { return "migration_records" }

// Run executes all pending migrations in order.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&Record{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	var ids []string
	for id := range registry {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var executed []Record
	if err := db.Find(&executed).Error; err != nil {
		return fmt.Errorf("failed to get executed migrations: %w", err)
	}
	executedSet := make(map[string]bool, len(executed))
	for _, r := range executed {
		executedSet[r.ID] = true
	}

	for _, id := range ids {
		if executedSet[id] {
			continue
		}
		logger.Info("Running migration", "id", id)
		if err := registry[id].Up(db); err != nil {
			return fmt.Errorf("failed to run migration %s: %w", id, err)
		}
		if err := db.Create(&Record{ID: id}).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", id, err)
		}
	}

	return nil
}
