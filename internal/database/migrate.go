package database

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"usersvc/internal/models"
)

// Migrate brings the users table and its unique indexes up to date.
// Tables created before uuids existed get the column added and backfilled
// before the NOT NULL and unique constraints are applied.
func Migrate(db *gorm.DB) error {
	migrator := db.Migrator()
	if migrator.HasTable(&models.User{}) {
		if !migrator.HasColumn(&models.User{}, "UUID") {
			if err := db.Exec("ALTER TABLE users ADD COLUMN uuid varchar(36)").Error; err != nil {
				return fmt.Errorf("failed to add uuid column: %w", err)
			}
		}
		if err := backfillUUIDs(db); err != nil {
			return err
		}
	}

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to auto-migrate users: %w", err)
	}
	return nil
}

func backfillUUIDs(db *gorm.DB) error {
	var ids []int64
	if err := db.Model(&models.User{}).Where("uuid IS NULL OR uuid = ''").Pluck("id", &ids).Error; err != nil {
		return fmt.Errorf("failed to find users without uuid: %w", err)
	}
	for _, id := range ids {
		if err := db.Model(&models.User{}).Where("id = ?", id).Update("uuid", uuid.NewString()).Error; err != nil {
			return fmt.Errorf("failed to backfill uuid for user %d: %w", id, err)
		}
	}
	return nil
}
