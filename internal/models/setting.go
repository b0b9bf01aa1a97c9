package models

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Setting keys used by the backend itself.
const (
	SettingSchemaVersion = "schemaVersion"
	SettingInstallID     = "installID"
	SettingLastBackupAt  = "lastBackupAt"
)

// Setting is a key-value pair for small app configuration.
type Setting struct {
	Key       string    `json:"key" gorm:"primaryKey"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetSetting returns the value stored for key. The error wraps
// ErrResourceNotFound when the key does not exist.
func GetSetting(db *gorm.DB, key string) (string, error) {
	var setting Setting
	err := db.First(&setting, &Setting{Key: key}).Error
	if err != nil {
		return "", err
	}

	return setting.Value, nil
}

// SetSetting stores value under key, overwriting an existing value.
func SetSetting(db *gorm.DB, key, value string) error {
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Setting{Key: key, Value: value}).Error
}

// DeleteSetting removes key. Deleting a key that does not exist is not
// an error.
func DeleteSetting(db *gorm.DB, key string) error {
	return db.Delete(&Setting{Key: key}).Error
}
