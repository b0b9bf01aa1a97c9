package models

import (
	"gorm.io/gorm"
)

// ClearAll empties every collection in the store inside one transaction.
// This is only used by the destructive reset operation, never
// automatically. The schema version survives since the schema itself is
// untouched.
func ClearAll(db *gorm.DB) error {
	// Resources referencing others are deleted first so that foreign key
	// checks pass
	resources := []any{
		ReceiptFile{},
		Expense{},
		Category{},
		Setting{},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, model := range resources {
			err := tx.Where("true").Delete(&model).Error
			if err != nil {
				return err
			}
		}

		return setSchemaVersion(tx, SchemaVersion)
	})
}
