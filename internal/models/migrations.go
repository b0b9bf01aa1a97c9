package models

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// SchemaVersion is the schema version the code targets. Stores with an
// older persisted version are upgraded on open.
const SchemaVersion = 3

// Legacy category names consolidated into a single category in schema
// version 3.
const (
	legacyCategoryTelephone = "Telephone"
	legacyCategoryInternet  = "Internet Service"
	consolidatedCategory    = "Phone & Internet"
)

// A migration upgrades the store from version-1 to version. Migrations
// must be idempotent: they check whether their work is already done
// before doing it, so that a re-run after a partial failure is safe.
type migration struct {
	version int
	name    string
	run     func(tx *gorm.DB) error
}

var migrations = []migration{
	{
		// Secondary indexes on expenses (date_paid, merchant, category)
		// are declared on the model and created by AutoMigrate. This step
		// only records the version transition.
		version: 2,
		name:    "expense lookup indexes",
		run:     func(_ *gorm.DB) error { return nil },
	},
	{
		version: 3,
		name:    "consolidate phone and internet categories",
		run:     consolidateLegacyCategories,
	},
}

// Migrate brings the store schema up to SchemaVersion.
//
// Structural changes run through AutoMigrate first. Data migrations then
// run in version order, each inside the surrounding transaction, so a
// version transition either completes fully or the open fails.
func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(Expense{}, ReceiptFile{}, Category{}, Setting{})
	if err != nil {
		return fmt.Errorf("error during store migration: %w", err)
	}

	stored, err := storedSchemaVersion(db)
	if err != nil {
		return err
	}

	if stored >= SchemaVersion {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := RunDataMigrations(tx, stored); err != nil {
			return err
		}

		return setSchemaVersion(tx, SchemaVersion)
	})
}

// RunDataMigrations runs the data migration steps for all version
// transitions after version. Used on store open and when importing a
// snapshot written at an older schema version.
func RunDataMigrations(tx *gorm.DB, version int) error {
	for _, m := range migrations {
		if m.version <= version {
			continue
		}

		log.Info().Int("version", m.version).Str("migration", m.name).Msg("Store")
		if err := m.run(tx); err != nil {
			return fmt.Errorf("migration to schema version %d (%s) failed: %w", m.version, m.name, err)
		}
	}

	return nil
}

// storedSchemaVersion reads the persisted schema version.
//
// A store without a version row and without data is fresh and starts at
// the current version. A store with data but no version row predates
// schema versioning and is treated as version 1.
func storedSchemaVersion(db *gorm.DB) (int, error) {
	value, err := GetSetting(db, SettingSchemaVersion)
	if err == nil {
		version, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("corrupt schema version %q: %w", value, err)
		}
		return version, nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return 0, err
	}

	var expenses, categories int64
	if err := db.Model(&Expense{}).Count(&expenses).Error; err != nil {
		return 0, err
	}
	if err := db.Model(&Category{}).Count(&categories).Error; err != nil {
		return 0, err
	}

	if expenses == 0 && categories == 0 {
		if err := setSchemaVersion(db, SchemaVersion); err != nil {
			return 0, err
		}
		return SchemaVersion, nil
	}

	return 1, nil
}

func setSchemaVersion(db *gorm.DB, version int) error {
	return SetSetting(db, SettingSchemaVersion, strconv.Itoa(version))
}

// consolidateLegacyCategories merges the two legacy connectivity
// categories into one. Expenses referencing the legacy names keep them;
// orphaned category references are an accepted data state.
func consolidateLegacyCategories(tx *gorm.DB) error {
	var legacy []Category
	err := tx.Where("name IN ?", []string{legacyCategoryTelephone, legacyCategoryInternet}).Find(&legacy).Error
	if err != nil {
		return err
	}

	// Nothing to consolidate unless both legacy categories exist
	if len(legacy) < 2 {
		return nil
	}

	var count int64
	err = tx.Model(&Category{}).Where(&Category{Name: consolidatedCategory}).Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		err = tx.Create(&Category{Name: consolidatedCategory, Icon: legacy[0].Icon, Color: legacy[0].Color}).Error
		if err != nil {
			return err
		}
	}

	return tx.Delete(&legacy).Error
}
