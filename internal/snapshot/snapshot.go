// Package snapshot implements whole-store export and import-with-replace.
// Snapshots are the only interchange format: manual backup/restore and
// the cloud backup collaborator both speak it.
package snapshot

import (
	"errors"
	"time"

	"github.com/deducto/backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidSnapshot is returned for documents missing the expenses or
// categories collection. Import aborts before any mutation.
var ErrInvalidSnapshot = errors.New("the snapshot is missing the expenses or categories collection")

// Snapshot is a complete, portable export of all expense and category
// data at a point in time. Receipt payloads travel inside the document
// as base64 data URIs, so a snapshot is a single portable file.
type Snapshot struct {
	Expenses      []models.Expense  `json:"expenses"`
	Categories    []models.Category `json:"categories"`
	ExportDate    time.Time         `json:"exportDate"`
	SchemaVersion int               `json:"schemaVersion"`
}

// Service reads and writes snapshots against the store.
type Service struct {
	db *gorm.DB
}

// New returns a snapshot Service backed by the store.
func New(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Export returns a consistent point-in-time snapshot of all expenses and
// categories. Both collections are read inside one transaction, so a
// write happening concurrently is either fully included or fully
// excluded. The last-backup timestamp setting is updated as part of the
// same transaction.
func (s *Service) Export() (Snapshot, error) {
	snapshot := Snapshot{
		Expenses:      make([]models.Expense, 0),
		Categories:    make([]models.Category, 0),
		ExportDate:    time.Now().In(time.UTC),
		SchemaVersion: models.SchemaVersion,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Order("expenses.id ASC").Preload("ReceiptFiles").Find(&snapshot.Expenses).Error
		if err != nil {
			return err
		}

		err = tx.Order("categories.id ASC").Find(&snapshot.Categories).Error
		if err != nil {
			return err
		}

		return models.SetSetting(tx, models.SettingLastBackupAt, snapshot.ExportDate.Format(time.RFC3339))
	})
	if err != nil {
		return Snapshot{}, err
	}

	return snapshot, nil
}

// Import destructively replaces all expenses and all categories with the
// snapshot's contents. Settings are untouched. The whole replace runs in
// one transaction: it either completes fully or leaves the store as it
// was.
//
// The bulk load is trusted: records are inserted with their IDs and
// without per-record validation. Snapshots written at an older schema
// version go through the same data migrations as a store open.
func (s *Service) Import(snapshot Snapshot) error {
	// nil means the collection was absent from the document. An empty
	// array is present and acceptable.
	if snapshot.Expenses == nil || snapshot.Categories == nil {
		return ErrInvalidSnapshot
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{models.ReceiptFile{}, models.Expense{}, models.Category{}} {
			if err := tx.Where("true").Delete(&model).Error; err != nil {
				return err
			}
		}

		for i := range snapshot.Categories {
			category := snapshot.Categories[i]
			if err := tx.Create(&category).Error; err != nil {
				return err
			}
		}

		for i := range snapshot.Expenses {
			expense := snapshot.Expenses[i]
			if err := tx.Create(&expense).Error; err != nil {
				return err
			}
		}

		if snapshot.SchemaVersion < models.SchemaVersion {
			return models.RunDataMigrations(tx, snapshot.SchemaVersion)
		}

		return nil
	})
}

// EnsureInstallID returns the stable identifier for this installation,
// generating and persisting one on first use. The cloud backup
// collaborator keys remote snapshots by it.
func EnsureInstallID(db *gorm.DB) (string, error) {
	id, err := models.GetSetting(db, models.SettingInstallID)
	if err == nil {
		return id, nil
	}

	if !errors.Is(err, models.ErrResourceNotFound) {
		return "", err
	}

	id = uuid.NewString()
	if err := models.SetSetting(db, models.SettingInstallID, id); err != nil {
		return "", err
	}

	return id, nil
}
