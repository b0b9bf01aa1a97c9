package models

import (
	"time"

	"gorm.io/gorm"
)

// Model is the base model for all persisted resources.
//
// IDs are assigned by the store, monotonically increasing, and never
// reused after a delete.
type Model struct {
	ID        uint64    `json:"id" gorm:"primaryKey;autoIncrement"` // ID of the resource
	CreatedAt time.Time `json:"createdAt"`                          // Time the resource was created
	UpdatedAt time.Time `json:"updatedAt"`                          // Last time the resource was updated
}

// AfterFind updates the timestamps to use UTC as
// timezone, not +0000. Yes, this is different.
//
// We already store them in UTC, but somehow reading
// them from the database returns them as +0000.
func (m *Model) AfterFind(_ *gorm.DB) (err error) {
	m.CreatedAt = m.CreatedAt.In(time.UTC)
	m.UpdatedAt = m.UpdatedAt.In(time.UTC)
	return nil
}
