package models

import (
	"strings"

	"gorm.io/gorm"
)

// Category is a label used to classify expenses. Names are unique,
// case-sensitive, enforced through the unique index.
type Category struct {
	Model
	Name  string `json:"name" gorm:"uniqueIndex"` // Name of the category
	Icon  string `json:"icon"`                    // Icon shown next to the name, presentation only
	Color string `json:"color"`                   // Display color, presentation only
}

// BeforeSave trims whitespace from the name.
func (c *Category) BeforeSave(_ *gorm.DB) error {
	c.Name = strings.TrimSpace(c.Name)
	return nil
}
