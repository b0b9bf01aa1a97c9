// Package registry manages the set of expense categories.
package registry

import (
	"github.com/deducto/backend/internal/models"
	"gorm.io/gorm"
)

// Registry enforces category name uniqueness and owns the built-in
// default set.
type Registry struct {
	db *gorm.DB
}

// New returns a Registry backed by the store.
func New(db *gorm.DB) *Registry {
	return &Registry{db: db}
}

// defaultCategories is the built-in set seeded into an empty registry
// on first run.
var defaultCategories = []models.Category{
	{Name: "Office Supplies", Icon: "📎", Color: "#4f86c6"},
	{Name: "Software", Icon: "💿", Color: "#7a52aa"},
	{Name: "Hardware", Icon: "🖥️", Color: "#3a7d44"},
	{Name: "Phone & Internet", Icon: "📡", Color: "#d9822b"},
	{Name: "Travel", Icon: "✈️", Color: "#b23a48"},
	{Name: "Professional Services", Icon: "🧾", Color: "#5c646d"},
	{Name: "Training & Education", Icon: "📚", Color: "#946846"},
	{Name: "Other", Icon: "📁", Color: "#8c8c8c"},
}

// AddCategory creates a new category. The name must not exist yet,
// comparison is case-sensitive; a duplicate returns
// models.ErrCategoryNameNotUnique.
func (r *Registry) AddCategory(name, icon, color string) (models.Category, error) {
	category := models.Category{Name: name, Icon: icon, Color: color}

	err := r.db.Create(&category).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// InitializeDefaults seeds the built-in categories when the registry is
// empty. A registry that already has categories is returned unchanged,
// defaults are never duplicated into it. Schema migrations are not run
// here, they run on store open.
func (r *Registry) InitializeDefaults() ([]models.Category, error) {
	var count int64
	err := r.db.Model(&models.Category{}).Count(&count).Error
	if err != nil {
		return nil, err
	}

	if count == 0 {
		err = r.db.Transaction(func(tx *gorm.DB) error {
			for i := range defaultCategories {
				category := defaultCategories[i]
				if err := tx.Create(&category).Error; err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return r.Categories()
}

// DeleteCategory removes a category unconditionally. Expenses referencing
// its name are not checked or updated: they keep the name as an orphaned
// label. This non-cascading behavior is deliberate.
func (r *Registry) DeleteCategory(id uint64) error {
	category, err := r.Get(id)
	if err != nil {
		return err
	}

	return r.db.Delete(&category).Error
}

// Get returns a single category by ID.
func (r *Registry) Get(id uint64) (models.Category, error) {
	var category models.Category
	err := r.db.First(&category, id).Error
	if err != nil {
		return models.Category{}, err
	}

	return category, nil
}

// Categories returns all categories in name order.
func (r *Registry) Categories() ([]models.Category, error) {
	var categories []models.Category
	err := r.db.Order("name ASC").Find(&categories).Error
	if err != nil {
		return nil, err
	}

	return categories, nil
}

// Orphans reports the distinct category names referenced by expenses
// that no longer exist in the registry. Reporting only: orphaned
// references are an accepted data state and are never fixed up
// automatically.
func (r *Registry) Orphans() ([]string, error) {
	orphans := make([]string, 0)
	err := r.db.Model(&models.Expense{}).
		Distinct("expenses.category").
		Where("expenses.category != ''").
		Where("expenses.category NOT IN (?)", r.db.Model(&models.Category{}).Select("categories.name")).
		Order("expenses.category ASC").
		Pluck("category", &orphans).Error
	if err != nil {
		return nil, err
	}

	return orphans, nil
}
