// Package query derives filtered, sorted and grouped views over the
// expense set. All functions are pure: they never mutate their input and
// produce identical output for identical input.
package query

import (
	"strings"

	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/types"
	"github.com/ryanuber/go-glob"
)

// CategoryAll matches every category in a filter.
const CategoryAll = "all"

// Filter describes which expenses a view is interested in.
//
// The date constraint comes from either From/To or Year/Quarter. An
// explicit From/To range wins when both are set. The quarter only
// applies together with a year. All predicates are combined with AND.
type Filter struct {
	Category string     `form:"category" example:"Office Supplies"` // Category name, empty or "all" for every category
	Search   string     `form:"search" example:"toner"`             // Free-text search over merchant, details, category and notes
	Year     int        `form:"year" example:"2024"`                // Calendar year
	Quarter  int        `form:"quarter" example:"1"`                // Fiscal quarter 1-4, needs Year
	From     types.Date `form:"from" example:"2024-01-01"`          // First date of an explicit range, inclusive
	To       types.Date `form:"to" example:"2024-06-30"`            // Last date of an explicit range, inclusive
}

// Apply returns the expenses matching the filter, preserving order.
func Apply(filter Filter, expenses []models.Expense) []models.Expense {
	matched := make([]models.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if Matches(filter, expense) {
			matched = append(matched, expense)
		}
	}

	return matched
}

// Matches reports whether a single expense passes the filter.
func Matches(filter Filter, expense models.Expense) bool {
	return matchesCategory(filter, expense) &&
		matchesDate(filter, expense) &&
		matchesSearch(filter, expense)
}

func matchesCategory(filter Filter, expense models.Expense) bool {
	if filter.Category == "" || filter.Category == CategoryAll {
		return true
	}

	return expense.Category == filter.Category
}

func matchesDate(filter Filter, expense models.Expense) bool {
	// An explicit date range wins over year/quarter
	if !filter.From.IsZero() || !filter.To.IsZero() {
		if !filter.From.IsZero() && expense.DatePaid.Before(filter.From) {
			return false
		}
		if !filter.To.IsZero() && expense.DatePaid.After(filter.To) {
			return false
		}
		return true
	}

	if filter.Year != 0 {
		if expense.DatePaid.Year() != filter.Year {
			return false
		}

		// The quarter constraint only applies together with a year
		if filter.Quarter != 0 && expense.DatePaid.Quarter() != filter.Quarter {
			return false
		}
	}

	return true
}

// matchesSearch matches the search term case-insensitively as a
// substring over the concatenation of merchant, details, category and
// notes. A term containing the `*` wildcard matches as a glob pattern
// instead; any other character is literal.
func matchesSearch(filter Filter, expense models.Expense) bool {
	term := strings.ToLower(strings.TrimSpace(filter.Search))
	if term == "" {
		return true
	}

	haystack := strings.ToLower(strings.Join([]string{
		expense.Merchant,
		expense.Details,
		expense.Category,
		expense.Notes,
	}, " "))

	if strings.Contains(term, "*") {
		return glob.Glob(term, haystack)
	}

	return strings.Contains(haystack, term)
}
