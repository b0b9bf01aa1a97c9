package controllers

import (
	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/query"
	"github.com/deducto/backend/internal/types"
)

// FilterParams is the query-string representation of a query.Filter.
// Dates travel as RFC3339 full-date strings.
type FilterParams struct {
	Category string `form:"category"` // Category name, empty or "all" for every category
	Search   string `form:"search"`   // Free-text search term
	Year     int    `form:"year"`     // Calendar year
	Quarter  int    `form:"quarter"`  // Fiscal quarter 1-4, needs year
	From     string `form:"from"`     // First date of an explicit range, YYYY-MM-DD
	To       string `form:"to"`       // Last date of an explicit range, YYYY-MM-DD
}

func (p FilterParams) toFilter() (query.Filter, error) {
	filter := query.Filter{
		Category: p.Category,
		Search:   p.Search,
		Year:     p.Year,
		Quarter:  p.Quarter,
	}

	if p.From != "" {
		from, err := types.ParseDate(p.From)
		if err != nil {
			return query.Filter{}, err
		}
		filter.From = from
	}

	if p.To != "" {
		to, err := types.ParseDate(p.To)
		if err != nil {
			return query.Filter{}, err
		}
		filter.To = to
	}

	return filter, nil
}

// filteredExpenses reads the full expense set through the ledger and
// applies the filter in memory. Reads never bypass the ledger.
func (co Controller) filteredExpenses(params FilterParams) ([]models.Expense, error) {
	filter, err := params.toFilter()
	if err != nil {
		return nil, err
	}

	expenses, err := co.Ledger.All()
	if err != nil {
		return nil, err
	}

	return query.Apply(filter, expenses), nil
}
