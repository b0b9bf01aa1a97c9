package query

import (
	"sort"

	"github.com/deducto/backend/internal/models"
)

// Fields a view can sort expenses by.
const (
	SortByDatePaid   = "datePaid"
	SortByMerchant   = "merchant"
	SortByCategory   = "category"
	SortByAmount     = "amount"
	SortByDeductible = "deductible"
	SortByCreatedAt  = "createdAt"
)

// Sort returns the expenses ordered by the named field. The sort is
// stable: ties keep their original relative order, so repeated renders
// of the same data stay deterministic. An unknown field sorts by date.
func Sort(expenses []models.Expense, field string, descending bool) []models.Expense {
	sorted := make([]models.Expense, len(expenses))
	copy(sorted, expenses)

	var less func(a, b models.Expense) bool
	switch field {
	case SortByMerchant:
		less = func(a, b models.Expense) bool { return a.Merchant < b.Merchant }
	case SortByCategory:
		less = func(a, b models.Expense) bool { return a.Category < b.Category }
	case SortByAmount:
		less = func(a, b models.Expense) bool { return a.Amount.LessThan(b.Amount) }
	case SortByDeductible:
		less = func(a, b models.Expense) bool { return a.Deductible.LessThan(b.Deductible) }
	case SortByCreatedAt:
		less = func(a, b models.Expense) bool { return a.CreatedAt.Before(b.CreatedAt) }
	default:
		// Dates compare by instant, not by their string representation
		less = func(a, b models.Expense) bool { return a.DatePaid.Before(b.DatePaid) }
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		if descending {
			return less(sorted[j], sorted[i])
		}
		return less(sorted[i], sorted[j])
	})

	return sorted
}
