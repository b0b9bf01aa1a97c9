package query

import (
	"time"

	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/types"
	"github.com/shopspring/decimal"
)

// Summary holds the overall statistics for a set of expenses.
type Summary struct {
	Count                 int             `json:"count" example:"12"`                      // Number of expenses
	TotalExpenses         decimal.Decimal `json:"totalExpenses" example:"1495.00"`         // Sum of the gross amounts
	TotalDeductible       decimal.Decimal `json:"totalDeductible" example:"989.50"`        // Sum of the deductible amounts
	AverageWorkPercentage decimal.Decimal `json:"averageWorkPercentage" example:"66.2"`    // Mean work percentage, 0 for an empty set
}

// CategorySummary holds the statistics for one category.
type CategorySummary struct {
	Count           int             `json:"count" example:"2"`                // Number of expenses in the category
	TotalAmount     decimal.Decimal `json:"totalAmount" example:"150.00"`     // Sum of the gross amounts
	TotalDeductible decimal.Decimal `json:"totalDeductible" example:"100.00"` // Sum of the deductible amounts
}

// MonthSummary is one bucket of a trailing month trend.
type MonthSummary struct {
	Label           string          `json:"label" example:"Jan 2024"`       // Month, formatted for display
	Count           int             `json:"count" example:"3"`              // Number of expenses in the month
	TotalDeductible decimal.Decimal `json:"totalDeductible" example:"75.00"` // Sum of the deductible amounts
}

// Summarize computes the overall statistics for a set of expenses.
func Summarize(expenses []models.Expense) Summary {
	summary := Summary{
		Count:                 len(expenses),
		TotalExpenses:         decimal.Zero,
		TotalDeductible:       decimal.Zero,
		AverageWorkPercentage: decimal.Zero,
	}

	if len(expenses) == 0 {
		return summary
	}

	percentageSum := decimal.Zero
	for _, expense := range expenses {
		summary.TotalExpenses = summary.TotalExpenses.Add(expense.Amount)
		summary.TotalDeductible = summary.TotalDeductible.Add(expense.Deductible)
		percentageSum = percentageSum.Add(expense.WorkPercentage)
	}

	summary.AverageWorkPercentage = percentageSum.Div(decimal.NewFromInt(int64(len(expenses))))
	return summary
}

// GroupByCategory buckets expenses by their category name. Categories
// without a matching expense are absent from the result, not zero-valued.
func GroupByCategory(expenses []models.Expense) map[string]CategorySummary {
	groups := make(map[string]CategorySummary)
	for _, expense := range expenses {
		group, ok := groups[expense.Category]
		if !ok {
			group = CategorySummary{
				TotalAmount:     decimal.Zero,
				TotalDeductible: decimal.Zero,
			}
		}

		group.Count++
		group.TotalAmount = group.TotalAmount.Add(expense.Amount)
		group.TotalDeductible = group.TotalDeductible.Add(expense.Deductible)
		groups[expense.Category] = group
	}

	return groups
}

// GroupByQuarter summarizes the expenses paid in the given fiscal
// quarter of the given year.
func GroupByQuarter(year, quarter int, expenses []models.Expense) (Summary, error) {
	from, to, err := types.QuarterRange(year, quarter)
	if err != nil {
		return Summary{}, err
	}

	inQuarter := make([]models.Expense, 0, len(expenses))
	for _, expense := range expenses {
		if expense.DatePaid.InRange(from, to) {
			inQuarter = append(inQuarter, expense)
		}
	}

	return Summarize(inQuarter), nil
}

// GroupByMonth produces the trailing window of calendar months ending at
// the month of now, inclusive. Months without a matching expense are
// zero-filled rather than skipped so that trend views stay continuous.
func GroupByMonth(expenses []models.Expense, window int, now time.Time) []MonthSummary {
	if window <= 0 {
		return []MonthSummary{}
	}

	last := types.DateOf(now).FirstOfMonth()
	months := make([]MonthSummary, 0, window)
	index := make(map[types.Date]int, window)

	for i := window - 1; i >= 0; i-- {
		month := last.AddDate(0, -i, 0)
		index[month] = len(months)
		months = append(months, MonthSummary{
			Label:           time.Time(month).Format("Jan 2006"),
			TotalDeductible: decimal.Zero,
		})
	}

	for _, expense := range expenses {
		i, ok := index[expense.DatePaid.FirstOfMonth()]
		if !ok {
			continue
		}

		months[i].Count++
		months[i].TotalDeductible = months[i].TotalDeductible.Add(expense.Deductible)
	}

	return months
}

// CategoryShares returns each category's share of the total deductible
// of the input set, in percent. The denominator is the total of the
// expenses passed in: when the caller filters first, shares are relative
// to the filtered total. Categories with a zero total set divide to zero.
func CategoryShares(expenses []models.Expense) map[string]decimal.Decimal {
	total := decimal.Zero
	for _, expense := range expenses {
		total = total.Add(expense.Deductible)
	}

	shares := make(map[string]decimal.Decimal)
	if total.IsZero() {
		return shares
	}

	for name, group := range GroupByCategory(expenses) {
		shares[name] = group.TotalDeductible.Div(total).Mul(decimal.NewFromInt(100))
	}

	return shares
}
