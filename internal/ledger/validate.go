package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// A Violation is one human-readable validation failure on a draft.
type Violation struct {
	Field   string `json:"field" example:"expenseAmount"`
	Message string `json:"message" example:"the amount must be greater than zero"`
}

var percentMax = decimal.NewFromInt(100)

// Validate checks a draft and returns all violations. The checks are
// independent, a draft failing several of them reports all of them in
// one call. An empty result means the draft is acceptable.
func Validate(draft Draft) []Violation {
	var violations []Violation

	if draft.DatePaid.IsZero() {
		violations = append(violations, Violation{
			Field:   "datePaid",
			Message: "the date the expense was paid must be set",
		})
	}

	if strings.TrimSpace(draft.Merchant) == "" {
		violations = append(violations, Violation{
			Field:   "merchant",
			Message: "the merchant must be set",
		})
	}

	if strings.TrimSpace(draft.Details) == "" {
		violations = append(violations, Violation{
			Field:   "expenseDetails",
			Message: "the expense details must be set",
		})
	}

	if strings.TrimSpace(draft.Category) == "" {
		violations = append(violations, Violation{
			Field:   "expenseCategory",
			Message: "a category must be selected",
		})
	}

	if !draft.Amount.IsPositive() {
		violations = append(violations, Violation{
			Field:   "expenseAmount",
			Message: "the amount must be greater than zero",
		})
	}

	if draft.WorkPercentage.IsNegative() || draft.WorkPercentage.GreaterThan(percentMax) {
		violations = append(violations, Violation{
			Field:   "percentUsedForWork",
			Message: "the percentage used for work must be between 0 and 100",
		})
	}

	return violations
}
