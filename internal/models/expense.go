package models

import (
	"strings"

	"github.com/deducto/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Expense represents one deductible expense transaction.
//
// Category is a soft reference: it stores the category name, not its ID.
// Deleting or renaming a category does not cascade to expenses, so the
// name may no longer match any live category.
type Expense struct {
	Model
	DatePaid       types.Date      `json:"datePaid" gorm:"index"`                           // Calendar date the expense was paid
	Merchant       string          `json:"merchant" gorm:"index"`                           // Who was paid
	Details        string          `json:"expenseDetails"`                                  // What the expense was for
	Category       string          `json:"expenseCategory" gorm:"index"`                    // Name of the category the expense is classified under
	Amount         decimal.Decimal `json:"expenseAmount" gorm:"type:DECIMAL(20,8)"`         // The gross amount paid
	WorkPercentage decimal.Decimal `json:"percentUsedForWork" gorm:"type:DECIMAL(20,8)"`    // Percentage of the expense used for work, 0 to 100
	Deductible     decimal.Decimal `json:"deductible" gorm:"type:DECIMAL(20,8)"`            // Derived: Amount * WorkPercentage / 100
	Notes          string          `json:"notes"`                                           // Free-form notes
	ReceiptFiles   []ReceiptFile   `json:"receiptFiles" gorm:"constraint:OnDelete:CASCADE"` // Receipts attached to the expense, deleted with it
}

// BeforeSave trims whitespace and recomputes the derived deductible
// amount. Every write path goes through this hook, so a stale derived
// value can never be persisted.
func (e *Expense) BeforeSave(_ *gorm.DB) error {
	e.Merchant = strings.TrimSpace(e.Merchant)
	e.Details = strings.TrimSpace(e.Details)
	e.Category = strings.TrimSpace(e.Category)
	e.Notes = strings.TrimSpace(e.Notes)

	e.Deductible = e.Amount.Mul(e.WorkPercentage).Div(decimal.NewFromInt(100))
	return nil
}

// ExpensesByDateRange returns all expenses paid in [from, to], both
// endpoints inclusive, in ascending date order.
func ExpensesByDateRange(db *gorm.DB, from, to types.Date) ([]Expense, error) {
	var expenses []Expense
	err := db.
		Where("expenses.date_paid >= ?", from).
		Where("expenses.date_paid <= ?", to).
		Order("expenses.date_paid ASC").
		Preload("ReceiptFiles").
		Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}
