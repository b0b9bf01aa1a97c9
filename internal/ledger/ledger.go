// Package ledger implements validated CRUD over expense records.
//
// Validation is a separate, composable step: callers validate a draft,
// show the violations if there are any, and only then create or update.
// The mutating operations assume pre-validated input and do not validate
// again.
package ledger

import (
	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/types"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Ledger is the single writer for expense records.
type Ledger struct {
	db *gorm.DB
}

// New returns a Ledger backed by the store.
func New(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// Draft represents all user configurable parameters of an expense.
type Draft struct {
	DatePaid       types.Date      `json:"datePaid" example:"2024-01-15"`                            // Calendar date the expense was paid
	Merchant       string          `json:"merchant" example:"ACME Corp"`                             // Who was paid
	Details        string          `json:"expenseDetails" example:"Toner cartridges"`                // What the expense was for
	Category       string          `json:"expenseCategory" example:"Office Supplies"`                // Name of the category
	Amount         decimal.Decimal `json:"expenseAmount" example:"149.99"`                           // The gross amount paid
	WorkPercentage decimal.Decimal `json:"percentUsedForWork" example:"50" minimum:"0" maximum:"100"` // Percentage of the expense used for work
	Notes          string          `json:"notes" example:"for the laser printer" default:""`         // Free-form notes
	ReceiptFiles   []models.ReceiptFile `json:"receiptFiles"`                                        // Receipts to attach
}

// model returns the database resource for the draft. The derived
// deductible is computed by the model hook on save.
func (d Draft) model() models.Expense {
	return models.Expense{
		DatePaid:       d.DatePaid,
		Merchant:       d.Merchant,
		Details:        d.Details,
		Category:       d.Category,
		Amount:         d.Amount,
		WorkPercentage: d.WorkPercentage,
		Notes:          d.Notes,
		ReceiptFiles:   d.ReceiptFiles,
	}
}

// Create persists a pre-validated draft and returns the stored record
// with its assigned ID and timestamps.
func (l *Ledger) Create(draft Draft) (models.Expense, error) {
	expense := draft.model()

	err := l.db.Create(&expense).Error
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// Patch describes a partial update. Nil fields are left unchanged.
// When either the amount or the work percentage changes, the deductible
// is recomputed from the merged values.
type Patch struct {
	DatePaid       *types.Date      `json:"datePaid"`
	Merchant       *string          `json:"merchant"`
	Details        *string          `json:"expenseDetails"`
	Category       *string          `json:"expenseCategory"`
	Amount         *decimal.Decimal `json:"expenseAmount"`
	WorkPercentage *decimal.Decimal `json:"percentUsedForWork"`
	Notes          *string          `json:"notes"`
	ReceiptFiles   []models.ReceiptFile `json:"receiptFiles"` // Replaces all attachments when set
}

// Update merges the patch over the stored record and persists the result.
func (l *Ledger) Update(id uint64, patch Patch) (models.Expense, error) {
	expense, err := l.Get(id)
	if err != nil {
		return models.Expense{}, err
	}

	if patch.DatePaid != nil {
		expense.DatePaid = *patch.DatePaid
	}
	if patch.Merchant != nil {
		expense.Merchant = *patch.Merchant
	}
	if patch.Details != nil {
		expense.Details = *patch.Details
	}
	if patch.Category != nil {
		expense.Category = *patch.Category
	}
	if patch.Amount != nil {
		expense.Amount = *patch.Amount
	}
	if patch.WorkPercentage != nil {
		expense.WorkPercentage = *patch.WorkPercentage
	}
	if patch.Notes != nil {
		expense.Notes = *patch.Notes
	}

	err = l.db.Transaction(func(tx *gorm.DB) error {
		if patch.ReceiptFiles != nil {
			err := tx.Where(&models.ReceiptFile{ExpenseID: expense.ID}).Delete(&models.ReceiptFile{}).Error
			if err != nil {
				return err
			}
			expense.ReceiptFiles = patch.ReceiptFiles
		}

		return tx.Save(&expense).Error
	})
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// Delete removes the expense and its attachments.
func (l *Ledger) Delete(id uint64) error {
	expense, err := l.Get(id)
	if err != nil {
		return err
	}

	return l.db.Delete(&expense).Error
}

// Get returns a single expense with its attachments. The error wraps
// models.ErrResourceNotFound when the ID is unknown.
func (l *Ledger) Get(id uint64) (models.Expense, error) {
	var expense models.Expense
	err := l.db.Preload("ReceiptFiles").First(&expense, id).Error
	if err != nil {
		return models.Expense{}, err
	}

	return expense, nil
}

// All returns every expense in ascending date order.
func (l *Ledger) All() ([]models.Expense, error) {
	var expenses []models.Expense
	err := l.db.Order("expenses.date_paid ASC").Preload("ReceiptFiles").Find(&expenses).Error
	if err != nil {
		return nil, err
	}

	return expenses, nil
}

// ByDateRange returns the expenses paid in [from, to] inclusive.
func (l *Ledger) ByDateRange(from, to types.Date) ([]models.Expense, error) {
	return models.ExpensesByDateRange(l.db, from, to)
}
