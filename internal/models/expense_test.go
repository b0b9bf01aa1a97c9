package models_test

import (
	"strings"

	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (suite *TestSuiteStandard) createTestExpense(expense models.Expense) models.Expense {
	if expense.Merchant == "" {
		expense.Merchant = "ACME Corp"
	}
	if expense.Details == "" {
		expense.Details = "Test expense"
	}
	if expense.DatePaid.IsZero() {
		expense.DatePaid = types.NewDate(2024, 1, 15)
	}

	err := suite.db.Create(&expense).Error
	require.Nil(suite.T(), err, "test expense could not be created")

	return expense
}

func (suite *TestSuiteStandard) TestExpenseDeductibleComputed() {
	expense := suite.createTestExpense(models.Expense{
		Amount:         decimal.NewFromInt(100),
		WorkPercentage: decimal.NewFromInt(50),
	})

	assert.True(suite.T(), expense.Deductible.Equal(decimal.NewFromInt(50)), "deductible is %s, expected 50", expense.Deductible)
}

func (suite *TestSuiteStandard) TestExpenseDeductibleRecomputedOnSave() {
	expense := suite.createTestExpense(models.Expense{
		Amount:         decimal.NewFromInt(100),
		WorkPercentage: decimal.NewFromInt(50),
	})

	// Sneak in a wrong derived value, the hook must overwrite it
	expense.Amount = decimal.NewFromInt(200)
	expense.Deductible = decimal.NewFromInt(1)

	err := suite.db.Save(&expense).Error
	require.Nil(suite.T(), err)

	var reread models.Expense
	err = suite.db.First(&reread, expense.ID).Error
	require.Nil(suite.T(), err)

	assert.True(suite.T(), reread.Deductible.Equal(decimal.NewFromInt(100)), "deductible is %s, expected 100", reread.Deductible)
}

func (suite *TestSuiteStandard) TestExpenseTrimWhitespace() {
	expense := suite.createTestExpense(models.Expense{
		Merchant: "  ACME Corp\t",
		Details:  " Toner cartridges ",
		Category: " Office Supplies ",
		Notes:    "  for the laser printer ",
	})

	assert.Equal(suite.T(), "ACME Corp", expense.Merchant)
	assert.Equal(suite.T(), "Toner cartridges", expense.Details)
	assert.Equal(suite.T(), "Office Supplies", expense.Category)
	assert.Equal(suite.T(), "for the laser printer", expense.Notes)
}

func (suite *TestSuiteStandard) TestExpenseIDsNotReused() {
	first := suite.createTestExpense(models.Expense{})

	err := suite.db.Delete(&first).Error
	require.Nil(suite.T(), err)

	second := suite.createTestExpense(models.Expense{})
	assert.Greater(suite.T(), second.ID, first.ID, "ID %d was reused after delete", first.ID)
}

func (suite *TestSuiteStandard) TestExpensesByDateRange() {
	jan := suite.createTestExpense(models.Expense{DatePaid: types.NewDate(2024, 1, 15)})
	apr := suite.createTestExpense(models.Expense{DatePaid: types.NewDate(2024, 4, 10)})
	_ = suite.createTestExpense(models.Expense{DatePaid: types.NewDate(2024, 12, 31)})

	expenses, err := models.ExpensesByDateRange(suite.db, types.NewDate(2024, 1, 15), types.NewDate(2024, 4, 10))
	require.Nil(suite.T(), err)

	// Both endpoints are inclusive, ascending date order
	require.Len(suite.T(), expenses, 2)
	assert.Equal(suite.T(), jan.ID, expenses[0].ID)
	assert.Equal(suite.T(), apr.ID, expenses[1].ID)
}

func (suite *TestSuiteStandard) TestExpenseReceiptsDeletedWithExpense() {
	expense := suite.createTestExpense(models.Expense{
		ReceiptFiles: []models.ReceiptFile{
			{Name: "receipt.pdf", MIMEType: "application/pdf", Payload: []byte("%PDF-1.4")},
		},
	})

	var count int64
	err := suite.db.Model(&models.ReceiptFile{}).Count(&count).Error
	require.Nil(suite.T(), err)
	require.EqualValues(suite.T(), 1, count)

	err = suite.db.Delete(&expense).Error
	require.Nil(suite.T(), err)

	err = suite.db.Model(&models.ReceiptFile{}).Count(&count).Error
	require.Nil(suite.T(), err)
	assert.EqualValues(suite.T(), 0, count, "receipt files must be deleted with their expense")
}

func (suite *TestSuiteStandard) TestExpenseNotFoundError() {
	err := suite.db.First(&models.Expense{}, 4096).Error

	require.NotNil(suite.T(), err)
	assert.ErrorIs(suite.T(), err, models.ErrResourceNotFound)
	assert.True(suite.T(), strings.Contains(err.Error(), "expense"), "error %q does not name the resource", err)
}
