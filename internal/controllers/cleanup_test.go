package controllers_test

import (
	"net/http"

	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCleanup() {
	suite.createTestCategory("Internet")
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)

	recorder := suite.request(http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", nil)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)

	expenses, err := suite.controller.Ledger.All()
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 0)

	categories, err := suite.controller.Registry.Categories()
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), categories, 0)
}

func (suite *TestSuiteStandard) TestCleanupMissingConfirmation() {
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)

	for _, query := range []string{"", "?confirm=", "?confirm=yes"} {
		recorder := suite.request(http.MethodDelete, "http://example.com/v1"+query, nil)
		suite.assertHTTPStatus(recorder, http.StatusBadRequest)
	}

	expenses, err := suite.controller.Ledger.All()
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 1)
}
