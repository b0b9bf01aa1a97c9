package controllers_test

import (
	"net/http"

	"github.com/deducto/backend/internal/controllers"
	"github.com/deducto/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestGetSnapshot() {
	suite.createTestCategory("Internet")
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)

	recorder := suite.request(http.MethodGet, "http://example.com/v1/snapshot", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.SnapshotResponse
	suite.decodeResponse(recorder, &response)

	assert.Len(suite.T(), response.Data.Expenses, 1)
	assert.Len(suite.T(), response.Data.Categories, 1)
	assert.Equal(suite.T(), models.SchemaVersion, response.Data.SchemaVersion)
}

// An empty store exports empty collections, not null.
func (suite *TestSuiteStandard) TestGetSnapshotEmpty() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/snapshot", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	assert.Contains(suite.T(), recorder.Body.String(), `"expenses":[]`)
	assert.Contains(suite.T(), recorder.Body.String(), `"categories":[]`)
}

func (suite *TestSuiteStandard) TestPostSnapshot() {
	suite.createTestCategory("Internet")
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)

	recorder := suite.request(http.MethodGet, "http://example.com/v1/snapshot", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.SnapshotResponse
	suite.decodeResponse(recorder, &response)

	// Wipe everything, then restore from the export
	recorder = suite.request(http.MethodDelete, "http://example.com/v1?confirm=yes-please-delete-everything", nil)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodPost, "http://example.com/v1/snapshot", *response.Data)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)

	expenses, err := suite.controller.Ledger.All()
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 1)
	assert.Equal(suite.T(), "Telco", expenses[0].Merchant)
}

// A snapshot missing one of its collections must be rejected and must
// not change the store.
func (suite *TestSuiteStandard) TestPostSnapshotInvalid() {
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)

	for _, body := range []string{`{}`, `{ "expenses": [] }`, `{ "categories": [] }`} {
		recorder := suite.request(http.MethodPost, "http://example.com/v1/snapshot", body)
		suite.assertHTTPStatus(recorder, http.StatusBadRequest)
	}

	expenses, err := suite.controller.Ledger.All()
	assert.Nil(suite.T(), err)
	assert.Len(suite.T(), expenses, 1)
}

func (suite *TestSuiteStandard) TestPostSnapshotBrokenJSON() {
	recorder := suite.request(http.MethodPost, "http://example.com/v1/snapshot", `{ broken`)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)
}
