package controllers_test

import (
	"net/http"

	"github.com/deducto/backend/internal/controllers"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) TestCreateCategory() {
	recorder := suite.request(http.MethodPost, "http://example.com/v1/categories", `{ "name": "Software", "icon": "💿", "color": "#2563eb" }`)
	suite.assertHTTPStatus(recorder, http.StatusCreated)

	var response controllers.CategoryResponse
	suite.decodeResponse(recorder, &response)
	assert.Equal(suite.T(), "Software", response.Data.Name)
	assert.NotZero(suite.T(), response.Data.ID)
}

func (suite *TestSuiteStandard) TestCreateCategoryDuplicate() {
	suite.createTestCategory("Software")

	recorder := suite.request(http.MethodPost, "http://example.com/v1/categories", `{ "name": "Software" }`)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response controllers.CategoryResponse
	suite.decodeResponse(recorder, &response)
	assert.Contains(suite.T(), *response.Error, "a category with this name already exists")
}

func (suite *TestSuiteStandard) TestCreateCategoryMissingName() {
	recorder := suite.request(http.MethodPost, "http://example.com/v1/categories", `{ "icon": "💿" }`)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)
}

func (suite *TestSuiteStandard) TestGetCategories() {
	suite.createTestCategory("Software")
	suite.createTestCategory("Internet")

	recorder := suite.request(http.MethodGet, "http://example.com/v1/categories", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.CategoryListResponse
	suite.decodeResponse(recorder, &response)

	// Categories list alphabetically
	assert.Len(suite.T(), response.Data, 2)
	assert.Equal(suite.T(), "Internet", response.Data[0].Name)
}

func (suite *TestSuiteStandard) TestGetCategory() {
	category := suite.createTestCategory("Software")

	recorder := suite.request(http.MethodGet, "http://example.com/v1/categories/1", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.CategoryResponse
	suite.decodeResponse(recorder, &response)
	assert.Equal(suite.T(), category.ID, response.Data.ID)
}

func (suite *TestSuiteStandard) TestGetCategoryNotFound() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/categories/4000", nil)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteCategory() {
	suite.createTestCategory("Software")

	recorder := suite.request(http.MethodDelete, "http://example.com/v1/categories/1", nil)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodGet, "http://example.com/v1/categories/1", nil)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestDeleteCategoryNotFound() {
	recorder := suite.request(http.MethodDelete, "http://example.com/v1/categories/4000", nil)
	suite.assertHTTPStatus(recorder, http.StatusNotFound)
}

// Deleting a category must not touch the expenses referencing it, they
// show up as orphans instead.
func (suite *TestSuiteStandard) TestDeleteCategoryLeavesOrphans() {
	suite.createTestCategory("Internet")
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)

	recorder := suite.request(http.MethodDelete, "http://example.com/v1/categories/1", nil)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)

	recorder = suite.request(http.MethodGet, "http://example.com/v1/expenses/1", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var expense controllers.ExpenseResponse
	suite.decodeResponse(recorder, &expense)
	assert.Equal(suite.T(), "Internet", expense.Data.Category)

	recorder = suite.request(http.MethodGet, "http://example.com/v1/categories/orphans", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var orphans controllers.OrphanListResponse
	suite.decodeResponse(recorder, &orphans)
	assert.Equal(suite.T(), []string{"Internet"}, orphans.Data)
}

func (suite *TestSuiteStandard) TestGetCategoryOrphansEmpty() {
	suite.createTestCategory("Internet")
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)

	recorder := suite.request(http.MethodGet, "http://example.com/v1/categories/orphans", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var orphans controllers.OrphanListResponse
	suite.decodeResponse(recorder, &orphans)
	assert.Len(suite.T(), orphans.Data, 0)
}
