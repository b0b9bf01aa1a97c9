package controllers_test

import (
	"net/http"
	"strings"

	"github.com/deducto/backend/internal/controllers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func (suite *TestSuiteStandard) seedReportExpenses() {
	suite.createTestExpense(date("2024-01-15"), "Telco", "Internet", 50, 100)
	suite.createTestExpense(date("2024-02-20"), "Telco", "Internet", 100, 50)
	suite.createTestExpense(date("2024-05-10"), "ACME Corp", "Software", 200, 50)
}

func (suite *TestSuiteStandard) TestGetSummaryReport() {
	suite.seedReportExpenses()

	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/summary", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.SummaryReportResponse
	suite.decodeResponse(recorder, &response)

	assert.Equal(suite.T(), 3, response.Data.Count)
	assert.True(suite.T(), decimal.NewFromInt(350).Equal(response.Data.TotalExpenses), "Total is %s, expected 350", response.Data.TotalExpenses)
	assert.True(suite.T(), decimal.NewFromInt(200).Equal(response.Data.TotalDeductible), "Deductible is %s, expected 200", response.Data.TotalDeductible)
}

func (suite *TestSuiteStandard) TestGetSummaryReportFiltered() {
	suite.seedReportExpenses()

	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/summary?category=Internet", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.SummaryReportResponse
	suite.decodeResponse(recorder, &response)

	assert.Equal(suite.T(), 2, response.Data.Count)
	assert.True(suite.T(), decimal.NewFromInt(150).Equal(response.Data.TotalExpenses), "Total is %s, expected 150", response.Data.TotalExpenses)
}

func (suite *TestSuiteStandard) TestGetSummaryReportEmpty() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/summary", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.SummaryReportResponse
	suite.decodeResponse(recorder, &response)

	assert.Equal(suite.T(), 0, response.Data.Count)
	assert.True(suite.T(), response.Data.AverageWorkPercentage.IsZero())
}

func (suite *TestSuiteStandard) TestGetCategoryReport() {
	suite.seedReportExpenses()

	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/categories", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.CategoryReportResponse
	suite.decodeResponse(recorder, &response)

	assert.Len(suite.T(), response.Data.Categories, 2)
	assert.Equal(suite.T(), 2, response.Data.Categories["Internet"].Count)

	// Internet and Software both deduct 100 of the 200 total
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(response.Data.Shares["Internet"]), "Share is %s, expected 50", response.Data.Shares["Internet"])
	assert.True(suite.T(), decimal.NewFromInt(50).Equal(response.Data.Shares["Software"]), "Share is %s, expected 50", response.Data.Shares["Software"])
}

func (suite *TestSuiteStandard) TestGetQuarterReport() {
	suite.seedReportExpenses()

	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/quarter?year=2024&quarter=1", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.QuarterReportResponse
	suite.decodeResponse(recorder, &response)

	assert.Equal(suite.T(), 2024, response.Data.Year)
	assert.Equal(suite.T(), 1, response.Data.Quarter)
	assert.Equal(suite.T(), 2, response.Data.Summary.Count)
	assert.True(suite.T(), decimal.NewFromInt(100).Equal(response.Data.Summary.TotalDeductible), "Deductible is %s, expected 100", response.Data.Summary.TotalDeductible)
}

func (suite *TestSuiteStandard) TestGetQuarterReportYearRequired() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/quarter?quarter=1", nil)
	suite.assertHTTPStatus(recorder, http.StatusBadRequest)

	var response controllers.QuarterReportResponse
	suite.decodeResponse(recorder, &response)
	assert.Contains(suite.T(), *response.Error, "year")
}

func (suite *TestSuiteStandard) TestGetQuarterReportQuarterOutOfRange() {
	for _, quarter := range []string{"0", "5", "-1"} {
		recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/quarter?year=2024&quarter="+quarter, nil)
		suite.assertHTTPStatus(recorder, http.StatusBadRequest)
	}
}

func (suite *TestSuiteStandard) TestGetTrendReport() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/trend?months=3", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.TrendReportResponse
	suite.decodeResponse(recorder, &response)

	// Months without expenses are zero-filled, never skipped
	assert.Len(suite.T(), response.Data, 3)
	for _, month := range response.Data {
		assert.Equal(suite.T(), 0, month.Count)
	}
}

func (suite *TestSuiteStandard) TestGetTrendReportDefaultWindow() {
	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/trend", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)

	var response controllers.TrendReportResponse
	suite.decodeResponse(recorder, &response)
	assert.Len(suite.T(), response.Data, 12)
}

func (suite *TestSuiteStandard) TestExportCSV() {
	suite.seedReportExpenses()

	recorder := suite.request(http.MethodGet, "http://example.com/v1/reports/export.csv", nil)
	suite.assertHTTPStatus(recorder, http.StatusOK)
	assert.Contains(suite.T(), recorder.Header().Get("Content-Type"), "text/csv")

	lines := strings.Split(strings.TrimSpace(recorder.Body.String()), "\n")

	// Header, one line per category, one total line
	assert.Len(suite.T(), lines, 4)
	assert.Equal(suite.T(), "category,count,totalAmount,totalDeductible", lines[0])
	assert.Equal(suite.T(), "Internet,2,150.00,100.00", lines[1])
	assert.Equal(suite.T(), "Software,1,200.00,100.00", lines[2])
	assert.Equal(suite.T(), "total,3,350.00,200.00", lines[3])
}
