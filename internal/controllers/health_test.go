package controllers_test

import (
	"net/http"
)

func (suite *TestSuiteStandard) TestGetHealth() {
	recorder := suite.request(http.MethodGet, "http://example.com/healthz", nil)
	suite.assertHTTPStatus(recorder, http.StatusNoContent)
}

func (suite *TestSuiteStandard) TestGetHealthClosedDB() {
	sqlDB, err := suite.controller.DB.DB()
	if err == nil {
		sqlDB.Close()
	}

	recorder := suite.request(http.MethodGet, "http://example.com/healthz", nil)
	suite.assertHTTPStatus(recorder, http.StatusInternalServerError)
}
