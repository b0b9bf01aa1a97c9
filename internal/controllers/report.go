package controllers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/query"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

const defaultTrendMonths = 12

// sortForView sorts a copy of the expenses for display. Unknown sort
// fields fall back to the payment date.
func sortForView(expenses []models.Expense, field string, descending bool) []models.Expense {
	return query.Sort(expenses, field, descending)
}

type SummaryReportResponse struct {
	Data  *query.Summary `json:"data"`
	Error *string        `json:"error,omitempty"`
}

// CategoryReport pairs the per-category totals with each category's
// share of the deductible total of the same filtered set.
type CategoryReport struct {
	Categories map[string]query.CategorySummary `json:"categories"`
	Shares     map[string]decimal.Decimal       `json:"shares"`
}

type CategoryReportResponse struct {
	Data  *CategoryReport `json:"data"`
	Error *string         `json:"error,omitempty"`
}

type QuarterReport struct {
	Year    int           `json:"year" example:"2024"`
	Quarter int           `json:"quarter" example:"2"`
	Summary query.Summary `json:"summary"`
}

type QuarterReportResponse struct {
	Data  *QuarterReport `json:"data"`
	Error *string        `json:"error,omitempty"`
}

type TrendReportResponse struct {
	Data  []query.MonthSummary `json:"data"`
	Error *string              `json:"error,omitempty"`
}

// RegisterReportRoutes registers the routes for reports with the
// RouterGroup that is passed.
func (co Controller) RegisterReportRoutes(r *gin.RouterGroup) {
	r.OPTIONS("/summary", co.OptionsReport)
	r.GET("/summary", co.GetSummaryReport)

	r.OPTIONS("/categories", co.OptionsReport)
	r.GET("/categories", co.GetCategoryReport)

	r.OPTIONS("/quarter", co.OptionsReport)
	r.GET("/quarter", co.GetQuarterReport)

	r.OPTIONS("/trend", co.OptionsReport)
	r.GET("/trend", co.GetTrendReport)

	r.OPTIONS("/export.csv", co.OptionsReport)
	r.GET("/export.csv", co.ExportCSV)
}

func (co Controller) OptionsReport(c *gin.Context) {
	options(c, "OPTIONS", "GET")
}

// GetSummaryReport returns the overall statistics for the expenses
// matching the filter in the query string.
func (co Controller) GetSummaryReport(c *gin.Context) {
	var params FilterParams
	if err := c.Bind(&params); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SummaryReportResponse{Error: &e})
		return
	}

	expenses, err := co.filteredExpenses(params)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SummaryReportResponse{Error: &e})
		return
	}

	summary := query.Summarize(expenses)
	c.JSON(http.StatusOK, SummaryReportResponse{Data: &summary})
}

// GetCategoryReport returns the per-category totals and shares for the
// expenses matching the filter. Shares are relative to the filtered
// set, not the whole ledger.
func (co Controller) GetCategoryReport(c *gin.Context) {
	var params FilterParams
	if err := c.Bind(&params); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryReportResponse{Error: &e})
		return
	}

	expenses, err := co.filteredExpenses(params)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryReportResponse{Error: &e})
		return
	}

	report := CategoryReport{
		Categories: query.GroupByCategory(expenses),
		Shares:     query.CategoryShares(expenses),
	}
	c.JSON(http.StatusOK, CategoryReportResponse{Data: &report})
}

// GetQuarterReport returns the statistics for one fiscal quarter. The
// year and quarter query parameters are required, category and search
// filters apply on top.
func (co Controller) GetQuarterReport(c *gin.Context) {
	var params FilterParams
	if err := c.Bind(&params); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, QuarterReportResponse{Error: &e})
		return
	}

	if params.Year == 0 {
		e := errYearNotSet.Error()
		c.JSON(http.StatusBadRequest, QuarterReportResponse{Error: &e})
		return
	}

	if params.Quarter < 1 || params.Quarter > 4 {
		e := errQuarterOutOfRange.Error()
		c.JSON(http.StatusBadRequest, QuarterReportResponse{Error: &e})
		return
	}

	// The quarter restriction is applied by the aggregation, not the
	// filter, so any explicit date range in the query string is ignored.
	year, quarter := params.Year, params.Quarter
	params.Year, params.Quarter = 0, 0
	params.From, params.To = "", ""

	expenses, err := co.filteredExpenses(params)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), QuarterReportResponse{Error: &e})
		return
	}

	summary, err := query.GroupByQuarter(year, quarter, expenses)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, QuarterReportResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, QuarterReportResponse{Data: &QuarterReport{
		Year:    year,
		Quarter: quarter,
		Summary: summary,
	}})
}

// GetTrendReport returns the trailing month trend for the expenses
// matching the filter, ending at the current month.
func (co Controller) GetTrendReport(c *gin.Context) {
	var params struct {
		FilterParams
		Months int `form:"months"`
	}

	if err := c.Bind(&params); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, TrendReportResponse{Error: &e})
		return
	}

	if params.Months <= 0 {
		params.Months = defaultTrendMonths
	}

	expenses, err := co.filteredExpenses(params.FilterParams)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), TrendReportResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, TrendReportResponse{Data: query.GroupByMonth(expenses, params.Months, time.Now())})
}

// ExportCSV renders the per-category totals of the filtered expenses
// as a CSV document. Amounts are rounded to two decimal places here
// and nowhere else, the stored values keep their full precision.
func (co Controller) ExportCSV(c *gin.Context) {
	var params FilterParams
	if err := c.Bind(&params); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	expenses, err := co.filteredExpenses(params)
	if err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	groups := query.GroupByCategory(expenses)
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="expenses-%s.csv"`, time.Now().Format("2006-01-02")))
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write([]string{"category", "count", "totalAmount", "totalDeductible"})
	for _, name := range names {
		group := groups[name]
		_ = w.Write([]string{
			name,
			fmt.Sprint(group.Count),
			group.TotalAmount.StringFixed(2),
			group.TotalDeductible.StringFixed(2),
		})
	}

	summary := query.Summarize(expenses)
	_ = w.Write([]string{
		"total",
		fmt.Sprint(summary.Count),
		summary.TotalExpenses.StringFixed(2),
		summary.TotalDeductible.StringFixed(2),
	})
	w.Flush()
}
