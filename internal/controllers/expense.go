package controllers

import (
	"net/http"

	"github.com/deducto/backend/internal/ledger"
	"github.com/deducto/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type ExpenseResponse struct {
	Data  *models.Expense `json:"data"`
	Error *string         `json:"error,omitempty"`
}

type ExpenseListResponse struct {
	Data  []models.Expense `json:"data"`
	Error *string          `json:"error,omitempty"`
}

// ExpenseCreateResponse is returned for rejected drafts: the violations
// are reported as a list of human-readable messages and no write is
// attempted.
type ExpenseCreateResponse struct {
	Data       *models.Expense    `json:"data,omitempty"`
	Violations []ledger.Violation `json:"violations,omitempty"`
	Error      *string            `json:"error,omitempty"`
}

type ExpenseURI struct {
	ID uint64 `uri:"id" binding:"required"` // ID of the expense
}

// RegisterExpenseRoutes registers the routes for expenses with the
// RouterGroup that is passed.
func (co Controller) RegisterExpenseRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsExpenseList)
		r.GET("", co.GetExpenses)
		r.POST("", co.CreateExpense)
	}

	{
		r.OPTIONS("/:id", co.OptionsExpenseDetail)
		r.GET("/:id", co.GetExpense)
		r.PATCH("/:id", co.UpdateExpense)
		r.DELETE("/:id", co.DeleteExpense)
	}
}

func (co Controller) OptionsExpenseList(c *gin.Context) {
	options(c, "OPTIONS", "GET", "POST")
}

func (co Controller) OptionsExpenseDetail(c *gin.Context) {
	options(c, "OPTIONS", "GET", "PATCH", "DELETE")
}

// GetExpenses returns the expense list with the filter and sort from
// the query string applied.
func (co Controller) GetExpenses(c *gin.Context) {
	var params struct {
		FilterParams
		SortBy     string `form:"sortBy"`
		Descending bool   `form:"descending"`
	}

	if err := c.Bind(&params); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseListResponse{Error: &e})
		return
	}

	expenses, err := co.filteredExpenses(params.FilterParams)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExpenseListResponse{Data: sortForView(expenses, params.SortBy, params.Descending)})
}

func (co Controller) GetExpense(c *gin.Context) {
	var uri ExpenseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{Error: &e})
		return
	}

	expense, err := co.Ledger.Get(uri.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: &expense})
}

// CreateExpense validates the draft and persists it. A draft with
// violations is rejected with the full violation list and no write.
func (co Controller) CreateExpense(c *gin.Context) {
	var draft ledger.Draft
	if err := c.ShouldBindJSON(&draft); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseCreateResponse{Error: &e})
		return
	}

	if violations := ledger.Validate(draft); len(violations) > 0 {
		c.JSON(http.StatusBadRequest, ExpenseCreateResponse{Violations: violations})
		return
	}

	expense, err := co.Ledger.Create(draft)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseCreateResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, ExpenseCreateResponse{Data: &expense})
}

func (co Controller) UpdateExpense(c *gin.Context) {
	var uri ExpenseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{Error: &e})
		return
	}

	var patch ledger.Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{Error: &e})
		return
	}

	expense, err := co.Ledger.Update(uri.ID, patch)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, ExpenseResponse{Data: &expense})
}

func (co Controller) DeleteExpense(c *gin.Context) {
	var uri ExpenseURI
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ExpenseResponse{Error: &e})
		return
	}

	if err := co.Ledger.Delete(uri.ID); err != nil {
		e := err.Error()
		c.JSON(status(err), ExpenseResponse{Error: &e})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
