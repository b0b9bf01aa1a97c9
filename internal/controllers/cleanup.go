package controllers

import (
	"net/http"

	"github.com/deducto/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// Cleanup permanently deletes all expenses, receipt files, categories
// and settings. The caller must pass confirm=yes-please-delete-everything
// to guard against accidental calls.
func (co Controller) Cleanup(c *gin.Context) {
	var params struct {
		Confirm string `form:"confirm"`
	}

	err := c.Bind(&params)
	if err != nil || params.Confirm != "yes-please-delete-everything" {
		e := errCleanupConfirmation.Error()
		c.JSON(http.StatusBadRequest, httpError{Error: e})
		return
	}

	if err := models.ClearAll(co.DB); err != nil {
		c.JSON(status(err), httpError{Error: err.Error()})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
