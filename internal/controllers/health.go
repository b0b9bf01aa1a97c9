package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHealth answers with 204 when the store is reachable.
func (co Controller) GetHealth(c *gin.Context) {
	sqlDB, err := co.DB.DB()
	if err == nil {
		err = sqlDB.Ping()
	}

	if err != nil {
		c.JSON(http.StatusInternalServerError, httpError{Error: err.Error()})
		return
	}

	c.Status(http.StatusNoContent)
}
