package controllers

import (
	"errors"
	"net/http"

	"github.com/deducto/backend/internal/snapshot"
	"github.com/gin-gonic/gin"
)

type SnapshotResponse struct {
	Data  *snapshot.Snapshot `json:"data"`
	Error *string            `json:"error,omitempty"`
}

// RegisterSnapshotRoutes registers the routes for snapshot export and
// import with the RouterGroup that is passed.
func (co Controller) RegisterSnapshotRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", co.OptionsSnapshot)
	r.GET("", co.GetSnapshot)
	r.POST("", co.PostSnapshot)
}

func (co Controller) OptionsSnapshot(c *gin.Context) {
	options(c, "OPTIONS", "GET", "POST")
}

// GetSnapshot exports the full store as a snapshot document.
func (co Controller) GetSnapshot(c *gin.Context) {
	snap, err := co.Snapshot.Export()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), SnapshotResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, SnapshotResponse{Data: &snap})
}

// PostSnapshot replaces the expenses and categories with the ones from
// the posted snapshot. The import is all-or-nothing, a failed import
// leaves the store as it was.
func (co Controller) PostSnapshot(c *gin.Context) {
	var snap snapshot.Snapshot
	if err := c.ShouldBindJSON(&snap); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, SnapshotResponse{Error: &e})
		return
	}

	if err := co.Snapshot.Import(snap); err != nil {
		code := status(err)
		if errors.Is(err, snapshot.ErrInvalidSnapshot) {
			code = http.StatusBadRequest
		}

		e := err.Error()
		c.JSON(code, SnapshotResponse{Error: &e})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}
