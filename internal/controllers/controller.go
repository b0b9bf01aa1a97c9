// Package controllers implements the local HTTP surface the UI
// collaborators (dashboard, report views, backup tooling) call into.
package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/deducto/backend/internal/ledger"
	"github.com/deducto/backend/internal/models"
	"github.com/deducto/backend/internal/registry"
	"github.com/deducto/backend/internal/snapshot"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Controller bundles the services the handlers work with. It is
// constructed once at process start and passed to the router, there is
// no ambient global state.
type Controller struct {
	DB       *gorm.DB
	Ledger   *ledger.Ledger
	Registry *registry.Registry
	Snapshot *snapshot.Service
}

// New returns a Controller wired to the store.
func New(db *gorm.DB) Controller {
	return Controller{
		DB:       db,
		Ledger:   ledger.New(db),
		Registry: registry.New(db),
		Snapshot: snapshot.New(db),
	}
}

type httpError struct {
	Error string `json:"error" example:"there is no expense matching your query"`
}

// status returns the appropriate HTTP status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// options answers an HTTP OPTIONS request with the allowed verbs.
func options(c *gin.Context, methods ...string) {
	c.Header("allow", strings.Join(methods, ", "))
	c.Status(http.StatusNoContent)
}

var (
	errCleanupConfirmation = errors.New("the confirmation for the delete everything call was incorrect")
	errQuarterOutOfRange   = errors.New("the quarter must be between 1 and 4")
	errYearNotSet          = errors.New("the year query parameter must be set")
)
