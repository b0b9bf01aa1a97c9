package controllers

import (
	"net/http"

	"github.com/deducto/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type CategoryResponse struct {
	Data  *models.Category `json:"data"`
	Error *string          `json:"error,omitempty"`
}

type CategoryListResponse struct {
	Data  []models.Category `json:"data"`
	Error *string           `json:"error,omitempty"`
}

// OrphanListResponse lists category names that are referenced by at
// least one expense but missing from the registry.
type OrphanListResponse struct {
	Data  []string `json:"data"`
	Error *string  `json:"error,omitempty"`
}

type CategoryEditable struct {
	Name  string `json:"name" binding:"required" example:"Software"` // Unique display name
	Icon  string `json:"icon" example:"💿"`                           // Emoji shown next to the name
	Color string `json:"color" example:"#2563eb"`                    // Accent color for the UI
}

type CategoryURI struct {
	ID uint64 `uri:"id" binding:"required"` // ID of the category
}

// RegisterCategoryRoutes registers the routes for categories with the
// RouterGroup that is passed.
func (co Controller) RegisterCategoryRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", co.OptionsCategoryList)
		r.GET("", co.GetCategories)
		r.POST("", co.CreateCategory)
	}

	{
		r.OPTIONS("/orphans", co.OptionsCategoryOrphans)
		r.GET("/orphans", co.GetCategoryOrphans)
	}

	{
		r.OPTIONS("/:id", co.OptionsCategoryDetail)
		r.GET("/:id", co.GetCategory)
		r.DELETE("/:id", co.DeleteCategory)
	}
}

func (co Controller) OptionsCategoryList(c *gin.Context) {
	options(c, "OPTIONS", "GET", "POST")
}

func (co Controller) OptionsCategoryOrphans(c *gin.Context) {
	options(c, "OPTIONS", "GET")
}

func (co Controller) OptionsCategoryDetail(c *gin.Context) {
	options(c, "OPTIONS", "GET", "DELETE")
}

func (co Controller) GetCategories(c *gin.Context) {
	categories, err := co.Registry.Categories()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CategoryListResponse{Data: categories})
}

func (co Controller) GetCategory(c *gin.Context) {
	var uri CategoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	category, err := co.Registry.Get(uri.ID)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, CategoryResponse{Data: &category})
}

func (co Controller) CreateCategory(c *gin.Context) {
	var editable CategoryEditable
	if err := c.ShouldBindJSON(&editable); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	category, err := co.Registry.AddCategory(editable.Name, editable.Icon, editable.Color)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusCreated, CategoryResponse{Data: &category})
}

// DeleteCategory removes the category from the registry. Expenses
// referencing it keep their category string and become orphans.
func (co Controller) DeleteCategory(c *gin.Context) {
	var uri CategoryURI
	if err := c.ShouldBindUri(&uri); err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, CategoryResponse{Error: &e})
		return
	}

	if err := co.Registry.DeleteCategory(uri.ID); err != nil {
		e := err.Error()
		c.JSON(status(err), CategoryResponse{Error: &e})
		return
	}

	c.JSON(http.StatusNoContent, nil)
}

func (co Controller) GetCategoryOrphans(c *gin.Context) {
	orphans, err := co.Registry.Orphans()
	if err != nil {
		e := err.Error()
		c.JSON(status(err), OrphanListResponse{Error: &e})
		return
	}

	c.JSON(http.StatusOK, OrphanListResponse{Data: orphans})
}
