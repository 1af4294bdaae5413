package controllers

import (
	"net/http"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"

	"github.com/gin-gonic/gin"
)

type CategoryController struct {
	categories *services.CategoryService
}

func NewCategoryController(categories *services.CategoryService) *CategoryController {
	return &CategoryController{categories: categories}
}

// POST /categories/refresh: wholesale clear-then-insert from the catalog.
func (cc *CategoryController) Refresh(c *gin.Context) {
	rows, err := cc.categories.Refresh(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /categories
func (cc *CategoryController) List(c *gin.Context) {
	rows, err := cc.categories.List()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}
