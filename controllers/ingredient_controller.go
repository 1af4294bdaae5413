package controllers

import (
	"net/http"
	"strconv"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"

	"github.com/gin-gonic/gin"
)

type IngredientController struct {
	ingredients *services.IngredientService
	analytics   services.Analytics
}

func NewIngredientController(ingredients *services.IngredientService, analytics services.Analytics) *IngredientController {
	return &IngredientController{ingredients: ingredients, analytics: analytics}
}

// POST /ingredients
func (ic *IngredientController) Save(c *gin.Context) {
	var input models.Ingredient
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	saved, err := ic.ingredients.Save(c.Request.Context(), c.GetString("userID"), input)
	if err != nil {
		respondError(c, err)
		return
	}

	ic.analytics.Event("ingredient_saved", saved.Name)
	c.JSON(http.StatusCreated, saved)
}

// GET /ingredients
func (ic *IngredientController) List(c *gin.Context) {
	out, err := ic.ingredients.GetAll(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// POST /ingredients/sync
func (ic *IngredientController) Sync(c *gin.Context) {
	replaced, err := ic.ingredients.Sync(c.Request.Context(), c.GetString("userID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"replaced": replaced})
}

// DELETE /ingredients/:id
func (ic *IngredientController) Delete(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instance id"})
		return
	}

	err = ic.ingredients.Delete(c.Request.Context(), c.GetString("userID"), models.Ingredient{InstanceID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}

// PUT /ingredients/:id/quantity
func (ic *IngredientController) UpdateQuantity(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid instance id"})
		return
	}

	// Pointer keeps an explicit 0 distinguishable from an absent field.
	var input struct {
		Quantity *float64 `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err = ic.ingredients.UpdateQuantity(c.Request.Context(), c.GetString("userID"), id, *input.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"instanceId": id, "quantity": *input.Quantity})
}
