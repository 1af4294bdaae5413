package controllers

import (
	"net/http"
	"strconv"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"

	"github.com/gin-gonic/gin"
)

type RecipeController struct {
	api       *services.RecipeAPIClient
	recipes   *services.RecipeService
	details   *services.RecipeDetailService
	images    *services.ImageSearchClient
	analytics services.Analytics
}

func NewRecipeController(
	api *services.RecipeAPIClient,
	recipes *services.RecipeService,
	details *services.RecipeDetailService,
	images *services.ImageSearchClient,
	analytics services.Analytics,
) *RecipeController {
	return &RecipeController{api: api, recipes: recipes, details: details, images: images, analytics: analytics}
}

// GET /recipes/search?ingredient=tomato
// Searches the recipe API, replaces the cache for that origin ingredient and
// returns the stored rows.
func (rc *RecipeController) Search(c *gin.Context) {
	ingredient := c.Query("ingredient")
	if ingredient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient query parameter required"})
		return
	}

	results, err := rc.api.SearchRecipes(c.Request.Context(), ingredient)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := rc.recipes.DeleteByIngredient(ingredient); err != nil {
		respondError(c, err)
		return
	}
	stored, err := rc.recipes.StoreRecipes(results, ingredient)
	if err != nil {
		respondError(c, err)
		return
	}

	rc.analytics.Event("recipe_search", ingredient)
	c.JSON(http.StatusOK, stored)
}

// GET /recipes?ingredient=tomato (cached; all rows without the filter)
func (rc *RecipeController) Cached(c *gin.Context) {
	if ingredient := c.Query("ingredient"); ingredient != "" {
		out, err := rc.recipes.GetByIngredient(ingredient)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
		return
	}

	out, err := rc.recipes.GetAll()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, out)
}

// DELETE /recipes?ingredient=tomato
func (rc *RecipeController) DeleteByIngredient(c *gin.Context) {
	ingredient := c.Query("ingredient")
	if ingredient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ingredient query parameter required"})
		return
	}
	if err := rc.recipes.DeleteByIngredient(ingredient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": ingredient})
}

// GET /recipes/:id
// Serves the cached detail row, fetching and storing it on a miss. A missing
// representative image is backfilled from the image search, best effort.
func (rc *RecipeController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	row, err := rc.details.GetDetails(id)
	if err != nil {
		respondError(c, err)
		return
	}
	if row == nil {
		resp, err := rc.api.GetRecipeDetail(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		row, err = rc.details.StoreDetails(resp)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	if row.ImageURL == "" {
		if url := rc.images.FirstImageURL(c.Request.Context(), row.Name); url != "" {
			row.ImageURL = url
			_ = rc.details.UpdateImageURL(id, url)
			_ = rc.recipes.UpdateImageURL(id, url)
		}
	}

	c.JSON(http.StatusOK, row)
}
