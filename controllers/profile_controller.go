package controllers

import (
	"net/http"
	"strconv"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	users     *services.UserService
	analytics services.Analytics
}

func NewProfileController(users *services.UserService, analytics services.Analytics) *ProfileController {
	return &ProfileController{users: users, analytics: analytics}
}

// GET /profile: mirrors the identity record; resilient read, empty on failure.
func (pc *ProfileController) Get(c *gin.Context) {
	user := pc.users.FetchProfile(c.Request.Context())
	if user == nil {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, user)
}

// PUT /profile/avatar  { "image_base64": "data:image/png;base64,..." }
func (pc *ProfileController) UploadAvatar(c *gin.Context) {
	var input struct {
		ImageBase64 string `json:"image_base64" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	url, err := utils.UploadBase64ImageToS3(input.ImageBase64, c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"avatarUrl": url})
}

// GET /favorites: empty list on any failure, the UI stays usable offline.
func (pc *ProfileController) Favorites(c *gin.Context) {
	favorites := pc.users.FetchFavorites(c.Request.Context(), c.GetString("userID"))
	c.JSON(http.StatusOK, favorites)
}

// POST /favorites: body is a RecipeDetail-shaped record.
func (pc *ProfileController) SaveFavorite(c *gin.Context) {
	var input models.RecipeDetail
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.RecipeID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "recipeId required"})
		return
	}

	if err := pc.users.SaveFavorite(c.Request.Context(), c.GetString("userID"), input); err != nil {
		respondError(c, err)
		return
	}

	pc.analytics.Event("favorite_saved", strconv.Itoa(input.RecipeID))
	c.JSON(http.StatusCreated, gin.H{"recipeId": input.RecipeID})
}

// DELETE /favorites/:id
func (pc *ProfileController) RemoveFavorite(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := pc.users.RemoveFavorite(c.Request.Context(), c.GetString("userID"), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": id})
}
