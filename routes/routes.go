package routes

import (
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/controllers"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/middlewares"

	"github.com/gin-gonic/gin"
)

// Controllers bundles everything the router mounts.
type Controllers struct {
	Auth       *controllers.AuthController
	Ingredient *controllers.IngredientController
	Recipe     *controllers.RecipeController
	Category   *controllers.CategoryController
	Scan       *controllers.ScanController
	Profile    *controllers.ProfileController
	Device     *controllers.DeviceController
	Expiry     *controllers.ExpiryController
	Realtime   *controllers.RealtimeController
}

func SetupRouter(c Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/login", c.Auth.Login)
		auth.GET("/state", c.Auth.State)
		auth.POST("/refresh", c.Auth.RefreshSession)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
	}

	// Everything else requires a session
	api := r.Group("/")
	api.Use(middlewares.AuthMiddleware())
	{
		api.POST("/ingredients", c.Ingredient.Save)
		api.GET("/ingredients", c.Ingredient.List)
		api.POST("/ingredients/sync", c.Ingredient.Sync)
		api.GET("/ingredients/expiring", c.Expiry.List)
		api.POST("/ingredients/expiring/notify", c.Expiry.Notify)
		api.DELETE("/ingredients/:id", c.Ingredient.Delete)
		api.PUT("/ingredients/:id/quantity", c.Ingredient.UpdateQuantity)

		api.GET("/recipes/search", c.Recipe.Search)
		api.GET("/recipes", c.Recipe.Cached)
		api.DELETE("/recipes", c.Recipe.DeleteByIngredient)
		api.GET("/recipes/:id", c.Recipe.Detail)

		api.GET("/categories", c.Category.List)
		api.POST("/categories/refresh", c.Category.Refresh)

		api.POST("/scan/barcode", c.Scan.Barcode)
		api.POST("/scan/photo", c.Scan.Photo)

		api.GET("/profile", c.Profile.Get)
		api.PUT("/profile/avatar", c.Profile.UploadAvatar)
		api.GET("/favorites", c.Profile.Favorites)
		api.POST("/favorites", c.Profile.SaveFavorite)
		api.DELETE("/favorites/:id", c.Profile.RemoveFavorite)

		api.POST("/devices", c.Device.Register)
		api.GET("/ws", c.Realtime.Updates)
	}

	return r
}
