package main

import (
	"context"
	"log"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/config"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/controllers"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/routes"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/services"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	db, err := config.OpenLocalStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("local store: %v", err)
	}

	remoteDB, err := config.NewRemoteDatabase(ctx, cfg)
	if err != nil {
		log.Fatalf("remote database: %v", err)
	}
	remote := services.NewFirebaseStore(remoteDB)

	utils.InitS3()
	utils.InitMailer()

	hub := services.NewRealtimeHub()
	analytics := services.LogAnalytics{}

	push, err := services.NewPushService(db)
	if err != nil {
		log.Fatalf("push service: %v", err)
	}
	rek, err := services.NewRekognitionService()
	if err != nil {
		log.Fatalf("rekognition service: %v", err)
	}

	tokens := services.NewTokenProvider(cfg.RecipeAPITokenURL, cfg.RecipeAPIClientID, cfg.RecipeAPIClientSecret)
	recipeAPI := services.NewRecipeAPIClient(cfg.RecipeAPIBaseURL, tokens)
	products := services.NewProductClient(cfg.ProductAPIBaseURL)
	images := services.NewImageSearchClient(cfg.ImageSearchBaseURL, cfg.ImageSearchAPIKey)
	identity := services.NewIdentityClient(cfg.IdentityBaseURL, cfg.IdentityAPIKey)

	ingredients := services.NewIngredientService(db, remote, hub)
	recipes := services.NewRecipeService(db)
	details := services.NewRecipeDetailService(db)
	categories := services.NewCategoryService(db, recipeAPI)
	users := services.NewUserService(identity, remote)
	expiry := services.NewExpiryService(db, hub, push, 72*time.Hour)

	r := routes.SetupRouter(routes.Controllers{
		Auth:       controllers.NewAuthController(users, analytics),
		Ingredient: controllers.NewIngredientController(ingredients, analytics),
		Recipe:     controllers.NewRecipeController(recipeAPI, recipes, details, images, analytics),
		Category:   controllers.NewCategoryController(categories),
		Scan:       controllers.NewScanController(products, rek, recipeAPI, analytics),
		Profile:    controllers.NewProfileController(users, analytics),
		Device:     controllers.NewDeviceController(push),
		Expiry:     controllers.NewExpiryController(expiry),
		Realtime:   controllers.NewRealtimeController(hub),
	})

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
