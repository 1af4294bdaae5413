package config

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/db"
	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
	"gorm.io/gorm"
)

// Config collects every externally supplied setting. Handles built from it
// (local store, remote database, API clients) are passed to services through
// constructors; nothing in this package is a global.
type Config struct {
	Port      string
	DBPath    string
	JWTSecret string

	FirebaseDatabaseURL     string
	FirebaseCredentialsFile string

	IdentityBaseURL string
	IdentityAPIKey  string

	RecipeAPIBaseURL      string
	RecipeAPITokenURL     string
	RecipeAPIClientID     string
	RecipeAPIClientSecret string

	ProductAPIBaseURL  string
	ImageSearchBaseURL string
	ImageSearchAPIKey  string

	AWSRegion     string
	S3Bucket      string
	CloudFrontURL string
	SESEmail      string
	SNSFCMArn     string
}

// Load reads .env (if present) and the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	cfg := &Config{
		Port:      envOr("PORT", "8080"),
		DBPath:    envOr("DB_PATH", "pantry.db"),
		JWTSecret: os.Getenv("JWT_SECRET"),

		FirebaseDatabaseURL:     os.Getenv("FIREBASE_DATABASE_URL"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),

		IdentityBaseURL: envOr("IDENTITY_BASE_URL", "https://identitytoolkit.googleapis.com"),
		IdentityAPIKey:  os.Getenv("IDENTITY_API_KEY"),

		RecipeAPIBaseURL:      envOr("RECIPE_API_BASE_URL", "https://platform.fatsecret.com/rest"),
		RecipeAPITokenURL:     envOr("RECIPE_API_TOKEN_URL", "https://oauth.fatsecret.com/connect/token"),
		RecipeAPIClientID:     os.Getenv("RECIPE_API_CLIENT_ID"),
		RecipeAPIClientSecret: os.Getenv("RECIPE_API_CLIENT_SECRET"),

		ProductAPIBaseURL:  envOr("PRODUCT_API_BASE_URL", "https://world.openfoodfacts.org"),
		ImageSearchBaseURL: envOr("IMAGE_SEARCH_BASE_URL", "https://pixabay.com/api"),
		ImageSearchAPIKey:  os.Getenv("IMAGE_SEARCH_API_KEY"),

		AWSRegion:     envOr("AWS_REGION", "ap-south-1"),
		S3Bucket:      os.Getenv("S3_BUCKET"),
		CloudFrontURL: os.Getenv("CLOUDFRONT_URL"),
		SESEmail:      os.Getenv("SES_EMAIL"),
		SNSFCMArn:     os.Getenv("SNS_FCM_ARN"),
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// OpenLocalStore opens the on-device sqlite file and migrates the schema.
// Migrations are additive-column only; gorm's AutoMigrate never drops.
func OpenLocalStore(path string) (*gorm.DB, error) {
	gdb, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}

	err = gdb.AutoMigrate(
		&models.Ingredient{},
		&models.Recipe{},
		&models.RecipeDetail{},
		&models.Category{},
		&models.UserDevice{},
	)
	if err != nil {
		return nil, fmt.Errorf("migrate local store: %w", err)
	}
	return gdb, nil
}

// NewRemoteDatabase builds the Firebase Realtime Database client backing the
// per-user ingredient and favorites subtrees.
func NewRemoteDatabase(ctx context.Context, cfg *Config) (*db.Client, error) {
	opts := []option.ClientOption{}
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{DatabaseURL: cfg.FirebaseDatabaseURL}, opts...)
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Database(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase database: %w", err)
	}
	return client, nil
}
