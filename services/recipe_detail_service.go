package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeDetailService stores expanded recipe records. The structured
// sub-sections are serialized once here; reads hand back the row as-is and
// callers parse blobs on demand through the model accessors.
type RecipeDetailService struct {
	db *gorm.DB
}

func NewRecipeDetailService(db *gorm.DB) *RecipeDetailService {
	return &RecipeDetailService{db: db}
}

// StoreDetails serializes the sub-sections of a detail response and upserts
// one row keyed by recipe id. The first of possibly several images becomes
// the representative image.
func (s *RecipeDetailService) StoreDetails(resp *RecipeDetailResponse) (*models.RecipeDetail, error) {
	r := resp.Recipe
	id, err := strconv.Atoi(r.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: recipe id %q", utils.ErrMalformedResponse, r.ID)
	}

	categories := make([]models.DetailCategory, 0, len(r.Categories.RecipeCategory))
	for _, c := range r.Categories.RecipeCategory {
		categories = append(categories, models.DetailCategory{Name: c.Name, URL: c.URL})
	}

	servings := make([]models.ServingSize, 0, len(r.ServingSizes.Serving))
	for _, sv := range r.ServingSizes.Serving {
		servings = append(servings, models.ServingSize{
			Amount:       sv.Amount,
			Calories:     sv.Calories,
			Carbohydrate: sv.Carbohydrate,
			Fat:          sv.Fat,
			Protein:      sv.Protein,
		})
	}

	ingredients := make([]models.DetailIngredient, 0, len(r.Ingredients.Ingredient))
	for _, ing := range r.Ingredients.Ingredient {
		ingredients = append(ingredients, models.DetailIngredient{
			Name:        ing.Name,
			Description: ing.Description,
			Quantity:    ing.Units,
		})
	}

	directions := make([]string, 0, len(r.Directions.Direction))
	for _, d := range r.Directions.Direction {
		directions = append(directions, d.Description)
	}

	imageURL := ""
	if len(r.Images.RecipeImage) > 0 {
		imageURL = r.Images.RecipeImage[0]
	}

	row := models.RecipeDetail{
		RecipeID:         id,
		Name:             r.Name,
		Description:      r.Description,
		ImageURL:         imageURL,
		CategoriesJSON:   mustBlob(categories),
		TypesJSON:        mustBlob(r.Types.RecipeType),
		ServingSizesJSON: mustBlob(servings),
		IngredientsJSON:  mustBlob(ingredients),
		DirectionsJSON:   mustBlob(directions),
	}

	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("%w: store recipe detail: %v", utils.ErrLocalStorage, err)
	}
	return &row, nil
}

// GetDetails reads one row by recipe id, returning (nil, nil) when absent.
func (s *RecipeDetailService) GetDetails(recipeID int) (*models.RecipeDetail, error) {
	var row models.RecipeDetail
	err := s.db.First(&row, "recipe_id = ?", recipeID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: recipe detail %d: %v", utils.ErrLocalStorage, recipeID, err)
	}
	return &row, nil
}

// UpdateImageURL backfills a representative image found after the fact.
func (s *RecipeDetailService) UpdateImageURL(recipeID int, url string) error {
	res := s.db.Model(&models.RecipeDetail{}).Where("recipe_id = ?", recipeID).Update("image_url", url)
	if res.Error != nil {
		return fmt.Errorf("%w: update detail image: %v", utils.ErrLocalStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe detail %d", utils.ErrNotFound, recipeID)
	}
	return nil
}

// mustBlob serializes a sub-section. The inputs are plain structs and slices
// of strings, which cannot fail to marshal.
func mustBlob(v any) string {
	raw, _ := json.Marshal(v)
	return string(raw)
}
