package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RecipeService caches the last successful search per origin ingredient.
// There is no remote side for this entity; rows live until explicitly
// deleted by origin ingredient.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// recipeFromResult converts one network result into a storage row, recording
// the origin ingredient alongside. A non-numeric recipe id cannot key a row.
func recipeFromResult(r RecipeResult, originIngredient string) (models.Recipe, error) {
	id, err := strconv.Atoi(r.ID)
	if err != nil {
		return models.Recipe{}, fmt.Errorf("%w: recipe id %q", utils.ErrMalformedResponse, r.ID)
	}
	return models.Recipe{
		ID:               id,
		Name:             r.Name,
		Description:      r.Description,
		ImageURL:         r.ImageURL,
		Calories:         r.Nutrition.Calories,
		Carbohydrate:     r.Nutrition.Carbohydrate,
		Fat:              r.Nutrition.Fat,
		Protein:          r.Nutrition.Protein,
		IngredientNames:  strings.Join(r.Ingredients.Ingredient, ","),
		Types:            strings.Join(r.Types.RecipeType, ","),
		OriginIngredient: originIngredient,
	}, nil
}

// StoreRecipes bulk-upserts search results keyed by recipe id.
func (s *RecipeService) StoreRecipes(results []RecipeResult, originIngredient string) ([]models.Recipe, error) {
	if len(results) == 0 {
		return nil, nil
	}
	rows := make([]models.Recipe, 0, len(results))
	for _, r := range results {
		row, err := recipeFromResult(r, originIngredient)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: store recipes: %v", utils.ErrLocalStorage, err)
	}
	return rows, nil
}

func (s *RecipeService) GetByIngredient(name string) ([]models.Recipe, error) {
	var out []models.Recipe
	if err := s.db.Where("origin_ingredient = ?", name).Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: recipes by ingredient: %v", utils.ErrLocalStorage, err)
	}
	return out, nil
}

func (s *RecipeService) GetAll() ([]models.Recipe, error) {
	var out []models.Recipe
	if err := s.db.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: list recipes: %v", utils.ErrLocalStorage, err)
	}
	return out, nil
}

func (s *RecipeService) DeleteByIngredient(name string) error {
	if err := s.db.Where("origin_ingredient = ?", name).Delete(&models.Recipe{}).Error; err != nil {
		return fmt.Errorf("%w: delete recipes for %q: %v", utils.ErrLocalStorage, name, err)
	}
	return nil
}

func (s *RecipeService) UpdateImageURL(id int, url string) error {
	res := s.db.Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", url)
	if res.Error != nil {
		return fmt.Errorf("%w: update recipe image: %v", utils.ErrLocalStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: recipe %d", utils.ErrNotFound, id)
	}
	return nil
}

func (s *RecipeService) GetImageURLByID(id int) (string, error) {
	var rec models.Recipe
	err := s.db.Select("image_url").First(&rec, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("%w: recipe %d", utils.ErrNotFound, id)
	}
	if err != nil {
		return "", fmt.Errorf("%w: recipe image: %v", utils.ErrLocalStorage, err)
	}
	return rec.ImageURL, nil
}
