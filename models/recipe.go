package models

// Recipe is a cached search result row. OriginIngredient records which pantry
// ingredient seeded the search; rows are inserted and deleted in bulk per
// origin ingredient. Nutrition values stay the coarse strings the recipe API
// returns, they are display-only.
type Recipe struct {
	ID               int    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ImageURL         string `gorm:"column:image_url" json:"imageUrl"`
	Calories         string `json:"calories"`
	Carbohydrate     string `json:"carbohydrate"`
	Fat              string `json:"fat"`
	Protein          string `json:"protein"`
	IngredientNames  string `json:"ingredientNames"` // comma-joined name list
	Types            string `json:"types"`           // comma-joined type tags
	OriginIngredient string `gorm:"index" json:"originIngredient"`
}
