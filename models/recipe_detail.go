package models

import "encoding/json"

// Sub-section value types serialized into RecipeDetail blob columns.

type DetailCategory struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

type ServingSize struct {
	Amount       string `json:"amount"`
	Calories     string `json:"calories"`
	Carbohydrate string `json:"carbohydrate"`
	Fat          string `json:"fat"`
	Protein      string `json:"protein"`
}

type DetailIngredient struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Quantity    string `json:"quantity,omitempty"`
}

// RecipeDetail is the expanded per-recipe record. The structured sub-sections
// arrive from the recipe API, are serialized once on store and kept as opaque
// text columns; callers deserialize on demand through the accessors below.
// The same struct (json tags) is the favorites payload in the Remote Store.
type RecipeDetail struct {
	RecipeID         int    `gorm:"column:recipe_id;primaryKey;autoIncrement:false" json:"recipeId"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	ImageURL         string `gorm:"column:image_url" json:"imageUrl"`
	CategoriesJSON   string `gorm:"column:categories;type:text" json:"categories"`
	TypesJSON        string `gorm:"column:types;type:text" json:"types"`
	ServingSizesJSON string `gorm:"column:serving_sizes;type:text" json:"servingSizes"`
	IngredientsJSON  string `gorm:"column:ingredients;type:text" json:"ingredients"`
	DirectionsJSON   string `gorm:"column:directions;type:text" json:"directions"`
}

func (d *RecipeDetail) TableName() string { return "recipe_details" }

func (d *RecipeDetail) Categories() ([]DetailCategory, error) {
	var out []DetailCategory
	return out, unmarshalBlob(d.CategoriesJSON, &out)
}

func (d *RecipeDetail) Types() ([]string, error) {
	var out []string
	return out, unmarshalBlob(d.TypesJSON, &out)
}

func (d *RecipeDetail) ServingSizes() ([]ServingSize, error) {
	var out []ServingSize
	return out, unmarshalBlob(d.ServingSizesJSON, &out)
}

func (d *RecipeDetail) Ingredients() ([]DetailIngredient, error) {
	var out []DetailIngredient
	return out, unmarshalBlob(d.IngredientsJSON, &out)
}

func (d *RecipeDetail) Directions() ([]string, error) {
	var out []string
	return out, unmarshalBlob(d.DirectionsJSON, &out)
}

func unmarshalBlob(blob string, v any) error {
	if blob == "" {
		return nil
	}
	return json.Unmarshal([]byte(blob), v)
}
