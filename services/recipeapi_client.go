package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"
)

// RecipeAPIClient is the typed client for the bearer-authenticated recipe and
// nutrition platform. Every request gets its token from the TokenProvider.
type RecipeAPIClient struct {
	BaseURL    string
	Tokens     *TokenProvider
	HTTPClient *http.Client
}

func NewRecipeAPIClient(baseURL string, tokens *TokenProvider) *RecipeAPIClient {
	return &RecipeAPIClient{
		BaseURL:    baseURL,
		Tokens:     tokens,
		HTTPClient: &http.Client{Timeout: 12 * time.Second},
	}
}

// RecipeResult is one recipe summary as returned by the search endpoint.
type RecipeResult struct {
	ID          string `json:"recipe_id"`
	Name        string `json:"recipe_name"`
	Description string `json:"recipe_description"`
	ImageURL    string `json:"recipe_image"`
	Nutrition   struct {
		Calories     string `json:"calories"`
		Carbohydrate string `json:"carbohydrate"`
		Fat          string `json:"fat"`
		Protein      string `json:"protein"`
	} `json:"recipe_nutrition"`
	Ingredients struct {
		Ingredient []string `json:"ingredient"`
	} `json:"recipe_ingredients"`
	Types struct {
		RecipeType []string `json:"recipe_type"`
	} `json:"recipe_types"`
}

type recipeSearchResponse struct {
	Recipes struct {
		Recipe []RecipeResult `json:"recipe"`
	} `json:"recipes"`
}

// SearchRecipes looks up recipe summaries matching an ingredient name.
func (c *RecipeAPIClient) SearchRecipes(ctx context.Context, ingredient string) ([]RecipeResult, error) {
	q := url.Values{"search_expression": {ingredient}, "format": {"json"}}
	var out recipeSearchResponse
	if err := c.get(ctx, "/recipes/search/v3", q, &out); err != nil {
		return nil, err
	}
	return out.Recipes.Recipe, nil
}

// RecipeDetailResponse is the expanded recipe record from the detail endpoint.
// Several images may be present; the first one is used as representative.
type RecipeDetailResponse struct {
	Recipe struct {
		ID          string `json:"recipe_id"`
		Name        string `json:"recipe_name"`
		Description string `json:"recipe_description"`
		Images      struct {
			RecipeImage []string `json:"recipe_image"`
		} `json:"recipe_images"`
		Categories struct {
			RecipeCategory []struct {
				Name string `json:"recipe_category_name"`
				URL  string `json:"recipe_category_url"`
			} `json:"recipe_category"`
		} `json:"recipe_categories"`
		Types struct {
			RecipeType []string `json:"recipe_type"`
		} `json:"recipe_types"`
		ServingSizes struct {
			Serving []struct {
				Amount       string `json:"serving_size"`
				Calories     string `json:"calories"`
				Carbohydrate string `json:"carbohydrate"`
				Fat          string `json:"fat"`
				Protein      string `json:"protein"`
			} `json:"serving"`
		} `json:"serving_sizes"`
		Ingredients struct {
			Ingredient []struct {
				Name        string `json:"food_name"`
				Description string `json:"ingredient_description"`
				Units       string `json:"number_of_units"`
			} `json:"ingredient"`
		} `json:"ingredients"`
		Directions struct {
			Direction []struct {
				Number      string `json:"direction_number"`
				Description string `json:"direction_description"`
			} `json:"direction"`
		} `json:"directions"`
	} `json:"recipe"`
}

// GetRecipeDetail fetches the full record for one recipe id.
func (c *RecipeAPIClient) GetRecipeDetail(ctx context.Context, recipeID int) (*RecipeDetailResponse, error) {
	q := url.Values{"recipe_id": {fmt.Sprintf("%d", recipeID)}, "format": {"json"}}
	var out RecipeDetailResponse
	if err := c.get(ctx, "/recipe/v2", q, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CategoryResult is one entry of the remote category catalog.
type CategoryResult struct {
	ID        string `json:"recipe_category_id"`
	Name      string `json:"recipe_category_name"`
	ItemCount string `json:"number_of_recipes"`
}

// GetCategories fetches the full category catalog.
func (c *RecipeAPIClient) GetCategories(ctx context.Context) ([]CategoryResult, error) {
	q := url.Values{"format": {"json"}}
	var out struct {
		RecipeCategories struct {
			RecipeCategory []CategoryResult `json:"recipe_category"`
		} `json:"recipe_categories"`
	}
	if err := c.get(ctx, "/recipe-categories/v1", q, &out); err != nil {
		return nil, err
	}
	return out.RecipeCategories.RecipeCategory, nil
}

// FoodResult is one food-database hit used by the photo scan flow.
type FoodResult struct {
	ID          string `json:"food_id"`
	Name        string `json:"food_name"`
	Brand       string `json:"brand_name"`
	Description string `json:"food_description"`
}

// SearchFoods queries the food database by free text.
func (c *RecipeAPIClient) SearchFoods(ctx context.Context, query string) ([]FoodResult, error) {
	q := url.Values{"search_expression": {query}, "format": {"json"}}
	var out struct {
		Foods struct {
			Food []FoodResult `json:"food"`
		} `json:"foods"`
	}
	if err := c.get(ctx, "/foods/search/v1", q, &out); err != nil {
		return nil, err
	}
	return out.Foods.Food, nil
}

func (c *RecipeAPIClient) get(ctx context.Context, path string, query url.Values, out any) error {
	token, err := c.Tokens.Token(ctx)
	if err != nil {
		return err
	}

	u := strings.TrimRight(c.BaseURL, "/") + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("create recipe API request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: recipe API %s: %v", utils.ErrRemoteUnavailable, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read recipe API response: %w", err)
	}
	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("%w: recipe API status %d", utils.ErrAuthRejected, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: recipe API %s status %d", utils.ErrRemoteUnavailable, path, resp.StatusCode)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: recipe API %s: %v", utils.ErrMalformedResponse, path, err)
	}
	return nil
}
