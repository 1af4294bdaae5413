package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/config"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenLocalStore(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	return db
}

// fakeRemote is an in-memory RemoteStore with per-operation failure switches.
type fakeRemote struct {
	mu          sync.Mutex
	ingredients map[string]map[int]models.Ingredient
	favorites   map[string]map[int]models.RecipeDetail

	failPut    bool
	failGet    bool
	failDelete bool

	putCalls    int
	deleteCalls int
}

func newFakeRemote() *fakeRemote {
	return &fakeRemote{
		ingredients: make(map[string]map[int]models.Ingredient),
		favorites:   make(map[string]map[int]models.RecipeDetail),
	}
}

func (f *fakeRemote) PutIngredient(_ context.Context, userID string, ing models.Ingredient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	if f.failPut {
		return fmt.Errorf("%w: fake put", utils.ErrRemoteUnavailable)
	}
	if f.ingredients[userID] == nil {
		f.ingredients[userID] = make(map[int]models.Ingredient)
	}
	f.ingredients[userID][ing.InstanceID] = ing
	return nil
}

func (f *fakeRemote) GetIngredients(_ context.Context, userID string) ([]models.Ingredient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, fmt.Errorf("%w: fake get", utils.ErrRemoteUnavailable)
	}
	out := make([]models.Ingredient, 0, len(f.ingredients[userID]))
	for _, ing := range f.ingredients[userID] {
		out = append(out, ing)
	}
	return out, nil
}

func (f *fakeRemote) DeleteIngredient(_ context.Context, userID string, instanceID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	if f.failDelete {
		return fmt.Errorf("%w: fake delete", utils.ErrRemoteUnavailable)
	}
	delete(f.ingredients[userID], instanceID)
	return nil
}

func (f *fakeRemote) PutFavorite(_ context.Context, userID string, detail models.RecipeDetail) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failPut {
		return fmt.Errorf("%w: fake put favorite", utils.ErrRemoteUnavailable)
	}
	if f.favorites[userID] == nil {
		f.favorites[userID] = make(map[int]models.RecipeDetail)
	}
	f.favorites[userID][detail.RecipeID] = detail
	return nil
}

func (f *fakeRemote) GetFavorites(_ context.Context, userID string) ([]models.RecipeDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet {
		return nil, fmt.Errorf("%w: fake get favorites", utils.ErrRemoteUnavailable)
	}
	out := make([]models.RecipeDetail, 0, len(f.favorites[userID]))
	for _, d := range f.favorites[userID] {
		out = append(out, d)
	}
	return out, nil
}

func (f *fakeRemote) DeleteFavorite(_ context.Context, userID string, recipeID int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failDelete {
		return fmt.Errorf("%w: fake delete favorite", utils.ErrRemoteUnavailable)
	}
	delete(f.favorites[userID], recipeID)
	return nil
}

func (f *fakeRemote) seedIngredient(userID string, ing models.Ingredient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ingredients[userID] == nil {
		f.ingredients[userID] = make(map[int]models.Ingredient)
	}
	f.ingredients[userID][ing.InstanceID] = ing
}
