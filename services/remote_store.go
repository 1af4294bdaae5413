package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"firebase.google.com/go/v4/db"
)

// RemoteStore is the per-user key-tree database behind the repositories.
// Layout: users/{uid}/ingredients/{instanceID} and users/{uid}/favorites/{recipeID}.
type RemoteStore interface {
	PutIngredient(ctx context.Context, userID string, ing models.Ingredient) error
	GetIngredients(ctx context.Context, userID string) ([]models.Ingredient, error)
	DeleteIngredient(ctx context.Context, userID string, instanceID int) error

	PutFavorite(ctx context.Context, userID string, detail models.RecipeDetail) error
	GetFavorites(ctx context.Context, userID string) ([]models.RecipeDetail, error)
	DeleteFavorite(ctx context.Context, userID string, recipeID int) error
}

// FirebaseStore implements RemoteStore over a Realtime Database client.
type FirebaseStore struct {
	db *db.Client
}

func NewFirebaseStore(client *db.Client) *FirebaseStore {
	return &FirebaseStore{db: client}
}

func (s *FirebaseStore) ingredientsRef(userID string) *db.Ref {
	return s.db.NewRef("users/" + userID + "/ingredients")
}

func (s *FirebaseStore) favoritesRef(userID string) *db.Ref {
	return s.db.NewRef("users/" + userID + "/favorites")
}

func (s *FirebaseStore) PutIngredient(ctx context.Context, userID string, ing models.Ingredient) error {
	ref := s.ingredientsRef(userID).Child(strconv.Itoa(ing.InstanceID))
	if err := ref.Set(ctx, ing); err != nil {
		return fmt.Errorf("%w: put ingredient %d: %v", utils.ErrRemoteUnavailable, ing.InstanceID, err)
	}
	return nil
}

func (s *FirebaseStore) GetIngredients(ctx context.Context, userID string) ([]models.Ingredient, error) {
	var children map[string]models.Ingredient
	if err := s.ingredientsRef(userID).Get(ctx, &children); err != nil {
		return nil, fmt.Errorf("%w: get ingredients: %v", utils.ErrRemoteUnavailable, err)
	}

	out := make([]models.Ingredient, 0, len(children))
	for _, ing := range children {
		out = append(out, ing)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].InstanceID < out[j].InstanceID })
	return out, nil
}

func (s *FirebaseStore) DeleteIngredient(ctx context.Context, userID string, instanceID int) error {
	ref := s.ingredientsRef(userID).Child(strconv.Itoa(instanceID))
	if err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("%w: delete ingredient %d: %v", utils.ErrRemoteUnavailable, instanceID, err)
	}
	return nil
}

func (s *FirebaseStore) PutFavorite(ctx context.Context, userID string, detail models.RecipeDetail) error {
	ref := s.favoritesRef(userID).Child(strconv.Itoa(detail.RecipeID))
	if err := ref.Set(ctx, detail); err != nil {
		return fmt.Errorf("%w: put favorite %d: %v", utils.ErrRemoteUnavailable, detail.RecipeID, err)
	}
	return nil
}

func (s *FirebaseStore) GetFavorites(ctx context.Context, userID string) ([]models.RecipeDetail, error) {
	var children map[string]models.RecipeDetail
	if err := s.favoritesRef(userID).Get(ctx, &children); err != nil {
		return nil, fmt.Errorf("%w: get favorites: %v", utils.ErrRemoteUnavailable, err)
	}

	out := make([]models.RecipeDetail, 0, len(children))
	for _, d := range children {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].RecipeID < out[j].RecipeID })
	return out, nil
}

func (s *FirebaseStore) DeleteFavorite(ctx context.Context, userID string, recipeID int) error {
	ref := s.favoritesRef(userID).Child(strconv.Itoa(recipeID))
	if err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("%w: delete favorite %d: %v", utils.ErrRemoteUnavailable, recipeID, err)
	}
	return nil
}
