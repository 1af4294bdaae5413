package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/models"
	"github.com/NullPointer-coder/Chengkai-Jingbo-JK-FinalProject-sub000/utils"

	"gorm.io/gorm"
)

// IngredientService mediates between the local ingredient table and the
// per-user remote subtree. Write ordering is fixed: Save and Delete go remote
// first and skip the local step when the remote one fails; UpdateQuantity
// goes local first. There is no compensation for partial failure; Sync is
// the single reconciliation path.
type IngredientService struct {
	db     *gorm.DB
	remote RemoteStore
	hub    *RealtimeHub // optional

	// serializes Save so concurrent callers cannot read the same max id
	mu sync.Mutex
}

func NewIngredientService(db *gorm.DB, remote RemoteStore, hub *RealtimeHub) *IngredientService {
	return &IngredientService{db: db, remote: remote, hub: hub}
}

// Save assigns the next instance id (the owner's current local max + 1),
// writes the record to the remote store and then to the local store. A remote
// failure propagates and leaves the local store untouched.
func (s *IngredientService) Save(ctx context.Context, userID string, ing models.Ingredient) (models.Ingredient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var maxID int
	err := s.db.Model(&models.Ingredient{}).
		Select("COALESCE(MAX(instance_id), 0)").
		Where("user_id = ?", userID).
		Scan(&maxID).Error
	if err != nil {
		return models.Ingredient{}, fmt.Errorf("%w: read max instance id: %v", utils.ErrLocalStorage, err)
	}
	ing.UserID = userID
	ing.InstanceID = maxID + 1

	if err := s.remote.PutIngredient(ctx, userID, ing); err != nil {
		return models.Ingredient{}, err
	}
	if err := s.db.Create(&ing).Error; err != nil {
		return models.Ingredient{}, fmt.Errorf("%w: insert ingredient: %v", utils.ErrLocalStorage, err)
	}

	s.broadcast(userID, "ingredient.saved", ing)
	return ing, nil
}

// Sync reconciles the user's local rows from their remote subtree. The
// trigger is count-based: only when the remote set is strictly larger are the
// user's local rows wholly replaced (delete then bulk insert). Equal or
// smaller remote counts are a no-op regardless of content differences.
// Returns whether a replacement happened.
func (s *IngredientService) Sync(ctx context.Context, userID string) (bool, error) {
	remote, err := s.remote.GetIngredients(ctx, userID)
	if err != nil {
		return false, err
	}

	var localCount int64
	if err := s.db.Model(&models.Ingredient{}).Where("user_id = ?", userID).Count(&localCount).Error; err != nil {
		return false, fmt.Errorf("%w: count ingredients: %v", utils.ErrLocalStorage, err)
	}
	if int64(len(remote)) <= localCount {
		return false, nil
	}

	// The subtree record does not carry its owner; stamp it before insert.
	for i := range remote {
		remote[i].UserID = userID
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.Ingredient{}).Error; err != nil {
			return err
		}
		return tx.Create(&remote).Error
	})
	if err != nil {
		return false, fmt.Errorf("%w: replace ingredients: %v", utils.ErrLocalStorage, err)
	}

	s.broadcast(userID, "ingredient.synced", remote)
	return true, nil
}

// Delete removes the remote record, then the local one. A failing remote
// delete propagates and no local deletion is attempted.
func (s *IngredientService) Delete(ctx context.Context, userID string, ing models.Ingredient) error {
	if err := s.remote.DeleteIngredient(ctx, userID, ing.InstanceID); err != nil {
		return err
	}
	if err := s.db.Delete(&models.Ingredient{}, "user_id = ? AND instance_id = ?", userID, ing.InstanceID).Error; err != nil {
		return fmt.Errorf("%w: delete ingredient %d: %v", utils.ErrLocalStorage, ing.InstanceID, err)
	}

	s.broadcast(userID, "ingredient.deleted", ing.InstanceID)
	return nil
}

// UpdateQuantity writes the new quantity locally, then mirrors the full
// record to the remote store.
func (s *IngredientService) UpdateQuantity(ctx context.Context, userID string, instanceID int, quantity float64) error {
	res := s.db.Model(&models.Ingredient{}).
		Where("user_id = ? AND instance_id = ?", userID, instanceID).
		Update("quantity", quantity)
	if res.Error != nil {
		return fmt.Errorf("%w: update quantity: %v", utils.ErrLocalStorage, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: ingredient %d", utils.ErrNotFound, instanceID)
	}

	var ing models.Ingredient
	if err := s.db.First(&ing, "user_id = ? AND instance_id = ?", userID, instanceID).Error; err != nil {
		return fmt.Errorf("%w: reload ingredient %d: %v", utils.ErrLocalStorage, instanceID, err)
	}
	if err := s.remote.PutIngredient(ctx, userID, ing); err != nil {
		return err
	}

	s.broadcast(userID, "ingredient.updated", ing)
	return nil
}

// GetAll lists the user's local pantry.
func (s *IngredientService) GetAll(ctx context.Context, userID string) ([]models.Ingredient, error) {
	var out []models.Ingredient
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("instance_id").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("%w: list ingredients: %v", utils.ErrLocalStorage, err)
	}
	return out, nil
}

func (s *IngredientService) broadcast(userID, kind string, payload any) {
	if s.hub != nil {
		s.hub.Broadcast(userID, kind, payload)
	}
}
